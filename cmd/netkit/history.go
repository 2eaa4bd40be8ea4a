package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently executed requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		st := openHistory(cfg)
		if st == nil {
			return fmt.Errorf("request history is disabled or unavailable")
		}
		defer func() { _ = st.Close() }()

		records, err := st.List(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no requests recorded")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  %-6s %-8s %5dms  %s\n", r.RanAt, r.Method, r.Outcome, r.DurationMS, r.URL)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of records to list")
}
