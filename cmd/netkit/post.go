package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post <url|path>",
	Short: "Issue a POST request and print the response body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		headers, _ := cmd.Flags().GetStringArray("header")
		queries, _ := cmd.Flags().GetStringArray("query")
		bodyStr, _ := cmd.Flags().GetString("body")
		bodyFile, _ := cmd.Flags().GetString("body-file")
		extract, _ := cmd.Flags().GetString("extract")
		out, _ := cmd.Flags().GetString("out")

		hdrs, err := headerMap(headers)
		if err != nil {
			return err
		}
		qs, err := parseKV(queries, "query")
		if err != nil {
			return err
		}

		var body []byte
		switch {
		case bodyFile != "":
			body, err = os.ReadFile(bodyFile)
			if err != nil {
				return fmt.Errorf("read body file: %w", err)
			}
		case bodyStr != "":
			body = []byte(bodyStr)
		}

		target := resolveTarget(cfg, args[0], qs)

		n := buildNetwork(cfg)
		hist := openHistory(cfg)
		defer func() { _ = hist.Close() }()

		start := time.Now()
		resp, err := n.Post(cmd.Context(), target, hdrs, body)
		record(hist, "POST", target, start, err)
		if err != nil {
			return describe(err)
		}
		return emit(resp, extract, out)
	},
}

func init() {
	postCmd.Flags().StringArray("header", nil, "request header as name=value (repeatable)")
	postCmd.Flags().StringArray("query", nil, "query parameter as name=value (repeatable, order preserved)")
	postCmd.Flags().String("body", "", "request body string")
	postCmd.Flags().String("body-file", "", "read the request body from a file")
	postCmd.Flags().String("extract", "", "gjson path to print instead of the full body")
	postCmd.Flags().String("out", "", "write the response body to a file instead of stdout")
}
