package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harborlab/netkit"
)

var pingCmd = &cobra.Command{
	Use:   "ping <url|path>",
	Short: "Probe an endpoint for reachability (HEAD, 2xx = reachable)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		wait, _ := cmd.Flags().GetBool("wait")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		interval, _ := cmd.Flags().GetDuration("interval")
		if timeout == 0 {
			timeout = cfg.Ping.Timeout
		}
		if interval == 0 {
			interval = cfg.Ping.Interval
		}

		target := resolveTarget(cfg, args[0], nil)
		n := buildNetwork(cfg)
		hist := openHistory(cfg)
		defer func() { _ = hist.Close() }()

		start := time.Now()
		if wait {
			err = netkit.PingWait(cmd.Context(), n, target, timeout, interval)
		} else {
			err = n.Ping(cmd.Context(), target)
		}
		record(hist, "HEAD", target, start, err)
		if err != nil {
			return describe(err)
		}
		fmt.Printf("%s is reachable\n", target)
		return nil
	},
}

func init() {
	pingCmd.Flags().Bool("wait", false, "poll until the endpoint is reachable or --timeout elapses")
	pingCmd.Flags().Duration("timeout", 0, "polling deadline for --wait (default 60s)")
	pingCmd.Flags().Duration("interval", 0, "polling interval for --wait (default 2s)")
}
