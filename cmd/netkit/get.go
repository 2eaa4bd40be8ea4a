package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/harborlab/netkit/internal/neterr"
)

var getCmd = &cobra.Command{
	Use:   "get <url|path>",
	Short: "Issue a GET request and print the response body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		headers, _ := cmd.Flags().GetStringArray("header")
		queries, _ := cmd.Flags().GetStringArray("query")
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
		target := resolveTarget(cfg, args[0], qs)

		n := buildNetwork(cfg)
		hist := openHistory(cfg)
		defer func() { _ = hist.Close() }()

		start := time.Now()
		body, err := n.Get(cmd.Context(), target, hdrs)
		record(hist, "GET", target, start, err)
		if err != nil {
			return describe(err)
		}
		return emit(body, extract, out)
	},
}

func init() {
	getCmd.Flags().StringArray("header", nil, "request header as name=value (repeatable)")
	getCmd.Flags().StringArray("query", nil, "query parameter as name=value (repeatable, order preserved)")
	getCmd.Flags().String("extract", "", "gjson path to print instead of the full body")
	getCmd.Flags().String("out", "", "write the response body to a file instead of stdout")
}

// emit writes the response body, or one extracted field of it, to stdout
// or a file. Extraction is the caller-side decode: a body that is not
// valid JSON or a path that matches nothing is a decoding failure.
func emit(body []byte, extract, out string) error {
	payload := body
	if extract != "" {
		if len(body) == 0 {
			return describe(neterr.Decoding(errEmptyBody))
		}
		if !gjson.ValidBytes(body) {
			return describe(neterr.Decoding(fmt.Errorf("response is not valid JSON")))
		}
		v := gjson.GetBytes(body, extract)
		if !v.Exists() {
			return describe(neterr.Decoding(fmt.Errorf("path %q matched nothing", extract)))
		}
		payload = []byte(v.String())
	}
	if out != "" {
		return os.WriteFile(out, payload, 0o600)
	}
	_, err := fmt.Println(string(payload))
	return err
}
