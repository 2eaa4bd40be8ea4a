package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/harborlab/netkit"
	"github.com/harborlab/netkit/cmd/netkit/config"
	"github.com/harborlab/netkit/internal/common"
	"github.com/harborlab/netkit/internal/history"
	"github.com/harborlab/netkit/internal/neterr"
)

// buildNetwork captures the environment-style channels (mock flag, mapper,
// path overrides) once, here at the boundary, and hands everything to the
// factory as explicit options.
func buildNetwork(cfg *config.Doc) netkit.Network {
	var entries []netkit.MockEntry
	if cfg.Mock.Enabled {
		entries = cfg.Mock.Entries
	}
	return netkit.New(netkit.Options{
		Host:        cfg.Host,
		Client:      cfg.Client.ToClientConfig(),
		FixtureRoot: cfg.Mock.FixtureRoot,
		Logger:      common.GetLogger(),
		MockMode:    viper.GetBool("mock") || cfg.Mock.Enabled,
		MockMapper:  viper.GetString("mapper"),
		MockEntries: entries,
		LookupEnv:   os.LookupEnv,
	})
}

// resolveTarget turns a command argument into an absolute URL. Absolute
// URLs pass through untouched; everything else is treated as an API path
// against the configured host.
func resolveTarget(cfg *config.Doc, arg string, queries []netkit.Query) string {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return arg
	}
	return netkit.BuildURL(&cfg.Host, arg, queries)
}

// openHistory returns the configured history store, nil when recording is
// disabled. Store failures are logged and swallowed: history must never
// block a request.
func openHistory(cfg *config.Doc) *history.Store {
	if cfg.History.Disabled {
		return nil
	}
	var st *history.Store
	var err error
	switch cfg.History.Type {
	case "postgres":
		st, err = history.OpenPostgres(cfg.History.Postgres.DSN)
	default:
		path := cfg.History.SQLite.Path
		if path == "" {
			path = history.DbFileName
		}
		st, err = history.OpenSQLite(path)
	}
	if err != nil {
		common.GetLogger().Warn("request history unavailable", "error", err)
		return nil
	}
	return st
}

// record appends one request outcome to the history store, if any.
func record(st *history.Store, method, url string, start time.Time, err error) {
	if st == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if kind, ok := neterr.KindOf(err); ok {
			outcome = kind.String()
		}
	}
	rec := history.Record{
		Method:     method,
		URL:        url,
		Outcome:    outcome,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if rerr := st.Record(rec); rerr != nil {
		common.GetLogger().Warn("failed to record request history", "error", rerr)
	}
}

// parseKV splits repeatable "name=value" flags, preserving order.
func parseKV(pairs []string, flag string) ([]netkit.Query, error) {
	out := make([]netkit.Query, 0, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --%s %q: expected name=value", flag, p)
		}
		out = append(out, netkit.Query{Name: name, Value: value})
	}
	return out, nil
}

func headerMap(pairs []string) (map[string]string, error) {
	kv, err := parseKV(pairs, "header")
	if err != nil {
		return nil, err
	}
	if len(kv) == 0 {
		return nil, nil
	}
	// Header keys are unique, last write wins.
	m := make(map[string]string, len(kv))
	for _, h := range kv {
		m[h.Name] = h.Value
	}
	return m, nil
}

// describe renders a taxonomy error with its kind for terminal output.
func describe(err error) error {
	if kind, ok := neterr.KindOf(err); ok {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return err
}

var errEmptyBody = errors.New("response body is empty")
