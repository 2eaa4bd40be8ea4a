// Package netkit is a pluggable HTTP request-execution layer: one client
// contract with a live executor and a fixture-backed mock dispatcher, a
// closed error taxonomy shared by every caller, and an endpoint builder
// for composing request URLs from per-environment host configurations.
package netkit

import (
	"context"
	"fmt"
	"time"

	"github.com/harborlab/netkit/internal/common"
	"github.com/harborlab/netkit/internal/endpoint"
	"github.com/harborlab/netkit/internal/executor"
	"github.com/harborlab/netkit/internal/httpc"
	"github.com/harborlab/netkit/internal/mock"
	"github.com/harborlab/netkit/internal/neterr"
)

// Re-export commonly used types for the public API

// Host is the scheme/hostname/port/base-path tuple identifying an
// environment.
type Host = endpoint.Host

// Query is one ordered query-string pair.
type Query = endpoint.Query

// Endpoint is a fully resolvable request target.
type Endpoint = endpoint.Endpoint

// BuildURL composes an absolute URL from a host configuration, an API path
// and ordered query parameters. Pure and best-effort: it never fails.
func BuildURL(host *Host, apiPath string, queries []Query) string {
	return endpoint.BuildURL(host, apiPath, queries)
}

// MockEntry maps an API path to a local fixture file.
type MockEntry = mock.Entry

// Error is the typed error returned by every network operation.
type Error = neterr.Error

// Kind classifies a network outcome.
type Kind = neterr.Kind

const (
	KindNoNetwork      = neterr.KindNoNetwork
	KindTransport      = neterr.KindTransport
	KindDecoding       = neterr.KindDecoding
	KindServer         = neterr.KindServer
	KindMockUnresolved = neterr.KindMockUnresolved
)

// Sentinels for errors.Is matching by kind.
var (
	ErrNoNetwork      = neterr.ErrNoNetwork
	ErrTransport      = neterr.ErrTransport
	ErrDecoding       = neterr.ErrDecoding
	ErrServer         = neterr.ErrServer
	ErrMockUnresolved = neterr.ErrMockUnresolved
)

// Logger is the structured logger shared across components.
type Logger = common.Logger

// NewLogger creates a text logger at the given level ("error", "warn",
// "info", "debug").
func NewLogger(level string) *Logger {
	return common.NewLogger(common.ParseLogLevel(level))
}

// ClientConfig carries the TLS policy for live execution. Insecure enables
// trust-all verification skipping and must be set explicitly; it is never
// the default.
type ClientConfig = httpc.Httpc

// Network is the capability contract both client implementations satisfy.
// A process typically holds one long-lived Network per environment;
// implementations are safe for concurrent use without external locking.
type Network interface {
	// Get returns the response body bytes for any 2xx status; a non-2xx
	// status fails with a server error carrying the body bytes, and a
	// transport-level failure (including cancellation and timeout) fails
	// with a transport failure.
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)
	// Post behaves like Get with the body bytes attached to the request.
	Post(ctx context.Context, url string, headers map[string]string, body []byte) ([]byte, error)
	// Ping issues a HEAD reachability probe. Every failure mode, transport
	// or non-2xx alike, narrows to a no-network error.
	Ping(ctx context.Context, url string) error
	// LoadLocalFixture reads a named local fixture file.
	LoadLocalFixture(name, root string) ([]byte, error)
}

// Options configures New. Environment-style channels (mock flag, mapper,
// override lookup) are inputs captured once at the process boundary, not
// ambient state read inside the core.
type Options struct {
	// Host is the static host configuration handed to the live executor.
	Host Host
	// Client is the TLS policy for live execution.
	Client ClientConfig
	// FixtureRoot is the default directory for fixture loading.
	FixtureRoot string
	// Logger defaults to the package-level logger when nil.
	Logger *Logger

	// MockMode mirrors the runtime "mock" flag. Honored only when the
	// binary is built without the release tag.
	MockMode bool
	// MockMapper is a base64-encoded JSON array of mock entries, typically
	// sourced from an environment variable. A value that fails to decode
	// is treated as absent.
	MockMapper string
	// MockEntries is an explicit caller-supplied fixture mapping,
	// consulted when the mapper channel yields nothing.
	MockEntries []MockEntry
	// LookupEnv is the override channel: a key/value source whose keys are
	// exact request paths and values fixture names. Typically
	// os.LookupEnv, captured at the boundary.
	LookupEnv func(key string) (string, bool)
}

// New produces a single object satisfying the Network contract, chosen
// once at construction:
//
//  1. mock mode flag set and the mapper channel decodes -> mock dispatcher
//     from the decoded entries;
//  2. explicit entry list supplied -> mock dispatcher from it;
//  3. otherwise -> live executor.
//
// Binaries built with the release tag compile both mock paths out and
// always return the live executor.
func New(opts Options) Network {
	logger := opts.Logger
	if logger == nil {
		logger = common.GetLogger()
	}

	if mockSupported {
		if opts.MockMode {
			if entries := decodeMapper(opts.MockMapper); len(entries) > 0 {
				logger.Debug("using mock dispatcher", "source", "mapper", "entries", len(entries))
				return newDispatcher(entries, opts, logger)
			}
		}
		if len(opts.MockEntries) > 0 {
			logger.Debug("using mock dispatcher", "source", "explicit", "entries", len(opts.MockEntries))
			return newDispatcher(opts.MockEntries, opts, logger)
		}
	}

	return executor.New(executor.Config{
		Host:        opts.Host,
		Client:      opts.Client,
		FixtureRoot: opts.FixtureRoot,
		Logger:      logger,
	})
}

func newDispatcher(entries []MockEntry, opts Options, logger *Logger) Network {
	return mock.NewDispatcher(entries,
		mock.WithDefaultRoot(opts.FixtureRoot),
		mock.WithLookup(opts.LookupEnv),
		mock.WithLogger(logger),
	)
}

// PingWait polls n.Ping until the target is reachable or timeout elapses.
// Defaults: timeout 60s, interval 2s. Context cancellation surfaces as a
// transport failure.
func PingWait(ctx context.Context, n Network, url string, timeout, interval time.Duration) error {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	deadline := time.Now().Add(timeout)
	for {
		err := n.Ping(ctx, url)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("ping: timeout waiting for %s: %w", url, err)
		}
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return neterr.Transport(ctx.Err())
		case <-timer.C:
		}
	}
}
