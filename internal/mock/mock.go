// Package mock serves requests from local fixtures instead of the network,
// for deterministic testing and offline development.
package mock

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"

	"github.com/harborlab/netkit/internal/common"
	"github.com/harborlab/netkit/internal/fixture"
	"github.com/harborlab/netkit/internal/neterr"
)

// Entry maps one API path to a local fixture file. Path matching is exact
// string equality, not prefix or pattern match. Root names the directory
// the fixture is loaded from; empty means the dispatcher's default root.
type Entry struct {
	Path    string `json:"path" yaml:"path" mapstructure:"path"`
	Fixture string `json:"fixture" yaml:"fixture" mapstructure:"fixture"`
	Root    string `json:"root,omitempty" yaml:"root" mapstructure:"root"`
}

// DecodeMapper decodes a base64-encoded JSON array of entries, the channel
// integration tests use to inject fixture mappings without code changes.
// Any decode failure is treated as "channel absent" and returns nil.
func DecodeMapper(s string) []Entry {
	if s == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	if len(entries) == 0 {
		return nil
	}
	return entries
}

// EncodeMapper is the inverse of DecodeMapper, used by tests and tooling
// to populate the injection channel.
func EncodeMapper(entries []Entry) (string, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Dispatcher resolves request paths to pre-recorded fixture payloads.
// Resolution precedence: first entry whose path equals the request path,
// then the override lookup keyed by the exact path, then MockUnresolved.
// All state is fixed at construction, so a Dispatcher is safe for
// concurrent use.
type Dispatcher struct {
	entries []Entry
	lookup  func(key string) (string, bool)
	root    string
	pingFn  func(ctx context.Context, url string) error
	logger  *common.Logger
}

// Option configures a Dispatcher at construction time.
type Option func(*Dispatcher)

// WithLookup installs the override channel: a key/value source (typically
// process environment, captured at the boundary) consulted when no entry
// matches. The value is treated as a fixture name in the default root.
func WithLookup(fn func(key string) (string, bool)) Option {
	return func(d *Dispatcher) { d.lookup = fn }
}

// WithDefaultRoot sets the root used for override fixtures and for entries
// that name no root of their own.
func WithDefaultRoot(root string) Option {
	return func(d *Dispatcher) { d.root = root }
}

// WithPing stubs the reachability check. Without a stub, Ping always fails
// with no-network: reachability is not a meaningful mock operation.
func WithPing(fn func(ctx context.Context, url string) error) Option {
	return func(d *Dispatcher) { d.pingFn = fn }
}

// WithLogger sets the dispatcher's logger.
func WithLogger(l *common.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// NewDispatcher builds a Dispatcher over the given entry list. The list is
// held as-is for the dispatcher's lifetime and never mutated.
func NewDispatcher(entries []Entry, opts ...Option) *Dispatcher {
	d := &Dispatcher{entries: entries}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = common.GetLogger()
	}
	d.logger = d.logger.WithComponent("mock-dispatcher")
	return d
}

// Get serves the request path from fixtures. Headers are accepted for
// contract parity and ignored.
func (d *Dispatcher) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	return d.resolve(rawURL)
}

// Post behaves exactly like Get; the body plays no part in resolution.
func (d *Dispatcher) Post(ctx context.Context, rawURL string, headers map[string]string, body []byte) ([]byte, error) {
	return d.resolve(rawURL)
}

// Ping fails with no-network unless explicitly stubbed.
func (d *Dispatcher) Ping(ctx context.Context, rawURL string) error {
	if d.pingFn != nil {
		return d.pingFn(ctx, rawURL)
	}
	return neterr.NoNetwork()
}

// LoadLocalFixture reads a named fixture, from the dispatcher's default
// root when none is given.
func (d *Dispatcher) LoadLocalFixture(name, root string) ([]byte, error) {
	if root == "" {
		root = d.root
	}
	return fixture.Load(name, root)
}

func (d *Dispatcher) resolve(rawURL string) ([]byte, error) {
	p := requestPath(rawURL)

	for _, e := range d.entries {
		if e.Path != p {
			continue
		}
		root := e.Root
		if root == "" {
			root = d.root
		}
		d.logger.Debug("resolved from entry list", "path", p, "fixture", e.Fixture)
		return fixture.Load(e.Fixture, root)
	}

	if d.lookup != nil {
		if name, ok := d.lookup(p); ok && name != "" {
			d.logger.Debug("resolved from override channel", "path", p, "fixture", name)
			return fixture.Load(name, d.root)
		}
	}

	d.logger.Debug("no fixture matched", "path", p)
	return nil, neterr.MockUnresolved()
}

// requestPath extracts the path component of a URL, stripping scheme, host
// and query. Unparseable input degrades to the raw string so matching
// stays possible for plain paths.
func requestPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}
