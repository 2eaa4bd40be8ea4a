package mock

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harborlab/netkit/internal/fixture"
	"github.com/harborlab/netkit/internal/neterr"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+fixture.Ext), []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestDispatcher_ResolvesEntryByExactPath(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "users", `[{"id":1}]`)

	d := NewDispatcher(
		[]Entry{{Path: "/v1/users", Fixture: "users"}},
		WithDefaultRoot(dir),
	)

	body, err := d.Get(context.Background(), "https://api.example.com/v1/users?page=2", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != `[{"id":1}]` {
		t.Fatalf("unexpected fixture content: %q", body)
	}

	// prefix is not a match
	if _, err := d.Get(context.Background(), "https://api.example.com/v1/users/1", nil); !errors.Is(err, neterr.ErrMockUnresolved) {
		t.Fatalf("prefix match must not resolve, got %v", err)
	}
}

func TestDispatcher_EntryListWinsOverOverride(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "users", `["entry"]`)
	writeFixture(t, dir, "users_override", `["override"]`)

	d := NewDispatcher(
		[]Entry{{Path: "/v1/users", Fixture: "users"}},
		WithDefaultRoot(dir),
		WithLookup(func(key string) (string, bool) {
			if key == "/v1/users" {
				return "users_override", true
			}
			return "", false
		}),
	)

	body, err := d.Get(context.Background(), "https://x/v1/users", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != `["entry"]` {
		t.Fatalf("entry list must win over override channel, got %q", body)
	}
}

func TestDispatcher_OverrideChannelFallback(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "orders_alt", `["alt"]`)

	d := NewDispatcher(nil,
		WithDefaultRoot(dir),
		WithLookup(func(key string) (string, bool) {
			if key == "/v1/orders" {
				return "orders_alt", true
			}
			return "", false
		}),
	)

	body, err := d.Post(context.Background(), "https://x/v1/orders", nil, []byte(`{"n":1}`))
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if string(body) != `["alt"]` {
		t.Fatalf("unexpected override content: %q", body)
	}
}

func TestDispatcher_EmptyListUnresolved(t *testing.T) {
	d := NewDispatcher(nil)
	_, err := d.Get(context.Background(), "https://x/anything", nil)
	if !errors.Is(err, neterr.ErrMockUnresolved) {
		t.Fatalf("expected mock-unresolved, got %v", err)
	}
	_, err = d.Post(context.Background(), "/other", nil, nil)
	if !errors.Is(err, neterr.ErrMockUnresolved) {
		t.Fatalf("expected mock-unresolved for post, got %v", err)
	}
}

func TestDispatcher_MissingFixtureIsTransportFailure(t *testing.T) {
	d := NewDispatcher(
		[]Entry{{Path: "/v1/users", Fixture: "nope"}},
		WithDefaultRoot(t.TempDir()),
	)
	_, err := d.Get(context.Background(), "https://x/v1/users", nil)
	if !errors.Is(err, neterr.ErrTransport) {
		t.Fatalf("missing fixture must be a transport failure, got %v", err)
	}
}

func TestDispatcher_EntryRootOverridesDefault(t *testing.T) {
	entryRoot := t.TempDir()
	defaultRoot := t.TempDir()
	writeFixture(t, entryRoot, "users", `["from-entry-root"]`)
	writeFixture(t, defaultRoot, "users", `["from-default-root"]`)

	d := NewDispatcher(
		[]Entry{{Path: "/u", Fixture: "users", Root: entryRoot}},
		WithDefaultRoot(defaultRoot),
	)
	body, err := d.Get(context.Background(), "/u", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != `["from-entry-root"]` {
		t.Fatalf("entry root ignored, got %q", body)
	}
}

func TestDispatcher_PingDefaultsToNoNetwork(t *testing.T) {
	d := NewDispatcher(nil)
	if err := d.Ping(context.Background(), "https://x/health"); !errors.Is(err, neterr.ErrNoNetwork) {
		t.Fatalf("expected no-network, got %v", err)
	}
}

func TestDispatcher_PingStub(t *testing.T) {
	d := NewDispatcher(nil, WithPing(func(ctx context.Context, url string) error {
		return nil
	}))
	if err := d.Ping(context.Background(), "https://x/health"); err != nil {
		t.Fatalf("stubbed ping failed: %v", err)
	}
}

func TestDispatcher_LoadLocalFixture(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "blob", `{"a":1}`)

	d := NewDispatcher(nil, WithDefaultRoot(dir))
	body, err := d.LoadLocalFixture("blob", "")
	if err != nil {
		t.Fatalf("LoadLocalFixture failed: %v", err)
	}
	if string(body) != `{"a":1}` {
		t.Fatalf("unexpected content: %q", body)
	}
}

func TestDecodeMapper(t *testing.T) {
	entries := []Entry{
		{Path: "/v1/users", Fixture: "users"},
		{Path: "/v1/orders", Fixture: "orders", Root: "alt"},
	}
	encoded, err := EncodeMapper(entries)
	if err != nil {
		t.Fatalf("EncodeMapper failed: %v", err)
	}

	decoded := DecodeMapper(encoded)
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[0] != entries[0] || decoded[1] != entries[1] {
		t.Fatalf("roundtrip mismatch: %+v", decoded)
	}
}

func TestDecodeMapper_FailuresMeanAbsent(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"not base64":  "%%%not-base64%%%",
		"not json":    base64.StdEncoding.EncodeToString([]byte("not json")),
		"wrong shape": base64.StdEncoding.EncodeToString([]byte(`{"path":"/x"}`)),
		"empty list":  base64.StdEncoding.EncodeToString([]byte(`[]`)),
	}
	for name, in := range cases {
		if got := DecodeMapper(in); got != nil {
			t.Fatalf("%s: expected nil, got %+v", name, got)
		}
	}
}

func TestRequestPath(t *testing.T) {
	cases := map[string]string{
		"https://api.example.com/v1/users?page=2": "/v1/users",
		"http://h:8080/a/b#frag":                  "/a/b",
		"/already/a/path":                         "/already/a/path",
		"https://api.example.com":                 "",
	}
	for in, want := range cases {
		if got := requestPath(in); got != want {
			t.Fatalf("requestPath(%q) = %q, want %q", in, got, want)
		}
	}
}
