package config

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_FullDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "netkit.yaml", `
host:
  secure: true
  name: api.example.com
  port: 8443
  base_path: /v1
client:
  insecure: true
  min_tls_version: "1.2"
logging:
  level: debug
  format: json
mock:
  enabled: true
  fixture_root: fixtures
  entries:
    - path: /v1/users
      fixture: users
history:
  type: postgres
  postgres:
    dsn: postgres://localhost/netkit
ping:
  timeout: 30s
  interval: 500ms
`)

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Host.Name != "api.example.com" || d.Host.Port != 8443 || d.Host.BasePath != "/v1" || !d.Host.Secure {
		t.Fatalf("host mis-decoded: %+v", d.Host)
	}
	if !d.Client.Insecure || d.Client.MinTLSVersion != "1.2" {
		t.Fatalf("client mis-decoded: %+v", d.Client)
	}
	if d.Logging.Level != "debug" || d.Logging.Format != "json" {
		t.Fatalf("logging mis-decoded: %+v", d.Logging)
	}
	if !d.Mock.Enabled || len(d.Mock.Entries) != 1 || d.Mock.Entries[0].Fixture != "users" {
		t.Fatalf("mock mis-decoded: %+v", d.Mock)
	}
	if d.History.Type != "postgres" || d.History.Postgres.DSN == "" {
		t.Fatalf("history mis-decoded: %+v", d.History)
	}
	if d.Ping.Timeout != 30*time.Second || d.Ping.Interval != 500*time.Millisecond {
		t.Fatalf("ping durations mis-decoded: %+v", d.Ping)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config must not error: %v", err)
	}
	if d.Mock.Enabled || d.History.Disabled {
		t.Fatalf("expected zero defaults, got %+v", d)
	}
}

func TestLoad_EntriesFileMerged(t *testing.T) {
	dir := t.TempDir()
	entries := writeFile(t, dir, "mocks.yaml", `
- path: /v1/orders
  fixture: orders
- path: /v1/items
  fixture: items
  root: alt
`)
	path := writeFile(t, dir, "netkit.yaml", `
mock:
  enabled: true
  entries:
    - path: /v1/users
      fixture: users
  entries_file: `+entries+`
`)

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(d.Mock.Entries) != 3 {
		t.Fatalf("expected 3 merged entries, got %d", len(d.Mock.Entries))
	}
	if d.Mock.Entries[2].Root != "alt" {
		t.Fatalf("entries file content lost: %+v", d.Mock.Entries)
	}
}

func TestLoadEntriesFile_MappingForm(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mocks.yaml", `
entries:
  - path: /v1/users
    fixture: users
`)
	entries, err := LoadEntriesFile(path)
	if err != nil {
		t.Fatalf("LoadEntriesFile failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "/v1/users" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestClientConfig_ToClientConfig(t *testing.T) {
	cc := ClientConfig{Insecure: true, MinTLSVersion: "tls12", MaxTLSVersion: "1.3"}
	got := cc.ToClientConfig()
	if !got.Insecure {
		t.Fatalf("insecure flag lost")
	}
	if got.MinVersion != tls.VersionTLS12 || got.MaxVersion != tls.VersionTLS13 {
		t.Fatalf("TLS bounds mis-parsed: %+v", got)
	}
}
