// Package config loads the netkit CLI configuration file and turns it
// into the options the library factory expects.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/harborlab/netkit"
	"github.com/harborlab/netkit/internal/httpc"
	"github.com/harborlab/netkit/internal/mock"
)

// ClientConfig is the TLS policy section. Version strings accept the same
// formats as httpc.ParseTLSVersion ("1.2", "tls12", ...).
type ClientConfig struct {
	Insecure      bool   `mapstructure:"insecure" yaml:"insecure"`
	MinTLSVersion string `mapstructure:"min_tls_version" yaml:"min_tls_version"`
	MaxTLSVersion string `mapstructure:"max_tls_version" yaml:"max_tls_version"`
}

// ToClientConfig parses the version strings into the library's TLS policy.
func (c ClientConfig) ToClientConfig() netkit.ClientConfig {
	return netkit.ClientConfig{
		Insecure:   c.Insecure,
		MinVersion: httpc.ParseTLSVersion(c.MinTLSVersion),
		MaxVersion: httpc.ParseTLSVersion(c.MaxTLSVersion),
	}
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // error, warn, info, debug
	Format string `mapstructure:"format" yaml:"format"` // text, json
}

// MockConfig declares fixture mappings for mock mode. Entries may be given
// inline or in a separate YAML file.
type MockConfig struct {
	Enabled     bool         `mapstructure:"enabled" yaml:"enabled"`
	FixtureRoot string       `mapstructure:"fixture_root" yaml:"fixture_root"`
	Entries     []mock.Entry `mapstructure:"entries" yaml:"entries"`
	EntriesFile string       `mapstructure:"entries_file" yaml:"entries_file"`
}

// SQLiteConfig locates the sqlite history database file.
type SQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// PostgresConfig carries the pgx DSN for a postgres-backed history.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

// HistoryConfig selects and configures the request history store.
type HistoryConfig struct {
	Disabled bool           `mapstructure:"disabled" yaml:"disabled"`
	Type     string         `mapstructure:"type" yaml:"type"` // sqlite (default), postgres
	SQLite   SQLiteConfig   `mapstructure:"sqlite" yaml:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
}

// PingConfig sets defaults for the polling ping ("wait") mode.
type PingConfig struct {
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// Doc is the full configuration document.
type Doc struct {
	Host    netkit.Host   `mapstructure:"host" yaml:"host"`
	Client  ClientConfig  `mapstructure:"client" yaml:"client"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Mock    MockConfig    `mapstructure:"mock" yaml:"mock"`
	History HistoryConfig `mapstructure:"history" yaml:"history"`
	Ping    PingConfig    `mapstructure:"ping" yaml:"ping"`
}

// Load reads the YAML config at path. A missing file is not an error: the
// zero Doc (default host, no mocks, sqlite history) is returned so the CLI
// works without any config at all.
func Load(path string) (*Doc, error) {
	var d Doc
	if path == "" {
		return &d, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &d, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&d, hook); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if d.Mock.EntriesFile != "" {
		entries, err := LoadEntriesFile(d.Mock.EntriesFile)
		if err != nil {
			return nil, err
		}
		d.Mock.Entries = append(d.Mock.Entries, entries...)
	}
	return &d, nil
}

// LoadEntriesFile reads mock entries from a standalone YAML file holding
// either a bare list or a mapping with an "entries" key.
func LoadEntriesFile(path string) ([]mock.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read mock entries %s: %w", path, err)
	}
	var bare []mock.Entry
	if err := yaml.Unmarshal(data, &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}
	var doc struct {
		Entries []mock.Entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: decode mock entries %s: %w", path, err)
	}
	return doc.Entries, nil
}
