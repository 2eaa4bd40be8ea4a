package endpoint

import (
	"net/url"
	"strconv"
	"strings"
)

// Host identifies one environment: scheme, hostname, optional port and a
// base path prefixed to every API path. Hosts are plain values constructed
// once per environment (dev/staging/prod) and copied freely.
type Host struct {
	Secure   bool   `yaml:"secure" mapstructure:"secure"`
	Name     string `yaml:"name" mapstructure:"name"`
	Port     int    `yaml:"port" mapstructure:"port"`
	BasePath string `yaml:"base_path" mapstructure:"base_path"`
}

// Default is applied whenever an Endpoint carries no host configuration,
// so endpoint construction never fails.
var Default = Host{Secure: true, Name: "localhost"}

// Scheme returns https for secure hosts and http otherwise.
func (h Host) Scheme() string {
	if h.Secure {
		return "https"
	}
	return "http"
}

// Origin returns scheme://name[:port] without any path.
func (h Host) Origin() string {
	var b strings.Builder
	b.WriteString(h.Scheme())
	b.WriteString("://")
	b.WriteString(h.Name)
	if h.Port > 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(h.Port))
	}
	return b.String()
}

// Query is one name/value pair. Endpoint queries are an ordered list:
// duplicate names are permitted and preserved in order, matching standard
// query-string semantics.
type Query struct {
	Name  string `yaml:"name" mapstructure:"name"`
	Value string `yaml:"value" mapstructure:"value"`
}

// Endpoint is a single resolvable request target. A nil Host falls back to
// Default. URL assembly is best-effort and pure: malformed inputs degrade
// to whatever string they compose, they never raise.
type Endpoint struct {
	Host    *Host
	Path    string
	Queries []Query
}

// URL combines scheme + host + optional port + base path + api path + the
// encoded query string into one absolute URL.
func (e Endpoint) URL() string {
	return BuildURL(e.Host, e.Path, e.Queries)
}

// BuildURL is the pure assembly function behind Endpoint.URL.
func BuildURL(host *Host, apiPath string, queries []Query) string {
	h := Default
	if host != nil {
		h = *host
	}

	var b strings.Builder
	b.WriteString(h.Origin())
	b.WriteString(joinPath(h.BasePath, apiPath))

	for i, q := range queries {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(q.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.Value))
	}
	return b.String()
}

// joinPath joins the host base path and the api path with exactly one
// slash between non-empty segments. An empty api path yields the base
// path alone.
func joinPath(base, api string) string {
	base = strings.TrimSuffix(base, "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if api == "" {
		return base
	}
	if !strings.HasPrefix(api, "/") {
		api = "/" + api
	}
	return base + api
}
