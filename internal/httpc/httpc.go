package httpc

import (
	"crypto/tls"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Httpc builds the per-call resty client used by the live executor. Every
// call gets a fresh client with no response cache and no credential reuse,
// so one Httpc value can be shared across concurrent callers.
//
// Insecure skips certificate verification entirely (trust-all). It is an
// explicit opt-in for controlled/internal endpoints only; the default is
// standard verification.
type Httpc struct {
	Insecure   bool
	MinVersion uint16
	MaxVersion uint16
}

// New returns a resty.Client configured according to the receiver's TLS
// settings. Defaults: MinVersion TLS1.3 when a TLS config is applied and
// no minimum is set; a fully zero receiver returns a stock client.
func (h Httpc) New() *resty.Client {
	c := resty.New()
	if !h.Insecure && h.MinVersion == 0 && h.MaxVersion == 0 {
		return c
	}
	cfg := &tls.Config{MinVersion: h.MinVersion, MaxVersion: h.MaxVersion}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS13
	}
	if h.Insecure {
		// #nosec G402 -- trust-all is an explicit configuration choice for internal hosts
		cfg.InsecureSkipVerify = true
		if h.MinVersion == 0 {
			cfg.MinVersion = tls.VersionTLS12
		}
	}
	c.SetTLSClientConfig(cfg)
	return c
}

// ParseTLSVersion converts a TLS version string to the corresponding
// crypto/tls constant. Supports various formats: "1.2", "12", "tls1.2",
// "tls12", etc. Returns 0 if the version string is not recognized.
func ParseTLSVersion(version string) uint16 {
	switch strings.TrimSpace(strings.ToLower(version)) {
	case "1.0", "10", "tls1.0", "tls10":
		return tls.VersionTLS10
	case "1.1", "11", "tls1.1", "tls11":
		return tls.VersionTLS11
	case "1.2", "12", "tls1.2", "tls12":
		return tls.VersionTLS12
	case "1.3", "13", "tls1.3", "tls13":
		return tls.VersionTLS13
	default:
		return 0
	}
}
