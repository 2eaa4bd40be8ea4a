package httpc

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseTLSVersion(t *testing.T) {
	cases := map[string]uint16{
		"1.0":    tls.VersionTLS10,
		"tls10":  tls.VersionTLS10,
		"1.1":    tls.VersionTLS11,
		"TLS1.2": tls.VersionTLS12,
		"12":     tls.VersionTLS12,
		" 1.3 ":  tls.VersionTLS13,
		"tls13":  tls.VersionTLS13,
		"":       0,
		"ssl3":   0,
		"2.0":    0,
	}
	for in, want := range cases {
		if got := ParseTLSVersion(in); got != want {
			t.Fatalf("ParseTLSVersion(%q) = %#x, want %#x", in, got, want)
		}
	}
}

func TestNew_ZeroValueReturnsStockClient(t *testing.T) {
	c := Httpc{}.New()
	tr, _ := c.GetClient().Transport.(*http.Transport)
	if tr != nil && tr.TLSClientConfig != nil && tr.TLSClientConfig.InsecureSkipVerify {
		t.Fatalf("zero-value Httpc must not skip verification")
	}
}

func TestNew_InsecureAllowsSelfSigned(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// default should fail against the self-signed certificate
	if _, err := (Httpc{}).New().R().Get(srv.URL); err == nil {
		t.Fatalf("expected certificate error without Insecure, got nil")
	}

	resp, err := Httpc{Insecure: true}.New().R().Get(srv.URL)
	if err != nil {
		t.Fatalf("insecure get failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode())
	}
}

func TestNew_MinVersionDefaultsToTLS13(t *testing.T) {
	c := Httpc{MaxVersion: tls.VersionTLS13}.New()
	tr, _ := c.GetClient().Transport.(*http.Transport)
	if tr == nil || tr.TLSClientConfig == nil {
		t.Fatalf("expected a TLS config to be applied")
	}
	if tr.TLSClientConfig.MinVersion != tls.VersionTLS13 {
		t.Fatalf("expected default MinVersion TLS1.3, got %#x", tr.TLSClientConfig.MinVersion)
	}
}

func TestNew_ExplicitVersionsApplied(t *testing.T) {
	c := Httpc{MinVersion: tls.VersionTLS12, MaxVersion: tls.VersionTLS13}.New()
	tr, _ := c.GetClient().Transport.(*http.Transport)
	if tr == nil || tr.TLSClientConfig == nil {
		t.Fatalf("expected a TLS config to be applied")
	}
	if tr.TLSClientConfig.MinVersion != tls.VersionTLS12 || tr.TLSClientConfig.MaxVersion != tls.VersionTLS13 {
		t.Fatalf("unexpected TLS bounds: min=%#x max=%#x",
			tr.TLSClientConfig.MinVersion, tr.TLSClientConfig.MaxVersion)
	}
}
