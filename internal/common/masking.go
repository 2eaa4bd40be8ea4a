package common

import "strings"

// sensitiveHeaders lists header names whose values must never reach logs.
// Matching is case-insensitive.
var sensitiveHeaders = []string{
	"authorization",
	"proxy-authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
	"x-auth-token",
}

const maskedValue = "***"

// IsSensitiveHeader reports whether the header name carries credentials.
func IsSensitiveHeader(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range sensitiveHeaders {
		if n == s {
			return true
		}
	}
	return false
}

// MaskHeaders returns a copy of headers with sensitive values replaced by
// a fixed marker, suitable for logging. The input map is never mutated.
func MaskHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		if IsSensitiveHeader(k) {
			out[k] = maskedValue
		} else {
			out[k] = v
		}
	}
	return out
}
