package neterr

import (
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Kind classifies the outcome of a network operation. The set is closed:
// callers match on kinds, not on message text, so new failure modes must be
// added here deliberately.
type Kind int

const (
	// KindNoNetwork means a connectivity/reachability check failed.
	KindNoNetwork Kind = iota
	// KindTransport means the request could not be completed at all
	// (DNS failure, cancellation, timeout, malformed request).
	KindTransport
	// KindDecoding means a caller-side payload decode failed. The network
	// layer itself never returns this kind; it is part of the shared
	// taxonomy so callers classify decode failures the same way.
	KindDecoding
	// KindServer means an HTTP response was received with a status code
	// outside 200-299. The raw response body is carried for diagnostics.
	KindServer
	// KindMockUnresolved means mock mode was active but no fixture or
	// override matched the requested path.
	KindMockUnresolved
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNoNetwork:
		return "no_network"
	case KindTransport:
		return "transport_failure"
	case KindDecoding:
		return "decoding_failure"
	case KindServer:
		return "server_error"
	case KindMockUnresolved:
		return "mock_unresolved"
	default:
		return "unknown"
	}
}

// Error is the typed error every network operation returns on failure.
// Body is set for KindServer only and holds the raw response payload.
// Cause, when present, wraps the underlying error for errors.Is/As chains.
type Error struct {
	Kind  Kind
	Body  []byte
	Cause error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrNoNetwork      = &Error{Kind: KindNoNetwork}
	ErrTransport      = &Error{Kind: KindTransport}
	ErrDecoding       = &Error{Kind: KindDecoding}
	ErrServer         = &Error{Kind: KindServer}
	ErrMockUnresolved = &Error{Kind: KindMockUnresolved}
)

// NoNetwork reports a failed reachability check.
func NoNetwork() *Error {
	return &Error{Kind: KindNoNetwork}
}

// Transport reports a request that could not be completed, wrapping the
// underlying cause.
func Transport(cause error) *Error {
	return &Error{Kind: KindTransport, Cause: cause}
}

// Decoding reports a caller-side decode failure, wrapping the underlying
// cause.
func Decoding(cause error) *Error {
	return &Error{Kind: KindDecoding, Cause: cause}
}

// Server reports a non-2xx HTTP response, carrying the raw body bytes.
func Server(body []byte) *Error {
	return &Error{Kind: KindServer, Body: body}
}

// MockUnresolved reports that no fixture or override matched the request.
func MockUnresolved() *Error {
	return &Error{Kind: KindMockUnresolved}
}

// Error returns a fixed description per kind. KindServer is the single
// exception: when the carried payload decodes as text it is interpolated,
// otherwise the generic fetch-failed message is used.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNoNetwork:
		return "no network connection"
	case KindTransport:
		return "request could not be completed"
	case KindDecoding:
		return "failed to decode response payload"
	case KindServer:
		return serverMessage(e.Body)
	case KindMockUnresolved:
		return "no mock fixture matched the requested path"
	default:
		return "fetch failed"
	}
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches two taxonomy errors by kind, so callers can branch with
// errors.Is(err, neterr.ErrServer) without caring about carried payloads.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the taxonomy kind from err. ok is false when err is not
// a taxonomy error.
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return 0, false
	}
	for {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
		if err == nil {
			return 0, false
		}
	}
}

// serverMessage extracts a human-readable description from a server error
// payload. Backends commonly embed the detail under "error" or "message";
// failing that, a plain-text payload is used as-is.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return "fetch failed"
	}
	parsed := gjson.ParseBytes(body)
	for _, key := range []string{"error", "message"} {
		if v := parsed.Get(key); v.Exists() && v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	if parsed.Type == gjson.String && parsed.Str != "" {
		return parsed.Str
	}
	if !parsed.IsObject() && !parsed.IsArray() && utf8.Valid(body) {
		return string(body)
	}
	return "fetch failed"
}
