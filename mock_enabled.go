//go:build !release

package netkit

import "github.com/harborlab/netkit/internal/mock"

// mockSupported gates the factory's mock paths. Development builds honor
// the mock flag, the mapper channel and explicit entry lists.
const mockSupported = true

func decodeMapper(s string) []MockEntry {
	return mock.DecodeMapper(s)
}
