//go:build release

package netkit

// mockSupported gates the factory's mock paths. Release builds compile
// them out entirely: the factory always returns the live executor and the
// mapper decoder is unreachable.
const mockSupported = false

func decodeMapper(string) []MockEntry {
	return nil
}
