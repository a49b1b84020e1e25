// Package content holds pure helpers for inspecting file and command output bytes.
package content

// SampleSize is how many leading bytes are scanned for NUL bytes, the same window git uses.
const SampleSize = 8000

// IsBinary reports whether data looks binary: a NUL byte within the first
// SampleSize bytes, unless the data opens with a UTF-16 or UTF-32 byte order mark.
func IsBinary(data []byte) bool {
	if hasWideBOM(data) {
		return false
	}
	n := min(len(data), SampleSize)
	for _, b := range data[:n] {
		if b == 0 {
			return true
		}
	}
	return false
}

func hasWideBOM(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	// FF FE covers UTF-16LE and UTF-32LE, FE FF is UTF-16BE.
	if (data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF) {
		return true
	}
	return len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF
}
