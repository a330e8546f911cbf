package core

// codec.go implements the byte-level primitives every other component in
// this package builds on: URL-safe base64 without padding, the 32-byte
// big-endian "note" encoding used throughout the Merkle tree, and plain
// buffer concatenation.

import "encoding/base64"

// noteSize is the fixed width of a note32-encoded offset.
const noteSize = 32

// b64url encodes b using the URL-safe alphabet with padding stripped, the
// wire format used for every byte-valued field in a format-2 transaction.
func b64url(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// unb64url decodes s, tolerating both padded and unpadded input.
func unb64url(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}

// note32 encodes n as a 32-byte big-endian integer, zero-padded on the left.
// Byte ranges never exceed a payload's size, so a uint64 input comfortably
// fits; note32 only ever sees offsets that originated as chunk boundaries.
func note32(n uint64) []byte {
	buf := make([]byte, noteSize)
	for i := noteSize - 1; n > 0; i-- {
		buf[i] = byte(n & 0xff)
		n >>= 8
	}
	return buf
}

// beUint256 reverses note32: it interprets buf as a big-endian unsigned
// integer. Offsets in this protocol never approach 2^64, so the result is
// returned as a uint64; a proof carrying a value that would overflow is
// rejected by the caller via the normal hash-mismatch path.
func beUint256(buf []byte) uint64 {
	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}
	return v
}

// concat returns the ordered concatenation of bufs.
func concat(bufs ...[]byte) []byte {
	n := 0
	for _, b := range bufs {
		n += len(b)
	}
	out := make([]byte, 0, n)
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out
}
