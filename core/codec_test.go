package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestB64URLRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("test"),
		bytes.Repeat([]byte{0xff, 0x00, 0x7e}, 37),
	}
	for _, b := range cases {
		enc := b64url(b)
		if strings.ContainsAny(enc, "+/=") {
			t.Errorf("b64url(%x) = %q contains a disallowed character", b, enc)
		}
		dec, err := unb64url(enc)
		if err != nil {
			t.Fatalf("unb64url(%q): %v", enc, err)
		}
		if !bytes.Equal(dec, b) {
			t.Errorf("round trip mismatch: got %x want %x", dec, b)
		}
	}
}

func TestNote32(t *testing.T) {
	cases := []uint64{0, 1, 255, 256, 262144, 300000, 1 << 32}
	for _, n := range cases {
		buf := note32(n)
		if len(buf) != 32 {
			t.Fatalf("note32(%d) length = %d, want 32", n, len(buf))
		}
		if got := beUint256(buf); got != n {
			t.Errorf("beUint256(note32(%d)) = %d", n, got)
		}
		for _, b := range buf[:len(buf)-8] {
			if b != 0 && n < 1<<56 {
				t.Errorf("note32(%d) has unexpected non-zero leading byte", n)
				break
			}
		}
	}
}

func TestConcat(t *testing.T) {
	got := concat([]byte("ab"), nil, []byte("cd"), []byte(""))
	if string(got) != "abcd" {
		t.Errorf("concat = %q, want %q", got, "abcd")
	}
}
