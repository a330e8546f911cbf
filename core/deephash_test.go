package core

import (
	"bytes"
	"testing"
)

func TestDeepHashBlobLength(t *testing.T) {
	h := deepHash(Blob("hello"))
	if len(h) != 48 {
		t.Fatalf("deepHash(Blob) length = %d, want 48", len(h))
	}
}

func TestDeepHashDeterministic(t *testing.T) {
	a := deepHash(List{Blob("2"), Blob("owner"), List{Blob("tag"), Blob("value")}})
	b := deepHash(List{Blob("2"), Blob("owner"), List{Blob("tag"), Blob("value")}})
	if !bytes.Equal(a, b) {
		t.Errorf("deepHash is not deterministic for equal inputs")
	}
}

func TestDeepHashDistinguishesShapeFromContent(t *testing.T) {
	// A list of two blobs must not hash the same as a single concatenated
	// blob, even when the raw bytes overlap - the length-prefixed tag
	// binds the structure, not just the bytes.
	flat := deepHash(Blob("ab"))
	nested := deepHash(List{Blob("a"), Blob("b")})
	if bytes.Equal(flat, nested) {
		t.Errorf("deepHash(Blob(\"ab\")) collided with deepHash(List{Blob(\"a\"), Blob(\"b\")})")
	}
}

func TestDeepHashSensitiveToOrder(t *testing.T) {
	ab := deepHash(List{Blob("a"), Blob("b")})
	ba := deepHash(List{Blob("b"), Blob("a")})
	if bytes.Equal(ab, ba) {
		t.Errorf("deepHash(List{a,b}) == deepHash(List{b,a}); list order must matter")
	}
}

func TestDeepHashEmptyBlobAndEmptyList(t *testing.T) {
	empty := deepHash(Blob(nil))
	if len(empty) != 48 {
		t.Fatalf("deepHash(Blob(nil)) length = %d, want 48", len(empty))
	}
	emptyList := deepHash(List{})
	if len(emptyList) != 48 {
		t.Fatalf("deepHash(List{}) length = %d, want 48", len(emptyList))
	}
	if bytes.Equal(empty, emptyList) {
		t.Errorf("deepHash(Blob(nil)) collided with deepHash(List{})")
	}
}
