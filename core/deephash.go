package core

// deephash.go implements the canonical tagged SHA-384 hash that produces
// the fixed pre-image an RSA-PSS signature covers (spec §4.2). It is the
// only hash primitive in this package operating in SHA-384; everything
// downstream of the chunker/Merkle tree uses SHA-256.

import (
	"crypto/sha512"
	"strconv"
)

// DeepHashable is either a raw byte string or an ordered list of
// DeepHashable values. There is no third variant.
type DeepHashable interface {
	isDeepHashable()
}

// Blob is a DeepHashable leaf: a raw byte string.
type Blob []byte

func (Blob) isDeepHashable() {}

// List is a DeepHashable branch: an ordered sequence of DeepHashable values.
type List []DeepHashable

func (List) isDeepHashable() {}

func sha384(b []byte) []byte {
	sum := sha512.Sum384(b)
	return sum[:]
}

// deepHash computes the canonical SHA-384 deep hash of data, as defined in
// spec §4.2. The result is always 48 bytes.
func deepHash(data DeepHashable) []byte {
	switch v := data.(type) {
	case Blob:
		tag := append([]byte("blob"), []byte(strconv.Itoa(len(v)))...)
		tagged := concat(sha384(tag), sha384(v))
		return sha384(tagged)
	case List:
		tag := append([]byte("list"), []byte(strconv.Itoa(len(v)))...)
		acc := sha384(tag)
		for _, el := range v {
			acc = sha384(concat(acc, deepHash(el)))
		}
		return acc
	default:
		panic("deepHash: unreachable DeepHashable variant")
	}
}
