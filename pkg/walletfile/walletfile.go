// Package walletfile loads an Arweave-style RSA wallet JWK file into a
// crypto/rsa private key. Wallet-file loading sits outside the core's
// specified budget (spec.md §1 treats it as an external collaborator), but
// the CLI and integration tests both need a concrete way to get a key off
// disk, so it lives here rather than inside core.
package walletfile

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
)

// jwk mirrors the RSA private key fields of an Arweave wallet file
// (RFC 7518 §6.3), all base64url-without-padding big-endian integers.
type jwk struct {
	KeyType string `json:"kty"`
	N       string `json:"n"`
	E       string `json:"e"`
	D       string `json:"d"`
	P       string `json:"p"`
	Q       string `json:"q"`
	DP      string `json:"dp"`
	DQ      string `json:"dq"`
	QI      string `json:"qi"`
}

// Load reads and parses the wallet JSON file at path.
func Load(path string) (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("walletfile: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes raw JWK JSON bytes into an RSA private key.
func Parse(raw []byte) (*rsa.PrivateKey, error) {
	var k jwk
	if err := json.Unmarshal(raw, &k); err != nil {
		return nil, fmt.Errorf("walletfile: decode json: %w", err)
	}
	if k.KeyType != "" && k.KeyType != "RSA" {
		return nil, fmt.Errorf("walletfile: unsupported kty %q", k.KeyType)
	}

	n, err := decodeBigInt(k.N)
	if err != nil {
		return nil, fmt.Errorf("walletfile: n: %w", err)
	}
	e, err := decodeBigInt(k.E)
	if err != nil {
		return nil, fmt.Errorf("walletfile: e: %w", err)
	}
	d, err := decodeBigInt(k.D)
	if err != nil {
		return nil, fmt.Errorf("walletfile: d: %w", err)
	}
	p, err := decodeBigInt(k.P)
	if err != nil {
		return nil, fmt.Errorf("walletfile: p: %w", err)
	}
	q, err := decodeBigInt(k.Q)
	if err != nil {
		return nil, fmt.Errorf("walletfile: q: %w", err)
	}

	key := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: n, E: int(e.Int64())},
		D:         d,
		Primes:    []*big.Int{p, q},
	}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("walletfile: invalid key: %w", err)
	}
	key.Precompute()
	return key, nil
}

func decodeBigInt(s string) (*big.Int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}
