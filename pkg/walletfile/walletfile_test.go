package walletfile

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func marshalJWK(t *testing.T, key *rsa.PrivateKey) []byte {
	t.Helper()
	key.Precompute()
	enc := func(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }
	eBytes := []byte{1, 0, 1} // 65537, matches rsa.GenerateKey's default public exponent
	raw := jwk{
		KeyType: "RSA",
		N:       enc(key.PublicKey.N.Bytes()),
		E:       enc(eBytes),
		D:       enc(key.D.Bytes()),
		P:       enc(key.Primes[0].Bytes()),
		Q:       enc(key.Primes[1].Bytes()),
	}
	out, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal jwk: %v", err)
	}
	return out
}

func TestParseValidJWK(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	raw := marshalJWK(t, key)

	parsed, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.PublicKey.N.Cmp(key.PublicKey.N) != 0 {
		t.Errorf("parsed modulus does not match original")
	}
	if parsed.PublicKey.E != key.PublicKey.E {
		t.Errorf("parsed exponent = %d, want %d", parsed.PublicKey.E, key.PublicKey.E)
	}
}

func TestParseRejectsWrongKeyType(t *testing.T) {
	_, err := Parse([]byte(`{"kty":"EC","n":"","e":""}`))
	if err == nil {
		t.Errorf("expected an error for a non-RSA kty")
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Errorf("expected an error for malformed JSON")
	}
}

func TestLoadReadsFromDisk(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	raw := marshalJWK(t, key)

	path := filepath.Join(t.TempDir(), "wallet.json")
	if err := os.WriteFile(path, raw, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	parsed, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if parsed.PublicKey.N.Cmp(key.PublicKey.N) != 0 {
		t.Errorf("loaded modulus does not match original")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("expected an error for a missing wallet file")
	}
}
