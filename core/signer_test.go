package core

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"testing"
)

func testWallet(t *testing.T) *Wallet {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	return NewWallet(key)
}

func TestSignTransactionProducesVerifiableSignature(t *testing.T) {
	wallet := testWallet(t)
	tx, err := NewTransaction(wallet, Options{Data: []byte("hello, permanent web")}, "some-anchor")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	tx.Reward = "12345"

	if err := tx.Sign(nil); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	sig, err := unb64url(tx.Signature)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}

	preImage := deepHash(deepHashList(tx))
	digest := sha256.Sum256(preImage)
	if err := rsa.VerifyPSS(&wallet.Key.PublicKey, crypto.SHA256, digest[:], sig, pssOptions()); err != nil {
		t.Errorf("signature does not verify against the deep-hash pre-image: %v", err)
	}

	idHash := sha256.Sum256(sig)
	wantID := b64url(idHash[:])
	if tx.ID != wantID {
		t.Errorf("tx.ID = %q, want %q (b64url(sha256(signature)))", tx.ID, wantID)
	}
}

func TestSignTransactionIsIdempotent(t *testing.T) {
	wallet := testWallet(t)
	tx, err := NewTransaction(wallet, Options{Data: []byte("abc")}, "anchor")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	tx.Reward = "1"

	if err := tx.Sign(nil); err != nil {
		t.Fatalf("first Sign: %v", err)
	}
	firstSig, firstID := tx.Signature, tx.ID

	if err := tx.Sign(nil); err != nil {
		t.Fatalf("second Sign: %v", err)
	}
	if tx.Signature != firstSig || tx.ID != firstID {
		t.Errorf("calling Sign a second time on an already-sealed transaction changed its signature/id")
	}
}

func TestSignTransactionWithoutRewardOrFetcherFails(t *testing.T) {
	wallet := testWallet(t)
	tx, err := NewTransaction(wallet, Options{Data: []byte("abc")}, "anchor")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	if err := tx.Sign(nil); err == nil {
		t.Errorf("Sign with no reward and no PriceFetcher should have failed")
	}
}

type fixedPriceFetcher struct{ winston string }

func (f fixedPriceFetcher) Price(dataSize int64, target string) (string, error) {
	return f.winston, nil
}

func TestSignTransactionFetchesRewardWhenUnset(t *testing.T) {
	wallet := testWallet(t)
	tx, err := NewTransaction(wallet, Options{Data: []byte("abc")}, "anchor")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	if err := tx.Sign(fixedPriceFetcher{winston: "999"}); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if tx.Reward != "999" {
		t.Errorf("tx.Reward = %q, want %q", tx.Reward, "999")
	}
}
