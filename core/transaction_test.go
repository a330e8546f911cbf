package core

import (
	"encoding/json"
	"testing"
)

func TestNewTransactionRequiresTargetForQuantity(t *testing.T) {
	wallet := testWallet(t)
	_, err := NewTransaction(wallet, Options{Quantity: "1.5"}, "anchor")
	if err != ErrInvalidTarget {
		t.Errorf("got err %v, want ErrInvalidTarget", err)
	}

	tx, err := NewTransaction(wallet, Options{Quantity: "1.5", Target: "some-address"}, "anchor")
	if err != nil {
		t.Fatalf("NewTransaction with target: %v", err)
	}
	if tx.Quantity != "1500000000000" {
		t.Errorf("tx.Quantity = %q, want %q", tx.Quantity, "1500000000000")
	}
}

func TestNewTransactionDefaultsQuantityToZero(t *testing.T) {
	wallet := testWallet(t)
	tx, err := NewTransaction(wallet, Options{}, "anchor")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	if tx.Quantity != "0" {
		t.Errorf("tx.Quantity = %q, want 0", tx.Quantity)
	}
}

func TestAddTagFailsAfterSign(t *testing.T) {
	wallet := testWallet(t)
	tx, err := NewTransaction(wallet, Options{Data: []byte("x")}, "anchor")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	if err := tx.AddTag("Content-Type", "text/plain"); err != nil {
		t.Fatalf("AddTag before sign: %v", err)
	}
	tx.Reward = "1"
	if err := tx.Sign(nil); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := tx.AddTag("too", "late"); err != ErrSealed {
		t.Errorf("AddTag after sign: got err %v, want ErrSealed", err)
	}
}

func TestToWireInlinesSmallPayload(t *testing.T) {
	wallet := testWallet(t)
	payload := []byte("small enough to fit in one chunk")
	tx, err := NewTransaction(wallet, Options{Data: payload}, "anchor")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	tx.Reward = "1"
	if err := tx.Sign(nil); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	raw, err := tx.ToWire(true)
	if err != nil {
		t.Fatalf("ToWire: %v", err)
	}
	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal wire json: %v", err)
	}
	data, _ := wire["data"].(string)
	decoded, err := unb64url(data)
	if err != nil {
		t.Fatalf("decode inlined data: %v", err)
	}
	if string(decoded) != string(payload) {
		t.Errorf("inlined data = %q, want %q", decoded, payload)
	}
}

func TestToWireOmitsDataWhenNotInline(t *testing.T) {
	wallet := testWallet(t)
	tx, err := NewTransaction(wallet, Options{Data: []byte("payload")}, "anchor")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	tx.Reward = "1"
	if err := tx.Sign(nil); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	raw, err := tx.ToWire(false)
	if err != nil {
		t.Fatalf("ToWire: %v", err)
	}
	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal wire json: %v", err)
	}
	if data, _ := wire["data"].(string); data != "" {
		t.Errorf("non-inline ToWire emitted data %q, want empty", data)
	}
}

func TestTotalChunksMatchesMerkleTree(t *testing.T) {
	wallet := testWallet(t)
	payload := make([]byte, MaxChunkSize*3+1)
	tx, err := NewTransaction(wallet, Options{Data: payload}, "anchor")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	tx.Reward = "1"
	if err := tx.Sign(nil); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if tx.TotalChunks() != 4 {
		t.Errorf("TotalChunks() = %d, want 4", tx.TotalChunks())
	}
}
