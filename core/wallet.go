package core

// wallet.go holds the RSA wallet key and address derivation (spec §3).
//
// Import hygiene: wallet depends only on crypto/rsa primitives and the
// byte codec. It does not know about transactions, chunking, or the
// network adapter.

import (
	"crypto/rsa"
	"crypto/sha256"
	log "github.com/sirupsen/logrus"
)

// SetLogger replaces the package-level logger. The default is a fresh
// logrus logger (stderr, info level). The upload engine does not write
// through this logger: its log lines go to logrus's standard logger.
func SetLogger(l *log.Logger) { logger = l }

var logger = log.New()

// Wallet wraps an RSA key pair. The public modulus, URL-safe base64
// encoded, serves as the "owner" field of every transaction it signs.
type Wallet struct {
	Key *rsa.PrivateKey
}

// NewWallet wraps an already-parsed RSA private key. Loading the key from
// an Arweave-style JWK file is the caller's concern (pkg/walletfile);
// the core only needs the parsed key material.
func NewWallet(key *rsa.PrivateKey) *Wallet {
	return &Wallet{Key: key}
}

// OwnerBytes returns the raw big-endian bytes of the RSA public modulus.
func (w *Wallet) OwnerBytes() []byte {
	return w.Key.PublicKey.N.Bytes()
}

// Owner returns the URL-safe base64 encoding of the public modulus, the
// wire value of a transaction's owner field.
func (w *Wallet) Owner() string {
	return b64url(w.OwnerBytes())
}

// Address returns b64url(sha256(raw_bytes(n))), the wallet's address.
func (w *Wallet) Address() string {
	sum := sha256.Sum256(w.OwnerBytes())
	return b64url(sum[:])
}

// AddressFromOwner derives an address directly from a base64url-encoded
// owner modulus, per spec §6 ("Wallet address derivation").
func AddressFromOwner(ownerB64 string) (string, error) {
	raw, err := unb64url(ownerB64)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return b64url(sum[:]), nil
}
