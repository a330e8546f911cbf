package core

// transaction.go assembles format-2 transaction fields (spec §4.6): it
// wires the chunker/Merkle tree, deep hash, and signer together and
// serializes the frozen result to the wire JSON shape (spec §6).

import (
	"encoding/json"
	"errors"
	"io"
	"math/big"
)

// Tag is a {name, value} pair. NameRaw/ValueRaw are the pre-encoded bytes
// the signer consumes; their base64url forms (built by wire) are what
// travels on the wire.
type Tag struct {
	NameRaw  []byte
	ValueRaw []byte
}

func (t Tag) wire() wireTag {
	return wireTag{Name: b64url(t.NameRaw), Value: b64url(t.ValueRaw)}
}

type wireTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PayloadSource is a seekable byte stream of known length, the shape the
// chunker and upload engine read payloads from (spec §9, "payload as
// stream").
type PayloadSource interface {
	io.ReaderAt
	Size() int64
}

// Options configures transaction construction (spec §4.6). Exactly one of
// Data or FileSource should be set for a data-bearing transaction; both
// may be empty for a pure value transfer.
type Options struct {
	Data       []byte
	FileSource PayloadSource
	Target     string
	Quantity   string // decimal AR string; converted to winston
	Reward     string // winston string; overrides the fetched price if set
}

// Transaction is a format-2 transaction under construction or already
// signed. All signed fields freeze once Sign succeeds.
type Transaction struct {
	Format   int
	Owner    string
	Target   string
	Quantity string
	Reward   string
	LastTx   string
	Tags     []Tag
	DataSize string
	DataRoot string
	Data     []byte // payload bytes from Options.Data; empty when a FileSource supplies the payload
	ID       string
	Signature string

	ownerRaw []byte
	wallet   *Wallet
	source   PayloadSource
	sealed   bool

	merkle *MerkleTree
}

// NewTransaction builds an unsigned transaction from a wallet, options, and
// the network-supplied anchor (last_tx). Quantity, if non-empty and
// non-zero, must be paired with a non-empty Target.
func NewTransaction(wallet *Wallet, opts Options, lastTx string) (*Transaction, error) {
	quantity := opts.Quantity
	if quantity == "" {
		quantity = "0"
	} else {
		quantity = ArToWinston(quantity)
	}

	if quantity != "0" && opts.Target == "" {
		return nil, ErrInvalidTarget
	}

	tx := &Transaction{
		Format:   2,
		Owner:    wallet.Owner(),
		Target:   opts.Target,
		Quantity: quantity,
		Reward:   opts.Reward,
		LastTx:   lastTx,
		ownerRaw: wallet.OwnerBytes(),
		wallet:   wallet,
	}

	switch {
	case opts.FileSource != nil:
		tx.source = opts.FileSource
	case len(opts.Data) > 0:
		tx.Data = opts.Data
		tx.source = bytesSource(opts.Data)
	default:
		tx.source = bytesSource(nil)
	}

	return tx, nil
}

// bytesSource adapts a byte slice to PayloadSource.
type bytesSource []byte

func (b bytesSource) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b bytesSource) Size() int64 { return int64(len(b)) }

// AddTag appends a tag. It fails with ErrSealed once Sign has succeeded.
func (tx *Transaction) AddTag(name, value string) error {
	if tx.sealed {
		return ErrSealed
	}
	tx.Tags = append(tx.Tags, Tag{NameRaw: []byte(name), ValueRaw: []byte(value)})
	return nil
}

// chunks lazily computes the Merkle tree over tx's payload source.
func (tx *Transaction) chunks() (*MerkleTree, error) {
	if tx.merkle != nil {
		return tx.merkle, nil
	}
	size := tx.source.Size()
	reader := io.NewSectionReader(tx.source, 0, size)
	chunks, err := chunkData(reader)
	if err != nil {
		return nil, err
	}
	tree := buildMerkleTree(chunks)
	tx.merkle = tree
	return tree, nil
}

// PriceFetcher fetches the reward (winston) for a payload of the given
// size, optionally targeted at a specific address.
type PriceFetcher interface {
	Price(dataSize int64, target string) (string, error)
}

// Sign runs spec §4.5: it computes data_root if needed, fetches the reward
// if the caller did not override it, builds the deep-hash pre-image, and
// produces signature/id. It is idempotent once sealed.
func (tx *Transaction) Sign(prices PriceFetcher) error {
	if tx.sealed {
		return nil
	}

	size := tx.source.Size()
	tx.DataSize = big.NewInt(size).String()

	if size > 0 {
		tree, err := tx.chunks()
		if err != nil {
			return err
		}
		tx.DataRoot = b64url(tree.DataRoot)
	} else {
		tx.DataRoot = ""
	}

	if tx.Reward == "" {
		if prices == nil {
			return errors.New("transaction: reward not set and no PriceFetcher provided")
		}
		reward, err := prices.Price(size, tx.Target)
		if err != nil {
			return err
		}
		tx.Reward = reward
	}

	if err := signTransaction(tx, tx.wallet); err != nil {
		return err
	}
	tx.sealed = true
	return nil
}

// wireTransaction is the exact JSON shape of spec §6.
type wireTransaction struct {
	Format    int       `json:"format"`
	ID        string    `json:"id"`
	LastTx    string    `json:"last_tx"`
	Owner     string    `json:"owner"`
	Tags      []wireTag `json:"tags"`
	Target    string    `json:"target"`
	Quantity  string    `json:"quantity"`
	Data      string    `json:"data"`
	DataSize  string    `json:"data_size"`
	DataRoot  string    `json:"data_root"`
	DataTree  []string  `json:"data_tree"`
	Reward    string    `json:"reward"`
	Signature string    `json:"signature"`
}

// ToWire serializes the frozen transaction fields to compact JSON. When
// inline is false, data travels via the upload engine instead and the
// wire "data" field is emitted empty.
func (tx *Transaction) ToWire(inline bool) ([]byte, error) {
	tags := make([]wireTag, len(tx.Tags))
	for i, t := range tx.Tags {
		tags[i] = t.wire()
	}

	data := ""
	if inline {
		if len(tx.Data) > 0 {
			data = b64url(tx.Data)
		} else if size := tx.source.Size(); size > 0 {
			raw := make([]byte, size)
			if _, err := tx.source.ReadAt(raw, 0); err != nil {
				return nil, err
			}
			data = b64url(raw)
		}
	}

	w := wireTransaction{
		Format:    tx.Format,
		ID:        tx.ID,
		LastTx:    tx.LastTx,
		Owner:     tx.Owner,
		Tags:      tags,
		Target:    tx.Target,
		Quantity:  tx.Quantity,
		Data:      data,
		DataSize:  tx.DataSize,
		DataRoot:  tx.DataRoot,
		DataTree:  []string{},
		Reward:    tx.Reward,
		Signature: tx.Signature,
	}
	return json.Marshal(w)
}

// TotalChunks returns the number of chunks computed for this transaction's
// payload. Sign must have run first.
func (tx *Transaction) TotalChunks() int {
	if tx.merkle == nil {
		return 0
	}
	return len(tx.merkle.Chunks)
}
