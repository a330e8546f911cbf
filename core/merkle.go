package core

// merkle.go builds the binary Merkle tree over a chunk set (spec §4.4):
// leaf/branch hashing, data_root derivation, per-chunk inclusion proofs,
// and the path validator used both locally (before uploading a chunk) and
// conceptually by the network.
//
// Nodes form a read-only DAG rooted at a single node once built; branches
// own their children. There are no cycles, so plain pointers are fine here
// (a linear arena is unnecessary at this scale).

import (
	"crypto/sha256"
	"errors"
)

// NodeKind distinguishes leaf and branch nodes. It is a small sum type
// rather than interface-based dynamic dispatch, since exactly two variants
// exist and the capability set (id, max byte range) is shared.
type NodeKind int

const (
	KindLeaf NodeKind = iota
	KindBranch
)

// Node is a Merkle tree node. For a leaf, DataHash is populated and Left/
// Right are nil. For a branch, Left and Right are populated and ByteRange
// holds the left child's MaxByteRange.
type Node struct {
	Kind         NodeKind
	ID           [32]byte
	ByteRange    uint64
	MaxByteRange uint64
	DataHash     [32]byte
	Left         *Node
	Right        *Node
}

// Proof is a chunk's inclusion witness: the byte offset it covers and the
// concatenated branch/leaf frames that let a verifier recompute data_root.
type Proof struct {
	Offset uint64
	Path   []byte
}

// MerkleTree is the result of building a tree over a payload's chunks.
type MerkleTree struct {
	Root     *Node   // nil when there are zero chunks
	Chunks   []Chunk // trailing zero-length chunk already dropped
	Proofs   []Proof // same order as Chunks
	DataRoot []byte  // empty when Root is nil
}

func hashPair(parts ...[]byte) [32]byte {
	hashed := make([][]byte, len(parts))
	for i, p := range parts {
		h := sha256.Sum256(p)
		hashed[i] = h[:]
	}
	return sha256.Sum256(concat(hashed...))
}

func newLeaf(c Chunk) *Node {
	return &Node{
		Kind:         KindLeaf,
		MaxByteRange: c.MaxByteRange,
		DataHash:     c.DataHash,
		ID:           hashPair(c.DataHash[:], note32(c.MaxByteRange)),
	}
}

// hashBranch combines left and right into a branch node. If right is nil
// (an odd trailing node), left is promoted unchanged per spec §4.4.
func hashBranch(left, right *Node) *Node {
	if right == nil {
		return left
	}
	return &Node{
		Kind:         KindBranch,
		ByteRange:    left.MaxByteRange,
		MaxByteRange: right.MaxByteRange,
		ID:           hashPair(left.ID[:], right.ID[:], note32(left.MaxByteRange)),
		Left:         left,
		Right:        right,
	}
}

func buildLayers(nodes []*Node) *Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	next := make([]*Node, 0, (len(nodes)+1)/2)
	for i := 0; i < len(nodes); i += 2 {
		if i+1 < len(nodes) {
			next = append(next, hashBranch(nodes[i], nodes[i+1]))
		} else {
			next = append(next, nodes[i])
		}
	}
	return buildLayers(next)
}

// generateProofs walks the tree depth-first, accumulating the partial proof
// buffer, and emits one Proof per leaf in left-to-right (byte-range) order.
func generateProofs(root *Node) []Proof {
	var proofs []Proof
	var walk func(n *Node, prefix []byte)
	walk = func(n *Node, prefix []byte) {
		if n.Kind == KindLeaf {
			proofs = append(proofs, Proof{
				Offset: n.MaxByteRange - 1,
				Path:   concat(prefix, n.DataHash[:], note32(n.MaxByteRange)),
			})
			return
		}
		partial := concat(prefix, n.Left.ID[:], n.Right.ID[:], note32(n.ByteRange))
		walk(n.Left, partial)
		walk(n.Right, partial)
	}
	walk(root, nil)
	return proofs
}

// buildMerkleTree computes data_root and per-chunk proofs over chunks.
func buildMerkleTree(chunks []Chunk) *MerkleTree {
	if len(chunks) == 0 {
		return &MerkleTree{Chunks: chunks}
	}

	leaves := make([]*Node, len(chunks))
	for i, c := range chunks {
		leaves[i] = newLeaf(c)
	}
	root := buildLayers(leaves)

	return &MerkleTree{
		Root:     root,
		Chunks:   chunks,
		Proofs:   generateProofs(root),
		DataRoot: root.ID[:],
	}
}

// ValidatedPath is the successful result of validatePath.
type ValidatedPath struct {
	Offset     uint64
	LeftBound  uint64
	RightBound uint64
	ChunkSize  uint64
}

// ErrInvalidProof is returned by validatePath when path fails to verify
// against rootID at any step of the descent.
var ErrInvalidProof = errors.New("merkle: invalid proof")

// validatePath implements spec §4.4's validate_path: it verifies that path
// witnesses inclusion of a chunk at dest under rootID, within
// [leftBound, rightBound), and returns the chunk's resolved offset/size.
func validatePath(rootID []byte, dest int64, leftBound, rightBound int64, path []byte) (*ValidatedPath, error) {
	if rightBound < 0 {
		return nil, ErrInvalidProof
	}
	if dest > rightBound {
		return validatePath(rootID, 0, rightBound-1, rightBound, path)
	}
	if dest < 0 {
		return validatePath(rootID, 0, 0, rightBound, path)
	}

	if len(path) == 32+noteSize {
		dataHash := path[:32]
		endOffsetBuf := path[32 : 32+noteSize]

		h := hashPair(dataHash, endOffsetBuf)
		if !bytesEqual(h[:], rootID) {
			return nil, ErrInvalidProof
		}
		return &ValidatedPath{
			Offset:     uint64(rightBound) - 1,
			LeftBound:  uint64(leftBound),
			RightBound: uint64(rightBound),
			ChunkSize:  uint64(rightBound - leftBound),
		}, nil
	}

	if len(path) < 32+32+noteSize {
		return nil, ErrInvalidProof
	}

	left := path[0:32]
	right := path[32:64]
	offsetBuf := path[64 : 64+noteSize]
	remainder := path[64+noteSize:]

	offset := int64(beUint256(offsetBuf))

	h := hashPair(left, right, offsetBuf)
	if !bytesEqual(h[:], rootID) {
		return nil, ErrInvalidProof
	}

	if dest < offset {
		newRight := rightBound
		if offset < newRight {
			newRight = offset
		}
		return validatePath(left, dest, leftBound, newRight, remainder)
	}

	newLeft := leftBound
	if offset > newLeft {
		newLeft = offset
	}
	return validatePath(right, dest, newLeft, rightBound, remainder)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
