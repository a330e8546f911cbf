package core

// chunk.go implements the fixed-size chunker (spec §4.3): a payload is read
// from a seekable stream of known length in 256 KiB pieces, each tagged
// with its SHA-256 hash and byte range.

import (
	"crypto/sha256"
	"io"
)

// MaxChunkSize is the fixed chunk size, 256 KiB.
const MaxChunkSize = 256 * 1024

// Chunk is a contiguous byte range of a payload.
type Chunk struct {
	DataHash     [32]byte
	DataSize     uint32
	MinByteRange uint64
	MaxByteRange uint64
}

// chunkData reads r to EOF and returns the ordered list
// of fixed-size chunks per spec §4.3. The trailing zero-length chunk that
// results when size is an exact multiple of MaxChunkSize is dropped. Empty
// payloads produce zero chunks.
func chunkData(r io.Reader) ([]Chunk, error) {
	var chunks []Chunk
	buf := make([]byte, MaxChunkSize)
	var cursor uint64

	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			h := sha256.Sum256(buf[:n])
			cursor += uint64(n)
			chunks = append(chunks, Chunk{
				DataHash:     h,
				DataSize:     uint32(n),
				MinByteRange: cursor - uint64(n),
				MaxByteRange: cursor,
			})
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	if len(chunks) > 0 {
		last := chunks[len(chunks)-1]
		if last.MaxByteRange-last.MinByteRange == 0 {
			chunks = chunks[:len(chunks)-1]
		}
	}

	return chunks, nil
}
