package core

// uploader.go implements the resumable upload state machine (spec §4.7):
// post the header, then upload chunks strictly in order, honoring the
// fatal-error set, backoff, and retry accounting.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	errorDelay    = 40 * time.Second
	maxChunksBody = 1 // transactions with <= this many chunks post data inline
	maxErrors     = 100
)

// UploaderState is the serializable state of an Uploader (spec §4.7,
// "Resumability"). A new Uploader can be reconstructed from this state
// plus the same signed transaction and a seekable payload source.
type UploaderState struct {
	ChunkIndex      int    `json:"chunk_index"`
	TxPosted        bool   `json:"tx_posted"`
	LastReqEndMS    int64  `json:"last_req_end_ms"`
	LastRespStatus  int    `json:"last_resp_status"`
	LastRespError   string `json:"last_resp_error"`
	TotalErrors     int    `json:"total_errors"`
}

// Uploader drives chunk-by-chunk upload of a signed Transaction.
type Uploader struct {
	state   UploaderState
	tx      *Transaction
	adapter NetworkAdapter
	source  PayloadSource
	now     func() time.Time
	sleep   func(time.Duration)
	rand    func() float64
}

// NewUploader creates an Uploader for a signed transaction whose Merkle
// tree has already been computed (i.e. Sign has run).
func NewUploader(tx *Transaction, source PayloadSource, adapter NetworkAdapter) (*Uploader, error) {
	if tx.merkle == nil && tx.source.Size() > 0 {
		if _, err := tx.chunks(); err != nil {
			return nil, err
		}
	}
	return &Uploader{
		tx:      tx,
		adapter: adapter,
		source:  source,
		now:     time.Now,
		sleep:   time.Sleep,
		rand:    rand.Float64,
	}, nil
}

// ResumeUploader reconstructs an Uploader from previously serialized state.
func ResumeUploader(state UploaderState, tx *Transaction, source PayloadSource, adapter NetworkAdapter) *Uploader {
	return &Uploader{
		state:   state,
		tx:      tx,
		adapter: adapter,
		source:  source,
		now:     time.Now,
		sleep:   time.Sleep,
		rand:    rand.Float64,
	}
}

// State returns the current serializable state.
func (u *Uploader) State() UploaderState { return u.state }

// TotalChunks is the number of chunks computed for the transaction.
func (u *Uploader) TotalChunks() int {
	if u.tx.merkle == nil {
		return 0
	}
	return len(u.tx.merkle.Chunks)
}

// UploadedChunks is the number of chunks successfully posted so far.
func (u *Uploader) UploadedChunks() int { return u.state.ChunkIndex }

// PctComplete is the integer percentage of chunks uploaded.
func (u *Uploader) PctComplete() int {
	total := u.TotalChunks()
	if total == 0 {
		if u.state.TxPosted {
			return 100
		}
		return 0
	}
	return 100 * u.UploadedChunks() / total
}

// IsComplete reports whether the header has posted and every chunk has
// uploaded.
func (u *Uploader) IsComplete() bool {
	return u.state.TxPosted && u.state.ChunkIndex == u.TotalChunks()
}

// UploadChunk advances the state machine by exactly one step, per spec
// §4.7. It takes no context and cannot be cancelled part-way through (the
// backoff sleep and HTTP calls run to completion). Cancellation is checked
// only by UploadAll, between calls; state is never advanced by a cancelled
// loop, so the next call resumes from the current chunk index.
func (u *Uploader) UploadChunk() error {
	if u.IsComplete() {
		return ErrAlreadyComplete
	}

	if u.state.LastRespError != "" {
		u.state.TotalErrors++
	} else {
		u.state.TotalErrors = 0
	}
	if u.state.TotalErrors == maxErrors {
		return ErrTooManyErrors
	}

	u.applyBackoff()
	u.state.LastRespError = ""

	if !u.state.TxPosted {
		if err := u.postHeader(); err != nil {
			return err
		}
		if u.IsComplete() {
			return nil
		}
	}

	return u.uploadOneChunk()
}

// applyBackoff sleeps per the fixed-floor jittered backoff of spec §7: a
// 40s minimum delay since the last request, down-jittered by 0-30%. No
// exponential growth, per protocol guidance.
func (u *Uploader) applyBackoff() {
	if u.state.LastRespError == "" {
		return
	}
	nowMS := u.now().UnixMilli()
	floor := int64(errorDelay / time.Millisecond)
	delay := (u.state.LastReqEndMS + floor) - nowMS
	if delay < floor {
		delay = floor
	}
	jittered := float64(delay) * (1 - u.rand()*0.3)
	if jittered > 0 {
		u.sleep(time.Duration(jittered) * time.Millisecond)
	}
}

// postHeader posts the transaction header. For single-chunk (or empty)
// transactions the payload travels inline. A single-chunk transaction's
// chunk_index jumps straight to 1, since the chunk is implicit in the body;
// an empty transaction keeps chunk_index 0 and is complete once the header
// is accepted.
func (u *Uploader) postHeader() error {
	total := u.TotalChunks()
	inline := total <= maxChunksBody

	body, err := u.tx.ToWire(inline)
	if err != nil {
		return err
	}

	status, respBody, err := u.adapter.PostJSON("/tx", body)
	u.state.LastReqEndMS = u.now().UnixMilli()
	if err != nil {
		u.state.LastRespError = "transport"
		return &TransportError{Err: err}
	}
	u.state.LastRespStatus = status

	if status < 200 || status >= 300 {
		u.state.LastRespError = parseErrorField(respBody)
		log.WithFields(log.Fields{"status": status, "body": string(respBody)}).
			Error("uploader: header rejected")
		return &ServerRejected{Status: status, Body: string(respBody)}
	}

	u.state.TxPosted = true
	if inline && total > 0 {
		// The single chunk travelled inside the header body, so it counts
		// as uploaded without a separate /chunk round trip.
		u.state.ChunkIndex = maxChunksBody
	}
	return nil
}

// uploadOneChunk fetches, locally validates, and POSTs chunk #chunk_index.
func (u *Uploader) uploadOneChunk() error {
	idx := u.state.ChunkIndex
	chunk := u.tx.merkle.Chunks[idx]
	proof := u.tx.merkle.Proofs[idx]

	data := make([]byte, chunk.DataSize)
	if _, err := u.source.ReadAt(data, int64(chunk.MinByteRange)); err != nil {
		return fmt.Errorf("uploader: read chunk %d: %w", idx, err)
	}

	dataSize := u.tx.source.Size()
	if _, err := validatePath(u.tx.merkle.DataRoot, int64(proof.Offset), 0, dataSize, proof.Path); err != nil {
		return ErrProofInvalid
	}

	payload := chunkUploadJSON{
		DataRoot: b64url(u.tx.merkle.DataRoot),
		DataSize: fmt.Sprintf("%d", dataSize),
		DataPath: b64url(proof.Path),
		Offset:   fmt.Sprintf("%d", proof.Offset),
		Chunk:    b64url(data),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	status, respBody, err := u.adapter.PostJSON("/chunk", body)
	u.state.LastReqEndMS = u.now().UnixMilli()
	if err != nil {
		u.state.LastRespError = "transport"
		return &TransportError{Err: err}
	}
	u.state.LastRespStatus = status

	if status >= 200 && status < 300 {
		u.state.ChunkIndex++
		log.WithFields(log.Fields{"chunk_index": idx, "status": status}).Debug("uploader: chunk accepted")
		return nil
	}

	code := parseErrorField(respBody)
	u.state.LastRespError = code
	log.WithFields(log.Fields{"chunk_index": idx, "status": status, "error": code}).
		Error("uploader: chunk rejected")

	if IsFatalChunkCode(code) {
		return &FatalChunkError{Code: code}
	}
	// Non-fatal: state is retained (LastRespError, LastReqEndMS) so the
	// next UploadChunk call applies backoff and retries this same chunk.
	// Per spec §7 policy, callers retry on ServerRejected/Transport and
	// abort on every other error kind.
	return &ServerRejected{Status: status, Body: string(respBody)}
}

// chunkUploadJSON is the wire shape of spec §6's "Chunk upload JSON".
type chunkUploadJSON struct {
	DataRoot string `json:"data_root"`
	DataSize string `json:"data_size"`
	DataPath string `json:"data_path"`
	Offset   string `json:"offset"`
	Chunk    string `json:"chunk"`
}

// retryable reports whether err is one the caller should keep retrying
// (spec §7 policy: only Transport and ServerRejected are).
func retryable(err error) bool {
	var transport *TransportError
	var rejected *ServerRejected
	return errors.As(err, &transport) || errors.As(err, &rejected)
}

// UploadAll drives the state machine to completion, calling UploadChunk
// repeatedly and applying spec §7's retry policy: Transport and
// ServerRejected errors are swallowed and retried (the backoff happens
// inside the next UploadChunk call), every other error kind aborts. A
// cancelled ctx stops the loop between steps without losing progress.
func (u *Uploader) UploadAll(ctx context.Context) error {
	for !u.IsComplete() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := u.UploadChunk()
		if err == nil {
			continue
		}
		if errors.Is(err, ErrAlreadyComplete) {
			return nil
		}
		if retryable(err) {
			log.WithError(err).Debug("uploader: retrying after backoff")
			continue
		}
		return err
	}
	return nil
}

// parseErrorField normalises a server error body to its "error" string,
// per spec §9 open-question 3. A body that doesn't parse as the expected
// shape is treated as an opaque, non-fatal error string.
func parseErrorField(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == "" {
		return string(body)
	}
	return parsed.Error
}
