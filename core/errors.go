package core

// errors.go enumerates the error kinds surfaced by the core (spec §7).
// Retry policy lives entirely in the upload engine: Transport and
// ServerRejected are retryable, everything else aborts.

import "fmt"

// Sentinel errors for kinds that carry no extra data.
var (
	ErrSealed          = fmt.Errorf("transaction: sealed after sign()")
	ErrAlreadyComplete = fmt.Errorf("uploader: already complete")
	ErrTooManyErrors   = fmt.Errorf("uploader: too many consecutive errors")
	ErrInvalidTarget   = fmt.Errorf("transaction: quantity > 0 requires a target")
	ErrProofInvalid    = fmt.Errorf("uploader: local proof re-validation failed")
)

// FatalChunkError reports a server response whose error code is in the
// fatal set (spec §4.7): unrecoverable, never retried.
type FatalChunkError struct {
	Code string
}

func (e *FatalChunkError) Error() string {
	return fmt.Sprintf("uploader: fatal chunk error %q", e.Code)
}

var fatalChunkCodes = map[string]bool{
	"invalid_json":                     true,
	"chunk_too_big":                    true,
	"data_path_too_big":                true,
	"offset_too_big":                   true,
	"data_size_too_big":                true,
	"chunk_proof_ratio_not_attractive": true,
	"invalid_proof":                    true,
}

// IsFatalChunkCode reports whether code is in the fatal error set.
func IsFatalChunkCode(code string) bool {
	return fatalChunkCodes[code]
}

// ServerRejected reports a non-2xx response to a header or chunk POST that
// is not in the fatal set; the engine retries these with backoff.
type ServerRejected struct {
	Status int
	Body   string
}

func (e *ServerRejected) Error() string {
	return fmt.Sprintf("server rejected request: status=%d body=%s", e.Status, e.Body)
}

// TransportError wraps a network-level failure (DNS, connect, TLS,
// timeout). It is retryable like ServerRejected.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }
