package core

// network.go defines the minimal HTTP verb surface the core calls on its
// collaborator (spec §4.8), plus a stdlib net/http implementation. The
// adapter deliberately never retries: all retry/backoff state lives in the
// upload engine (spec §7 policy).

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// NetworkAdapter is the single interface the core calls to reach the
// network. Tests inject a fake implementation for deterministic responses.
type NetworkAdapter interface {
	Get(path string) (status int, body []byte, err error)
	PostJSON(path string, body []byte) (status int, respBody []byte, err error)
}

// HTTPAdapter is the default NetworkAdapter, a thin wrapper over
// net/http.Client against a configured gateway base URL.
type HTTPAdapter struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPAdapter returns an HTTPAdapter with a bounded per-request timeout.
// A caller-configurable timeout is required by spec §5; a zero Timeout
// disables the deadline.
func NewHTTPAdapter(baseURL string, timeout time.Duration) *HTTPAdapter {
	return &HTTPAdapter{
		BaseURL: baseURL,
		Client:  &http.Client{},
		Timeout: timeout,
	}
}

func (a *HTTPAdapter) do(req *http.Request) (int, []byte, error) {
	if a.Timeout > 0 {
		ctx, cancel := context.WithTimeout(req.Context(), a.Timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		// Per spec §5, a timeout is treated like a non-2xx with a
		// synthetic "timeout" error, not a transport failure, so the
		// engine can retry it with normal backoff.
		if ctxErr := req.Context().Err(); ctxErr == context.DeadlineExceeded {
			return 0, []byte(`{"error":"timeout"}`), nil
		}
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

func (a *HTTPAdapter) Get(path string) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, a.BaseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	return a.do(req)
}

func (a *HTTPAdapter) PostJSON(path string, body []byte) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodPost, a.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")
	return a.do(req)
}

// FetchAnchor retrieves the current anchor from GET /tx_anchor.
func FetchAnchor(adapter NetworkAdapter) (string, error) {
	status, body, err := adapter.Get("/tx_anchor")
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if status < 200 || status >= 300 {
		return "", &ServerRejected{Status: status, Body: string(body)}
	}
	return string(body), nil
}

// FetchStatus retrieves GET /tx/{id}/status.
func FetchStatus(adapter NetworkAdapter, id string) (int, []byte, error) {
	return adapter.Get("/tx/" + id + "/status")
}

// FetchTransaction retrieves GET /tx/{id}.
func FetchTransaction(adapter NetworkAdapter, id string) (int, []byte, error) {
	return adapter.Get("/tx/" + id)
}

// FetchOffset retrieves GET /tx/{id}/offset.
func FetchOffset(adapter NetworkAdapter, id string) (int, []byte, error) {
	return adapter.Get("/tx/" + id + "/offset")
}

// FetchChunkByOffset retrieves GET /chunk/{offset}, used in fetch mode.
func FetchChunkByOffset(adapter NetworkAdapter, offset int64) (int, []byte, error) {
	return adapter.Get("/chunk/" + strconv.FormatInt(offset, 10))
}
