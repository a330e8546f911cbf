// Package gateway implements a minimal in-memory Arweave-gateway-shaped
// HTTP server: enough of /tx_anchor, /price, POST /tx, POST /chunk and the
// GET /tx/{id} and /tx/{id}/status fetch routes to drive the upload engine
// end to end without a live network. It is grounded on the teacher's walletserver package (a
// controller/service/router split behind chi instead of gorilla/mux,
// since the teacher's own go.mod already requires chi without ever
// importing it).
package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// storedTx is what the gateway keeps per transaction: the header fields it
// received plus the chunks uploaded so far, indexed by data_path.
type storedTx struct {
	header map[string]any
	chunks map[string][]byte // data_path (b64url) -> chunk as received (b64url text)
	status string
}

// Service is the in-memory state backing the gateway's HTTP handlers.
type Service struct {
	mu    sync.Mutex
	txs   map[string]*storedTx
	price string
	nowTS string
}

// NewService returns a Service with a fixed quoted price and anchor,
// suitable for deterministic tests.
func NewService() *Service {
	return &Service{
		txs:   make(map[string]*storedTx),
		price: "1000000000",
		nowTS: "gBntwPfDgBJWXlyw6odVWOZSTiyra1WpDiXOXMZzUMQ",
	}
}

// SetPrice overrides the winston price quoted by GET /price.
func (s *Service) SetPrice(winston string) { s.price = winston }

// SetAnchor overrides the anchor quoted by GET /tx_anchor.
func (s *Service) SetAnchor(anchor string) { s.nowTS = anchor }

// Router builds the chi router exposing the gateway's endpoints.
func Router(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDLogger)

	r.Get("/tx_anchor", svc.handleAnchor)
	r.Get("/price/{bytes}", svc.handlePrice)
	r.Get("/price/{bytes}/{target}", svc.handlePrice)
	r.Post("/tx", svc.handlePostTx)
	r.Post("/chunk", svc.handlePostChunk)
	r.Get("/tx/{id}", svc.handleGetTx)
	r.Get("/tx/{id}/status", svc.handleGetStatus)

	return r
}

// requestIDLogger stamps every request with a correlation ID (mirrors the
// teacher's walletserver/middleware.Logger, with a real ID instead of just
// a method/path/latency line).
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"request_id": reqID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
		}).Info("gateway: handled request")
	})
}

func (s *Service) handleAnchor(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Write([]byte(s.nowTS))
}

func (s *Service) handlePrice(w http.ResponseWriter, r *http.Request) {
	if _, err := strconv.ParseInt(chi.URLParam(r, "bytes"), 10, 64); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Write([]byte(s.price))
}

func (s *Service) handlePostTx(w http.ResponseWriter, r *http.Request) {
	var header map[string]any
	if err := json.NewDecoder(r.Body).Decode(&header); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	id, _ := header["id"].(string)
	if id == "" {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.txs[id] = &storedTx{header: header, chunks: make(map[string][]byte), status: "PENDING"}
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (s *Service) handlePostChunk(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DataRoot string `json:"data_root"`
		DataSize string `json:"data_size"`
		DataPath string `json:"data_path"`
		Offset   string `json:"offset"`
		Chunk    string `json:"chunk"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}
	if payload.DataPath == "" || payload.Chunk == "" {
		http.Error(w, `{"error":"invalid_proof"}`, http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.txs {
		if root, _ := tx.header["data_root"].(string); root == payload.DataRoot {
			tx.chunks[payload.DataPath] = []byte(payload.Chunk)
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	http.Error(w, `{"error":"data_path_too_big"}`, http.StatusBadRequest)
}

func (s *Service) handleGetTx(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(tx.header)
}

func (s *Service) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": tx.status})
}
