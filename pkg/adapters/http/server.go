package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/scormkit/internal/logging"
	"github.com/aretw0/scormkit/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// MaxBodyBytes bounds a call request body. SCORM 2004 suspend data tops out at 64000 characters.
const MaxBodyBytes = 1 << 20

// CallRequest is the body of POST /api/{method}.
type CallRequest struct {
	Args []string `json:"args"`
}

// CallResponse is the answer of POST /api/{method}.
type CallResponse struct {
	Result any `json:"result"`
}

// CallEvent is broadcast on GET /events for every bridged call.
type CallEvent struct {
	Method string   `json:"method"`
	Args   []string `json:"args"`
	Result any      `json:"result"`
}

// Server exposes a ports.API over HTTP.
type Server struct {
	API     ports.API
	Streams *StreamManager

	logger  *slog.Logger
	metrics http.Handler
	info    map[string]string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for request handling.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithInfo adds entries to the GET /info document.
func WithInfo(key, value string) Option {
	return func(s *Server) {
		s.info[key] = value
	}
}

// NewHandler creates a new HTTP handler bridging api.
func NewHandler(api ports.API, opts ...Option) http.Handler {
	server := &Server{
		API:     api,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
		info:    map[string]string{"app": "scormkit-bridge"},
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams.logger = server.logger

	r := chi.NewRouter()
	r.Post("/api/{method}", server.Call)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	return enableCORS(r)
}

// Courses run in a browser on another origin than the bridge.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Call handles the POST /api/{method} request.
func (s *Server) Call(w http.ResponseWriter, r *http.Request) {
	method := chi.URLParam(r, "method")

	var body CallRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Call: Invalid request body", "method", method, "err", err)
		return
	}

	result := s.API.Invoke(method, body.Args...)
	s.logger.Debug("Call", "method", method, "args", body.Args, "result", result)

	if bytes, err := json.Marshal(CallEvent{Method: method, Args: body.Args, Result: result}); err == nil {
		s.Streams.Broadcast(string(bytes))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(CallResponse{Result: result}); err != nil {
		s.logger.Error("Call response encode failed", "err", err)
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.info)
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a listener. The returned func unregisters and closes it.
func (sm *StreamManager) Subscribe() (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Subscribers returns the number of active listeners.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message")
		}
	}
}
