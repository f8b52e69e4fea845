// Package pamtest runs a fake PAM service for command-level tests. Handlers
// are registered per route; everything unrouted answers 404 so tests notice
// requests they did not expect.
package pamtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is one request the fake service received.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

// Server is a fake PAM service backed by httptest.
type Server struct {
	t      *testing.T
	srv    *httptest.Server
	router chi.Router

	mu       sync.Mutex
	requests []Request
}

// New starts a fake service and shuts it down with the test.
func New(t *testing.T) *Server {
	t.Helper()
	s := &Server{t: t, router: chi.NewRouter()}
	s.router.Use(s.record)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"not found"}`)
	})
	s.srv = httptest.NewServer(s.router)
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the fake service's base URL.
func (s *Server) URL() string { return s.srv.URL }

// Handle registers a JSON response for method+pattern.
func (s *Server) Handle(method, pattern, body string) {
	s.HandleStatus(method, pattern, http.StatusOK, body)
}

// HandleStatus registers a JSON response with an explicit status.
func (s *Server) HandleStatus(method, pattern string, status int, body string) {
	s.router.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

// HandleFunc registers an arbitrary handler for method+pattern.
func (s *Server) HandleFunc(method, pattern string, h http.HandlerFunc) {
	s.router.MethodFunc(method, pattern, h)
}

// Requests returns a snapshot of everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
			Header: r.Header.Clone(),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}
