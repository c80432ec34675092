package api

import (
	"encoding/json"
	"net/http"

	"github.com/rubiojr/hoi/pkg/log"
	"github.com/rubiojr/hoi/pkg/query"
	"github.com/rubiojr/hoi/pkg/results"
)

var logger = log.ForService("api")

// SessionHeader carries the client session whose result set is saved and
// paged.
const SessionHeader = "X-Session"

type Server struct {
	snapshots query.SnapshotSource
	engine    *query.Engine
	store     *results.Store
	pageSize  int
}

type Option func(*Server)

// WithResultStore saves search results so /api/results can page them.
func WithResultStore(store *results.Store) Option {
	return func(s *Server) { s.store = store }
}

// WithPageSize sets the default /api/results page size.
func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func NewServer(snapshots query.SnapshotSource, engine *query.Engine, opts ...Option) *Server {
	s := &Server{snapshots: snapshots, engine: engine, pageSize: 8}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: error, Message: message})
}

func session(r *http.Request) string {
	if v := r.Header.Get(SessionHeader); v != "" {
		return v
	}
	return results.DefaultSession
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
