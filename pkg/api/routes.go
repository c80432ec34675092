package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// The query may contain slashes ("01/06/2024"), so it takes the rest of
	// the path.
	mux.HandleFunc("GET /api/files/{kind}/{query...}", s.HandleFind)
	mux.HandleFunc("GET /api/results", s.HandleResults)
	mux.HandleFunc("DELETE /api/results", s.HandleClearResults)
	mux.HandleFunc("GET /api/stats", s.HandleStats)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
