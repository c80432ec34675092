package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rubiojr/hoi/pkg/filetype"
	"github.com/rubiojr/hoi/pkg/query"
	"github.com/rubiojr/hoi/pkg/results"
	"github.com/rubiojr/hoi/pkg/version"
)

func (s *Server) HandleFind(w http.ResponseWriter, r *http.Request) {
	kind, err := query.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "Unknown search", err.Error())
		return
	}
	q := r.PathValue("query")

	found := s.engine.Find(kind, q)
	logger.Debugf("%s %q: %d results", kind, q, len(found))

	if s.store != nil && len(found) > 0 {
		if err := s.store.Save(r.Context(), session(r), found); err != nil {
			logger.Warnf("saving results: %v", err)
		}
	}

	s.writeJSON(w, http.StatusOK, FindResponse{Count: len(found), Results: found})
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}

func (s *Server) HandleResults(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "No saved results", "result store disabled")
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid parameter", err.Error())
		return
	}
	limit, err := intParam(r, "limit", s.pageSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid parameter", err.Error())
		return
	}

	page, err := s.store.Page(r.Context(), session(r), offset, limit)
	if errors.Is(err, results.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "No saved results", "run a search first")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read results", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ResultsResponse{
		Results: page.Results,
		Offset:  page.Offset,
		Total:   page.Total,
		HasMore: page.HasMore,
	})
}

func (s *Server) HandleClearResults(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Clear(r.Context(), session(r)); err != nil {
			s.writeError(w, http.StatusInternalServerError, "Failed to clear results", err.Error())
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// UncategorizedLabel counts files whose extension belongs to no category.
const UncategorizedLabel = "khac"

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshots.Snapshot()

	categories := map[string]int{}
	for _, f := range snap.Files() {
		cat, ok := filetype.Category(filetype.Extension(f.Name))
		if !ok {
			cat = UncategorizedLabel
		}
		categories[cat]++
	}

	s.writeJSON(w, http.StatusOK, StatsResponse{Stats: snap.Stats(), Categories: categories})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   version.APIVersion(),
	})
}
