package api

import (
	"time"

	"github.com/rubiojr/hoi/pkg/snapshot"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type FindResponse struct {
	Count   int                   `json:"count"`
	Results []snapshot.FileRecord `json:"results"`
}

type ResultsResponse struct {
	Results []snapshot.FileRecord `json:"results"`
	Offset  int                   `json:"offset"`
	Total   int                   `json:"total"`
	HasMore bool                  `json:"has_more"`
}

type StatsResponse struct {
	snapshot.Stats
	Categories map[string]int `json:"categories"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
