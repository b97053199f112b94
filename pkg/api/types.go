package api

import (
	"github.com/arcadia-data/vektor/pkg/retrieval"
	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// Backend status values reported by GET /status.
const (
	statusConnected     = "connected"
	statusNotConfigured = "not_configured"
	statusError         = "error"
)

type statusResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type collectionResponse struct {
	Name          string `json:"name"`
	DocumentCount int64  `json:"document_count"`
	Dimension     int    `json:"dimension"`
}

type searchRequest struct {
	Query  string                 `json:"query"`
	K      int                    `json:"k"`
	Filter *vectorstore.FilterSet `json:"filter,omitempty"`
}

type searchResponse struct {
	Results        []retrieval.Document `json:"results"`
	LatencySeconds float64              `json:"latency_seconds"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
