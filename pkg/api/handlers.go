package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/arcadia-data/vektor/pkg/retrieval"
	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// handleStatus reports backend health. The endpoint itself always answers
// 200; the backend state travels in the body.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !s.retriever.Ready() {
		writeJSON(w, http.StatusOK, statusResponse{Status: statusNotConfigured})
		return
	}

	if err := s.retriever.Store().Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusOK, statusResponse{
			Status: statusError,
			Detail: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: statusConnected})
}

// handleCollections lists the configured collection with its document count
// and dimension. 503 without a backend.
func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	if !s.retriever.Ready() {
		writeError(w, http.StatusServiceUnavailable, "no vector store backend configured")
		return
	}

	info, err := s.retriever.Store().Describe(r.Context())
	if err != nil {
		s.logger.Error("describing collection failed", err, nil)
		writeError(w, http.StatusInternalServerError, "failed to describe collection: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, []collectionResponse{{
		Name:          info.Name,
		DocumentCount: info.Count,
		Dimension:     info.Dimension,
	}})
}

// handleSearch runs the retrieval pipeline. The empty-query check happens
// before any backend work, so a malformed request costs nothing.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	if !s.retriever.Ready() {
		writeError(w, http.StatusServiceUnavailable, "no vector store backend configured")
		return
	}

	start := time.Now()
	docs, err := s.retriever.RetrieveFiltered(r.Context(), req.Query, req.K, req.Filter)
	elapsed := time.Since(start)

	if s.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.SearchesTotal.WithLabelValues(status).Inc()
		if err == nil {
			s.metrics.SearchHits.WithLabelValues().Observe(float64(len(docs)))
			s.metrics.SearchDuration.WithLabelValues().Observe(elapsed.Seconds())
		}
	}

	if err != nil {
		switch {
		case errors.Is(err, vectorstore.ErrValidation):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, vectorstore.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			s.logger.Error("search failed", err, map[string]interface{}{
				"k": req.K,
			})
			writeError(w, http.StatusInternalServerError, "search failed: "+err.Error())
		}
		return
	}

	if docs == nil {
		docs = []retrieval.Document{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Results:        docs,
		LatencySeconds: elapsed.Seconds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
