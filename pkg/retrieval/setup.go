package retrieval

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

const defaultTopK = 3

// Logger defines the interface for logging operations within the retrieval package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

type Config struct {
	// DefaultK is used when a request does not specify how many passages to
	// return.
	DefaultK int
}

// NewConfig reads from environment (no extra deps).
func NewConfig() Config {
	k := defaultTopK
	if v := os.Getenv("VEKTOR_RETRIEVAL_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			k = n
		}
	}
	return Config{DefaultK: k}
}

// Retriever runs the embed-then-search pipeline: the query text is embedded,
// the vector store is searched, and the hits come back as ordered Documents.
//
// The store may be nil when the service runs without a configured backend;
// every retrieval then fails with vectorstore.ErrNotConfigured.
type Retriever struct {
	store    vectorstore.Store
	embedder Embedder
	defaultK int
	logger   Logger
}

// NewRetriever assembles the pipeline.
func NewRetriever(cfg Config, store vectorstore.Store, embedder Embedder, logger Logger) *Retriever {
	k := cfg.DefaultK
	if k <= 0 {
		k = defaultTopK
	}
	return &Retriever{
		store:    store,
		embedder: embedder,
		defaultK: k,
		logger:   logger,
	}
}

// Retrieve returns the k most similar passages for the query. k <= 0 falls
// back to the configured default.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]Document, error) {
	return r.RetrieveFiltered(ctx, query, k, nil)
}

// RetrieveFiltered is Retrieve with a metadata filter applied to the search.
func (r *Retriever) RetrieveFiltered(ctx context.Context, query string, k int, filters *vectorstore.FilterSet) ([]Document, error) {
	if r.store == nil {
		return nil, fmt.Errorf("%w: no vector store backend configured", vectorstore.ErrNotConfigured)
	}
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", vectorstore.ErrValidation)
	}
	if k <= 0 {
		k = r.defaultK
	}

	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.store.Search(ctx, vectorstore.Query{
		Vector:  vector,
		TopK:    k,
		Filters: filters,
	})
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(results))
	for _, res := range results {
		docs = append(docs, Document{
			ID:       res.ID,
			Text:     res.Text,
			Score:    res.Score,
			Metadata: res.Metadata,
		})
	}

	r.logger.Debug("retrieved documents", nil, map[string]interface{}{
		"k":    k,
		"hits": len(docs),
	})
	return docs, nil
}

// Ready reports whether a store backend is configured.
func (r *Retriever) Ready() bool {
	return r.store != nil
}

// Store exposes the backend for callers that need direct access, like the
// collections endpoint. Nil when no backend is configured.
func (r *Retriever) Store() vectorstore.Store {
	return r.store
}
