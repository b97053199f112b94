package retrieval

import "context"

// Document is one retrieved passage, ordered by relevance.
type Document struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Score    float32        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Embedder turns a query string into a vector. *embedding.Client satisfies
// this.
//
//go:generate mockgen -source=types.go -destination=mock_embedder.go -package=retrieval
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
