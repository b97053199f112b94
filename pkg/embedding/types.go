package embedding

import (
	"context"
	"errors"
)

// ErrEmbedding wraps every failure surfaced by this package.
var ErrEmbedding = errors.New("embedding error")

// Provider contract. Implementations return one vector per input text, in
// input order.
//
//go:generate mockgen -source=types.go -destination=mock_provider.go -package=embedding
type Provider interface {
	Embed(ctx context.Context, model string, texts []string) ([][]float32, error)
}
