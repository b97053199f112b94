package embedding

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Client is the caching facade over a Provider. Vectors are cached per
// (model, text) pair, and concurrent requests for the same single text are
// collapsed into one upstream call.
type Client struct {
	provider Provider
	model    string
	cache    *lruCache
	group    singleflight.Group
}

// NewClient constructs a Client from an already-instantiated Provider.
func NewClient(cfg *Config, p Provider) *Client {
	return &Client{
		provider: p,
		model:    cfg.Model,
		cache:    newLRUCache(cfg.CacheSize),
	}
}

// Model returns the configured embedding model name.
func (c *Client) Model() string {
	return c.model
}

// Embed returns one vector per text, in input order. Cached texts are served
// locally; the remainder goes upstream in a single batch call.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured", ErrEmbedding)
	}
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))
	var missTexts []string
	var missIdx []int

	for i, text := range texts {
		if vec, ok := c.cache.get(cacheKey{model: c.model, text: text}); ok {
			vectors[i] = vec
			continue
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	fetched, err := c.provider.Embed(ctx, c.model, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fetched) != len(missTexts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrEmbedding, len(fetched), len(missTexts))
	}

	for j, vec := range fetched {
		c.cache.put(cacheKey{model: c.model, text: missTexts[j]}, vec)
		vectors[missIdx[j]] = vec
	}
	return vectors, nil
}

// EmbedQuery embeds a single text. Concurrent calls for the same text share
// one upstream request.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("%w: no embedding provider configured", ErrEmbedding)
	}
	if vec, ok := c.cache.get(cacheKey{model: c.model, text: text}); ok {
		return vec, nil
	}

	v, err, _ := c.group.Do(c.model+"\x00"+text, func() (interface{}, error) {
		vecs, err := c.provider.Embed(ctx, c.model, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vecs) != 1 {
			return nil, fmt.Errorf("%w: got %d embeddings for one text", ErrEmbedding, len(vecs))
		}
		c.cache.put(cacheKey{model: c.model, text: text}, vecs[0])
		return vecs[0], nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]float32), nil
}

// CacheLen reports the number of cached embeddings.
func (c *Client) CacheLen() int {
	return c.cache.len()
}
