package embedding

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultEndpoint  = "https://api.openai.com/v1/embeddings"
	defaultModel     = "text-embedding-3-small"
	defaultCacheSize = 1024
)

type Config struct {
	// Endpoint is any OpenAI-compatible embeddings URL.
	Endpoint string
	APIKey   string
	Model    string

	HTTPTimeoutS int
	CacheSize    int
}

// NewConfig reads from environment (no extra deps).
func NewConfig() *Config {
	timeout := 30
	if v := os.Getenv("VEKTOR_EMBEDDING_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}
	cacheSize := defaultCacheSize
	if v := os.Getenv("VEKTOR_EMBEDDING_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cacheSize = n
		}
	}
	return &Config{
		Endpoint:     getenvDefault("VEKTOR_EMBEDDING_ENDPOINT", defaultEndpoint),
		APIKey:       os.Getenv("VEKTOR_EMBEDDING_API_KEY"),
		Model:        getenvDefault("VEKTOR_EMBEDDING_MODEL", defaultModel),
		HTTPTimeoutS: timeout,
		CacheSize:    cacheSize,
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("%w: embedding endpoint is required", ErrEmbedding)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: embedding model is required", ErrEmbedding)
	}
	return nil
}
