package qdrantvec

import (
	"fmt"
	"os"
	"strconv"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

const (
	defaultPort       = 6334
	defaultCollection = "vector_store"
	defaultDimension  = 1536
)

type Config struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string

	// Dimension is the fixed embedding length of the collection's vectors.
	Dimension int
}

// NewConfig reads from environment (no extra deps).
func NewConfig() Config {
	port := defaultPort
	if v := os.Getenv("VEKTOR_QDRANT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}
	dim := defaultDimension
	if v := os.Getenv("VEKTOR_VECTOR_DIM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			dim = n
		}
	}
	return Config{
		Host:       os.Getenv("VEKTOR_QDRANT_HOST"),
		Port:       port,
		APIKey:     os.Getenv("VEKTOR_QDRANT_API_KEY"),
		UseTLS:     os.Getenv("VEKTOR_QDRANT_USE_TLS") == "true",
		Collection: getenvDefault("VEKTOR_QDRANT_COLLECTION", defaultCollection),
		Dimension:  dim,
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Validate fails fast, before any network call, when required connection
// parameters are missing.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: qdrant host is required", vectorstore.ErrConfiguration)
	}
	if c.Port <= 0 {
		return fmt.Errorf("%w: qdrant port must be positive, got %d", vectorstore.ErrConfiguration, c.Port)
	}
	if c.Collection == "" {
		return fmt.Errorf("%w: collection name is required", vectorstore.ErrConfiguration)
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("%w: vector dimension must be positive, got %d", vectorstore.ErrConfiguration, c.Dimension)
	}
	return nil
}
