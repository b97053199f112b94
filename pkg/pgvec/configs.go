package pgvec

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

const (
	defaultPort      = "5432"
	defaultSchema    = "public"
	defaultTable     = "vector_store"
	defaultDimension = 1536
)

type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails

	// Dimension is the fixed embedding length of the vector column.
	Dimension int
}

type Connection struct {
	Host     string
	Port     string
	User     string
	Password string
	DbName   string
	Schema   string
	Table    string
	SSLMode  string
}

type ConnectionDetails struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewConfig reads from environment (no extra deps).
func NewConfig() Config {
	dim := defaultDimension
	if v := os.Getenv("VEKTOR_VECTOR_DIM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			dim = n
		}
	}
	return Config{
		Connection: Connection{
			Host:     os.Getenv("VEKTOR_PG_HOST"),
			Port:     getenvDefault("VEKTOR_PG_PORT", defaultPort),
			User:     os.Getenv("VEKTOR_PG_USER"),
			Password: os.Getenv("VEKTOR_PG_PASSWORD"),
			DbName:   getenvDefault("VEKTOR_PG_DBNAME", "vektor"),
			Schema:   getenvDefault("VEKTOR_PG_SCHEMA", defaultSchema),
			Table:    getenvDefault("VEKTOR_PG_TABLE", defaultTable),
			SSLMode:  getenvDefault("VEKTOR_PG_SSLMODE", "disable"),
		},
		ConnectionDetails: ConnectionDetails{
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Minute,
		},
		Dimension: dim,
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
	if c.Connection.Host == "" || c.Connection.User == "" || c.Connection.Password == "" {
		return fmt.Errorf("%w: host, user, and password are required", vectorstore.ErrConfiguration)
	}
	if c.Connection.Table == "" || c.Connection.Schema == "" {
		return fmt.Errorf("%w: schema and table are required", vectorstore.ErrConfiguration)
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("%w: vector dimension must be positive, got %d", vectorstore.ErrConfiguration, c.Dimension)
	}
	return nil
}

// qualifiedTable returns the quoted schema-qualified table name for SQL text.
func (c Config) qualifiedTable() string {
	return fmt.Sprintf("%q.%q", c.Connection.Schema, c.Connection.Table)
}
