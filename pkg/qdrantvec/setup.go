package qdrantvec

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// Logger defines the interface for logging operations within the qdrantvec package.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=qdrantvec
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Store implements vectorstore.Store on a single Qdrant collection.
type Store struct {
	client PointsClient
	cfg    Config
	logger Logger

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewStore validates the configuration, dials the Qdrant gRPC endpoint, and
// runs a health-check round-trip. Configuration faults surface as
// vectorstore.ErrConfiguration before any network call; dial or probe
// failures as ErrConnection.
func NewStore(cfg Config, logger Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vectorstore.ErrConnection, err)
	}

	s := &Store{
		client: client,
		cfg:    cfg,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("connected to Qdrant", nil, map[string]interface{}{
		"host":       cfg.Host,
		"collection": cfg.Collection,
	})
	return s, nil
}

// Ping performs a lightweight health-check round-trip.
func (s *Store) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return vectorstore.ErrClosed
	}
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("%w: health check failed: %v", vectorstore.ErrConnection, err)
	}
	return nil
}

// Close releases the underlying gRPC connection exactly once. Subsequent
// calls are no-ops returning nil. Operations issued after Close fail with
// ErrClosed.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.closeErr = s.client.Close()
		s.logger.Info("closed Qdrant connection", nil, nil)
	})
	return s.closeErr
}

// guard is the per-operation closed check.
func (s *Store) guard() error {
	if s.closed.Load() {
		return vectorstore.ErrClosed
	}
	return nil
}
