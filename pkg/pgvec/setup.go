package pgvec

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// Logger defines the interface for logging operations within the pgvec package.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=pgvec
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Store is a thread-safe vectorstore.Store over gorm/pgx with connection
// monitoring and automatic reconnection. All operations go through a read
// lock so the client can be swapped atomically by the retry loop.
type Store struct {
	client *gorm.DB
	cfg    Config
	logger Logger

	mu     *sync.RWMutex
	closed atomic.Bool

	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeOnce          sync.Once
	closeErr           error
}

// NewStore validates the configuration, opens the session, and runs a probe
// round-trip. Configuration faults surface as vectorstore.ErrConfiguration
// before any network call; connect or probe failures as ErrConnection.
func NewStore(cfg Config, logger Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := connectToPostgres(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vectorstore.ErrConnection, err)
	}

	s := &Store{
		client:          conn,
		cfg:             cfg,
		logger:          logger,
		mu:              &sync.RWMutex{},
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// connectToPostgres opens the gorm session and configures the connection pool.
// The bounded pool is the concurrency strategy: checkouts block until a
// session frees up or the caller's context expires.
func connectToPostgres(logger Logger, cfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Connection.Host,
		cfg.Connection.Port,
		cfg.Connection.User,
		cfg.Connection.Password,
		cfg.Connection.DbName,
		cfg.Connection.SSLMode)

	database, err := gorm.Open(
		postgres.Open(dsn),
		&gorm.Config{
			TranslateError: true,
		})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	databaseInstance.SetMaxOpenConns(cfg.ConnectionDetails.MaxOpenConns)
	databaseInstance.SetMaxIdleConns(cfg.ConnectionDetails.MaxIdleConns)
	databaseInstance.SetConnMaxLifetime(cfg.ConnectionDetails.ConnMaxLifetime)

	logger.Info("connected to PostgreSQL database", nil, map[string]interface{}{
		"host":  cfg.Connection.Host,
		"table": cfg.Connection.Table,
	})

	return database, nil
}

// session returns the current gorm client bound to ctx, or ErrClosed when the
// store has been shut down. Callers must hold no lock; the read lock is taken
// here and released before returning since gorm sessions are safe to share —
// the lock only orders reads of the client pointer against swaps.
func (s *Store) session(ctx context.Context) (*gorm.DB, error) {
	if s.closed.Load() {
		return nil, vectorstore.ErrClosed
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client.WithContext(ctx), nil
}

// Ping performs a lightweight round-trip probe.
func (s *Store) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return vectorstore.ErrClosed
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.client == nil {
		return fmt.Errorf("%w: client is not initialized", vectorstore.ErrConnection)
	}

	db, err := s.client.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", vectorstore.ErrConnection, err)
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping failed: %v", vectorstore.ErrConnection, err)
	}

	return nil
}

// Close releases the underlying session exactly once. Subsequent calls are
// no-ops returning nil. Operations issued after Close fail with ErrClosed.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.shutdownSignal)

		s.mu.Lock()
		defer s.mu.Unlock()

		db, err := s.client.DB()
		if err != nil {
			s.closeErr = err
			return
		}
		s.closeErr = db.Close()
		s.logger.Info("closed PostgreSQL connection", nil, nil)
	})
	return s.closeErr
}

// retryConnection continuously attempts to reconnect when notified of a
// connection failure. The outer loop waits for retry signals, the inner loop
// reconnects until successful. Both respect shutdown and context cancellation.
func (s *Store) retryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-s.shutdownSignal:
			s.logger.Info("stopping retryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case <-s.retryChanSignal:
		innerLoop:
			for {
				select {
				case <-s.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(s.logger, s.cfg)
					if err != nil {
						s.logger.Error("reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					s.mu.Lock()
					s.client = newConn
					s.mu.Unlock()
					s.logger.Info("reconnected to PostgreSQL database", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// monitorConnection periodically health-checks the session and signals the
// retry loop when a failure is detected.
func (s *Store) monitorConnection(ctx context.Context) {
	defer s.closeRetryChanOnce.Do(func() {
		close(s.retryChanSignal)
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.shutdownSignal:
			s.logger.Info("stopping monitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := s.Ping(pingCtx)
			cancel()
			if err != nil {
				select {
				case s.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
