package pgvec

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/arcadia-data/vektor/pkg/logger"
	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// FXModule wires the pgvector store into Fx. Applications using a fixed
// Postgres backend include this module; the served interface is
// vectorstore.Store.
var FXModule = fx.Module("pgvec",
	fx.Provide(
		NewConfig,
		func(l *logger.Logger) Logger { return l },
		NewStore,
		func(s *Store) vectorstore.Store { return s },
	),
	fx.Invoke(RegisterStoreLifecycle),
)

// RegisterStoreLifecycle provisions the schema on startup, runs the
// connection monitor/retry goroutines, and closes the store on shutdown.
// The shutdown close error is logged, never propagated.
func RegisterStoreLifecycle(lifecycle fx.Lifecycle, store *Store, log Logger) {
	wg := &sync.WaitGroup{}
	monitorCtx, cancel := context.WithCancel(context.Background())

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				store.monitorConnection(monitorCtx)
			}()

			wg.Add(1)
			go func() {
				defer wg.Done()
				store.retryConnection(monitorCtx)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			if err := store.Close(); err != nil {
				log.Error("error closing store during shutdown", err, nil)
			}
			wg.Wait()
			return nil
		},
	})
}
