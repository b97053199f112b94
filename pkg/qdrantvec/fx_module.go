package qdrantvec

import (
	"context"

	"go.uber.org/fx"

	"github.com/arcadia-data/vektor/pkg/logger"
	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// FXModule wires the Qdrant store into Fx. Applications using a Qdrant
// backend include this module; the served interface is vectorstore.Store.
var FXModule = fx.Module("qdrantvec",
	fx.Provide(
		NewConfig,
		func(l *logger.Logger) Logger { return l },
		NewStore,
		func(s *Store) vectorstore.Store { return s },
	),
	fx.Invoke(RegisterStoreLifecycle),
)

// RegisterStoreLifecycle provisions the collection on startup and closes the
// client on shutdown. The shutdown close error is logged, never propagated.
func RegisterStoreLifecycle(lifecycle fx.Lifecycle, store *Store, log Logger) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.EnsureSchema(ctx)
		},
		OnStop: func(ctx context.Context) error {
			if err := store.Close(); err != nil {
				log.Error("error closing store during shutdown", err, nil)
			}
			return nil
		},
	})
}
