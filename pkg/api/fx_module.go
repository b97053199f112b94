package api

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/arcadia-data/vektor/pkg/logger"
	"github.com/arcadia-data/vektor/pkg/metrics"
	"github.com/arcadia-data/vektor/pkg/retrieval"
	"github.com/arcadia-data/vektor/pkg/tracer"
)

// serverParams declares the server's dependencies. Metrics and tracer are
// optional so the API can run without the observability modules.
type serverParams struct {
	fx.In

	Config    Config
	Retriever *retrieval.Retriever
	Logger    *logger.Logger
	Metrics   *metrics.Metrics `optional:"true"`
	Tracer    *tracer.Tracer   `optional:"true"`
}

// FXModule wires the HTTP API into Fx.
var FXModule = fx.Module("api",
	fx.Provide(
		NewConfig,
		func(p serverParams) *Server {
			return NewServer(p.Config, p.Retriever, p.Logger, p.Metrics, p.Tracer)
		},
	),
	fx.Invoke(RegisterServerLifecycle),
)

// RegisterServerLifecycle starts the listener on startup and drains it
// gracefully on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("api server listening", nil, map[string]interface{}{
					"address": s.httpServer.Addr,
				})
				if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("api server stopped unexpectedly", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
			defer cancel()
			return s.httpServer.Shutdown(shutdownCtx)
		},
	})
}
