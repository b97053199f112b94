package embedding

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the embedding system into Fx.
//
// It provides:
//   - *Config   (NewConfig)
//   - Provider  (NewHTTPProvider)
//   - *Client   (NewClient)
//   - Lifecycle hook closing the provider on shutdown
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewConfig,
		NewHTTPProvider,
		func(p *HTTPProvider) Provider { return p },
		NewClient,
	),

	fx.Invoke(RegisterEmbeddingLifecycle),
)

func RegisterEmbeddingLifecycle(lc fx.Lifecycle, p Provider) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if c, ok := p.(interface{ Close() error }); ok {
				return c.Close()
			}
			return nil
		},
	})
}
