package retrieval

import (
	"go.uber.org/fx"

	"github.com/arcadia-data/vektor/pkg/embedding"
	"github.com/arcadia-data/vektor/pkg/logger"
	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// retrieverParams declares the retriever's dependencies. The store is
// optional: when no driver module is included in the app, the retriever still
// constructs and reports not-configured on use.
type retrieverParams struct {
	fx.In

	Config   Config
	Store    vectorstore.Store `optional:"true"`
	Embedder *embedding.Client
	Logger   *logger.Logger
}

// FXModule wires the retrieval pipeline into Fx.
var FXModule = fx.Module("retrieval",
	fx.Provide(
		NewConfig,
		func(p retrieverParams) *Retriever {
			return NewRetriever(p.Config, p.Store, p.Embedder, p.Logger)
		},
	),
)
