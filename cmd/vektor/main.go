package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/fx"

	"github.com/arcadia-data/vektor/pkg/api"
	"github.com/arcadia-data/vektor/pkg/embedding"
	"github.com/arcadia-data/vektor/pkg/logger"
	"github.com/arcadia-data/vektor/pkg/metrics"
	"github.com/arcadia-data/vektor/pkg/pgvec"
	"github.com/arcadia-data/vektor/pkg/qdrantvec"
	"github.com/arcadia-data/vektor/pkg/retrieval"
	"github.com/arcadia-data/vektor/pkg/tracer"
)

func main() {
	options, err := buildOptions(os.Getenv("VEKTOR_STORE_DRIVER"))
	if err != nil {
		log.Fatal(err)
	}
	fx.New(options...).Run()
}

// buildOptions assembles the application modules for the given store driver.
// A driver name that is not "postgres", "qdrant", or "none" is a startup
// fault, never a silent fallback to not-configured mode.
func buildOptions(driver string) ([]fx.Option, error) {
	options := []fx.Option{
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		embedding.FXModule,
		retrieval.FXModule,
		api.FXModule,
	}

	storeModule, err := storeOption(driver)
	if err != nil {
		return nil, err
	}
	if storeModule != nil {
		options = append(options, storeModule)
	}
	return options, nil
}

// storeOption maps VEKTOR_STORE_DRIVER to a store module: "postgres"
// (default when empty), "qdrant", or "none" to run the API without a backend
// in not-configured mode.
func storeOption(driver string) (fx.Option, error) {
	switch driver {
	case "", "postgres":
		return pgvec.FXModule, nil
	case "qdrant":
		return qdrantvec.FXModule, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown VEKTOR_STORE_DRIVER %q, expected \"postgres\", \"qdrant\", or \"none\"", driver)
	}
}
