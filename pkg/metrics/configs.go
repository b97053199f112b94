package metrics

import "os"

// Default port for metrics server if none is specified.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens.
	//
	// Example values:
	//   - ":9090"   → Listen on all interfaces, port 9090
	//   - "127.0.0.1:9100" → Listen only on localhost, port 9100
	Address string

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process metrics are automatically registered.
	EnableDefaultCollectors bool

	// Namespace sets a global prefix for all metrics registered by this
	// service. Useful when running multiple services in the same Prometheus
	// cluster.
	Namespace string

	// ServiceName identifies the service exposing metrics. It is attached
	// as a common label to distinguish metrics between services.
	ServiceName string
}

// NewConfig reads from environment (no extra deps).
func NewConfig() Config {
	return Config{
		Address:                 getenvDefault("VEKTOR_METRICS_ADDRESS", DefaultMetricsAddress),
		EnableDefaultCollectors: os.Getenv("VEKTOR_METRICS_DISABLE_DEFAULT_COLLECTORS") != "true",
		Namespace:               getenvDefault("VEKTOR_METRICS_NAMESPACE", "vektor"),
		ServiceName:             getenvDefault("VEKTOR_METRICS_SERVICE_NAME", "vektor-retrieval-api"),
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
