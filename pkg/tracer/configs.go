package tracer

import "os"

type Config struct {
	// ServiceName appears as service.name on every exported span.
	ServiceName string

	// AppEnv tags spans with the deployment environment (dev, staging, prod).
	AppEnv string

	// EnableExport turns on the OTLP HTTP exporter. With export disabled the
	// provider still runs, so spans stay available to in-process consumers.
	// The exporter endpoint comes from the standard OTEL_EXPORTER_OTLP_*
	// environment variables.
	EnableExport bool
}

// NewConfig reads from environment (no extra deps).
func NewConfig() Config {
	return Config{
		ServiceName:  getenvDefault("VEKTOR_TRACING_SERVICE_NAME", "vektor-retrieval-api"),
		AppEnv:       getenvDefault("APP_ENV", "dev"),
		EnableExport: os.Getenv("VEKTOR_TRACING_ENABLE_EXPORT") == "true",
	}
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
