package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the private Prometheus registry, the scrape server, and the
// service's instrument set.
type Metrics struct {
	Server      *http.Server
	Registry    *prometheus.Registry
	serviceName string

	// HTTP surface
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Retrieval pipeline
	SearchesTotal  *prometheus.CounterVec
	SearchHits     *prometheus.HistogramVec
	SearchDuration *prometheus.HistogramVec
}

func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m := &Metrics{
		Registry:    registry,
		serviceName: cfg.ServiceName,

		RequestsTotal: createCounterVec(
			cfg.Namespace+"_http_requests_total",
			"Total number of HTTP requests handled, by method, route, and status code.",
			[]string{"method", "route", "status"},
		),
		RequestDuration: createHistogramVec(
			cfg.Namespace+"_http_request_duration_seconds",
			"HTTP request latency in seconds, by method and route.",
			[]string{"method", "route"},
			prometheus.DefBuckets,
		),
		SearchesTotal: createCounterVec(
			cfg.Namespace+"_searches_total",
			"Total number of similarity searches, by outcome.",
			[]string{"status"},
		),
		SearchHits: createHistogramVec(
			cfg.Namespace+"_search_hits",
			"Number of documents returned per search.",
			[]string{},
			[]float64{0, 1, 2, 5, 10, 20, 50},
		),
		SearchDuration: createHistogramVec(
			cfg.Namespace+"_search_duration_seconds",
			"End-to-end search latency in seconds, embedding included.",
			[]string{},
			prometheus.DefBuckets,
		),
	}

	wrappedRegistry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.SearchesTotal,
		m.SearchHits,
		m.SearchDuration,
	)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return m
}
