package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/arcadia-data/vektor/pkg/metrics"
	"github.com/arcadia-data/vektor/pkg/retrieval"
	"github.com/arcadia-data/vektor/pkg/tracer"
)

// Logger defines the interface for logging operations within the api package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Server is the HTTP front of the retrieval service.
type Server struct {
	httpServer *http.Server
	retriever  *retrieval.Retriever
	logger     Logger
	metrics    *metrics.Metrics
	tracer     *tracer.Tracer
	cfg        Config
}

// NewServer assembles the router and the underlying http.Server. The metrics
// and tracer dependencies may be nil; the corresponding middleware then
// drops out.
func NewServer(cfg Config, retriever *retrieval.Retriever, logger Logger, m *metrics.Metrics, tr *tracer.Tracer) *Server {
	s := &Server{
		retriever: retriever,
		logger:    logger,
		metrics:   m,
		tracer:    tr,
		cfg:       cfg,
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(s.requestLogger)
	if m != nil {
		router.Use(s.requestMetrics)
	}
	if tr != nil {
		router.Use(s.requestTracing)
	}
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	router.Route("/api/v1/vectorstore", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/collections", s.handleCollections)
		r.Post("/search", s.handleSearch)
	})

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
