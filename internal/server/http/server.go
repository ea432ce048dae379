// Package httpserver provides the HTTP JSON API for the research gap
// analysis service.
package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/researchintel/research-gap-service/internal/analysis"
)

// ServiceName identifies the service in health responses.
const ServiceName = "Research Intelligence Platform"

// ServiceVersion is the API version reported by the health endpoint.
const ServiceVersion = "1.0"

// Config holds HTTP server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	MetricsPath     string
}

// Server is the HTTP JSON API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	analyzer   *analysis.Analyzer
	searcher   analysis.Searcher
	trends     *analysis.TrendAnalyzer
	validate   *validator.Validate
	logger     zerolog.Logger
	config     Config
}

// NewServer creates a new HTTP server with all dependencies.
func NewServer(
	cfg Config,
	analyzer *analysis.Analyzer,
	searcher analysis.Searcher,
	trends *analysis.TrendAnalyzer,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		analyzer: analyzer,
		searcher: searcher,
		trends:   trends,
		validate: validator.New(),
		logger:   logger.With().Str("component", "http-server").Logger(),
		config:   cfg,
	}

	s.router = s.buildRouter()

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// buildRouter creates the chi router with all middleware and routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(s.requestLoggingMiddleware)
	r.Use(s.recovererMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(jsonContentTypeMiddleware)

	// Register before mounting /api so the subrouter inherits the JSON 404.
	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.analyzeHandler)
		r.Post("/search", s.searchHandler)
		r.Get("/test", s.testHandler)
		r.Post("/test", s.testHandler)
		r.Get("/health", s.healthHandler)
	})

	if s.config.MetricsEnabled {
		r.Method(http.MethodGet, s.config.MetricsPath, promhttp.Handler())
	}

	return r
}

// Router exposes the configured router, primarily for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
