// Package main provides the entry point for the research gap analysis service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/researchintel/research-gap-service/internal/aggregate"
	"github.com/researchintel/research-gap-service/internal/analysis"
	"github.com/researchintel/research-gap-service/internal/config"
	"github.com/researchintel/research-gap-service/internal/observability"
	"github.com/researchintel/research-gap-service/internal/papersources"
	"github.com/researchintel/research-gap-service/internal/papersources/arxiv"
	"github.com/researchintel/research-gap-service/internal/papersources/mockdata"
	"github.com/researchintel/research-gap-service/internal/papersources/semanticscholar"
	httpserver "github.com/researchintel/research-gap-service/internal/server/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("research-gap-service starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(cfg.Metrics.Namespace)
	}

	// One shared random source for the source clients and analyzers.
	rnd := papersources.NewRand()

	semanticScholar := semanticscholar.NewClient(semanticscholar.Config{
		BaseURL:    cfg.PaperSources.SemanticScholar.BaseURL,
		APIKey:     cfg.PaperSources.SemanticScholar.APIKey,
		Timeout:    cfg.PaperSources.SemanticScholar.Timeout,
		RateLimit:  cfg.PaperSources.SemanticScholar.RateLimit,
		MaxResults: cfg.PaperSources.SemanticScholar.MaxResults,
		Enabled:    cfg.PaperSources.SemanticScholar.Enabled,
	}, nil, rnd)

	arxivClient := arxiv.NewClient(arxiv.Config{
		BaseURL:    cfg.PaperSources.ArXiv.BaseURL,
		Timeout:    cfg.PaperSources.ArXiv.Timeout,
		RateLimit:  cfg.PaperSources.ArXiv.RateLimit,
		MaxResults: cfg.PaperSources.ArXiv.MaxResults,
		Enabled:    cfg.PaperSources.ArXiv.Enabled,
	}, nil, rnd)

	aggregator := aggregate.New(
		aggregate.Config{
			MaxPerSource: cfg.Aggregator.MaxPerSource,
			SourcePause:  cfg.Aggregator.SourcePause,
		},
		semanticScholar,
		arxivClient,
		mockdata.New(rnd),
		metrics,
		logger,
	)

	trends := analysis.NewTrendAnalyzer(rnd)
	analyzer := analysis.NewAnalyzer(aggregator, trends, metrics, logger)

	httpCfg := httpserver.Config{
		Address:         cfg.Server.HTTPAddress(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsPath:     cfg.Metrics.Path,
	}
	httpSrv := httpserver.NewServer(httpCfg, analyzer, aggregator, trends, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info().
		Str("http_address", httpCfg.Address).
		Msg("research-gap-service is ready")

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	logger.Info().Msg("shutting down research-gap-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logger.Info().Msg("research-gap-service shutdown complete")
	return nil
}
