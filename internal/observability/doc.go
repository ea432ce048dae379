// Package observability provides logging and metrics support for the
// research gap analysis service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for analyses, searches, and sources
//   - Context helpers for propagating request identifiers
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("query", query).Msg("analysis started")
//
// Add search context to a logger:
//
//	logger = observability.WithSearchContext(logger, query, source)
//
// # Metrics
//
// Initialize and record metrics:
//
//	metrics := observability.NewMetrics("research_gap")
//	metrics.AnalysesStarted.Inc()
//	metrics.RecordSourceRequest("semantic_scholar", "search", 0.5)
//
// # Standard Fields
//
// Common fields used across the service:
//
//   - request_id: HTTP request identifier
//   - query: User's research query
//   - source: Paper source (semantic_scholar, arxiv, mock)
//   - papers: Number of papers in a batch
//
// # Thread Safety
//
// All components are safe for concurrent use from multiple goroutines.
package observability
