// Package aggregate combines results from multiple paper sources into a
// single deduplicated list. Sources are queried sequentially with a pause
// between them, and mock data is substituted when the sources fail or come
// back empty, so a search always yields papers.
package aggregate

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/researchintel/research-gap-service/internal/domain"
	"github.com/researchintel/research-gap-service/internal/observability"
	"github.com/researchintel/research-gap-service/internal/papersources"
	"github.com/researchintel/research-gap-service/internal/papersources/mockdata"
)

// Mock substitution reasons used as metric labels.
const (
	fallbackSourceError    = "source_error"
	fallbackSourceDisabled = "source_disabled"
	fallbackNoResults      = "no_results"
)

// Config holds aggregation settings.
type Config struct {
	// MaxPerSource is the maximum papers requested from each source.
	MaxPerSource int

	// SourcePause is the delay between consecutive source queries.
	SourcePause time.Duration
}

// Aggregator queries the primary and secondary sources in order and merges
// their results. The primary source's failure is covered by mock data; the
// secondary source's failure only narrows the result set. A source disabled
// by configuration takes the same branch as a failing one, without being
// queried.
type Aggregator struct {
	config    Config
	primary   papersources.Source
	secondary papersources.Source
	mock      *mockdata.Generator
	metrics   *observability.Metrics
	logger    zerolog.Logger
}

// New creates an Aggregator. metrics may be nil.
func New(
	cfg Config,
	primary, secondary papersources.Source,
	mock *mockdata.Generator,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Aggregator {
	return &Aggregator{
		config:    cfg,
		primary:   primary,
		secondary: secondary,
		mock:      mock,
		metrics:   metrics,
		logger:    logger.With().Str("component", "aggregator").Logger(),
	}
}

// Search gathers papers for the query from both sources. It never fails:
// every degradation branch substitutes mock data or narrows the results. The
// error return exists to satisfy callers that accept pluggable searchers and
// is always nil.
func (a *Aggregator) Search(ctx context.Context, query string) ([]domain.Paper, error) {
	logger := observability.WithSearchContext(a.logger, query, "")
	logger.Info().Int("max_per_source", a.config.MaxPerSource).Msg("starting aggregated search")

	var papers []domain.Paper

	if a.primary.IsEnabled() {
		primary, err := a.querySource(ctx, a.primary, query)
		if err != nil {
			logger.Warn().Err(err).Str("source", a.primary.Name()).
				Msg("primary source failed, substituting mock data")
			a.recordMockFallback(fallbackSourceError)
			primary = a.mock.Generate(query, a.config.MaxPerSource)
		}
		papers = append(papers, primary...)
	} else {
		logger.Info().Str("source", a.primary.Name()).
			Msg("primary source disabled, substituting mock data")
		a.recordMockFallback(fallbackSourceDisabled)
		papers = append(papers, a.mock.Generate(query, a.config.MaxPerSource)...)
	}

	if a.secondary.IsEnabled() {
		a.pause(ctx)

		secondary, err := a.querySource(ctx, a.secondary, query)
		if err != nil {
			logger.Warn().Err(err).Str("source", a.secondary.Name()).
				Msg("secondary source failed, continuing without it")
		} else {
			papers = append(papers, secondary...)
		}
	} else {
		logger.Info().Str("source", a.secondary.Name()).
			Msg("secondary source disabled, skipping")
	}

	if len(papers) == 0 {
		logger.Info().Msg("no papers from any source, generating mock batch")
		a.recordMockFallback(fallbackNoResults)
		papers = a.mock.Generate(query, a.config.MaxPerSource*2)
	}

	papers = a.dedupe(papers)

	if limit := a.config.MaxPerSource * 2; len(papers) > limit {
		papers = papers[:limit]
	}

	if a.metrics != nil {
		a.metrics.RecordSearch(len(papers))
	}
	logger.Info().Int("papers", len(papers)).Msg("aggregated search complete")

	return papers, nil
}

// querySource runs one source search, recording per-source request metrics.
func (a *Aggregator) querySource(ctx context.Context, src papersources.Source, query string) ([]domain.Paper, error) {
	start := time.Now()
	papers, err := src.Search(ctx, query, a.config.MaxPerSource)
	if a.metrics != nil {
		if err != nil {
			a.metrics.RecordSourceRequestFailed(src.Name(), "search", errorType(err))
		} else {
			a.metrics.RecordSourceRequest(src.Name(), "search", time.Since(start).Seconds())
		}
	}
	return papers, err
}

// errorType buckets an error for the failure metric label.
func errorType(err error) string {
	var apiErr *domain.ExternalAPIError
	if errors.As(err, &apiErr) {
		return "api_error"
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}
	return "transport"
}

// dedupe drops papers whose lowercased title was already seen, keeping the
// first occurrence.
func (a *Aggregator) dedupe(papers []domain.Paper) []domain.Paper {
	seen := make(map[string]bool, len(papers))
	unique := make([]domain.Paper, 0, len(papers))
	for _, p := range papers {
		key := p.DedupKey()
		if seen[key] {
			if a.metrics != nil {
				a.metrics.RecordDuplicate()
			}
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}
	return unique
}

// pause waits between source queries, returning early if the context ends.
func (a *Aggregator) pause(ctx context.Context) {
	if a.config.SourcePause <= 0 {
		return
	}
	timer := time.NewTimer(a.config.SourcePause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// recordMockFallback increments the fallback metric if metrics are enabled.
func (a *Aggregator) recordMockFallback(reason string) {
	if a.metrics != nil {
		a.metrics.RecordMockFallback(reason)
	}
}
