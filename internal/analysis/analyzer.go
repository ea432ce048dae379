package analysis

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/researchintel/research-gap-service/internal/domain"
	"github.com/researchintel/research-gap-service/internal/observability"
)

// maxSamplePapers caps the sample papers attached to a result.
const maxSamplePapers = 4

// Searcher gathers papers for a query. The aggregate package provides the
// production implementation.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.Paper, error)
}

// Analyzer orchestrates a full analysis: search, trend summary, gap report.
type Analyzer struct {
	searcher Searcher
	trends   *TrendAnalyzer
	metrics  *observability.Metrics
	logger   zerolog.Logger
}

// NewAnalyzer creates an Analyzer. metrics may be nil.
func NewAnalyzer(searcher Searcher, trends *TrendAnalyzer, metrics *observability.Metrics, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		searcher: searcher,
		trends:   trends,
		metrics:  metrics,
		logger:   logger.With().Str("component", "analyzer").Logger(),
	}
}

// GenerateComprehensiveAnalysis produces the full analysis result for a
// query. A search failure yields a degraded result rather than an error, so
// the caller can always answer.
func (a *Analyzer) GenerateComprehensiveAnalysis(ctx context.Context, query string) domain.AnalysisResult {
	logger := observability.WithSearchContext(a.logger, query, "")
	logger.Info().Msg("starting comprehensive analysis")

	start := time.Now()
	if a.metrics != nil {
		a.metrics.RecordAnalysisStarted()
	}

	papers, err := a.searcher.Search(ctx, query)
	if err != nil {
		logger.Error().Err(err).Msg("analysis degraded, search failed")
		if a.metrics != nil {
			a.metrics.RecordAnalysisDegraded(time.Since(start).Seconds())
		}
		return degradedResult(query, err)
	}

	trends := a.trends.AnalyzeTrends(papers)
	gaps := IdentifyGaps(query, papers)

	sample := papers
	if len(sample) > maxSamplePapers {
		sample = sample[:maxSamplePapers]
	}
	if sample == nil {
		sample = []domain.Paper{}
	}

	if a.metrics != nil {
		a.metrics.RecordAnalysisCompleted(time.Since(start).Seconds())
	}
	logger.Info().Int("papers", len(papers)).Msg("comprehensive analysis complete")

	return domain.AnalysisResult{
		Query:               query,
		TotalPapersAnalyzed: len(papers),
		Trends:              trends,
		GapsAnalysis:        gaps,
		SamplePapers:        sample,
		AnalysisTimestamp:   time.Now().Format(time.RFC3339),
	}
}

// degradedResult is the well-formed fallback returned when the search itself
// fails. It still renders as a normal success envelope at the HTTP layer.
func degradedResult(query string, err error) domain.AnalysisResult {
	return domain.AnalysisResult{
		Query:               query,
		TotalPapersAnalyzed: 0,
		Trends:              domain.EmptyTrendSummary(),
		GapsAnalysis: domain.GapAnalysis{
			Gaps:              []string{"Analysis temporarily unavailable"},
			Directions:        []string{"Please try again"},
			CrossDisciplinary: []string{},
			ImpactAreas:       []string{},
		},
		SamplePapers:      []domain.Paper{},
		AnalysisTimestamp: time.Now().Format(time.RFC3339),
		Error:             err.Error(),
	}
}
