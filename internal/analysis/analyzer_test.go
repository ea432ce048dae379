package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchintel/research-gap-service/internal/domain"
	"github.com/researchintel/research-gap-service/internal/papersources"
)

// stubSearcher is a Searcher returning canned results.
type stubSearcher struct {
	papers []domain.Paper
	err    error
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]domain.Paper, error) {
	return s.papers, s.err
}

func newTestAnalyzer(searcher Searcher) *Analyzer {
	return NewAnalyzer(searcher, NewTrendAnalyzer(papersources.NewSeededRand(2)), nil, zerolog.Nop())
}

func searchResultPapers(n int) []domain.Paper {
	papers := make([]domain.Paper, 0, n)
	for i := 0; i < n; i++ {
		papers = append(papers, domain.Paper{
			ID:        fmt.Sprintf("p%d", i),
			Title:     fmt.Sprintf("Paper %d", i),
			Abstract:  "an abstract about photonic quantum computing architectures and error rates",
			Source:    "arXiv",
			Citations: 10 * (i + 1),
			Published: "2023-01-01",
			Fields:    []string{"Physics"},
		})
	}
	return papers
}

func TestAnalyzer_GenerateComprehensiveAnalysis(t *testing.T) {
	t.Run("assembles a full result", func(t *testing.T) {
		analyzer := newTestAnalyzer(&stubSearcher{papers: searchResultPapers(6)})

		result := analyzer.GenerateComprehensiveAnalysis(context.Background(), "quantum computing")

		assert.Equal(t, "quantum computing", result.Query)
		assert.Equal(t, 6, result.TotalPapersAnalyzed)
		assert.Empty(t, result.Error)

		assert.Equal(t, 6, result.Trends.TotalPapers)
		assert.Equal(t, []string{"arXiv"}, result.Trends.Sources)

		require.Len(t, result.SamplePapers, 4, "sample is capped at four papers")
		assert.Equal(t, "p0", result.SamplePapers[0].ID)

		require.NotEmpty(t, result.GapsAnalysis.Gaps)
		assert.NotEmpty(t, result.GapsAnalysis.CrossDisciplinary)
		assert.NotEmpty(t, result.GapsAnalysis.ImpactAreas)

		ts, err := time.Parse(time.RFC3339, result.AnalysisTimestamp)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), ts, time.Minute)
	})

	t.Run("fewer papers than the sample cap", func(t *testing.T) {
		analyzer := newTestAnalyzer(&stubSearcher{papers: searchResultPapers(2)})

		result := analyzer.GenerateComprehensiveAnalysis(context.Background(), "quantum computing")

		assert.Equal(t, 2, result.TotalPapersAnalyzed)
		assert.Len(t, result.SamplePapers, 2)
	})

	t.Run("search failure degrades gracefully", func(t *testing.T) {
		analyzer := newTestAnalyzer(&stubSearcher{err: errors.New("sources unreachable")})

		result := analyzer.GenerateComprehensiveAnalysis(context.Background(), "quantum computing")

		assert.Equal(t, "quantum computing", result.Query)
		assert.Zero(t, result.TotalPapersAnalyzed)
		assert.Equal(t, []string{"Analysis temporarily unavailable"}, result.GapsAnalysis.Gaps)
		assert.Equal(t, []string{"Please try again"}, result.GapsAnalysis.Directions)
		assert.Empty(t, result.GapsAnalysis.CrossDisciplinary)
		assert.Empty(t, result.GapsAnalysis.ImpactAreas)
		assert.Empty(t, result.SamplePapers)
		assert.Equal(t, "sources unreachable", result.Error)
		assert.Equal(t, domain.EmptyTrendSummary(), result.Trends)

		_, err := time.Parse(time.RFC3339, result.AnalysisTimestamp)
		assert.NoError(t, err)
	})

	t.Run("empty search result still produces a result", func(t *testing.T) {
		analyzer := newTestAnalyzer(&stubSearcher{})

		result := analyzer.GenerateComprehensiveAnalysis(context.Background(), "quantum computing")

		assert.Zero(t, result.TotalPapersAnalyzed)
		assert.Empty(t, result.Error)
		assert.Equal(t, domain.EmptyTrendSummary(), result.Trends)
		assert.NotEmpty(t, result.GapsAnalysis.Gaps)
	})
}
