package aggregate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchintel/research-gap-service/internal/domain"
	"github.com/researchintel/research-gap-service/internal/papersources"
	"github.com/researchintel/research-gap-service/internal/papersources/mockdata"
)

// stubSource is a papersources.Source returning canned results.
type stubSource struct {
	name     string
	papers   []domain.Paper
	err      error
	disabled bool
	calls    int
}

func (s *stubSource) Search(ctx context.Context, query string, maxResults int) ([]domain.Paper, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.papers, nil
}

func (s *stubSource) Name() string    { return s.name }
func (s *stubSource) IsEnabled() bool { return !s.disabled }

func makePapers(source string, titles ...string) []domain.Paper {
	papers := make([]domain.Paper, 0, len(titles))
	for i, title := range titles {
		papers = append(papers, domain.Paper{
			ID:     fmt.Sprintf("%s_%d", source, i),
			Title:  title,
			Source: source,
		})
	}
	return papers
}

func newAggregator(primary, secondary papersources.Source) *Aggregator {
	return New(
		Config{MaxPerSource: 3},
		primary, secondary,
		mockdata.New(papersources.NewSeededRand(1)),
		nil,
		zerolog.Nop(),
	)
}

func TestAggregator_Search(t *testing.T) {
	t.Run("merges results from both sources", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar", papers: makePapers("ss", "Alpha", "Beta")}
		secondary := &stubSource{name: "arXiv", papers: makePapers("ax", "Gamma")}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		require.Len(t, papers, 3)
		assert.Equal(t, "Alpha", papers[0].Title)
		assert.Equal(t, "Gamma", papers[2].Title)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, secondary.calls)
	})

	t.Run("dedupes by title case-insensitively keeping first", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar", papers: makePapers("ss", "Quantum Advances", "Beta")}
		secondary := &stubSource{name: "arXiv", papers: makePapers("ax", "QUANTUM ADVANCES", "Delta")}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		require.Len(t, papers, 3)
		assert.Equal(t, "ss_0", papers[0].ID, "first occurrence wins")
	})

	t.Run("primary failure substitutes mock data", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar", err: errors.New("boom")}
		secondary := &stubSource{name: "arXiv", papers: makePapers("ax", "Gamma")}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		require.Len(t, papers, 4)
		for _, p := range papers[:3] {
			assert.Equal(t, domain.SourceMock, p.Source)
		}
		assert.Equal(t, "Gamma", papers[3].Title)
	})

	t.Run("secondary failure narrows the results", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar", papers: makePapers("ss", "Alpha")}
		secondary := &stubSource{name: "arXiv", err: errors.New("boom")}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		require.Len(t, papers, 1)
		assert.Equal(t, "Alpha", papers[0].Title)
	})

	t.Run("empty combined results fall back to a mock batch", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar"}
		secondary := &stubSource{name: "arXiv"}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		require.NotEmpty(t, papers)
		for _, p := range papers {
			assert.Equal(t, domain.SourceMock, p.Source)
		}
	})

	t.Run("truncates to twice the per-source maximum", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar", papers: makePapers("ss", "A", "B", "C", "D", "E")}
		secondary := &stubSource{name: "arXiv", papers: makePapers("ax", "F", "G", "H")}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		assert.Len(t, papers, 6)
	})

	t.Run("disabled primary is not queried and mock data substitutes", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar", papers: makePapers("ss", "Alpha"), disabled: true}
		secondary := &stubSource{name: "arXiv", papers: makePapers("ax", "Gamma")}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		assert.Zero(t, primary.calls)
		require.Len(t, papers, 4)
		for _, p := range papers[:3] {
			assert.Equal(t, domain.SourceMock, p.Source)
		}
		assert.Equal(t, "Gamma", papers[3].Title)
	})

	t.Run("disabled secondary is not queried", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar", papers: makePapers("ss", "Alpha")}
		secondary := &stubSource{name: "arXiv", papers: makePapers("ax", "Gamma"), disabled: true}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		assert.Zero(t, secondary.calls)
		require.Len(t, papers, 1)
		assert.Equal(t, "Alpha", papers[0].Title)
	})

	t.Run("both sources disabled still yields papers", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar", disabled: true}
		secondary := &stubSource{name: "arXiv", disabled: true}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		assert.Zero(t, primary.calls)
		assert.Zero(t, secondary.calls)
		require.NotEmpty(t, papers)
		for _, p := range papers {
			assert.Equal(t, domain.SourceMock, p.Source)
		}
	})

	t.Run("both sources failing still yields papers", func(t *testing.T) {
		primary := &stubSource{name: "Semantic Scholar", err: errors.New("down")}
		secondary := &stubSource{name: "arXiv", err: errors.New("down")}

		agg := newAggregator(primary, secondary)

		papers, err := agg.Search(context.Background(), "quantum")

		require.NoError(t, err)
		assert.NotEmpty(t, papers)
	})
}
