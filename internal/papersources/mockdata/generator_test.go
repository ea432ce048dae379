package mockdata

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchintel/research-gap-service/internal/papersources"
)

var publishedFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func TestGenerator_Generate(t *testing.T) {
	t.Run("generates requested number of papers", func(t *testing.T) {
		gen := New(papersources.NewSeededRand(1))

		papers := gen.Generate("fusion energy", 3)
		assert.Len(t, papers, 3)
	})

	t.Run("caps batch at maximum", func(t *testing.T) {
		gen := New(papersources.NewSeededRand(1))

		papers := gen.Generate("fusion energy", 20)
		assert.Len(t, papers, MaxPapers)
	})

	t.Run("non-positive count yields empty batch", func(t *testing.T) {
		gen := New(papersources.NewSeededRand(1))

		assert.Empty(t, gen.Generate("x", 0))
		assert.Empty(t, gen.Generate("x", -1))
	})

	t.Run("papers carry well-formed fields", func(t *testing.T) {
		gen := New(papersources.NewSeededRand(99))

		papers := gen.Generate("synthetic biology", 5)
		require.Len(t, papers, 5)

		for i, p := range papers {
			assert.Contains(t, p.ID, fmt.Sprintf("mock_%d_", i+1))
			assert.Contains(t, p.Title, "synthetic biology")
			assert.Contains(t, p.Abstract, "synthetic biology")
			assert.Equal(t, "Research Database", p.Source)
			assert.Equal(t, fmt.Sprintf("https://research-database.org/paper/%d", i+1), p.URL)
			assert.Regexp(t, publishedFormat, p.Published)

			year, err := strconv.Atoi(p.Published[:4])
			require.NoError(t, err)
			now := time.Now().Year()
			assert.GreaterOrEqual(t, year, now-5)
			assert.LessOrEqual(t, year, now)

			assert.GreaterOrEqual(t, p.Citations, 5)
			assert.LessOrEqual(t, p.Citations, 250)

			require.NotEmpty(t, p.Authors)
			assert.LessOrEqual(t, len(p.Authors), 3)
			seen := map[string]bool{}
			for _, a := range p.Authors {
				assert.Contains(t, a, "Dr. ")
				assert.False(t, seen[a], "authors within a paper must be distinct")
				seen[a] = true
			}

			require.Len(t, p.Fields, 3)
			assert.Equal(t, "Research Methodology", p.Fields[1])
			assert.Equal(t, "Applied Science", p.Fields[2])
		}
	})

	t.Run("batch shares a single domain", func(t *testing.T) {
		gen := New(papersources.NewSeededRand(5))

		papers := gen.Generate("robotics", 5)
		require.NotEmpty(t, papers)

		dom := papers[0].Fields[0]
		for _, p := range papers {
			assert.Equal(t, dom, p.Fields[0])
		}
	})

	t.Run("same seed produces same batch", func(t *testing.T) {
		a := New(papersources.NewSeededRand(42)).Generate("graphene", 5)
		b := New(papersources.NewSeededRand(42)).Generate("graphene", 5)

		assert.Equal(t, a, b)
	})
}
