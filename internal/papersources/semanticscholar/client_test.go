package semanticscholar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchintel/research-gap-service/internal/domain"
	"github.com/researchintel/research-gap-service/internal/papersources"
)

func intPtr(v int) *int { return &v }

func TestNewClient(t *testing.T) {
	t.Run("creates client with default values", func(t *testing.T) {
		client := NewClient(Config{Enabled: true}, nil, nil)

		require.NotNil(t, client)
		assert.Equal(t, DefaultBaseURL, client.config.BaseURL)
		assert.Equal(t, DefaultTimeout, client.config.Timeout)
		assert.Equal(t, DefaultRateLimit, client.config.RateLimit)
		assert.Equal(t, DefaultBurstSize, client.config.BurstSize)
		assert.Equal(t, DefaultMaxResults, client.config.MaxResults)
		assert.True(t, client.config.Enabled)
	})

	t.Run("creates client with custom config", func(t *testing.T) {
		cfg := Config{
			BaseURL:    "https://custom.api.com/v1",
			APIKey:     "test-api-key",
			Timeout:    60 * time.Second,
			RateLimit:  50.0,
			BurstSize:  20,
			MaxResults: 200,
			Enabled:    true,
		}
		client := NewClient(cfg, nil, nil)

		require.NotNil(t, client)
		assert.Equal(t, cfg.BaseURL, client.config.BaseURL)
		assert.Equal(t, cfg.Timeout, client.config.Timeout)
		assert.Equal(t, cfg.RateLimit, client.config.RateLimit)
		assert.Equal(t, cfg.MaxResults, client.config.MaxResults)
	})

	t.Run("implements Source interface", func(t *testing.T) {
		client := NewClient(Config{Enabled: true}, nil, nil)

		assert.Equal(t, "Semantic Scholar", client.Name())
		assert.True(t, client.IsEnabled())
	})

	t.Run("disabled client returns false for IsEnabled", func(t *testing.T) {
		client := NewClient(Config{Enabled: false}, nil, nil)
		assert.False(t, client.IsEnabled())
	})
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:   baseURL,
		Enabled:   true,
		RateLimit: 100,
		BurstSize: 10,
	}, nil, papersources.NewSeededRand(42))
}

func TestClient_Search(t *testing.T) {
	t.Run("successful search returns normalized papers", func(t *testing.T) {
		response := SearchResponse{
			Total: 2,
			Data: []PaperResult{
				{
					PaperID:       "abc123",
					Title:         "Quantum Error Correction at Scale",
					Abstract:      "We study quantum error correction codes for large devices, with experiments on superconducting hardware and detailed noise models.",
					Year:          intPtr(2023),
					URL:           "https://www.semanticscholar.org/paper/abc123",
					Authors:       []Author{{AuthorID: "a1", Name: "Jane Doe"}, {AuthorID: "a2", Name: "John Smith"}},
					CitationCount: intPtr(50),
					FieldsOfStudy: []string{"Physics", "Computer Science"},
				},
				{
					PaperID:       "def456",
					Title:         "Topological Qubits",
					Abstract:      "Topological approaches promise intrinsic error protection for quantum information processing over long coherence times.",
					Year:          intPtr(2022),
					Authors:       []Author{{Name: "Alice Johnson"}},
					CitationCount: intPtr(25),
				},
			},
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Contains(t, r.URL.Path, "/paper/search")
			assert.Equal(t, "quantum computing", r.URL.Query().Get("query"))
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			assert.Contains(t, r.URL.Query().Get("fields"), "title")
			assert.Contains(t, r.URL.Query().Get("fields"), "citationCount")

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		papers, err := client.Search(context.Background(), "quantum computing", 3)

		require.NoError(t, err)
		require.Len(t, papers, 2)

		first := papers[0]
		assert.Equal(t, "abc123", first.ID)
		assert.Equal(t, "Quantum Error Correction at Scale", first.Title)
		assert.Equal(t, []string{"Jane Doe", "John Smith"}, first.Authors)
		assert.Equal(t, "2023", first.Published)
		assert.Equal(t, "Semantic Scholar", first.Source)
		assert.Equal(t, 50, first.Citations)
		assert.Equal(t, "https://www.semanticscholar.org/paper/abc123", first.URL)
		assert.Equal(t, []string{"Physics", "Computer Science"}, first.Fields)

		second := papers[1]
		assert.Equal(t, "https://www.semanticscholar.org/paper/def456", second.URL)
		assert.Equal(t, []string{}, second.Fields)
	})

	t.Run("missing fields get defaults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(SearchResponse{
				Total: 1,
				Data:  []PaperResult{{PaperID: "xyz", Abstract: "too short"}},
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		papers, err := client.Search(context.Background(), "neural networks", 3)

		require.NoError(t, err)
		require.Len(t, papers, 1)

		p := papers[0]
		assert.Equal(t, "Research on neural networks", p.Title)
		assert.Contains(t, p.Abstract, "explores various aspects of neural networks")
		assert.Equal(t, []string{"Researcher"}, p.Authors)

		year, convErr := strconv.Atoi(p.Published)
		require.NoError(t, convErr)
		now := time.Now().Year()
		assert.GreaterOrEqual(t, year, now-3)
		assert.LessOrEqual(t, year, now)

		assert.GreaterOrEqual(t, p.Citations, 1)
		assert.LessOrEqual(t, p.Citations, 200)
	})

	t.Run("long abstract is truncated", func(t *testing.T) {
		long := ""
		for i := 0; i < 50; i++ {
			long += "quantum computing research "
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(SearchResponse{
				Total: 1,
				Data:  []PaperResult{{PaperID: "p1", Title: "T", Abstract: long}},
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		papers, err := client.Search(context.Background(), "quantum", 3)
		require.NoError(t, err)
		require.Len(t, papers, 1)
		assert.Len(t, papers[0].Abstract, domain.MaxAbstractLength)
	})

	t.Run("caps results at requested maximum", func(t *testing.T) {
		data := make([]PaperResult, 5)
		for i := range data {
			data[i] = PaperResult{
				PaperID:  fmt.Sprintf("p%d", i),
				Title:    fmt.Sprintf("Paper %d", i),
				Abstract: "A sufficiently long abstract describing the experimental methodology in detail.",
			}
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(SearchResponse{Total: 5, Data: data})
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		papers, err := client.Search(context.Background(), "test", 2)
		require.NoError(t, err)
		assert.Len(t, papers, 2)
	})

	t.Run("api error becomes external api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(ErrorResponse{Message: "rate limit exceeded"})
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		_, err := client.Search(context.Background(), "test", 3)

		require.Error(t, err)
		var apiErr *domain.ExternalAPIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Semantic Scholar", apiErr.Source)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Contains(t, apiErr.Message, "rate limit exceeded")
	})

	t.Run("malformed response body fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		_, err := client.Search(context.Background(), "test", 3)
		assert.ErrorContains(t, err, "decoding response")
	})

	t.Run("context cancellation aborts the request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Search(ctx, "test", 3)
		assert.Error(t, err)
	})
}
