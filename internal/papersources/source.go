// Package papersources provides interfaces and shared plumbing for academic
// paper source clients.
//
// Each external database (Semantic Scholar, arXiv) implements the Source
// interface, returning normalized domain.Paper records. Clients report
// failures as error values; degradation decisions (mock substitution, empty
// batches) belong to the caller.
//
// Example usage:
//
//	source := semanticscholar.NewClient(cfg, nil, nil)
//	papers, err := source.Search(ctx, "quantum computing", 3)
package papersources

import (
	"context"

	"github.com/researchintel/research-gap-service/internal/domain"
)

// Source defines the interface that all paper source clients implement.
type Source interface {
	// Search queries the paper source for papers matching the query.
	// Returns at most maxResults normalized papers. The context should be
	// used for cancellation and deadline propagation.
	//
	// Implementations should:
	//   - Respect context cancellation
	//   - Apply rate limiting as needed
	//   - Transform source-specific responses to domain.Paper
	//   - Return errors wrapped with source context, never panic
	Search(ctx context.Context, query string, maxResults int) ([]domain.Paper, error)

	// Name returns a human-readable name for this paper source.
	// Used for logging, metrics, and the papers' Source attribution.
	Name() string

	// IsEnabled returns whether this paper source is currently enabled
	// and available for searches. A source may be disabled by configuration.
	IsEnabled() bool
}
