// Package domain provides the domain models for the research gap analysis service.
package domain

import "strings"

// Source names used for paper attribution. These values appear verbatim in
// API responses and in the TrendSummary sources list.
const (
	SourceSemanticScholar = "Semantic Scholar"
	SourceArXiv           = "arXiv"
	SourceMock            = "Research Database"
)

// MaxAbstractLength is the hard limit applied to every paper abstract,
// regardless of which source produced it.
const MaxAbstractLength = 400

// Paper is the normalized representation of one search result, common across
// all sources including mock data. A Paper is immutable after creation and
// lives only for the duration of one request.
type Paper struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Abstract  string   `json:"abstract"`
	Authors   []string `json:"authors"`
	Published string   `json:"published"`
	Source    string   `json:"source"`
	Citations int      `json:"citations"`
	URL       string   `json:"url"`
	Fields    []string `json:"fields"`
}

// DedupKey returns the key used for cross-source deduplication.
// Papers are considered duplicates when their titles match case-insensitively.
func (p *Paper) DedupKey() string {
	return strings.ToLower(p.Title)
}

// TruncateAbstract enforces the abstract length limit.
func TruncateAbstract(abstract string) string {
	if len(abstract) > MaxAbstractLength {
		return abstract[:MaxAbstractLength]
	}
	return abstract
}
