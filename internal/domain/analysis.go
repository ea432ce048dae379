package domain

// TrendSummary aggregates signal extracted from a batch of papers.
// The keyword counts are drawn from a bounded random range rather than the
// true occurrence counts; this mirrors the behavior of the upstream analysis
// and is kept for response compatibility.
type TrendSummary struct {
	TopKeywords      map[string]int `json:"top_keywords"`
	TotalPapers      int            `json:"total_papers"`
	Sources          []string       `json:"sources"`
	AverageCitations float64        `json:"average_citations"`
	RecentYears      []int          `json:"recent_years"`
	Fields           []string       `json:"fields"`
}

// EmptyTrendSummary is the fixed zero-state returned when there are no papers
// to analyze.
func EmptyTrendSummary() TrendSummary {
	return TrendSummary{
		TopKeywords:      map[string]int{},
		TotalPapers:      0,
		Sources:          []string{"Demo Data"},
		AverageCitations: 0,
		RecentYears:      []int{},
		Fields:           []string{},
	}
}

// GapAnalysis holds the rule-based gap and direction lists selected for a
// query. CrossDisciplinary and ImpactAreas are identical across all query
// buckets; that matches the upstream rule table.
type GapAnalysis struct {
	Gaps              []string `json:"gaps"`
	Directions        []string `json:"directions"`
	CrossDisciplinary []string `json:"cross_disciplinary"`
	ImpactAreas       []string `json:"impact_areas"`
}

// AnalysisResult is the combined summary assembled once per request.
// Error is set only on the degraded path, in which case the result still
// carries well-formed zero-state fields.
type AnalysisResult struct {
	Query               string       `json:"query"`
	TotalPapersAnalyzed int          `json:"total_papers_analyzed"`
	Trends              TrendSummary `json:"trends"`
	GapsAnalysis        GapAnalysis  `json:"gaps_analysis"`
	SamplePapers        []Paper      `json:"sample_papers"`
	AnalysisTimestamp   string       `json:"analysis_timestamp"`
	Error               string       `json:"error,omitempty"`
}
