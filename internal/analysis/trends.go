// Package analysis turns an aggregated paper set into a trend summary and a
// rule-based research gap report, and orchestrates the two into a single
// analysis result.
package analysis

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/researchintel/research-gap-service/internal/domain"
	"github.com/researchintel/research-gap-service/internal/papersources"
)

const (
	// minTextLength is the minimum corpus length for keyword extraction.
	minTextLength = 20

	// topKeywords is how many ranked keywords the trend summary carries.
	topKeywords = 8

	// maxRecentYears caps the publication years reported in a summary.
	maxRecentYears = 3

	// maxFields caps the research fields reported in a summary.
	maxFields = 5
)

var (
	punctuationRegex = regexp.MustCompile(`[^\w\s]`)
	wordRegex        = regexp.MustCompile(`[a-zA-Z]{4,}`)
	yearRegex        = regexp.MustCompile(`\d{4}`)
)

// stopwords are common academic filler words excluded from keyword ranking.
var stopwords = map[string]bool{
	"research": true, "paper": true, "study": true, "method": true,
	"result": true, "analysis": true, "data": true, "using": true,
	"based": true, "approach": true, "show": true, "propose": true,
	"present": true, "develop": true, "investigate": true,
}

// shortTextKeywords is returned when the corpus is too short to rank.
var shortTextKeywords = []string{"research", "analysis", "study", "methodology"}

// allFilteredKeywords is returned when every token was a stopword.
var allFilteredKeywords = []string{"research", "analysis", "method", "application"}

// ExtractKeywords ranks the most frequent substantive words in text and
// returns up to n of them. Ties rank by first occurrence in the text.
func ExtractKeywords(text string, n int) []string {
	if len(text) < minTextLength {
		return shortTextKeywords
	}

	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(text), " ")
	tokens := wordRegex.FindAllString(cleaned, -1)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range tokens {
		if stopwords[tok] {
			continue
		}
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	if len(counts) == 0 {
		return allFilteredKeywords
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}

// TrendAnalyzer computes trend summaries over paper sets.
type TrendAnalyzer struct {
	rnd papersources.Rand
}

// NewTrendAnalyzer creates a TrendAnalyzer. If rnd is nil, a time-seeded
// source is used.
func NewTrendAnalyzer(rnd papersources.Rand) *TrendAnalyzer {
	if rnd == nil {
		rnd = papersources.NewRand()
	}
	return &TrendAnalyzer{rnd: rnd}
}

// AnalyzeTrends summarizes keyword, source, citation, year, and field trends
// across the papers. An empty paper set yields the demo-data zero summary.
func (t *TrendAnalyzer) AnalyzeTrends(papers []domain.Paper) domain.TrendSummary {
	if len(papers) == 0 {
		return domain.EmptyTrendSummary()
	}

	var abstracts []string
	for _, p := range papers {
		if p.Abstract != "" {
			abstracts = append(abstracts, p.Abstract)
		}
	}
	corpus := strings.Join(abstracts, " ")

	keywords := ExtractKeywords(corpus, topKeywords)
	keywordCounts := make(map[string]int, len(keywords))
	for _, kw := range keywords {
		keywordCounts[kw] = papersources.IntBetween(t.rnd, 3, 25)
	}

	return domain.TrendSummary{
		TopKeywords:      keywordCounts,
		TotalPapers:      len(papers),
		Sources:          distinctSources(papers),
		AverageCitations: averageCitations(papers),
		RecentYears:      recentYears(papers),
		Fields:           distinctFields(papers),
	}
}

// distinctSources lists each source once in first-seen order.
func distinctSources(papers []domain.Paper) []string {
	seen := make(map[string]bool)
	sources := []string{}
	for _, p := range papers {
		if p.Source == "" || seen[p.Source] {
			continue
		}
		seen[p.Source] = true
		sources = append(sources, p.Source)
	}
	return sources
}

// averageCitations returns the mean citation count rounded to one decimal.
func averageCitations(papers []domain.Paper) float64 {
	var total int
	for _, p := range papers {
		total += p.Citations
	}
	mean := float64(total) / float64(len(papers))
	return math.Round(mean*10) / 10
}

// recentYears extracts the first four-digit year of each publication date and
// returns up to maxRecentYears distinct values, newest first.
func recentYears(papers []domain.Paper) []int {
	seen := make(map[int]bool)
	years := []int{}
	for _, p := range papers {
		match := yearRegex.FindString(p.Published)
		if match == "" {
			continue
		}
		year, err := strconv.Atoi(match)
		if err != nil || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	if len(years) > maxRecentYears {
		years = years[:maxRecentYears]
	}
	return years
}

// distinctFields lists up to maxFields research fields in first-seen order.
func distinctFields(papers []domain.Paper) []string {
	seen := make(map[string]bool)
	fields := []string{}
	for _, p := range papers {
		for _, f := range p.Fields {
			if seen[f] {
				continue
			}
			seen[f] = true
			fields = append(fields, f)
			if len(fields) == maxFields {
				return fields
			}
		}
	}
	return fields
}
