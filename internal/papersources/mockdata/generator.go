// Package mockdata generates synthetic paper records used when the live
// sources fail or return nothing. The generated papers are deterministic in
// shape and random in content, so downstream analysis always has material to
// work with.
package mockdata

import (
	"fmt"
	"time"

	"github.com/researchintel/research-gap-service/internal/domain"
	"github.com/researchintel/research-gap-service/internal/papersources"
)

// MaxPapers caps the number of papers per generated batch.
const MaxPapers = 5

// domains is the pool of research domains; one is picked per batch so all
// papers in a batch share a coherent theme.
var domains = []string{
	"Machine Learning",
	"Artificial Intelligence",
	"Data Science",
	"Biotechnology",
	"Renewable Energy",
	"Quantum Computing",
	"Neuroscience",
	"Climate Science",
	"Biomedical Engineering",
}

var surnames = []string{"Smith", "Johnson", "Chen", "Patel", "Garcia", "Wang", "Kim"}

var titleTemplates = []string{
	"Advances in %s and %s",
	"Novel Approaches to %s: A Comprehensive Study",
	"%s in Modern %s Applications",
	"Future Directions in %s Research",
	"Experimental Analysis of %s Using Advanced Methods",
}

// titleWantsDomain marks which title templates take the domain as a second
// interpolation argument.
var titleWantsDomain = []bool{true, false, true, false, false}

var abstractTemplates = []string{
	"This paper presents groundbreaking research on %s. Our study reveals new insights that challenge existing paradigms in the field. The methodology combines traditional approaches with innovative techniques to achieve unprecedented results.",
	"Recent developments in %s have opened new avenues for research. This study investigates key challenges and proposes solutions that could transform current practices. Our findings suggest significant opportunities for future work.",
	"The intersection of %s and %s represents a fertile ground for innovation. This research explores synergistic effects that could lead to major breakthroughs. Experimental results validate our theoretical framework.",
	"This comprehensive review analyzes the current state of %s research. We identify critical gaps in knowledge and propose a roadmap for future investigations. The study highlights promising directions for academic and industrial applications.",
	"Through systematic experimentation, this research demonstrates novel applications of %s. The proposed framework offers scalable solutions to long-standing problems. Results indicate substantial improvements over existing methods.",
}

var abstractWantsDomain = []bool{false, false, true, false, false}

// Generator produces synthetic papers for a query.
type Generator struct {
	rnd papersources.Rand
}

// New creates a Generator. If rnd is nil, a time-seeded source is used.
func New(rnd papersources.Rand) *Generator {
	if rnd == nil {
		rnd = papersources.NewRand()
	}
	return &Generator{rnd: rnd}
}

// Generate returns up to count synthetic papers for the query, capped at
// MaxPapers. All papers in a batch share one randomly chosen domain.
func (g *Generator) Generate(query string, count int) []domain.Paper {
	if count > MaxPapers {
		count = MaxPapers
	}
	if count <= 0 {
		return []domain.Paper{}
	}

	dom := domains[g.rnd.Intn(len(domains))]
	now := time.Now()

	papers := make([]domain.Paper, 0, count)
	for i := 0; i < count; i++ {
		tmplIdx := i % len(titleTemplates)

		title := titleTemplates[tmplIdx]
		if titleWantsDomain[tmplIdx] {
			title = fmt.Sprintf(title, query, dom)
		} else {
			title = fmt.Sprintf(title, query)
		}

		abstract := abstractTemplates[tmplIdx]
		if abstractWantsDomain[tmplIdx] {
			abstract = fmt.Sprintf(abstract, query, dom)
		} else {
			abstract = fmt.Sprintf(abstract, query)
		}

		year := now.Year() - papersources.IntBetween(g.rnd, 0, 5)
		published := fmt.Sprintf("%d-%02d-%02d",
			year,
			papersources.IntBetween(g.rnd, 1, 12),
			papersources.IntBetween(g.rnd, 1, 28),
		)

		papers = append(papers, domain.Paper{
			ID:        fmt.Sprintf("mock_%d_%d", i+1, papersources.IntBetween(g.rnd, 10000, 99999)),
			Title:     title,
			Abstract:  abstract,
			Authors:   g.randomAuthors(),
			Published: published,
			Source:    domain.SourceMock,
			Citations: papersources.IntBetween(g.rnd, 5, 250),
			URL:       fmt.Sprintf("https://research-database.org/paper/%d", i+1),
			Fields:    []string{dom, "Research Methodology", "Applied Science"},
		})
	}
	return papers
}

// randomAuthors picks one to three distinct surnames and prefixes each with
// an honorific.
func (g *Generator) randomAuthors() []string {
	n := papersources.IntBetween(g.rnd, 1, 3)

	picked := make([]string, 0, n)
	used := make(map[int]bool, n)
	for len(picked) < n {
		idx := g.rnd.Intn(len(surnames))
		if used[idx] {
			continue
		}
		used[idx] = true
		picked = append(picked, "Dr. "+surnames[idx])
	}
	return picked
}
