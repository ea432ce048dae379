package analysis

import (
	"fmt"
	"strings"

	"github.com/researchintel/research-gap-service/internal/domain"
)

// gapRule maps query trigger substrings to a fixed gap and direction list.
type gapRule struct {
	triggers   []string
	gaps       []string
	directions []string
}

// gapRules are checked in order against the lowercased query; the first rule
// with a matching trigger substring wins. Queries matching no rule get
// templated generic gaps instead.
var gapRules = []gapRule{
	{
		triggers: []string{"ai", "artificial intelligence", "machine learning"},
		gaps: []string{
			"Lack of explainability and interpretability in AI models",
			"Ethical considerations and bias mitigation in AI systems",
			"Limited real-world deployment and scalability studies",
			"Integration of AI with traditional domain knowledge",
		},
		directions: []string{
			"Developing transparent and interpretable AI systems",
			"Creating ethical frameworks for AI deployment",
			"Building robust AI systems for real-world applications",
			"Cross-disciplinary AI research with domain experts",
		},
	},
	{
		triggers: []string{"climate", "environment", "sustainable"},
		gaps: []string{
			"Limited long-term climate impact studies",
			"Scalability of sustainable technologies",
			"Economic feasibility of green solutions",
			"Policy implementation challenges",
		},
		directions: []string{
			"Longitudinal climate studies",
			"Cost-effective sustainable technologies",
			"Policy-economy integration models",
			"Community-based environmental solutions",
		},
	},
	{
		triggers: []string{"health", "medical", "biomedical"},
		gaps: []string{
			"Personalized medicine implementation challenges",
			"Data privacy in healthcare applications",
			"Integration of traditional and modern medicine",
			"Accessibility of advanced medical technologies",
		},
		directions: []string{
			"AI-driven personalized treatment plans",
			"Secure healthcare data systems",
			"Integrative medicine approaches",
			"Affordable medical technology solutions",
		},
	},
}

var genericGapTemplates = []string{
	"Limited interdisciplinary studies on %s",
	"Insufficient real-world application of %s research",
	"Geographical and cultural bias in %s studies",
	"Methodological limitations in current %s research",
}

var genericDirectionTemplates = []string{
	"Cross-disciplinary approaches to %s",
	"Practical implementation frameworks for %s",
	"Global comparative studies on %s",
	"Novel methodologies for %s analysis",
}

// crossDisciplinary and impactAreas are shared across every query bucket.
var crossDisciplinary = []string{
	"Integration with data science methods",
	"Application in healthcare innovation",
	"Combination with sustainable technologies",
	"Use in educational advancements",
}

var impactAreas = []string{
	"Industry 4.0 and automation",
	"Healthcare and wellbeing",
	"Environmental sustainability",
	"Education and skill development",
}

// IdentifyGaps selects the gap and direction lists for the query. Trigger
// matching is substring-based, so short triggers like "ai" also fire inside
// longer words; this matches the established rule behavior.
func IdentifyGaps(query string, papers []domain.Paper) domain.GapAnalysis {
	lowered := strings.ToLower(query)

	for _, rule := range gapRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lowered, trigger) {
				return domain.GapAnalysis{
					Gaps:              rule.gaps,
					Directions:        rule.directions,
					CrossDisciplinary: crossDisciplinary,
					ImpactAreas:       impactAreas,
				}
			}
		}
	}

	gaps := make([]string, 0, len(genericGapTemplates))
	for _, tmpl := range genericGapTemplates {
		gaps = append(gaps, fmt.Sprintf(tmpl, query))
	}
	directions := make([]string, 0, len(genericDirectionTemplates))
	for _, tmpl := range genericDirectionTemplates {
		directions = append(directions, fmt.Sprintf(tmpl, query))
	}

	return domain.GapAnalysis{
		Gaps:              gaps,
		Directions:        directions,
		CrossDisciplinary: crossDisciplinary,
		ImpactAreas:       impactAreas,
	}
}
