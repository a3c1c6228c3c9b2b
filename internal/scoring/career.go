package scoring

import (
	"regexp"
	"sort"
	"strings"
)

// Career is one entry of the built-in career catalogue.
type Career struct {
	ID             string
	Title          string
	Description    string
	RequiredSkills []string
}

// CareerMatch is a catalogue career scored against a user's skill set.
type CareerMatch struct {
	Career
	Overlap      int
	MatchPercent int
}

var careerCatalogue = []Career{
	{
		ID:             "data_scientist",
		Title:          "Data Scientist",
		Description:    "Works with data, models and analytics to solve problems.",
		RequiredSkills: []string{"python", "statistics", "sql", "ml", "visualization"},
	},
	{
		ID:             "frontend_dev",
		Title:          "Frontend Developer",
		Description:    "Creates user interfaces, focuses on UX and interactive apps.",
		RequiredSkills: []string{"javascript", "react", "html", "css", "design"},
	},
	{
		ID:             "backend_dev",
		Title:          "Backend Developer",
		Description:    "Builds servers, APIs and database systems.",
		RequiredSkills: []string{"node", "sql", "apis", "database", "security"},
	},
	{
		ID:             "product_manager",
		Title:          "Product Manager",
		Description:    "Defines product strategy and coordinates teams.",
		RequiredSkills: []string{"communication", "strategy", "analytics", "ux", "team"},
	},
	{
		ID:             "devops_engineer",
		Title:          "DevOps / Infra",
		Description:    "Automates deployments, ensures reliability and scale.",
		RequiredSkills: []string{"ci/cd", "containers", "cloud", "monitoring", "scripting"},
	},
}

// SuggestedSkills is shown as quick-pick options before matching.
var SuggestedSkills = []string{
	"javascript", "react", "python", "sql", "html",
	"css", "node", "ml", "design", "cloud",
}

// CareerCatalogue returns a copy of the built-in careers in catalogue order.
func CareerCatalogue() []Career {
	out := make([]Career, len(careerCatalogue))
	copy(out, careerCatalogue)
	return out
}

var skillSpaces = regexp.MustCompile(`\s+`)

// NormalizeSkill canonicalizes a skill name for matching: trimmed, lowercased,
// inner whitespace collapsed to underscores.
func NormalizeSkill(s string) string {
	return skillSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
}

// MatchCareers scores every catalogue career against the given skills.
// Results are sorted by match percent descending; equal scores keep
// catalogue order. Skills are normalized before comparison.
func MatchCareers(skills []string) []CareerMatch {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[NormalizeSkill(s)] = true
	}

	matches := make([]CareerMatch, 0, len(careerCatalogue))
	for _, career := range careerCatalogue {
		overlap := 0
		for _, required := range career.RequiredSkills {
			if have[required] {
				overlap++
			}
		}
		matches = append(matches, CareerMatch{
			Career:       career,
			Overlap:      overlap,
			MatchPercent: Percentage(overlap, len(career.RequiredSkills)),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercent > matches[j].MatchPercent
	})
	return matches
}
