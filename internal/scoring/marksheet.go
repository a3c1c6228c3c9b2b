package scoring

import (
	"errors"
	"sort"
)

// ErrNoSubjects indicates a marksheet was submitted without any subject rows.
var ErrNoSubjects = errors.New("marksheet has no subjects")

// Streams recognised by the marksheet analyzer and profile editor.
var Streams = []string{"PCM", "PCB", "PCMB", "Commerce", "Arts"}

// StreamSubjects lists the main subjects pre-filled for each stream.
var StreamSubjects = map[string][]string{
	"PCM":      {"Physics", "Chemistry", "Mathematics"},
	"PCB":      {"Physics", "Chemistry", "Biology"},
	"PCMB":     {"Physics", "Chemistry", "Mathematics", "Biology"},
	"Commerce": {"Accountancy", "Business Studies", "Economics"},
	"Arts":     {"History", "Political Science", "Economics", "Sociology"},
}

// Subject is one (name, marks) row of a marksheet. Marks are clamped to 0..100
// at the validation boundary before analysis.
type Subject struct {
	Name  string `json:"name"`
	Marks int    `json:"marks"`
}

// MarksheetAnalysis is the derived outcome of one analysed marksheet.
type MarksheetAnalysis struct {
	Total             int
	Percentage        int
	Grade             string
	TopSubjects       []string
	RecommendedFields []string
}

// AnalyzeMarksheet derives percentage, grade, top subjects and recommended
// fields for the given subjects. Fails with ErrNoSubjects on an empty list
// rather than dividing by zero.
func AnalyzeMarksheet(subjects []Subject, stream string) (MarksheetAnalysis, error) {
	if len(subjects) == 0 {
		return MarksheetAnalysis{}, ErrNoSubjects
	}

	total := 0
	for _, subject := range subjects {
		total += subject.Marks
	}

	percentage := Percentage(total, 100*len(subjects))

	// Top 3 by marks; ties keep input order.
	sorted := make([]Subject, len(subjects))
	copy(sorted, subjects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Marks > sorted[j].Marks
	})

	top := make([]string, 0, 3)
	for i := 0; i < len(sorted) && i < 3; i++ {
		top = append(top, sorted[i].Name)
	}

	return MarksheetAnalysis{
		Total:             total,
		Percentage:        percentage,
		Grade:             Grade(percentage),
		TopSubjects:       top,
		RecommendedFields: RecommendedFields(stream),
	}, nil
}

// Grade maps a percentage to a letter grade. Band lower bounds are inclusive.
func Grade(percentage int) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C"
	default:
		return "D"
	}
}

// RecommendedFields maps a declared stream to suggested study fields. Unknown
// or absent streams fall back to a generic list.
func RecommendedFields(stream string) []string {
	switch stream {
	case "PCM", "PCMB":
		return []string{"Engineering", "Computer Science", "Data Science", "Research"}
	case "PCB":
		return []string{"Medicine", "Biotechnology", "Life Sciences", "Healthcare"}
	case "Commerce":
		return []string{"Business", "Finance", "CA", "Economics"}
	case "Arts":
		return []string{"Humanities", "Social Work", "Law", "Journalism"}
	default:
		return []string{"Science", "Commerce", "Arts", "Technology"}
	}
}
