// Package scoring implements the deterministic score derivations behind the
// assessment endpoints: skill-test grading, psychometric trait profiles,
// marksheet analysis and career matching. Everything here is pure computation
// over small fixed inputs; persistence lives in the service layer.
package scoring

import "math"

// Skill-test status bands.
const (
	StatusExcellent        = "excellent"
	StatusGood             = "good"
	StatusNeedsImprovement = "needs improvement"
)

// SkillQuestion is a single multiple-choice question with one correct option.
type SkillQuestion struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Correct int      `json:"-"`
}

// SkillCategory bundles the question bank for one test category.
type SkillCategory struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Questions   []SkillQuestion `json:"questions"`
}

// SkillTestScore is the derived outcome of one graded test.
type SkillTestScore struct {
	Answered   int
	Correct    int
	Total      int
	Percentage int
	Status     string
}

// GradeSkillTest grades the given answers (question index -> chosen option)
// against a question bank. An empty bank yields a zero percentage rather
// than a division by zero.
func GradeSkillTest(questions []SkillQuestion, answers map[int]int) SkillTestScore {
	correct := 0
	for i, q := range questions {
		if chosen, ok := answers[i]; ok && chosen == q.Correct {
			correct++
		}
	}

	return SkillTestScore{
		Answered:   len(answers),
		Correct:    correct,
		Total:      len(questions),
		Percentage: Percentage(correct, len(questions)),
		Status:     SkillTestStatus(Percentage(correct, len(questions))),
	}
}

// SkillTestStatus bands a percentage into the status shown next to a result.
func SkillTestStatus(percentage int) string {
	switch {
	case percentage >= 70:
		return StatusExcellent
	case percentage >= 50:
		return StatusGood
	default:
		return StatusNeedsImprovement
	}
}

// Percentage computes round(100*part/total), with total == 0 defined as 0.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}

	return int(math.Round(100 * float64(part) / float64(total)))
}

// SkillCategories returns the fixed category question banks.
func SkillCategories() []SkillCategory {
	return skillCategories
}

// SkillCategoryByID looks up a category bank by identifier.
func SkillCategoryByID(id string) (SkillCategory, bool) {
	for _, category := range skillCategories {
		if category.ID == id {
			return category, true
		}
	}

	return SkillCategory{}, false
}

var skillCategories = []SkillCategory{
	{
		ID:          "technical",
		Name:        "Technical Skills",
		Description: "Programming, Tools & Technologies",
		Questions: []SkillQuestion{
			{
				Prompt:  "Which programming language is known for web development?",
				Options: []string{"Python", "JavaScript", "C++", "Swift"},
				Correct: 1,
			},
			{
				Prompt:  "What does HTML stand for?",
				Options: []string{"Hyper Text Markup Language", "High Tech Modern Language", "Home Tool Markup Language", "Hyperlinks and Text Markup Language"},
				Correct: 0,
			},
			{
				Prompt:  "Which Git command creates a new branch?",
				Options: []string{"git new branch", "git create branch", "git branch <name>", "git add branch"},
				Correct: 2,
			},
			{
				Prompt:  "What is the purpose of CSS?",
				Options: []string{"Database management", "Styling web pages", "Server-side logic", "Testing code"},
				Correct: 1,
			},
			{
				Prompt:  "Which of these is a JavaScript framework?",
				Options: []string{"Django", "Laravel", "React", "Flask"},
				Correct: 2,
			},
		},
	},
	{
		ID:          "soft",
		Name:        "Soft Skills",
		Description: "Communication & Leadership",
		Questions: []SkillQuestion{
			{
				Prompt:  "A team member disagrees with your approach. What do you do?",
				Options: []string{"Ignore their opinion and continue", "Listen actively and find common ground", "Argue until they agree", "Escalate to management immediately"},
				Correct: 1,
			},
			{
				Prompt:  "You're leading a project and a deadline is missed. How do you respond?",
				Options: []string{"Blame the team member responsible", "Analyze what went wrong and adjust the plan", "Panic and overwork everyone", "Hide the issue from stakeholders"},
				Correct: 1,
			},
			{
				Prompt:  "During a presentation, you forget key points. What should you do?",
				Options: []string{"Freeze and give up", "Make up false information", "Stay calm, acknowledge it, and move forward", "Blame the presentation software"},
				Correct: 2,
			},
			{
				Prompt:  "A colleague takes credit for your work. Your response?",
				Options: []string{"Confront them publicly", "Discuss privately and clarify facts with manager", "Do nothing and let it go", "Spread negative rumors about them"},
				Correct: 1,
			},
			{
				Prompt:  "You receive constructive criticism. How do you handle it?",
				Options: []string{"Get defensive and argue", "Accept gracefully and work on improvement", "Ignore it completely", "Take it personally and sulk"},
				Correct: 1,
			},
		},
	},
	{
		ID:          "aptitude",
		Name:        "Aptitude",
		Description: "Logical Reasoning & Problem Solving",
		Questions: []SkillQuestion{
			{
				Prompt:  "If 5 + 3 = 28, 9 + 1 = 810, 8 + 6 = 214, then 5 + 4 = ?",
				Options: []string{"19", "91", "20", "45"},
				Correct: 0,
			},
			{
				Prompt:  "Find the next number in sequence: 2, 6, 12, 20, 30, ?",
				Options: []string{"40", "42", "38", "44"},
				Correct: 1,
			},
			{
				Prompt:  "If CAT is coded as 3120, what is DOG?",
				Options: []string{"4157", "41517", "4147", "41516"},
				Correct: 0,
			},
			{
				Prompt:  "A clock shows 3:15. What is the angle between hour and minute hands?",
				Options: []string{"0°", "7.5°", "15°", "22.5°"},
				Correct: 1,
			},
			{
				Prompt:  "Complete the series: J, F, M, A, M, ?",
				Options: []string{"J", "A", "S", "N"},
				Correct: 0,
			},
		},
	},
}
