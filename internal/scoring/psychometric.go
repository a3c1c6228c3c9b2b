package scoring

import "math"

// The five fixed psychometric trait categories, in display order.
const (
	TraitOpenness          = "Openness"
	TraitConscientiousness = "Conscientiousness"
	TraitExtraversion      = "Extraversion"
	TraitAgreeableness     = "Agreeableness"
	TraitNeuroticism       = "Neuroticism"
)

// Traits lists the trait categories in their fixed order.
func Traits() []string {
	return []string{TraitOpenness, TraitConscientiousness, TraitExtraversion, TraitAgreeableness, TraitNeuroticism}
}

// PsychometricQuestion maps one Likert-scale question to a trait.
type PsychometricQuestion struct {
	ID       uint   `json:"id"`
	Trait    string `json:"trait"`
	Question string `json:"question"`
	Tip      string `json:"tip"`
}

// PersonalityProfile is the label chosen for a set of trait scores.
type PersonalityProfile struct {
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Careers     []string `json:"careers"`
}

// TraitScores averages the Likert answers (question id -> 1..5) per trait and
// normalises each average to 0..100. A trait with no answered questions
// scores 0, never NaN.
func TraitScores(answers map[uint]int) map[string]int {
	totals := map[string]int{}
	counts := map[string]int{}
	for _, q := range psychometricQuestions {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		totals[q.Trait] += answer
		counts[q.Trait]++
	}

	scores := map[string]int{}
	for _, trait := range Traits() {
		if counts[trait] == 0 {
			scores[trait] = 0
			continue
		}
		mean := float64(totals[trait]) / float64(counts[trait])
		scores[trait] = int(math.Round(100 * mean / 5))
	}

	return scores
}

// ClassifyPersonality evaluates the ordered profile rules against the trait
// scores. The first matching rule wins; the final rule has no conditions and
// always matches.
func ClassifyPersonality(scores map[string]int) PersonalityProfile {
	for _, rule := range personalityRules {
		if rule.matches(scores) {
			return rule.Profile
		}
	}

	// Unreachable: the last rule is unconditional.
	return personalityRules[len(personalityRules)-1].Profile
}

type traitCondition struct {
	Trait  string
	Above  bool
	Cutoff int
}

func (c traitCondition) holds(scores map[string]int) bool {
	score := scores[c.Trait]
	if c.Above {
		return score > c.Cutoff
	}
	return score < c.Cutoff
}

type personalityRule struct {
	Conditions []traitCondition
	Profile    PersonalityProfile
}

func (r personalityRule) matches(scores map[string]int) bool {
	for _, condition := range r.Conditions {
		if !condition.holds(scores) {
			return false
		}
	}
	return true
}

var personalityRules = []personalityRule{
	{
		Conditions: []traitCondition{
			{Trait: TraitOpenness, Above: true, Cutoff: 70},
			{Trait: TraitConscientiousness, Above: true, Cutoff: 70},
		},
		Profile: PersonalityProfile{
			Label:       "The Innovator",
			Description: "You combine creativity with discipline, making you excellent at bringing ideas to life.",
			Careers:     []string{"Product Manager", "Entrepreneur", "UX Designer"},
		},
	},
	{
		Conditions: []traitCondition{
			{Trait: TraitExtraversion, Above: true, Cutoff: 70},
			{Trait: TraitAgreeableness, Above: true, Cutoff: 70},
		},
		Profile: PersonalityProfile{
			Label:       "The Collaborator",
			Description: "You excel in team environments and building relationships.",
			Careers:     []string{"Team Lead", "HR Manager", "Sales Manager"},
		},
	},
	{
		Conditions: []traitCondition{
			{Trait: TraitConscientiousness, Above: true, Cutoff: 70},
			{Trait: TraitNeuroticism, Above: false, Cutoff: 30},
		},
		Profile: PersonalityProfile{
			Label:       "The Achiever",
			Description: "You're organized, reliable, and handle pressure well.",
			Careers:     []string{"Project Manager", "Operations Manager", "Engineer"},
		},
	},
	{
		Conditions: []traitCondition{
			{Trait: TraitOpenness, Above: true, Cutoff: 70},
			{Trait: TraitExtraversion, Above: false, Cutoff: 30},
		},
		Profile: PersonalityProfile{
			Label:       "The Thinker",
			Description: "You prefer deep, independent work and creative problem-solving.",
			Careers:     []string{"Data Scientist", "Researcher", "Software Developer"},
		},
	},
	{
		// Mandatory default.
		Profile: PersonalityProfile{
			Label:       "The Balanced Professional",
			Description: "You have a well-rounded personality adaptable to various roles.",
			Careers:     []string{"Business Analyst", "Consultant", "Full Stack Developer"},
		},
	},
}

// PsychometricQuestions returns the fixed Likert question bank.
func PsychometricQuestions() []PsychometricQuestion {
	return psychometricQuestions
}

var psychometricQuestions = []PsychometricQuestion{
	{ID: 1, Trait: TraitOpenness, Question: "I enjoy exploring new ideas and trying different approaches to problems.", Tip: "Think about how you react to new experiences and learning opportunities."},
	{ID: 2, Trait: TraitConscientiousness, Question: "I prefer to plan things in advance and stick to schedules.", Tip: "Consider your organizational habits and attention to detail."},
	{ID: 3, Trait: TraitExtraversion, Question: "I feel energized when working with others and socializing.", Tip: "Reflect on whether you recharge through social interaction or alone time."},
	{ID: 4, Trait: TraitAgreeableness, Question: "I prioritize maintaining harmony and helping others over my own interests.", Tip: "Think about how you handle conflicts and your approach to teamwork."},
	{ID: 5, Trait: TraitNeuroticism, Question: "I often worry about things that might go wrong.", Tip: "Consider your emotional responses to stress and uncertainty."},
	{ID: 6, Trait: TraitOpenness, Question: "I enjoy creative and artistic activities more than routine tasks.", Tip: "Think about your preference for creativity vs. structure."},
	{ID: 7, Trait: TraitConscientiousness, Question: "I complete tasks thoroughly even when they're difficult or boring.", Tip: "Reflect on your persistence and attention to quality."},
	{ID: 8, Trait: TraitExtraversion, Question: "I am usually the one to initiate conversations in social settings.", Tip: "Consider your comfort level with taking social initiative."},
	{ID: 9, Trait: TraitAgreeableness, Question: "I find it easy to trust others and see the best in people.", Tip: "Think about your default assumptions about others' intentions."},
	{ID: 10, Trait: TraitNeuroticism, Question: "I remain calm and composed even in stressful situations.", Tip: "Reflect on your emotional stability under pressure."},
}
