package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allAnswers(value int) map[uint]int {
	answers := map[uint]int{}
	for _, q := range psychometricQuestions {
		answers[q.ID] = value
	}
	return answers
}

func TestTraitScoresFullAgreement(t *testing.T) {
	scores := TraitScores(allAnswers(5))
	for _, trait := range Traits() {
		require.Equal(t, 100, scores[trait])
	}
}

func TestTraitScoresUnansweredTraitIsZero(t *testing.T) {
	answers := allAnswers(4)
	// Drop both Neuroticism questions entirely.
	delete(answers, 5)
	delete(answers, 10)

	scores := TraitScores(answers)
	require.Equal(t, 0, scores[TraitNeuroticism])
	require.Equal(t, 80, scores[TraitOpenness])
}

func TestTraitScoresMixedAnswers(t *testing.T) {
	// Openness questions are 1 and 6: (5+2)/2 = 3.5 -> 70.
	answers := map[uint]int{1: 5, 6: 2}
	scores := TraitScores(answers)
	require.Equal(t, 70, scores[TraitOpenness])
	require.Equal(t, 0, scores[TraitConscientiousness])
}

func TestClassifyPersonalityRuleOrder(t *testing.T) {
	cases := []struct {
		name   string
		scores map[string]int
		label  string
	}{
		{
			name:   "innovator",
			scores: map[string]int{TraitOpenness: 90, TraitConscientiousness: 80},
			label:  "The Innovator",
		},
		{
			name:   "collaborator",
			scores: map[string]int{TraitExtraversion: 80, TraitAgreeableness: 75},
			label:  "The Collaborator",
		},
		{
			name:   "achiever",
			scores: map[string]int{TraitConscientiousness: 85, TraitNeuroticism: 20},
			label:  "The Achiever",
		},
		{
			name:   "thinker",
			scores: map[string]int{TraitOpenness: 80, TraitExtraversion: 20, TraitConscientiousness: 50},
			label:  "The Thinker",
		},
		{
			name:   "default",
			scores: map[string]int{TraitOpenness: 50, TraitConscientiousness: 50},
			label:  "The Balanced Professional",
		},
		{
			// Matches both innovator and achiever; first rule wins.
			name:   "first match wins",
			scores: map[string]int{TraitOpenness: 90, TraitConscientiousness: 90, TraitNeuroticism: 10},
			label:  "The Innovator",
		},
		{
			// Cutoffs are strict: exactly 70 does not count as above.
			name:   "boundary not above",
			scores: map[string]int{TraitOpenness: 70, TraitConscientiousness: 70},
			label:  "The Balanced Professional",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := ClassifyPersonality(tc.scores)
			require.Equal(t, tc.label, profile.Label)
			require.NotEmpty(t, profile.Description)
			require.NotEmpty(t, profile.Careers)
		})
	}
}

func TestPsychometricQuestionBank(t *testing.T) {
	questions := PsychometricQuestions()
	require.Len(t, questions, 10)

	perTrait := map[string]int{}
	for _, q := range questions {
		perTrait[q.Trait]++
	}
	for _, trait := range Traits() {
		require.Equal(t, 2, perTrait[trait], trait)
	}
}
