package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGradeSkillTestTechnical(t *testing.T) {
	category, ok := SkillCategoryByID("technical")
	require.True(t, ok)
	require.Len(t, category.Questions, 5)

	// Four correct answers, one wrong.
	score := GradeSkillTest(category.Questions, map[int]int{0: 1, 1: 0, 2: 2, 3: 1, 4: 3})

	require.Equal(t, 5, score.Answered)
	require.Equal(t, 4, score.Correct)
	require.Equal(t, 5, score.Total)
	require.Equal(t, 80, score.Percentage)
	require.Equal(t, StatusExcellent, score.Status)
}

func TestGradeSkillTestPartialAnswers(t *testing.T) {
	category, ok := SkillCategoryByID("soft")
	require.True(t, ok)

	score := GradeSkillTest(category.Questions, map[int]int{0: 1, 1: 1})

	require.Equal(t, 2, score.Answered)
	require.Equal(t, 2, score.Correct)
	require.Equal(t, 40, score.Percentage)
	require.Equal(t, StatusNeedsImprovement, score.Status)
}

func TestGradeSkillTestEmptyBank(t *testing.T) {
	score := GradeSkillTest(nil, map[int]int{0: 0})

	require.Equal(t, 0, score.Percentage)
	require.Equal(t, StatusNeedsImprovement, score.Status)
}

func TestSkillTestStatusBands(t *testing.T) {
	cases := []struct {
		percentage int
		status     string
	}{
		{100, StatusExcellent},
		{70, StatusExcellent},
		{69, StatusGood},
		{50, StatusGood},
		{49, StatusNeedsImprovement},
		{0, StatusNeedsImprovement},
	}
	for _, tc := range cases {
		require.Equal(t, tc.status, SkillTestStatus(tc.percentage), "percentage %d", tc.percentage)
	}
}

func TestPercentageBounds(t *testing.T) {
	require.Equal(t, 0, Percentage(3, 0))
	require.Equal(t, 0, Percentage(0, 5))
	require.Equal(t, 100, Percentage(5, 5))
	require.Equal(t, 67, Percentage(2, 3))

	// Any part within total stays inside 0..100.
	for total := 1; total <= 10; total++ {
		for part := 0; part <= total; part++ {
			p := Percentage(part, total)
			require.GreaterOrEqual(t, p, 0)
			require.LessOrEqual(t, p, 100)
		}
	}
}

func TestSkillCategoriesFixed(t *testing.T) {
	categories := SkillCategories()
	require.Len(t, categories, 3)
	for _, category := range categories {
		require.Len(t, category.Questions, 5)
		for _, q := range category.Questions {
			require.GreaterOrEqual(t, q.Correct, 0)
			require.Less(t, q.Correct, len(q.Options))
		}
	}

	_, ok := SkillCategoryByID("history")
	require.False(t, ok)
}
