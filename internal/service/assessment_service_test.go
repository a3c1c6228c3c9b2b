package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
)

func newAssessmentFixture(t *testing.T, dsn string) AssessmentService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SkillTestResult{}, &models.PsychometricResult{}, &models.Marksheet{}))

	return NewAssessmentService(
		repository.NewAssessmentRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestSubmitSkillTestPersistsHistory(t *testing.T) {
	svc := newAssessmentFixture(t, "file:assess_skill?mode=memory&cache=shared")
	ctx := context.Background()

	result, err := svc.SubmitSkillTest(ctx, 1, "technical", dto.SkillTestSubmitRequest{
		Answers: map[int]int{0: 1, 1: 0, 2: 2, 3: 1, 4: 2},
	})
	require.NoError(t, err)
	require.Equal(t, 5, result.Correct)
	require.Equal(t, 100, result.Percentage)
	require.Equal(t, "excellent", result.Status)

	_, err = svc.SubmitSkillTest(ctx, 1, "soft", dto.SkillTestSubmitRequest{
		Answers: map[int]int{0: 1},
	})
	require.NoError(t, err)

	history, err := svc.SkillTestHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestSubmitSkillTestUnknownCategory(t *testing.T) {
	svc := newAssessmentFixture(t, "file:assess_unknown?mode=memory&cache=shared")

	_, err := svc.SubmitSkillTest(context.Background(), 1, "quantum", dto.SkillTestSubmitRequest{
		Answers: map[int]int{0: 0},
	})
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestSubmitSkillTestEmptyAnswers(t *testing.T) {
	svc := newAssessmentFixture(t, "file:assess_empty?mode=memory&cache=shared")

	_, err := svc.SubmitSkillTest(context.Background(), 1, "technical", dto.SkillTestSubmitRequest{})
	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
}

func TestSubmitPsychometricStoresProfile(t *testing.T) {
	svc := newAssessmentFixture(t, "file:assess_psy?mode=memory&cache=shared")
	ctx := context.Background()

	answers := make(map[uint]int)
	for id := uint(1); id <= 10; id++ {
		answers[id] = 5
	}

	result, err := svc.SubmitPsychometric(ctx, 1, dto.PsychometricSubmitRequest{Answers: answers})
	require.NoError(t, err)
	require.Equal(t, 100, result.TraitScores["Openness"])
	require.Equal(t, "The Innovator", result.ProfileLabel)
	require.NotEmpty(t, result.Careers)

	latest, err := svc.LatestPsychometric(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, result.ProfileLabel, latest.ProfileLabel)
	require.Equal(t, result.TraitScores, latest.TraitScores)
}

func TestSubmitPsychometricRejectsOutOfRangeAnswer(t *testing.T) {
	svc := newAssessmentFixture(t, "file:assess_psy_range?mode=memory&cache=shared")

	_, err := svc.SubmitPsychometric(context.Background(), 1, dto.PsychometricSubmitRequest{
		Answers: map[uint]int{1: 6},
	})
	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
}

func TestLatestPsychometricWhenNone(t *testing.T) {
	svc := newAssessmentFixture(t, "file:assess_psy_none?mode=memory&cache=shared")

	_, err := svc.LatestPsychometric(context.Background(), 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAnalyzeMarksheetLifecycle(t *testing.T) {
	svc := newAssessmentFixture(t, "file:assess_marks?mode=memory&cache=shared")
	ctx := context.Background()

	saved, err := svc.AnalyzeMarksheet(ctx, 1, dto.MarksheetAnalyzeRequest{
		Class:  "12",
		Stream: "PCM",
		Subjects: []dto.MarksheetSubjectInput{
			{Name: "Mathematics", Marks: 92},
			{Name: "Physics", Marks: 88},
			{Name: "Chemistry", Marks: 80},
			{Name: "English", Marks: 76},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 336, saved.Total)
	require.Equal(t, 84, saved.Percentage)
	require.Equal(t, "A", saved.Grade)
	require.Equal(t, []string{"Mathematics", "Physics", "Chemistry"}, saved.TopSubjects)

	list, err := svc.ListMarksheets(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.DeleteMarksheet(ctx, 1, saved.ID))
	require.ErrorIs(t, svc.DeleteMarksheet(ctx, 1, saved.ID), ErrMarksheetNotFound)
}

func TestAnalyzeMarksheetNoSubjectRows(t *testing.T) {
	svc := newAssessmentFixture(t, "file:assess_marks_empty?mode=memory&cache=shared")

	_, err := svc.AnalyzeMarksheet(context.Background(), 1, dto.MarksheetAnalyzeRequest{})
	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
}

func TestDeleteMarksheetScopedToUser(t *testing.T) {
	svc := newAssessmentFixture(t, "file:assess_marks_scope?mode=memory&cache=shared")
	ctx := context.Background()

	saved, err := svc.AnalyzeMarksheet(ctx, 1, dto.MarksheetAnalyzeRequest{
		Subjects: []dto.MarksheetSubjectInput{{Name: "Mathematics", Marks: 90}},
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteMarksheet(ctx, 2, saved.ID), ErrMarksheetNotFound)
}
