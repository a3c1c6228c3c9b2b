package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
	"github.com/mindstep-labs/mindstep-api/internal/scoring"
)

// ErrUnknownCategory indicates the requested skill-test category does not exist.
var ErrUnknownCategory = errors.New("unknown skill test category")

// ErrNoSubjects indicates a marksheet was submitted without subject rows.
var ErrNoSubjects = scoring.ErrNoSubjects

// ErrMarksheetNotFound indicates the marksheet does not exist for the user.
var ErrMarksheetNotFound = errors.New("marksheet not found")

// AssessmentService grades and stores skill tests, psychometric assessments
// and marksheet analyses.
type AssessmentService interface {
	ListSkillTestCategories(ctx context.Context) []dto.SkillTestCategoryResponse
	SubmitSkillTest(ctx context.Context, userID uint, categoryID string, payload dto.SkillTestSubmitRequest) (dto.SkillTestResultResponse, error)
	SkillTestHistory(ctx context.Context, userID uint) ([]dto.SkillTestResultResponse, error)
	PsychometricQuestions(ctx context.Context) []scoring.PsychometricQuestion
	SubmitPsychometric(ctx context.Context, userID uint, payload dto.PsychometricSubmitRequest) (dto.PsychometricResultResponse, error)
	LatestPsychometric(ctx context.Context, userID uint) (dto.PsychometricResultResponse, error)
	AnalyzeMarksheet(ctx context.Context, userID uint, payload dto.MarksheetAnalyzeRequest) (dto.MarksheetResponse, error)
	ListMarksheets(ctx context.Context, userID uint) ([]dto.MarksheetResponse, error)
	DeleteMarksheet(ctx context.Context, userID, id uint) error
}

type assessmentService struct {
	assessments repository.AssessmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssessmentService constructs an AssessmentService instance.
func NewAssessmentService(assessmentRepo repository.AssessmentRepository, validate *validator.Validate, logger zerolog.Logger) AssessmentService {
	return &assessmentService{
		assessments: assessmentRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "assessment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assessmentService) ListSkillTestCategories(ctx context.Context) []dto.SkillTestCategoryResponse {
	categories := scoring.SkillCategories()
	out := make([]dto.SkillTestCategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, dto.NewSkillTestCategoryResponse(category))
	}
	return out
}

func (s *assessmentService) SubmitSkillTest(ctx context.Context, userID uint, categoryID string, payload dto.SkillTestSubmitRequest) (dto.SkillTestResultResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SkillTestResultResponse{}, err
	}

	category, ok := scoring.SkillCategoryByID(categoryID)
	if !ok {
		return dto.SkillTestResultResponse{}, ErrUnknownCategory
	}

	score := scoring.GradeSkillTest(category.Questions, payload.Answers)

	result := models.SkillTestResult{
		UserID:     userID,
		Category:   category.ID,
		Answered:   score.Answered,
		Correct:    score.Correct,
		Total:      score.Total,
		Percentage: score.Percentage,
		Status:     score.Status,
		TakenAt:    s.now(),
	}
	if err := s.assessments.CreateSkillTestResult(ctx, &result); err != nil {
		return dto.SkillTestResultResponse{}, err
	}

	s.logger.Info().
		Uint("user_id", userID).
		Str("category", category.ID).
		Int("percentage", score.Percentage).
		Msg("skill test graded")

	return dto.NewSkillTestResultResponse(result), nil
}

func (s *assessmentService) SkillTestHistory(ctx context.Context, userID uint) ([]dto.SkillTestResultResponse, error) {
	results, err := s.assessments.ListSkillTestResults(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SkillTestResultResponse, 0, len(results))
	for _, result := range results {
		out = append(out, dto.NewSkillTestResultResponse(result))
	}
	return out, nil
}

func (s *assessmentService) PsychometricQuestions(ctx context.Context) []scoring.PsychometricQuestion {
	return scoring.PsychometricQuestions()
}

func (s *assessmentService) SubmitPsychometric(ctx context.Context, userID uint, payload dto.PsychometricSubmitRequest) (dto.PsychometricResultResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PsychometricResultResponse{}, err
	}

	scores := scoring.TraitScores(payload.Answers)
	profile := scoring.ClassifyPersonality(scores)

	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return dto.PsychometricResultResponse{}, err
	}
	careersJSON, err := json.Marshal(profile.Careers)
	if err != nil {
		return dto.PsychometricResultResponse{}, err
	}

	result := models.PsychometricResult{
		UserID:       userID,
		TraitScores:  datatypes.JSON(scoresJSON),
		ProfileLabel: profile.Label,
		ProfileDesc:  profile.Description,
		Careers:      datatypes.JSON(careersJSON),
		TakenAt:      s.now(),
	}
	if err := s.assessments.CreatePsychometricResult(ctx, &result); err != nil {
		return dto.PsychometricResultResponse{}, err
	}

	s.logger.Info().Uint("user_id", userID).Str("profile", profile.Label).Msg("psychometric assessment classified")

	return dto.NewPsychometricResultResponse(result), nil
}

func (s *assessmentService) LatestPsychometric(ctx context.Context, userID uint) (dto.PsychometricResultResponse, error) {
	result, err := s.assessments.LatestPsychometricResult(ctx, userID)
	if err != nil {
		return dto.PsychometricResultResponse{}, err
	}

	return dto.NewPsychometricResultResponse(result), nil
}

func (s *assessmentService) AnalyzeMarksheet(ctx context.Context, userID uint, payload dto.MarksheetAnalyzeRequest) (dto.MarksheetResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MarksheetResponse{}, err
	}

	subjects := make([]scoring.Subject, 0, len(payload.Subjects))
	stored := make([]models.MarksheetSubject, 0, len(payload.Subjects))
	for _, subject := range payload.Subjects {
		subjects = append(subjects, scoring.Subject{Name: subject.Name, Marks: subject.Marks})
		stored = append(stored, models.MarksheetSubject{Name: subject.Name, Marks: subject.Marks})
	}

	analysis, err := scoring.AnalyzeMarksheet(subjects, payload.Stream)
	if err != nil {
		return dto.MarksheetResponse{}, err
	}

	subjectsJSON, err := json.Marshal(stored)
	if err != nil {
		return dto.MarksheetResponse{}, err
	}
	topJSON, err := json.Marshal(analysis.TopSubjects)
	if err != nil {
		return dto.MarksheetResponse{}, err
	}
	fieldsJSON, err := json.Marshal(analysis.RecommendedFields)
	if err != nil {
		return dto.MarksheetResponse{}, err
	}

	marksheet := models.Marksheet{
		UserID:            userID,
		Class:             payload.Class,
		Stream:            payload.Stream,
		Subjects:          datatypes.JSON(subjectsJSON),
		Total:             analysis.Total,
		Percentage:        analysis.Percentage,
		Grade:             analysis.Grade,
		TopSubjects:       datatypes.JSON(topJSON),
		RecommendedFields: datatypes.JSON(fieldsJSON),
		TakenAt:           s.now(),
	}
	if err := s.assessments.CreateMarksheet(ctx, &marksheet); err != nil {
		return dto.MarksheetResponse{}, err
	}

	s.logger.Info().
		Uint("user_id", userID).
		Int("percentage", analysis.Percentage).
		Str("grade", analysis.Grade).
		Msg("marksheet analysed")

	return dto.NewMarksheetResponse(marksheet), nil
}

func (s *assessmentService) ListMarksheets(ctx context.Context, userID uint) ([]dto.MarksheetResponse, error) {
	marksheets, err := s.assessments.ListMarksheets(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MarksheetResponse, 0, len(marksheets))
	for _, marksheet := range marksheets {
		out = append(out, dto.NewMarksheetResponse(marksheet))
	}
	return out, nil
}

func (s *assessmentService) DeleteMarksheet(ctx context.Context, userID, id uint) error {
	deleted, err := s.assessments.DeleteMarksheet(ctx, userID, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrMarksheetNotFound
	}

	return nil
}
