package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
	"github.com/mindstep-labs/mindstep-api/internal/scoring"
)

// ErrActivityNotFound indicates the activity does not exist for the user.
var ErrActivityNotFound = errors.New("activity not found")

// ErrGoalNotFound indicates the goal does not exist for the user.
var ErrGoalNotFound = errors.New("goal not found")

// LearningService manages tracker activities, goals and the weekly overview.
type LearningService interface {
	Overview(ctx context.Context, userID uint) (dto.LearningOverviewResponse, error)
	AddActivity(ctx context.Context, userID uint, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error)
	DeleteActivity(ctx context.Context, userID, id uint) error
	AddGoal(ctx context.Context, userID uint, payload dto.GoalCreateRequest) (dto.GoalResponse, error)
	ToggleGoal(ctx context.Context, userID, id uint) (dto.GoalResponse, error)
	DeleteGoal(ctx context.Context, userID, id uint) error
}

type learningService struct {
	learning  repository.LearningRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewLearningService constructs a LearningService instance.
func NewLearningService(learningRepo repository.LearningRepository, validate *validator.Validate, logger zerolog.Logger) LearningService {
	return &learningService{
		learning:  learningRepo,
		validator: validate,
		logger:    logger.With().Str("component", "learning_service").Logger(),
		now:       time.Now,
	}
}

func (s *learningService) Overview(ctx context.Context, userID uint) (dto.LearningOverviewResponse, error) {
	activities, err := s.learning.ListActivities(ctx, userID)
	if err != nil {
		return dto.LearningOverviewResponse{}, err
	}
	goals, err := s.learning.ListGoals(ctx, userID)
	if err != nil {
		return dto.LearningOverviewResponse{}, err
	}

	entries := make([]scoring.ActivityEntry, 0, len(activities))
	for _, activity := range activities {
		entries = append(entries, scoring.ActivityEntry{Hours: activity.Hours, Date: activity.Date})
	}
	weekly := scoring.WeeklyBuckets(entries, s.now())

	response := dto.LearningOverviewResponse{
		Weekly:     weekly,
		Totals:     scoring.SummarizeLearning(entries, weekly),
		Activities: make([]dto.ActivityResponse, 0, len(activities)),
		Goals:      make([]dto.GoalResponse, 0, len(goals)),
	}
	for _, activity := range activities {
		response.Activities = append(response.Activities, dto.NewActivityResponse(activity))
	}
	for _, goal := range goals {
		response.Goals = append(response.Goals, dto.NewGoalResponse(goal))
	}

	return response, nil
}

func (s *learningService) AddActivity(ctx context.Context, userID uint, payload dto.ActivityCreateRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return dto.ActivityResponse{}, err
	}

	activity := models.LearningActivity{
		UserID:      userID,
		Title:       payload.Title,
		Category:    payload.Category,
		Hours:       payload.Hours,
		Date:        date,
		Description: payload.Description,
		CreatedAt:   s.now(),
	}
	if err := s.learning.CreateActivity(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity), nil
}

func (s *learningService) DeleteActivity(ctx context.Context, userID, id uint) error {
	deleted, err := s.learning.DeleteActivity(ctx, userID, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrActivityNotFound
	}

	return nil
}

func (s *learningService) AddGoal(ctx context.Context, userID uint, payload dto.GoalCreateRequest) (dto.GoalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GoalResponse{}, err
	}

	goal := models.LearningGoal{
		UserID:      userID,
		Title:       payload.Title,
		Category:    payload.Category,
		TargetHours: payload.TargetHours,
		Deadline:    payload.Deadline,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if err := s.learning.CreateGoal(ctx, &goal); err != nil {
		return dto.GoalResponse{}, err
	}

	return dto.NewGoalResponse(goal), nil
}

// ToggleGoal flips the manual completion flag. Accumulated hours never
// change it.
func (s *learningService) ToggleGoal(ctx context.Context, userID, id uint) (dto.GoalResponse, error) {
	goal, err := s.learning.GetGoal(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.GoalResponse{}, ErrGoalNotFound
	} else if err != nil {
		return dto.GoalResponse{}, err
	}

	goal.Completed = !goal.Completed
	goal.UpdatedAt = s.now()
	if err := s.learning.SaveGoal(ctx, &goal); err != nil {
		return dto.GoalResponse{}, err
	}

	return dto.NewGoalResponse(goal), nil
}

func (s *learningService) DeleteGoal(ctx context.Context, userID, id uint) error {
	deleted, err := s.learning.DeleteGoal(ctx, userID, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrGoalNotFound
	}

	return nil
}
