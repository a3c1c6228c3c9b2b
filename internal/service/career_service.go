package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
	"github.com/mindstep-labs/mindstep-api/internal/scoring"
)

// ErrEmptySkill indicates a skill name normalised to the empty string.
var ErrEmptySkill = errors.New("skill name is empty")

// ErrSkillNotFound indicates the skill is not part of the user's set.
var ErrSkillNotFound = errors.New("skill not found")

// CareerService manages the user's skill set and matches it against the
// career catalogue.
type CareerService interface {
	AddSkill(ctx context.Context, userID uint, payload dto.SkillAddRequest) (dto.SkillListResponse, error)
	RemoveSkill(ctx context.Context, userID uint, name string) (dto.SkillListResponse, error)
	ListSkills(ctx context.Context, userID uint) (dto.SkillListResponse, error)
	MatchCareers(ctx context.Context, userID uint) (dto.CareerMatchListResponse, error)
}

type careerService struct {
	skills    repository.SkillRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCareerService constructs a CareerService instance.
func NewCareerService(skillRepo repository.SkillRepository, validate *validator.Validate, logger zerolog.Logger) CareerService {
	return &careerService{
		skills:    skillRepo,
		validator: validate,
		logger:    logger.With().Str("component", "career_service").Logger(),
	}
}

func (s *careerService) AddSkill(ctx context.Context, userID uint, payload dto.SkillAddRequest) (dto.SkillListResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SkillListResponse{}, err
	}

	name := scoring.NormalizeSkill(payload.Name)
	if name == "" {
		return dto.SkillListResponse{}, ErrEmptySkill
	}

	if err := s.skills.Add(ctx, &models.UserSkill{UserID: userID, Name: name}); err != nil {
		return dto.SkillListResponse{}, err
	}

	return s.ListSkills(ctx, userID)
}

func (s *careerService) RemoveSkill(ctx context.Context, userID uint, name string) (dto.SkillListResponse, error) {
	normalized := scoring.NormalizeSkill(name)
	removed, err := s.skills.Remove(ctx, userID, normalized)
	if err != nil {
		return dto.SkillListResponse{}, err
	}
	if removed == 0 {
		return dto.SkillListResponse{}, ErrSkillNotFound
	}

	return s.ListSkills(ctx, userID)
}

func (s *careerService) ListSkills(ctx context.Context, userID uint) (dto.SkillListResponse, error) {
	skills, err := s.skills.ListByUserID(ctx, userID)
	if err != nil {
		return dto.SkillListResponse{}, err
	}

	return dto.NewSkillListResponse(skills), nil
}

func (s *careerService) MatchCareers(ctx context.Context, userID uint) (dto.CareerMatchListResponse, error) {
	skills, err := s.skills.ListByUserID(ctx, userID)
	if err != nil {
		return dto.CareerMatchListResponse{}, err
	}

	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		names = append(names, skill.Name)
	}

	return dto.NewCareerMatchListResponse(scoring.MatchCareers(names)), nil
}
