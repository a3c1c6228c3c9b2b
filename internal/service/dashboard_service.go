package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
	"github.com/mindstep-labs/mindstep-api/internal/scoring"
)

// The dashboard counts six journey components toward overall progress.
const dashboardComponents = 6

// DashboardService aggregates the per-user overview with a redis cache.
type DashboardService interface {
	Summary(ctx context.Context, userID uint) (dto.DashboardResponse, error)
	Invalidate(ctx context.Context, userID uint) error
}

type dashboardService struct {
	users       repository.UserRepository
	profiles    repository.ProfileRepository
	assessments repository.AssessmentRepository
	skills      repository.SkillRepository
	learning    repository.LearningRepository
	redis       *redis.Client
	cachePrefix string
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewDashboardService constructs a DashboardService instance.
func NewDashboardService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, assessmentRepo repository.AssessmentRepository, skillRepo repository.SkillRepository, learningRepo repository.LearningRepository, redisClient *redis.Client, cachePrefix string, cacheTTL time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		users:       userRepo,
		profiles:    profileRepo,
		assessments: assessmentRepo,
		skills:      skillRepo,
		learning:    learningRepo,
		redis:       redisClient,
		cachePrefix: cachePrefix,
		cacheTTL:    cacheTTL,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Summary(ctx context.Context, userID uint) (dto.DashboardResponse, error) {
	if cached, ok := s.fetchCached(ctx, userID); ok {
		cached.CacheHit = true
		return cached, nil
	}

	response, err := s.build(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	s.cache(ctx, userID, response)

	return response, nil
}

// Invalidate drops the cached summary; writes to any dashboard input call it.
func (s *dashboardService) Invalidate(ctx context.Context, userID uint) error {
	if s.redis == nil || s.cachePrefix == "" {
		return nil
	}

	return s.redis.Del(ctx, s.cacheKey(userID)).Err()
}

func (s *dashboardService) build(ctx context.Context, userID uint) (dto.DashboardResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DashboardResponse{}, ErrUserNotFound
	} else if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{User: dto.NewUserResponse(user)}
	completed := 0

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil && profile.IsComplete() {
		response.ProfileComplete = true
		completed++
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DashboardResponse{}, err
	}

	skillTests, err := s.assessments.LatestSkillTestByCategory(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	response.SkillTests = make([]dto.SkillTestResultResponse, 0, len(skillTests))
	for _, result := range skillTests {
		response.SkillTests = append(response.SkillTests, dto.NewSkillTestResultResponse(result))
	}
	if len(skillTests) > 0 {
		completed++
	}

	psychometric, err := s.assessments.LatestPsychometricResult(ctx, userID)
	if err == nil {
		result := dto.NewPsychometricResultResponse(psychometric)
		response.Psychometric = &result
		completed++
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DashboardResponse{}, err
	}

	marksheet, err := s.assessments.LatestMarksheet(ctx, userID)
	if err == nil {
		result := dto.NewMarksheetResponse(marksheet)
		response.Marksheet = &result
		completed++
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.DashboardResponse{}, err
	}

	skills, err := s.skills.ListByUserID(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	response.SkillCount = len(skills)
	if len(skills) > 0 {
		completed++
	}

	activityCount, err := s.learning.CountActivities(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	response.ActivityCount = int(activityCount)
	if activityCount > 0 {
		completed++
	}

	goalsTotal, err := s.learning.CountGoals(ctx, userID, nil)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	done := true
	goalsCompleted, err := s.learning.CountGoals(ctx, userID, &done)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	response.GoalsTotal = int(goalsTotal)
	response.GoalsCompleted = int(goalsCompleted)

	response.ProgressPercent = scoring.Percentage(completed, dashboardComponents)

	return response, nil
}

func (s *dashboardService) fetchCached(ctx context.Context, userID uint) (dto.DashboardResponse, bool) {
	if s.redis == nil || s.cachePrefix == "" {
		return dto.DashboardResponse{}, false
	}

	raw, err := s.redis.Get(ctx, s.cacheKey(userID)).Result()
	if err != nil {
		return dto.DashboardResponse{}, false
	}

	var response dto.DashboardResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		s.logger.Warn().Err(err).Msg("failed to unmarshal cached dashboard")
		return dto.DashboardResponse{}, false
	}

	return response, true
}

func (s *dashboardService) cache(ctx context.Context, userID uint, response dto.DashboardResponse) {
	if s.redis == nil || s.cachePrefix == "" {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal dashboard for cache")
		return
	}

	if err := s.redis.Set(ctx, s.cacheKey(userID), payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache dashboard")
	}
}

func (s *dashboardService) cacheKey(userID uint) string {
	return fmt.Sprintf("%s:%d", s.cachePrefix, userID)
}
