package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
)

const adminStatsCacheKey = "admin:stats"

// AdminService aggregates platform-wide statistics for administrators.
type AdminService interface {
	Stats(ctx context.Context) (dto.AdminStatsResponse, error)
}

type adminService struct {
	repo     repository.AdminRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewAdminService constructs the admin statistics service.
func NewAdminService(repo repository.AdminRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AdminService {
	return &adminService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "admin_service").Logger(),
	}
}

func (s *adminService) Stats(ctx context.Context) (dto.AdminStatsResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, adminStatsCacheKey).Result()
		if err == nil {
			var response dto.AdminStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read admin stats cache")
		}
	}

	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return dto.AdminStatsResponse{}, err
	}

	response := dto.AdminStatsResponse{
		Users:              counts.Users,
		PremiumUsers:       counts.PremiumUsers,
		Profiles:           counts.Profiles,
		SkillTestResults:   counts.SkillTestResults,
		PsychometricTests:  counts.PsychometricTests,
		Marksheets:         counts.Marksheets,
		LearningActivities: counts.LearningActivities,
		MentorMessages:     counts.MentorMessages,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, adminStatsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store admin stats cache")
			}
		}
	}

	return response, nil
}
