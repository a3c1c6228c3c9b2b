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
)

// PreferenceService reads and writes per-user UI preferences.
type PreferenceService interface {
	Get(ctx context.Context, userID uint) (dto.PreferenceResponse, error)
	Update(ctx context.Context, userID uint, payload dto.PreferenceUpdateRequest) (dto.PreferenceResponse, error)
}

type preferenceService struct {
	preferences repository.PreferenceRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewPreferenceService constructs a PreferenceService instance.
func NewPreferenceService(preferenceRepo repository.PreferenceRepository, validate *validator.Validate, logger zerolog.Logger) PreferenceService {
	return &preferenceService{
		preferences: preferenceRepo,
		validator:   validate,
		logger:      logger.With().Str("component", "preference_service").Logger(),
		now:         time.Now,
	}
}

// Get returns the stored preferences; users without a row default to dark
// mode off.
func (s *preferenceService) Get(ctx context.Context, userID uint) (dto.PreferenceResponse, error) {
	preference, err := s.preferences.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.PreferenceResponse{DarkMode: "false"}, nil
	} else if err != nil {
		return dto.PreferenceResponse{}, err
	}

	return dto.PreferenceResponse{DarkMode: preference.DarkMode}, nil
}

func (s *preferenceService) Update(ctx context.Context, userID uint, payload dto.PreferenceUpdateRequest) (dto.PreferenceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PreferenceResponse{}, err
	}

	preference := models.Preference{
		UserID:    userID,
		DarkMode:  payload.DarkMode,
		UpdatedAt: s.now(),
	}
	if err := s.preferences.Save(ctx, &preference); err != nil {
		return dto.PreferenceResponse{}, err
	}

	return dto.PreferenceResponse{DarkMode: preference.DarkMode}, nil
}
