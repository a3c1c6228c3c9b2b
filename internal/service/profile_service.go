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

// ErrStreamRequired indicates class 11-12 school profiles need a stream.
var ErrStreamRequired = errors.New("stream is required for classes 11 and 12")

// ErrUnknownStream indicates the submitted stream is not recognised.
var ErrUnknownStream = errors.New("unknown stream")

// ErrStageFieldMismatch indicates fields from the other education stage were sent.
var ErrStageFieldMismatch = errors.New("fields do not match education stage")

// DefaultAvatarID is assigned when a save omits the avatar.
const DefaultAvatarID = "boy1"

// ProfileService loads and saves the per-user profile.
type ProfileService interface {
	Load(ctx context.Context, userID uint) (dto.ProfileResponse, error)
	Save(ctx context.Context, userID uint, payload dto.ProfileSaveRequest) (dto.ProfileResponse, error)
}

type profileService struct {
	profiles  repository.ProfileRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewProfileService constructs a ProfileService instance.
func NewProfileService(profileRepo repository.ProfileRepository, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	return &profileService{
		profiles:  profileRepo,
		validator: validate,
		logger:    logger.With().Str("component", "profile_service").Logger(),
		now:       time.Now,
	}
}

// Load returns the stored profile, or an empty default when the user has
// never saved one.
func (s *profileService) Load(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.NewProfileResponse(models.Profile{AvatarID: DefaultAvatarID}), nil
	} else if err != nil {
		return dto.ProfileResponse{}, err
	}

	return dto.NewProfileResponse(profile), nil
}

// Save validates and replaces the whole profile row.
func (s *profileService) Save(ctx context.Context, userID uint, payload dto.ProfileSaveRequest) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}
	if err := validateStageFields(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	if payload.AvatarID == "" {
		payload.AvatarID = DefaultAvatarID
	}

	profile := models.Profile{
		UserID:         userID,
		DisplayName:    payload.DisplayName,
		Gender:         payload.Gender,
		AvatarID:       payload.AvatarID,
		EducationStage: payload.EducationStage,
		SchoolName:     payload.SchoolName,
		SchoolClass:    payload.SchoolClass,
		SchoolStream:   payload.SchoolStream,
		CollegeName:    payload.CollegeName,
		CollegeCourse:  payload.CollegeCourse,
		CollegeBranch:  payload.CollegeBranch,
		CollegeYear:    payload.CollegeYear,
		UpdatedAt:      s.now(),
	}

	if existing, err := s.profiles.GetByUserID(ctx, userID); err == nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProfileResponse{}, err
	} else {
		profile.CreatedAt = profile.UpdatedAt
	}

	if err := s.profiles.Save(ctx, &profile); err != nil {
		return dto.ProfileResponse{}, err
	}

	s.logger.Info().Uint("user_id", userID).Str("stage", profile.EducationStage).Msg("profile saved")

	return dto.NewProfileResponse(profile), nil
}

// validateStageFields enforces the stage split: school saves must not carry
// college fields and vice versa, and classes 11-12 require a known stream.
func validateStageFields(payload dto.ProfileSaveRequest) error {
	switch payload.EducationStage {
	case models.EducationSchool:
		if payload.CollegeName != "" || payload.CollegeCourse != "" || payload.CollegeBranch != "" || payload.CollegeYear != "" {
			return ErrStageFieldMismatch
		}
		if payload.SchoolClass == "11" || payload.SchoolClass == "12" {
			if payload.SchoolStream == "" {
				return ErrStreamRequired
			}
			if !knownStream(payload.SchoolStream) {
				return ErrUnknownStream
			}
		}
	case models.EducationCollege:
		if payload.SchoolName != "" || payload.SchoolClass != "" || payload.SchoolStream != "" {
			return ErrStageFieldMismatch
		}
	}

	return nil
}

func knownStream(stream string) bool {
	for _, s := range scoring.Streams {
		if s == stream {
			return true
		}
	}
	return false
}
