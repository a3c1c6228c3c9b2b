package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// PreferenceRepository stores one preferences row per user.
type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID uint) (models.Preference, error)
	Save(ctx context.Context, preference *models.Preference) error
}

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository constructs a preference repository.
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetByUserID(ctx context.Context, userID uint) (models.Preference, error) {
	var preference models.Preference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&preference).Error; err != nil {
		return models.Preference{}, err
	}

	return preference, nil
}

func (r *preferenceRepository) Save(ctx context.Context, preference *models.Preference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"dark_mode", "updated_at"}),
		}).
		Create(preference).Error
}
