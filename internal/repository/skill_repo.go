package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// SkillRepository stores the user's normalised skill set.
type SkillRepository interface {
	Add(ctx context.Context, skill *models.UserSkill) error
	Remove(ctx context.Context, userID uint, name string) (int64, error)
	ListByUserID(ctx context.Context, userID uint) ([]models.UserSkill, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository constructs a skill repository.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

// Add inserts a skill; re-adding an existing name is a no-op.
func (r *skillRepository) Add(ctx context.Context, skill *models.UserSkill) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(skill).Error
}

func (r *skillRepository) Remove(ctx context.Context, userID uint, name string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Delete(&models.UserSkill{})

	return result.RowsAffected, result.Error
}

func (r *skillRepository) ListByUserID(ctx context.Context, userID uint) ([]models.UserSkill, error) {
	var skills []models.UserSkill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&skills).Error

	return skills, err
}
