package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// LearningRepository stores tracker activities and goals per user.
type LearningRepository interface {
	CreateActivity(ctx context.Context, activity *models.LearningActivity) error
	DeleteActivity(ctx context.Context, userID, id uint) (int64, error)
	ListActivities(ctx context.Context, userID uint) ([]models.LearningActivity, error)
	CreateGoal(ctx context.Context, goal *models.LearningGoal) error
	GetGoal(ctx context.Context, userID, id uint) (models.LearningGoal, error)
	SaveGoal(ctx context.Context, goal *models.LearningGoal) error
	DeleteGoal(ctx context.Context, userID, id uint) (int64, error)
	ListGoals(ctx context.Context, userID uint) ([]models.LearningGoal, error)
	CountActivities(ctx context.Context, userID uint) (int64, error)
	CountGoals(ctx context.Context, userID uint, completed *bool) (int64, error)
}

type learningRepository struct {
	db *gorm.DB
}

// NewLearningRepository constructs a learning repository.
func NewLearningRepository(db *gorm.DB) LearningRepository {
	return &learningRepository{db: db}
}

func (r *learningRepository) CreateActivity(ctx context.Context, activity *models.LearningActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *learningRepository) DeleteActivity(ctx context.Context, userID, id uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.LearningActivity{})

	return result.RowsAffected, result.Error
}

func (r *learningRepository) ListActivities(ctx context.Context, userID uint) ([]models.LearningActivity, error) {
	var activities []models.LearningActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&activities).Error

	return activities, err
}

func (r *learningRepository) CreateGoal(ctx context.Context, goal *models.LearningGoal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *learningRepository) GetGoal(ctx context.Context, userID, id uint) (models.LearningGoal, error) {
	var goal models.LearningGoal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&goal).Error
	if err != nil {
		return models.LearningGoal{}, err
	}

	return goal, nil
}

func (r *learningRepository) SaveGoal(ctx context.Context, goal *models.LearningGoal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r *learningRepository) DeleteGoal(ctx context.Context, userID, id uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.LearningGoal{})

	return result.RowsAffected, result.Error
}

func (r *learningRepository) ListGoals(ctx context.Context, userID uint) ([]models.LearningGoal, error) {
	var goals []models.LearningGoal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&goals).Error

	return goals, err
}

func (r *learningRepository) CountActivities(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LearningActivity{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	return count, err
}

func (r *learningRepository) CountGoals(ctx context.Context, userID uint, completed *bool) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.LearningGoal{}).
		Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	var count int64
	err := query.Count(&count).Error

	return count, err
}
