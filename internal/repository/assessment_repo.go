package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// AssessmentRepository stores immutable assessment snapshots per user.
type AssessmentRepository interface {
	CreateSkillTestResult(ctx context.Context, result *models.SkillTestResult) error
	ListSkillTestResults(ctx context.Context, userID uint) ([]models.SkillTestResult, error)
	LatestSkillTestByCategory(ctx context.Context, userID uint) ([]models.SkillTestResult, error)
	CreatePsychometricResult(ctx context.Context, result *models.PsychometricResult) error
	LatestPsychometricResult(ctx context.Context, userID uint) (models.PsychometricResult, error)
	CreateMarksheet(ctx context.Context, marksheet *models.Marksheet) error
	ListMarksheets(ctx context.Context, userID uint) ([]models.Marksheet, error)
	LatestMarksheet(ctx context.Context, userID uint) (models.Marksheet, error)
	DeleteMarksheet(ctx context.Context, userID, id uint) (int64, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository constructs an assessment repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) CreateSkillTestResult(ctx context.Context, result *models.SkillTestResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *assessmentRepository) ListSkillTestResults(ctx context.Context, userID uint) ([]models.SkillTestResult, error) {
	var results []models.SkillTestResult
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("taken_at DESC, id DESC").
		Find(&results).Error

	return results, err
}

// LatestSkillTestByCategory returns the newest result per category, newest
// first overall.
func (r *assessmentRepository) LatestSkillTestByCategory(ctx context.Context, userID uint) ([]models.SkillTestResult, error) {
	results, err := r.ListSkillTestResults(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	latest := make([]models.SkillTestResult, 0, len(results))
	for _, result := range results {
		if seen[result.Category] {
			continue
		}
		seen[result.Category] = true
		latest = append(latest, result)
	}

	return latest, nil
}

func (r *assessmentRepository) CreatePsychometricResult(ctx context.Context, result *models.PsychometricResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *assessmentRepository) LatestPsychometricResult(ctx context.Context, userID uint) (models.PsychometricResult, error) {
	var result models.PsychometricResult
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("taken_at DESC, id DESC").
		First(&result).Error
	if err != nil {
		return models.PsychometricResult{}, err
	}

	return result, nil
}

func (r *assessmentRepository) CreateMarksheet(ctx context.Context, marksheet *models.Marksheet) error {
	return r.db.WithContext(ctx).Create(marksheet).Error
}

func (r *assessmentRepository) ListMarksheets(ctx context.Context, userID uint) ([]models.Marksheet, error) {
	var marksheets []models.Marksheet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("taken_at DESC, id DESC").
		Find(&marksheets).Error

	return marksheets, err
}

func (r *assessmentRepository) LatestMarksheet(ctx context.Context, userID uint) (models.Marksheet, error) {
	var marksheet models.Marksheet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("taken_at DESC, id DESC").
		First(&marksheet).Error
	if err != nil {
		return models.Marksheet{}, err
	}

	return marksheet, nil
}

func (r *assessmentRepository) DeleteMarksheet(ctx context.Context, userID, id uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Marksheet{})

	return result.RowsAffected, result.Error
}
