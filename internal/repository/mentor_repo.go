package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// MentorRepository stores mentor conversation turns per user.
type MentorRepository interface {
	Create(ctx context.Context, message *models.MentorMessage) error
	ListByUserID(ctx context.Context, userID uint, limit int) ([]models.MentorMessage, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type mentorRepository struct {
	db *gorm.DB
}

// NewMentorRepository constructs a mentor repository.
func NewMentorRepository(db *gorm.DB) MentorRepository {
	return &mentorRepository{db: db}
}

func (r *mentorRepository) Create(ctx context.Context, message *models.MentorMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListByUserID returns the newest messages in chronological order.
// A non-positive limit returns everything.
func (r *mentorRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]models.MentorMessage, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.MentorMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *mentorRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.MentorMessage{}).Error
}
