package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// SessionRepository tracks active sign-ins keyed by token id.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenID(ctx context.Context, tokenID string) (models.Session, error)
	DeleteByTokenID(ctx context.Context, tokenID string) (int64, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByTokenID(ctx context.Context, tokenID string) (models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&session).Error; err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// DeleteByTokenID removes a session and reports how many rows went away,
// so a repeated sign-out can be answered without an error.
func (r *sessionRepository) DeleteByTokenID(ctx context.Context, tokenID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("token_id = ?", tokenID).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error
}
