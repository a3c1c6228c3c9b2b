package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// RoadmapRepository stores per-user topic completion toggles.
type RoadmapRepository interface {
	Toggle(ctx context.Context, progress *models.RoadmapProgress) error
	ListByUserID(ctx context.Context, userID uint) ([]models.RoadmapProgress, error)
}

type roadmapRepository struct {
	db *gorm.DB
}

// NewRoadmapRepository constructs a roadmap repository.
func NewRoadmapRepository(db *gorm.DB) RoadmapRepository {
	return &roadmapRepository{db: db}
}

// Toggle upserts the completion flag on the (user_id, topic_id) key.
func (r *roadmapRepository) Toggle(ctx context.Context, progress *models.RoadmapProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed", "updated_at"}),
		}).
		Create(progress).Error
}

func (r *roadmapRepository) ListByUserID(ctx context.Context, userID uint) ([]models.RoadmapProgress, error) {
	var rows []models.RoadmapProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error

	return rows, err
}
