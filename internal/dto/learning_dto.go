package dto

import (
	"time"

	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/scoring"
)

// ActivityCreateRequest logs one learning activity.
type ActivityCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Category    string  `json:"category" validate:"required,max=32"`
	Hours       float64 `json:"hours" validate:"required,gt=0,lte=24"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
}

// GoalCreateRequest adds a learning goal.
type GoalCreateRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Category    string     `json:"category" validate:"required,max=32"`
	TargetHours float64    `json:"target_hours" validate:"required,gt=0"`
	Deadline    *time.Time `json:"deadline" validate:"omitempty"`
}

// ActivityResponse is the public view of a logged activity.
type ActivityResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Hours       float64   `json:"hours"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// GoalResponse is the public view of a goal.
type GoalResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	TargetHours float64    `json:"target_hours"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LearningOverviewResponse is the tracker page payload.
type LearningOverviewResponse struct {
	Weekly     []scoring.WeekBucket   `json:"weekly"`
	Totals     scoring.LearningTotals `json:"totals"`
	Activities []ActivityResponse     `json:"activities"`
	Goals      []GoalResponse         `json:"goals"`
}

// NewActivityResponse converts a LearningActivity model into a DTO.
func NewActivityResponse(model models.LearningActivity) ActivityResponse {
	return ActivityResponse{
		ID:          model.ID,
		Title:       model.Title,
		Category:    model.Category,
		Hours:       model.Hours,
		Date:        model.Date,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
	}
}

// NewGoalResponse converts a LearningGoal model into a DTO.
func NewGoalResponse(model models.LearningGoal) GoalResponse {
	return GoalResponse{
		ID:          model.ID,
		Title:       model.Title,
		Category:    model.Category,
		TargetHours: model.TargetHours,
		Deadline:    model.Deadline,
		Completed:   model.Completed,
		CreatedAt:   model.CreatedAt,
	}
}
