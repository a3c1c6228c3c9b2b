package models

import "time"

// LearningActivity is a free-form user-entered tracking item.
type LearningActivity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Category    string    `gorm:"size:32;not null" json:"category"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Date        time.Time `gorm:"not null" json:"date"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LearningGoal tracks a learning target. Completion is a manual toggle,
// never derived from accumulated hours.
type LearningGoal struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Category    string     `gorm:"size:32;not null" json:"category"`
	TargetHours float64    `gorm:"not null" json:"target_hours"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
