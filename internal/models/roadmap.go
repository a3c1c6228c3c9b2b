package models

import "time"

// RoadmapProgress records one completed-or-not topic toggle per user.
type RoadmapProgress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_topic,unique;not null" json:"user_id"`
	TopicID   string    `gorm:"size:64;index:idx_user_topic,unique;not null" json:"topic_id"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}
