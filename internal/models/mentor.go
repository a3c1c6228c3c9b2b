package models

import "time"

// Mentor message roles.
const (
	MentorRoleUser   = "user"
	MentorRoleMentor = "mentor"
)

// MentorMessage is a single turn in a user's mentor conversation.
type MentorMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
