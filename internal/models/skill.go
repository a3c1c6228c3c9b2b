package models

import "time"

// UserSkill is a single normalised skill name held by a user.
type UserSkill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_skill,unique;not null" json:"user_id"`
	Name      string    `gorm:"size:64;index:idx_user_skill,unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
