package models

import "time"

// Preference stores cross-cutting UI flags. DarkMode keeps the legacy
// string encoding: the literal "true" or "false", parsed strictly.
type Preference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	DarkMode  string    `gorm:"size:8;not null;default:false" json:"dark_mode"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DarkModeEnabled parses the stored flag. Only the literal "true" enables it.
func (p Preference) DarkModeEnabled() bool {
	return p.DarkMode == "true"
}
