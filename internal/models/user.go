package models

import "time"

// Plan tiers gate feature visibility on the dashboard.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
	PlanAdmin   = "admin"
)

// User represents an account created through the demo sign-in flow.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Plan      string    `gorm:"size:16;not null;default:free" json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPremium reports whether the account has premium capability. Admin implies premium.
func (u User) IsPremium() bool {
	return u.Plan == PlanPremium || u.Plan == PlanAdmin
}

// Session is the persisted sign-in record. Deleted on logout.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	TokenID   string    `gorm:"size:64;uniqueIndex;not null" json:"token_id"`
	CreatedAt time.Time `json:"created_at"`
}
