package models

import "time"

// Education stages recognised by the profile editor.
const (
	EducationSchool  = "school"
	EducationCollege = "college"
)

// Profile holds demographic and education attributes, one row per user.
// A save replaces the whole row; there are no partial writes.
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName    string    `gorm:"size:255" json:"display_name"`
	Gender         string    `gorm:"size:32" json:"gender"`
	AvatarID       string    `gorm:"size:32;default:boy1" json:"avatar_id"`
	EducationStage string    `gorm:"size:16" json:"education_stage"`
	SchoolName     string    `gorm:"size:255" json:"school_name"`
	SchoolClass    string    `gorm:"size:16" json:"school_class"`
	SchoolStream   string    `gorm:"size:16" json:"school_stream"`
	CollegeName    string    `gorm:"size:255" json:"college_name"`
	CollegeCourse  string    `gorm:"size:255" json:"college_course"`
	CollegeBranch  string    `gorm:"size:255" json:"college_branch"`
	CollegeYear    string    `gorm:"size:16" json:"college_year"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsComplete reports whether the mandatory profile fields are filled in.
func (p Profile) IsComplete() bool {
	return p.DisplayName != "" && p.Gender != "" && p.EducationStage != ""
}
