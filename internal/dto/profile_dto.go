package dto

import (
	"time"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// ProfileSaveRequest is the full-replace payload for the profile editor.
// School and college sections are mutually exclusive by education stage.
type ProfileSaveRequest struct {
	DisplayName    string `json:"display_name" validate:"required,min=2,max=255"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
	AvatarID       string `json:"avatar_id" validate:"omitempty,max=32"`
	EducationStage string `json:"education_stage" validate:"required,oneof=school college"`
	SchoolName     string `json:"school_name" validate:"omitempty,max=255"`
	SchoolClass    string `json:"school_class" validate:"omitempty,max=16"`
	SchoolStream   string `json:"school_stream" validate:"omitempty,max=16"`
	CollegeName    string `json:"college_name" validate:"omitempty,max=255"`
	CollegeCourse  string `json:"college_course" validate:"omitempty,max=255"`
	CollegeBranch  string `json:"college_branch" validate:"omitempty,max=255"`
	CollegeYear    string `json:"college_year" validate:"omitempty,max=16"`
}

// ProfileResponse is the public view of a stored profile.
type ProfileResponse struct {
	DisplayName    string    `json:"display_name"`
	Gender         string    `json:"gender"`
	AvatarID       string    `json:"avatar_id"`
	EducationStage string    `json:"education_stage"`
	SchoolName     string    `json:"school_name,omitempty"`
	SchoolClass    string    `json:"school_class,omitempty"`
	SchoolStream   string    `json:"school_stream,omitempty"`
	CollegeName    string    `json:"college_name,omitempty"`
	CollegeCourse  string    `json:"college_course,omitempty"`
	CollegeBranch  string    `json:"college_branch,omitempty"`
	CollegeYear    string    `json:"college_year,omitempty"`
	Complete       bool      `json:"complete"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewProfileResponse converts a Profile model into a DTO.
func NewProfileResponse(model models.Profile) ProfileResponse {
	return ProfileResponse{
		DisplayName:    model.DisplayName,
		Gender:         model.Gender,
		AvatarID:       model.AvatarID,
		EducationStage: model.EducationStage,
		SchoolName:     model.SchoolName,
		SchoolClass:    model.SchoolClass,
		SchoolStream:   model.SchoolStream,
		CollegeName:    model.CollegeName,
		CollegeCourse:  model.CollegeCourse,
		CollegeBranch:  model.CollegeBranch,
		CollegeYear:    model.CollegeYear,
		Complete:       model.IsComplete(),
		UpdatedAt:      model.UpdatedAt,
	}
}
