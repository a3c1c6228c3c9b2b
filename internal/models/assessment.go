package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SkillTestResult is an immutable snapshot of a completed skill test.
type SkillTestResult struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Category   string    `gorm:"size:32;not null" json:"category"`
	Answered   int       `gorm:"not null" json:"answered"`
	Correct    int       `gorm:"not null" json:"correct"`
	Total      int       `gorm:"not null" json:"total"`
	Percentage int       `gorm:"not null" json:"percentage"`
	Status     string    `gorm:"size:32;not null" json:"status"`
	TakenAt    time.Time `json:"taken_at"`
}

// PsychometricResult is an immutable snapshot of a completed psychometric assessment.
type PsychometricResult struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	TraitScores  datatypes.JSON `gorm:"type:json" json:"trait_scores"`
	ProfileLabel string         `gorm:"size:64;not null" json:"profile_label"`
	ProfileDesc  string         `gorm:"type:text" json:"profile_desc"`
	Careers      datatypes.JSON `gorm:"type:json" json:"careers"`
	TakenAt      time.Time      `json:"taken_at"`
}

// TraitScoreMap decodes the stored trait scores.
func (r PsychometricResult) TraitScoreMap() map[string]int {
	scores := map[string]int{}
	_ = json.Unmarshal(r.TraitScores, &scores)
	return scores
}

// CareerList decodes the stored career suggestions.
func (r PsychometricResult) CareerList() []string {
	var careers []string
	_ = json.Unmarshal(r.Careers, &careers)
	return careers
}

// MarksheetSubject is a single subject row inside a marksheet snapshot.
type MarksheetSubject struct {
	Name  string `json:"name"`
	Marks int    `json:"marks"`
}

// Marksheet is an immutable snapshot of an analysed marksheet.
type Marksheet struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	UserID            uint           `gorm:"index;not null" json:"user_id"`
	Class             string         `gorm:"size:16" json:"class"`
	Stream            string         `gorm:"size:16" json:"stream"`
	Subjects          datatypes.JSON `gorm:"type:json" json:"subjects"`
	Total             int            `gorm:"not null" json:"total"`
	Percentage        int            `gorm:"not null" json:"percentage"`
	Grade             string         `gorm:"size:4;not null" json:"grade"`
	TopSubjects       datatypes.JSON `gorm:"type:json" json:"top_subjects"`
	RecommendedFields datatypes.JSON `gorm:"type:json" json:"recommended_fields"`
	TakenAt           time.Time      `json:"taken_at"`
}

// SubjectList decodes the stored subject rows.
func (m Marksheet) SubjectList() []MarksheetSubject {
	var subjects []MarksheetSubject
	_ = json.Unmarshal(m.Subjects, &subjects)
	return subjects
}

// TopSubjectNames decodes the stored top subject names.
func (m Marksheet) TopSubjectNames() []string {
	var names []string
	_ = json.Unmarshal(m.TopSubjects, &names)
	return names
}

// RecommendedFieldList decodes the stored field recommendations.
func (m Marksheet) RecommendedFieldList() []string {
	var fields []string
	_ = json.Unmarshal(m.RecommendedFields, &fields)
	return fields
}
