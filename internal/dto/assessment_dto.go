package dto

import (
	"time"

	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/scoring"
)

// SkillTestSubmitRequest carries the chosen option per question index.
type SkillTestSubmitRequest struct {
	Answers map[int]int `json:"answers" validate:"required,min=1"`
}

// SkillTestCategoryResponse lists a category with its questions. Correct
// option indexes are never serialized.
type SkillTestCategoryResponse struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Questions   []SkillTestQuestionResponse `json:"questions"`
}

// SkillTestQuestionResponse is one multiple-choice question.
type SkillTestQuestionResponse struct {
	Index   int      `json:"index"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// SkillTestResultResponse is the graded outcome of one submitted test.
type SkillTestResultResponse struct {
	Category   string    `json:"category"`
	Answered   int       `json:"answered"`
	Correct    int       `json:"correct"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	Status     string    `json:"status"`
	TakenAt    time.Time `json:"taken_at"`
}

// NewSkillTestCategoryResponse converts a question bank into its public view.
func NewSkillTestCategoryResponse(category scoring.SkillCategory) SkillTestCategoryResponse {
	questions := make([]SkillTestQuestionResponse, 0, len(category.Questions))
	for i, q := range category.Questions {
		questions = append(questions, SkillTestQuestionResponse{
			Index:   i,
			Prompt:  q.Prompt,
			Options: q.Options,
		})
	}

	return SkillTestCategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Questions:   questions,
	}
}

// NewSkillTestResultResponse converts a stored result into a DTO.
func NewSkillTestResultResponse(model models.SkillTestResult) SkillTestResultResponse {
	return SkillTestResultResponse{
		Category:   model.Category,
		Answered:   model.Answered,
		Correct:    model.Correct,
		Total:      model.Total,
		Percentage: model.Percentage,
		Status:     model.Status,
		TakenAt:    model.TakenAt,
	}
}

// PsychometricSubmitRequest carries Likert answers keyed by question id.
type PsychometricSubmitRequest struct {
	Answers map[uint]int `json:"answers" validate:"required,min=1,dive,gte=1,lte=5"`
}

// PsychometricResultResponse is the derived personality profile.
type PsychometricResultResponse struct {
	TraitScores  map[string]int `json:"trait_scores"`
	ProfileLabel string         `json:"profile_label"`
	ProfileDesc  string         `json:"profile_desc"`
	Careers      []string       `json:"careers"`
	TakenAt      time.Time      `json:"taken_at"`
}

// NewPsychometricResultResponse converts a stored result into a DTO.
func NewPsychometricResultResponse(model models.PsychometricResult) PsychometricResultResponse {
	return PsychometricResultResponse{
		TraitScores:  model.TraitScoreMap(),
		ProfileLabel: model.ProfileLabel,
		ProfileDesc:  model.ProfileDesc,
		Careers:      model.CareerList(),
		TakenAt:      model.TakenAt,
	}
}

// MarksheetSubjectInput is one (name, marks) row of a submitted marksheet.
type MarksheetSubjectInput struct {
	Name  string `json:"name" validate:"required,min=1,max=64"`
	Marks int    `json:"marks" validate:"gte=0,lte=100"`
}

// MarksheetAnalyzeRequest is the payload for marksheet analysis.
type MarksheetAnalyzeRequest struct {
	Class    string                  `json:"class" validate:"omitempty,max=16"`
	Stream   string                  `json:"stream" validate:"omitempty,max=16"`
	Subjects []MarksheetSubjectInput `json:"subjects" validate:"required,min=1,dive"`
}

// MarksheetResponse is the analysed marksheet snapshot.
type MarksheetResponse struct {
	ID                uint                      `json:"id"`
	Class             string                    `json:"class"`
	Stream            string                    `json:"stream"`
	Subjects          []models.MarksheetSubject `json:"subjects"`
	Total             int                       `json:"total"`
	Percentage        int                       `json:"percentage"`
	Grade             string                    `json:"grade"`
	TopSubjects       []string                  `json:"top_subjects"`
	RecommendedFields []string                  `json:"recommended_fields"`
	TakenAt           time.Time                 `json:"taken_at"`
}

// NewMarksheetResponse converts a stored marksheet into a DTO.
func NewMarksheetResponse(model models.Marksheet) MarksheetResponse {
	return MarksheetResponse{
		ID:                model.ID,
		Class:             model.Class,
		Stream:            model.Stream,
		Subjects:          model.SubjectList(),
		Total:             model.Total,
		Percentage:        model.Percentage,
		Grade:             model.Grade,
		TopSubjects:       model.TopSubjectNames(),
		RecommendedFields: model.RecommendedFieldList(),
		TakenAt:           model.TakenAt,
	}
}
