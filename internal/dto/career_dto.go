package dto

import (
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/scoring"
)

// SkillAddRequest adds one skill to the user's set.
type SkillAddRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

// SkillListResponse lists the user's normalised skills plus quick picks.
type SkillListResponse struct {
	Skills    []string `json:"skills"`
	Suggested []string `json:"suggested"`
}

// NewSkillListResponse converts stored skills into a DTO.
func NewSkillListResponse(skills []models.UserSkill) SkillListResponse {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return SkillListResponse{Skills: names, Suggested: scoring.SuggestedSkills}
}

// CareerMatchResponse is one catalogue career scored against the user.
type CareerMatchResponse struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	Overlap        int      `json:"overlap"`
	MatchPercent   int      `json:"match_percent"`
}

// CareerMatchListResponse is the ordered match result.
type CareerMatchListResponse struct {
	Matches []CareerMatchResponse `json:"matches"`
	Top     *CareerMatchResponse  `json:"top,omitempty"`
}

// NewCareerMatchListResponse converts scored matches into a DTO.
func NewCareerMatchListResponse(matches []scoring.CareerMatch) CareerMatchListResponse {
	out := make([]CareerMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, CareerMatchResponse{
			ID:             m.ID,
			Title:          m.Title,
			Description:    m.Description,
			RequiredSkills: m.RequiredSkills,
			Overlap:        m.Overlap,
			MatchPercent:   m.MatchPercent,
		})
	}

	response := CareerMatchListResponse{Matches: out}
	if len(out) > 0 {
		response.Top = &out[0]
	}
	return response
}
