package dto

// DashboardResponse aggregates the signed-in user's overall progress.
type DashboardResponse struct {
	User            UserResponse                `json:"user"`
	ProfileComplete bool                        `json:"profile_complete"`
	ProgressPercent int                         `json:"progress_percent"`
	SkillTests      []SkillTestResultResponse   `json:"skill_tests"`
	Psychometric    *PsychometricResultResponse `json:"psychometric,omitempty"`
	Marksheet       *MarksheetResponse          `json:"marksheet,omitempty"`
	SkillCount      int                         `json:"skill_count"`
	ActivityCount   int                         `json:"activity_count"`
	GoalsCompleted  int                         `json:"goals_completed"`
	GoalsTotal      int                         `json:"goals_total"`
	CacheHit        bool                        `json:"cache_hit"`
}

// PreferenceResponse exposes UI preferences.
type PreferenceResponse struct {
	DarkMode string `json:"dark_mode"`
}

// PreferenceUpdateRequest updates the dark mode flag. Only the literal
// strings "true" and "false" are accepted.
type PreferenceUpdateRequest struct {
	DarkMode string `json:"dark_mode" validate:"required,oneof=true false"`
}
