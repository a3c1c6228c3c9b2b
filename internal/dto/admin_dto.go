package dto

// AdminStatsResponse is the platform overview returned to administrators.
type AdminStatsResponse struct {
	Users              int64 `json:"users"`
	PremiumUsers       int64 `json:"premium_users"`
	Profiles           int64 `json:"profiles"`
	SkillTestResults   int64 `json:"skill_test_results"`
	PsychometricTests  int64 `json:"psychometric_tests"`
	Marksheets         int64 `json:"marksheets"`
	LearningActivities int64 `json:"learning_activities"`
	MentorMessages     int64 `json:"mentor_messages"`
	CacheHit           bool  `json:"cache_hit"`
}
