package dto

import "github.com/mindstep-labs/mindstep-api/internal/scoring"

// RoadmapToggleRequest marks a topic complete or not for the user.
type RoadmapToggleRequest struct {
	TopicID   string `json:"topic_id" validate:"required,max=64"`
	Completed bool   `json:"completed"`
}

// RoadmapTopicResponse is one topic annotated with the user's completion.
type RoadmapTopicResponse struct {
	scoring.RoadmapTopic
	Completed bool `json:"completed"`
}

// RoadmapPhaseResponse is one phase with annotated topics.
type RoadmapPhaseResponse struct {
	Phase  string                 `json:"phase"`
	Topics []RoadmapTopicResponse `json:"topics"`
}

// RoadmapResponse is a field's full roadmap plus progress totals.
type RoadmapResponse struct {
	Field    scoring.RoadmapField           `json:"field"`
	Phases   []RoadmapPhaseResponse         `json:"phases"`
	Progress scoring.RoadmapProgressSummary `json:"progress"`
}

// RoadmapFieldListResponse lists the selectable fields.
type RoadmapFieldListResponse struct {
	Fields []scoring.RoadmapField `json:"fields"`
}

// NewRoadmapResponse annotates a field's phases with the user's completed
// topic set and computes the progress summary.
func NewRoadmapResponse(field scoring.RoadmapField, phases []scoring.RoadmapPhase, completed map[string]bool) RoadmapResponse {
	out := make([]RoadmapPhaseResponse, 0, len(phases))
	for _, phase := range phases {
		topics := make([]RoadmapTopicResponse, 0, len(phase.Topics))
		for _, topic := range phase.Topics {
			topics = append(topics, RoadmapTopicResponse{
				RoadmapTopic: topic,
				Completed:    completed[topic.ID],
			})
		}
		out = append(out, RoadmapPhaseResponse{Phase: phase.Phase, Topics: topics})
	}

	return RoadmapResponse{
		Field:    field,
		Phases:   out,
		Progress: scoring.SummarizeRoadmap(phases, completed),
	}
}
