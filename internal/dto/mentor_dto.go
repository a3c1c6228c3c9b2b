package dto

import (
	"time"

	"github.com/mindstep-labs/mindstep-api/internal/models"
)

// MentorAskRequest is a single question for the mentor, over REST or websocket.
type MentorAskRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// MentorMessageResponse is one turn of the mentor conversation.
type MentorMessageResponse struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MentorHistoryResponse is the stored conversation, oldest first.
type MentorHistoryResponse struct {
	Messages []MentorMessageResponse `json:"messages"`
}

// NewMentorMessageResponse converts a MentorMessage model into a DTO.
func NewMentorMessageResponse(model models.MentorMessage) MentorMessageResponse {
	return MentorMessageResponse{
		ID:        model.ID,
		Role:      model.Role,
		Content:   model.Content,
		CreatedAt: model.CreatedAt,
	}
}

// NewMentorHistoryResponse converts stored messages into a DTO.
func NewMentorHistoryResponse(messages []models.MentorMessage) MentorHistoryResponse {
	out := make([]MentorMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, NewMentorMessageResponse(m))
	}
	return MentorHistoryResponse{Messages: out}
}
