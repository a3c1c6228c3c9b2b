package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
	"github.com/mindstep-labs/mindstep-api/internal/scoring"
)

// ErrUnknownField indicates the career field has no curated roadmap.
var ErrUnknownField = errors.New("unknown roadmap field")

// ErrUnknownTopic indicates the topic id is not part of any roadmap.
var ErrUnknownTopic = errors.New("unknown roadmap topic")

// RoadmapService serves the curated roadmaps with per-user completion.
type RoadmapService interface {
	Fields(ctx context.Context) dto.RoadmapFieldListResponse
	Roadmap(ctx context.Context, userID uint, fieldID string) (dto.RoadmapResponse, error)
	ToggleTopic(ctx context.Context, userID uint, fieldID string, payload dto.RoadmapToggleRequest) (dto.RoadmapResponse, error)
}

type roadmapService struct {
	progress  repository.RoadmapRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewRoadmapService constructs a RoadmapService instance.
func NewRoadmapService(roadmapRepo repository.RoadmapRepository, validate *validator.Validate, logger zerolog.Logger) RoadmapService {
	return &roadmapService{
		progress:  roadmapRepo,
		validator: validate,
		logger:    logger.With().Str("component", "roadmap_service").Logger(),
	}
}

func (s *roadmapService) Fields(ctx context.Context) dto.RoadmapFieldListResponse {
	return dto.RoadmapFieldListResponse{Fields: scoring.RoadmapFields()}
}

func (s *roadmapService) Roadmap(ctx context.Context, userID uint, fieldID string) (dto.RoadmapResponse, error) {
	field, phases, err := lookupRoadmap(fieldID)
	if err != nil {
		return dto.RoadmapResponse{}, err
	}

	completed, err := s.completedTopics(ctx, userID)
	if err != nil {
		return dto.RoadmapResponse{}, err
	}

	return dto.NewRoadmapResponse(field, phases, completed), nil
}

func (s *roadmapService) ToggleTopic(ctx context.Context, userID uint, fieldID string, payload dto.RoadmapToggleRequest) (dto.RoadmapResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RoadmapResponse{}, err
	}

	field, phases, err := lookupRoadmap(fieldID)
	if err != nil {
		return dto.RoadmapResponse{}, err
	}
	if !topicExists(phases, payload.TopicID) {
		return dto.RoadmapResponse{}, ErrUnknownTopic
	}

	err = s.progress.Toggle(ctx, &models.RoadmapProgress{
		UserID:    userID,
		TopicID:   payload.TopicID,
		Completed: payload.Completed,
	})
	if err != nil {
		return dto.RoadmapResponse{}, err
	}

	completed, err := s.completedTopics(ctx, userID)
	if err != nil {
		return dto.RoadmapResponse{}, err
	}

	return dto.NewRoadmapResponse(field, phases, completed), nil
}

func (s *roadmapService) completedTopics(ctx context.Context, userID uint) (map[string]bool, error) {
	rows, err := s.progress.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Completed {
			completed[row.TopicID] = true
		}
	}
	return completed, nil
}

func lookupRoadmap(fieldID string) (scoring.RoadmapField, []scoring.RoadmapPhase, error) {
	var field scoring.RoadmapField
	found := false
	for _, candidate := range scoring.RoadmapFields() {
		if candidate.ID == fieldID {
			field = candidate
			found = true
			break
		}
	}
	if !found {
		return scoring.RoadmapField{}, nil, ErrUnknownField
	}

	phases, ok := scoring.RoadmapByField(fieldID)
	if !ok {
		return scoring.RoadmapField{}, nil, ErrUnknownField
	}

	return field, phases, nil
}

func topicExists(phases []scoring.RoadmapPhase, topicID string) bool {
	for _, phase := range phases {
		for _, topic := range phase.Topics {
			if topic.ID == topicID {
				return true
			}
		}
	}
	return false
}
