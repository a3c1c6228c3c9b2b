package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// RoadmapHandler exposes the curated career roadmap endpoints.
type RoadmapHandler struct {
	roadmaps service.RoadmapService
	logger   zerolog.Logger
}

// NewRoadmapHandler constructs a roadmap handler.
func NewRoadmapHandler(roadmaps service.RoadmapService, logger zerolog.Logger) *RoadmapHandler {
	return &RoadmapHandler{
		roadmaps: roadmaps,
		logger:   logger.With().Str("component", "roadmap_handler").Logger(),
	}
}

// Register wires roadmap routes.
func (h *RoadmapHandler) Register(router fiber.Router) {
	router.Get("/fields", h.fields)
	router.Get("/:field", h.roadmap)
	router.Post("/:field/toggle", h.toggle)
}

func (h *RoadmapHandler) fields(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "roadmap fields", h.roadmaps.Fields(c.Context()))
}

func (h *RoadmapHandler) roadmap(c *fiber.Ctx) error {
	response, err := h.roadmaps.Roadmap(c.Context(), userIDFromContext(c), c.Params("field"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownField) {
			return utils.SendError(c, fiber.StatusNotFound, "roadmap not available for this field")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("roadmap fetch failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch roadmap")
	}

	return utils.SendSuccess(c, "roadmap retrieved", response)
}

func (h *RoadmapHandler) toggle(c *fiber.Ctx) error {
	var payload dto.RoadmapToggleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.roadmaps.ToggleTopic(c.Context(), userIDFromContext(c), c.Params("field"), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid toggle payload")
		case errors.Is(err, service.ErrUnknownField):
			return utils.SendError(c, fiber.StatusNotFound, "roadmap not available for this field")
		case errors.Is(err, service.ErrUnknownTopic):
			return utils.SendError(c, fiber.StatusNotFound, "topic not found in roadmap")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("roadmap toggle failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update roadmap progress")
		}
	}

	return utils.SendSuccess(c, "roadmap progress updated", response)
}
