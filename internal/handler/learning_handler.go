package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// LearningHandler exposes the learning tracker endpoints.
type LearningHandler struct {
	learning  service.LearningService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewLearningHandler constructs a learning handler.
func NewLearningHandler(learning service.LearningService, dashboard service.DashboardService, logger zerolog.Logger) *LearningHandler {
	return &LearningHandler{
		learning:  learning,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "learning_handler").Logger(),
	}
}

// Register wires learning tracker routes.
func (h *LearningHandler) Register(router fiber.Router) {
	router.Get("/overview", h.overview)
	router.Post("/activities", h.addActivity)
	router.Delete("/activities/:id", h.deleteActivity)
	router.Post("/goals", h.addGoal)
	router.Patch("/goals/:id/toggle", h.toggleGoal)
	router.Delete("/goals/:id", h.deleteGoal)
}

func (h *LearningHandler) overview(c *fiber.Ctx) error {
	response, err := h.learning.Overview(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("learning overview failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch learning overview")
	}

	return utils.SendSuccess(c, "learning overview retrieved", response)
}

func (h *LearningHandler) addActivity(c *fiber.Ctx) error {
	var payload dto.ActivityCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := userIDFromContext(c)
	response, err := h.learning.AddActivity(c.Context(), userID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid activity payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("activity create failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to log activity")
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity logged", response)
}

func (h *LearningHandler) deleteActivity(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	userID := userIDFromContext(c)
	if err := h.learning.DeleteActivity(c.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("activity delete failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete activity")
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccess(c, "activity deleted", nil)
}

func (h *LearningHandler) addGoal(c *fiber.Ctx) error {
	var payload dto.GoalCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := userIDFromContext(c)
	response, err := h.learning.AddGoal(c.Context(), userID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid goal payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("goal create failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create goal")
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "goal created", response)
}

func (h *LearningHandler) toggleGoal(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid goal id")
	}

	userID := userIDFromContext(c)
	response, err := h.learning.ToggleGoal(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "goal not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("goal toggle failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to toggle goal")
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccess(c, "goal updated", response)
}

func (h *LearningHandler) deleteGoal(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid goal id")
	}

	userID := userIDFromContext(c)
	if err := h.learning.DeleteGoal(c.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "goal not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("goal delete failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete goal")
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccess(c, "goal deleted", nil)
}
