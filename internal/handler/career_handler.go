package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// CareerHandler exposes skill management and career matching endpoints.
type CareerHandler struct {
	careers   service.CareerService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewCareerHandler constructs a career handler.
func NewCareerHandler(careers service.CareerService, dashboard service.DashboardService, logger zerolog.Logger) *CareerHandler {
	return &CareerHandler{
		careers:   careers,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "career_handler").Logger(),
	}
}

// Register wires skill and career routes.
func (h *CareerHandler) Register(router fiber.Router) {
	router.Get("/skills", h.listSkills)
	router.Post("/skills", h.addSkill)
	router.Delete("/skills/:name", h.removeSkill)
	router.Get("/careers/match", h.matchCareers)
}

func (h *CareerHandler) listSkills(c *fiber.Ctx) error {
	response, err := h.careers.ListSkills(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("skill list failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch skills")
	}

	return utils.SendSuccess(c, "skills retrieved", response)
}

func (h *CareerHandler) addSkill(c *fiber.Ctx) error {
	var payload dto.SkillAddRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := userIDFromContext(c)
	response, err := h.careers.AddSkill(c.Context(), userID, payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrEmptySkill):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid skill name")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("skill add failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to add skill")
		}
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "skill added", response)
}

func (h *CareerHandler) removeSkill(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	response, err := h.careers.RemoveSkill(c.Context(), userID, c.Params("name"))
	if err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "skill not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("skill remove failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove skill")
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccess(c, "skill removed", response)
}

func (h *CareerHandler) matchCareers(c *fiber.Ctx) error {
	response, err := h.careers.MatchCareers(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("career match failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to match careers")
	}

	return utils.SendSuccess(c, "career matches retrieved", response)
}
