package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// DashboardHandler exposes the aggregated summary and user preferences.
type DashboardHandler struct {
	dashboard   service.DashboardService
	preferences service.PreferenceService
	logger      zerolog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(dashboard service.DashboardService, preferences service.PreferenceService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard:   dashboard,
		preferences: preferences,
		logger:      logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires dashboard and preference routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/summary", h.summary)
	router.Get("/preferences", h.getPreferences)
	router.Put("/preferences", h.updatePreferences)
}

func (h *DashboardHandler) summary(c *fiber.Ctx) error {
	response, err := h.dashboard.Summary(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("dashboard summary failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}

	return utils.SendSuccess(c, "dashboard summary", response)
}

func (h *DashboardHandler) getPreferences(c *fiber.Ctx) error {
	response, err := h.preferences.Get(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("preference fetch failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch preferences")
	}

	return utils.SendSuccess(c, "preferences retrieved", response)
}

func (h *DashboardHandler) updatePreferences(c *fiber.Ctx) error {
	var payload dto.PreferenceUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.preferences.Update(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "dark_mode must be \"true\" or \"false\"")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("preference update failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update preferences")
	}

	return utils.SendSuccess(c, "preferences updated", response)
}
