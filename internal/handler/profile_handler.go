package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// ProfileHandler exposes the profile read and full-replace endpoints.
type ProfileHandler struct {
	profiles  service.ProfileService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewProfileHandler constructs a profile handler.
func NewProfileHandler(profiles service.ProfileService, dashboard service.DashboardService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register wires profile routes.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Get("/", h.load)
	router.Put("/", h.save)
}

func (h *ProfileHandler) load(c *fiber.Ctx) error {
	response, err := h.profiles.Load(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("profile load failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", response)
}

func (h *ProfileHandler) save(c *fiber.Ctx) error {
	var payload dto.ProfileSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID := userIDFromContext(c)
	response, err := h.profiles.Save(c.Context(), userID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid profile payload")
		case errors.Is(err, service.ErrStreamRequired):
			return utils.SendError(c, fiber.StatusBadRequest, "stream is required for classes 11 and 12")
		case errors.Is(err, service.ErrUnknownStream):
			return utils.SendError(c, fiber.StatusBadRequest, "unknown stream")
		case errors.Is(err, service.ErrStageFieldMismatch):
			return utils.SendError(c, fiber.StatusBadRequest, "fields do not match education stage")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("profile save failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to save profile")
		}
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccess(c, "profile saved", response)
}
