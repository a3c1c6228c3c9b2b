package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/middleware"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// AdminHandler exposes platform statistics to administrators.
type AdminHandler struct {
	admin  service.AdminService
	logger zerolog.Logger
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(admin service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		logger: logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register wires admin routes. Every route requires the admin plan.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/stats", middleware.WithPlan(h.stats, middleware.PlanOptions{Plan: middleware.PlanAdmin}))
}

func (h *AdminHandler) stats(c *fiber.Ctx) error {
	response, err := h.admin.Stats(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("admin stats failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load platform stats")
	}

	return utils.SendSuccess(c, "platform stats", response)
}
