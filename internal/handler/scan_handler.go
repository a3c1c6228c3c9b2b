package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// ScanHandler handles marksheet image uploads for extraction.
type ScanHandler struct {
	scans  service.ScanService
	logger zerolog.Logger
}

// NewScanHandler constructs a scan handler.
func NewScanHandler(scans service.ScanService, logger zerolog.Logger) *ScanHandler {
	return &ScanHandler{
		scans:  scans,
		logger: logger.With().Str("component", "scan_handler").Logger(),
	}
}

// Register wires scan routes.
func (h *ScanHandler) Register(router fiber.Router) {
	router.Post("/scan", h.scan)
}

func (h *ScanHandler) scan(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	result, err := h.scans.Scan(c.Context(), userIDFromContext(c), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScanFileRequired):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrScanTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrScanTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("marksheet scan failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "scan failed")
		}
	}

	return utils.SendSuccess(c, "marksheet scanned", result)
}
