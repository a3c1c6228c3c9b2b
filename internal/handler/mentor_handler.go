package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/middleware"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// MentorHandler wires mentor chat endpoints including the websocket upgrade.
type MentorHandler struct {
	mentor service.MentorService
	logger zerolog.Logger
}

// NewMentorHandler constructs a mentor handler.
func NewMentorHandler(mentor service.MentorService, logger zerolog.Logger) *MentorHandler {
	return &MentorHandler{
		mentor: mentor,
		logger: logger.With().Str("component", "mentor_handler").Logger(),
	}
}

// Register binds mentor routes under the provided router group.
func (h *MentorHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			ctx := c.UserContext()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
			c.Locals("request_ctx", ctx)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/ws", websocket.New(h.handleConnection))
	router.Post("/ask", h.ask)
	router.Get("/history", h.history)
	router.Delete("/history", h.clear)
}

func (h *MentorHandler) handleConnection(conn *websocket.Conn) {
	userID, ok := websocketUserID(conn)
	if !ok {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(fiber.StatusUnauthorized, "user id missing"))
		_ = conn.Close()
		return
	}

	correlation := fmt.Sprint(conn.Locals("correlation_id"))
	baseCtx, _ := conn.Locals("request_ctx").(context.Context)

	opts := service.MentorConnectionOptions{
		UserID:        userID,
		CorrelationID: correlation,
		Context:       baseCtx,
	}

	h.logger.Info().Uint("user_id", userID).Msg("mentor websocket connected")
	h.mentor.ServeConnection(conn, opts)
	h.logger.Info().Uint("user_id", userID).Msg("mentor websocket disconnected")
}

func (h *MentorHandler) ask(c *fiber.Ctx) error {
	var payload dto.MentorAskRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.mentor.Ask(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case isValidationError(err), errors.Is(err, service.ErrEmptyQuestion):
			return utils.SendError(c, fiber.StatusBadRequest, "message is required")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("mentor ask failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to answer question")
		}
	}

	return utils.SendSuccess(c, "mentor reply", response)
}

func (h *MentorHandler) history(c *fiber.Ctx) error {
	response, err := h.mentor.History(c.Context(), userIDFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("mentor history failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch mentor history")
	}

	return utils.SendSuccess(c, "mentor history", response)
}

func (h *MentorHandler) clear(c *fiber.Ctx) error {
	if err := h.mentor.Clear(c.Context(), userIDFromContext(c)); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("mentor history clear failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to clear mentor history")
	}

	return utils.SendSuccess(c, "mentor history cleared", nil)
}

func websocketUserID(conn *websocket.Conn) (uint, bool) {
	switch v := conn.Locals("user_id").(type) {
	case uint:
		return v, true
	case int:
		if v > 0 {
			return uint(v), true
		}
	case float64:
		if v > 0 {
			return uint(v), true
		}
	}
	return 0, false
}
