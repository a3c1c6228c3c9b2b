package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// AuthHandler exposes sign-up, sign-in, session and upgrade endpoints.
type AuthHandler struct {
	auth      service.AuthService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(auth service.AuthService, dashboard service.DashboardService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic wires the unauthenticated auth routes.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/signup", h.signUp)
	router.Post("/signin", h.signIn)
}

// RegisterProtected wires the session-scoped auth routes.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/signout", h.signOut)
	router.Get("/session", h.session)
	router.Post("/upgrade", h.upgrade)
}

func (h *AuthHandler) signUp(c *fiber.Ctx) error {
	var payload dto.SignUpRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.auth.SignUp(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid sign-up payload")
		case errors.Is(err, service.ErrEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, "email already registered")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("sign-up failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create account")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", response)
}

func (h *AuthHandler) signIn(c *fiber.Ctx) error {
	var payload dto.SignInRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.auth.SignIn(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid sign-in payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("sign-in failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	return utils.SendSuccess(c, "signed in", response)
}

func (h *AuthHandler) signOut(c *fiber.Ctx) error {
	tokenID := tokenIDFromContext(c)
	if err := h.auth.SignOut(c.Context(), tokenID); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("sign-out failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to sign out")
	}

	return utils.SendSuccess(c, "signed out", nil)
}

func (h *AuthHandler) session(c *fiber.Ctx) error {
	response, err := h.auth.CurrentSession(c.Context(), tokenIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusUnauthorized, "session expired")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("session lookup failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch session")
		}
	}

	return utils.SendSuccess(c, "session active", response)
}

func (h *AuthHandler) upgrade(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	response, err := h.auth.Upgrade(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("upgrade failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to upgrade plan")
	}

	if err := h.dashboard.Invalidate(c.Context(), userID); err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return utils.SendSuccess(c, "plan upgraded", response)
}
