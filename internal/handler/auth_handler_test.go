package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/handler"
	"github.com/mindstep-labs/mindstep-api/internal/service"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

type stubDashboardService struct {
	summary       dto.DashboardResponse
	err           error
	invalidations int
}

func (s *stubDashboardService) Summary(context.Context, uint) (dto.DashboardResponse, error) {
	return s.summary, s.err
}

func (s *stubDashboardService) Invalidate(context.Context, uint) error {
	s.invalidations++
	return nil
}

type stubAuthService struct {
	auth    dto.AuthResponse
	session dto.SessionResponse
	user    dto.UserResponse
	err     error
}

func (s stubAuthService) SignUp(context.Context, dto.SignUpRequest) (dto.AuthResponse, error) {
	return s.auth, s.err
}

func (s stubAuthService) SignIn(context.Context, dto.SignInRequest) (dto.AuthResponse, error) {
	return s.auth, s.err
}

func (s stubAuthService) SignOut(context.Context, string) error {
	return s.err
}

func (s stubAuthService) CurrentSession(context.Context, string) (dto.SessionResponse, error) {
	return s.session, s.err
}

func (s stubAuthService) Upgrade(context.Context, uint) (dto.UserResponse, error) {
	return s.user, s.err
}

// fakeSession injects the locals the JWT middleware would normally set.
func fakeSession(userID uint, plan string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("user_plan", plan)
		c.Locals("token_id", "test-token")
		return c.Next()
	}
}

func performJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) utils.APIResponse {
	t.Helper()
	var envelope utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestAuthHandlerSignUp(t *testing.T) {
	app := fiber.New()
	stub := stubAuthService{auth: dto.AuthResponse{Token: "jwt", User: dto.UserResponse{ID: 1, Plan: "free"}}}
	h := handler.NewAuthHandler(stub, &stubDashboardService{}, zerolog.Nop())
	h.RegisterPublic(app.Group("/api/v1/auth"))

	resp := performJSON(t, app, http.MethodPost, "/api/v1/auth/signup", dto.SignUpRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.True(t, envelope.Success)
}

func TestAuthHandlerSignUpConflict(t *testing.T) {
	app := fiber.New()
	stub := stubAuthService{err: service.ErrEmailTaken}
	h := handler.NewAuthHandler(stub, &stubDashboardService{}, zerolog.Nop())
	h.RegisterPublic(app.Group("/api/v1/auth"))

	resp := performJSON(t, app, http.MethodPost, "/api/v1/auth/signup", dto.SignUpRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.False(t, envelope.Success)
}

func TestAuthHandlerSessionExpired(t *testing.T) {
	app := fiber.New()
	stub := stubAuthService{err: service.ErrSessionNotFound}
	h := handler.NewAuthHandler(stub, &stubDashboardService{}, zerolog.Nop())
	group := app.Group("/api/v1/auth", fakeSession(1, "free"))
	h.RegisterProtected(group)

	resp := performJSON(t, app, http.MethodGet, "/api/v1/auth/session", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerUpgradeInvalidatesDashboard(t *testing.T) {
	app := fiber.New()
	dashboard := &stubDashboardService{}
	stub := stubAuthService{user: dto.UserResponse{ID: 1, Plan: "premium", Premium: true}}
	h := handler.NewAuthHandler(stub, dashboard, zerolog.Nop())
	h.RegisterProtected(app.Group("/api/v1/auth", fakeSession(1, "free")))

	resp := performJSON(t, app, http.MethodPost, "/api/v1/auth/upgrade", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, dashboard.invalidations)
}
