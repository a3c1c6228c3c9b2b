package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/handler"
	"github.com/mindstep-labs/mindstep-api/internal/service"
)

type stubProfileService struct {
	profile dto.ProfileResponse
	err     error
}

func (s stubProfileService) Load(context.Context, uint) (dto.ProfileResponse, error) {
	return s.profile, s.err
}

func (s stubProfileService) Save(context.Context, uint, dto.ProfileSaveRequest) (dto.ProfileResponse, error) {
	return s.profile, s.err
}

func newProfileApp(stub stubProfileService, dashboard *stubDashboardService) *fiber.App {
	app := fiber.New()
	h := handler.NewProfileHandler(stub, dashboard, zerolog.Nop())
	h.Register(app.Group("/api/v1/profile", fakeSession(1, "free")))
	return app
}

func TestProfileHandlerSave(t *testing.T) {
	dashboard := &stubDashboardService{}
	app := newProfileApp(stubProfileService{profile: dto.ProfileResponse{DisplayName: "Asha", Complete: true}}, dashboard)

	payload := dto.ProfileSaveRequest{
		DisplayName:    "Asha",
		Gender:         "female",
		EducationStage: "school",
		SchoolName:     "City High",
		SchoolClass:    "12",
		SchoolStream:   "PCM",
	}
	resp := performJSON(t, app, http.MethodPut, "/api/v1/profile/", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, dashboard.invalidations)
}

func TestProfileHandlerSaveMissingStream(t *testing.T) {
	app := newProfileApp(stubProfileService{err: service.ErrStreamRequired}, &stubDashboardService{})

	resp := performJSON(t, app, http.MethodPut, "/api/v1/profile/", dto.ProfileSaveRequest{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.False(t, envelope.Success)
}

func TestProfileHandlerLoad(t *testing.T) {
	app := newProfileApp(stubProfileService{profile: dto.ProfileResponse{AvatarID: "boy1"}}, &stubDashboardService{})

	resp := performJSON(t, app, http.MethodGet, "/api/v1/profile/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
