package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/handler"
	"github.com/mindstep-labs/mindstep-api/internal/service"
)

type stubMentorService struct {
	reply   dto.MentorMessageResponse
	history dto.MentorHistoryResponse
	err     error
	cleared int
}

func (s *stubMentorService) ServeConnection(*websocket.Conn, service.MentorConnectionOptions) {}

func (s *stubMentorService) Ask(context.Context, uint, dto.MentorAskRequest) (dto.MentorMessageResponse, error) {
	return s.reply, s.err
}

func (s *stubMentorService) History(context.Context, uint) (dto.MentorHistoryResponse, error) {
	return s.history, s.err
}

func (s *stubMentorService) Clear(context.Context, uint) error {
	s.cleared++
	return s.err
}

func (s *stubMentorService) Start(context.Context) {}

func newMentorApp(stub *stubMentorService) *fiber.App {
	app := fiber.New()
	h := handler.NewMentorHandler(stub, zerolog.Nop())
	h.Register(app.Group("/api/v1/mentor", fakeSession(1, "premium")))
	return app
}

func TestMentorHandlerAsk(t *testing.T) {
	stub := &stubMentorService{reply: dto.MentorMessageResponse{Role: "assistant", Content: "React is a UI library."}}
	app := newMentorApp(stub)

	resp := performJSON(t, app, http.MethodPost, "/api/v1/mentor/ask", dto.MentorAskRequest{Message: "tell me about react"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.True(t, envelope.Success)
}

func TestMentorHandlerAskEmptyQuestion(t *testing.T) {
	app := newMentorApp(&stubMentorService{err: service.ErrEmptyQuestion})

	resp := performJSON(t, app, http.MethodPost, "/api/v1/mentor/ask", dto.MentorAskRequest{Message: "<b></b>"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMentorHandlerClearHistory(t *testing.T) {
	stub := &stubMentorService{}
	app := newMentorApp(stub)

	resp := performJSON(t, app, http.MethodDelete, "/api/v1/mentor/history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, stub.cleared)
}

func TestMentorHandlerWebsocketUpgradeRequired(t *testing.T) {
	app := newMentorApp(&stubMentorService{})

	resp := performJSON(t, app, http.MethodGet, "/api/v1/mentor/ws", nil)
	require.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
