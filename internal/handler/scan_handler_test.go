package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/handler"
	"github.com/mindstep-labs/mindstep-api/internal/service"
)

type stubScanService struct {
	result dto.ScanResponse
	err    error
}

func (s stubScanService) Scan(context.Context, uint, *multipart.FileHeader) (dto.ScanResponse, error) {
	return s.result, s.err
}

func newScanApp(stub stubScanService) *fiber.App {
	app := fiber.New()
	h := handler.NewScanHandler(stub, zerolog.Nop())
	h.Register(app.Group("/api/v1/assessments/marksheets", fakeSession(1, "free")))
	return app
}

func performUpload(t *testing.T, app *fiber.App, field, filename string, content []byte) *http.Response {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/marksheets/scan", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestScanHandlerSuccess(t *testing.T) {
	stub := stubScanService{result: dto.ScanResponse{
		FileURL:  "https://cdn.example.com/marksheet.png",
		Subjects: []dto.MarksheetSubjectInput{{Name: "Mathematics", Marks: 92}},
	}}
	app := newScanApp(stub)

	resp := performUpload(t, app, "file", "marksheet.png", []byte{0x89, 'P', 'N', 'G'})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.True(t, envelope.Success)
}

func TestScanHandlerMissingFile(t *testing.T) {
	app := newScanApp(stubScanService{})

	resp := performUpload(t, app, "document", "marksheet.png", []byte("data"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScanHandlerOversizeFile(t *testing.T) {
	app := newScanApp(stubScanService{err: service.ErrScanTooLarge})

	resp := performUpload(t, app, "file", "marksheet.png", []byte("data"))
	require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestScanHandlerUnsupportedType(t *testing.T) {
	app := newScanApp(stubScanService{err: service.ErrScanTypeNotAllowed})

	resp := performUpload(t, app, "file", "notes.txt", []byte("plain text"))
	require.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}
