package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/handler"
	"github.com/mindstep-labs/mindstep-api/internal/models"
)

type stubDashboardService struct {
	response dto.DashboardResponse
}

func (s stubDashboardService) Summary(context.Context, uint) (dto.DashboardResponse, error) {
	return s.response, nil
}

func (s stubDashboardService) Invalidate(context.Context, uint) error {
	return nil
}

type stubPreferenceService struct{}

func (stubPreferenceService) Get(context.Context, uint) (dto.PreferenceResponse, error) {
	return dto.PreferenceResponse{DarkMode: "false"}, nil
}

func (stubPreferenceService) Update(_ context.Context, _ uint, payload dto.PreferenceUpdateRequest) (dto.PreferenceResponse, error) {
	return dto.PreferenceResponse{DarkMode: payload.DarkMode}, nil
}

func TestDashboardSummaryContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "dashboard.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	now := time.Now().UTC()
	response := dto.DashboardResponse{
		User: dto.UserResponse{
			ID:        1,
			Name:      "asha",
			Email:     "asha@example.com",
			Plan:      "premium",
			Premium:   true,
			CreatedAt: now.Add(-30 * 24 * time.Hour),
		},
		ProfileComplete: true,
		ProgressPercent: 67,
		SkillTests: []dto.SkillTestResultResponse{
			{
				Category:   "technical",
				Answered:   5,
				Correct:    5,
				Total:      5,
				Percentage: 100,
				Status:     "excellent",
				TakenAt:    now.Add(-24 * time.Hour),
			},
		},
		Psychometric: &dto.PsychometricResultResponse{
			TraitScores:  map[string]int{"Openness": 100, "Conscientiousness": 80},
			ProfileLabel: "The Innovator",
			ProfileDesc:  "Curious and creative, drawn to novel problems.",
			Careers:      []string{"Product Designer", "Research Scientist"},
			TakenAt:      now.Add(-12 * time.Hour),
		},
		Marksheet: &dto.MarksheetResponse{
			ID:    4,
			Class: "12",
			Subjects: []models.MarksheetSubject{
				{Name: "Mathematics", Marks: 92},
				{Name: "Physics", Marks: 88},
			},
			Total:       180,
			Percentage:  90,
			Grade:       "A+",
			TopSubjects: []string{"Mathematics", "Physics"},
			TakenAt:     now.Add(-6 * time.Hour),
		},
		SkillCount:     3,
		ActivityCount:  8,
		GoalsCompleted: 1,
		GoalsTotal:     2,
	}

	h := handler.NewDashboardHandler(stubDashboardService{response: response}, stubPreferenceService{}, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/dashboard", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_plan", "premium")
		return c.Next()
	})
	h.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
