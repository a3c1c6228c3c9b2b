package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func planApp(plan string, opts PlanOptions) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if plan != "" {
			c.Locals("user_id", uint(1))
			c.Locals("user_plan", plan)
		}
		return c.Next()
	})
	app.Get("/gated", WithPlan(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}, opts))
	return app
}

func requestGated(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gated", nil))
	require.NoError(t, err)
	return resp
}

func TestWithPlanAllowsMatchingTier(t *testing.T) {
	app := planApp("premium", PlanOptions{Plan: PlanPremium})
	resp := requestGated(t, app)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWithPlanAdminSatisfiesPremium(t *testing.T) {
	app := planApp("admin", PlanOptions{Plan: PlanPremium})
	resp := requestGated(t, app)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWithPlanRejectsLowerTier(t *testing.T) {
	app := planApp("free", PlanOptions{Plan: PlanPremium})
	resp := requestGated(t, app)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestWithPlanPremiumNeverReachesAdmin(t *testing.T) {
	app := planApp("premium", PlanOptions{Plan: PlanAdmin})
	resp := requestGated(t, app)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestWithPlanRequiresUserForGatedTiers(t *testing.T) {
	app := planApp("", PlanOptions{Plan: PlanPremium})
	resp := requestGated(t, app)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWithPlanAnySkipsUserRequirement(t *testing.T) {
	app := planApp("", PlanOptions{Plan: PlanAny})
	resp := requestGated(t, app)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
