package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

// Plan tier constants used by the WithPlan helper.
const (
	PlanAny     = "any"
	PlanPremium = "premium"
	PlanAdmin   = "admin"
)

// PlanOptions configures the WithPlan helper.
type PlanOptions struct {
	Plan        string
	RequireUser bool
}

// WithPlan wraps a handler with plan-tier gating. Admin satisfies every
// tier; premium satisfies premium.
func WithPlan(handler fiber.Handler, opts PlanOptions) fiber.Handler {
	plan := strings.ToLower(strings.TrimSpace(opts.Plan))
	if plan == "" {
		plan = PlanAny
	}

	requireUser := opts.RequireUser
	if !requireUser && plan != PlanAny {
		requireUser = true
	}

	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id")
		if requireUser && userID == nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		if plan == PlanAny {
			return handler(c)
		}

		currentPlan := normalizePlanValue(c.Locals("user_plan"))
		switch plan {
		case PlanPremium:
			if currentPlan != models.PlanPremium && currentPlan != models.PlanAdmin {
				return utils.SendError(c, fiber.StatusForbidden, "premium plan required")
			}
		case PlanAdmin:
			if currentPlan != models.PlanAdmin {
				return utils.SendError(c, fiber.StatusForbidden, "admin access required")
			}
		default:
			if currentPlan != plan {
				return utils.SendError(c, fiber.StatusForbidden, "insufficient plan")
			}
		}

		return handler(c)
	}
}

func normalizePlanValue(value interface{}) string {
	if value == nil {
		return ""
	}
	if plan, ok := value.(string); ok {
		return strings.ToLower(strings.TrimSpace(plan))
	}
	return ""
}
