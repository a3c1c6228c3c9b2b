package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mindstep-labs/mindstep-api/internal/config"
	"github.com/mindstep-labs/mindstep-api/internal/handler"
	"github.com/mindstep-labs/mindstep-api/internal/middleware"
	"github.com/mindstep-labs/mindstep-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	ProfileHandler    *handler.ProfileHandler
	AssessmentHandler *handler.AssessmentHandler
	ScanHandler       *handler.ScanHandler
	CareerHandler     *handler.CareerHandler
	LearningHandler   *handler.LearningHandler
	RoadmapHandler    *handler.RoadmapHandler
	MentorHandler     *handler.MentorHandler
	DashboardHandler  *handler.DashboardHandler
	AdminHandler      *handler.AdminHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 30, time.Minute))
		deps.AuthHandler.RegisterPublic(auth)

		protected := api.Group("/auth", jwtMiddleware)
		deps.AuthHandler.RegisterProtected(protected)
	}

	if deps.ProfileHandler != nil {
		profile := api.Group("/profile", jwtMiddleware)
		deps.ProfileHandler.Register(profile)
	}

	if deps.AssessmentHandler != nil {
		assessments := api.Group("/assessments", jwtMiddleware)
		deps.AssessmentHandler.Register(assessments)

		if deps.ScanHandler != nil {
			deps.ScanHandler.Register(assessments.Group("/marksheets"))
		}
	}

	if deps.CareerHandler != nil {
		career := api.Group("/career", jwtMiddleware)
		deps.CareerHandler.Register(career)
	}

	if deps.LearningHandler != nil {
		learning := api.Group("/learning", jwtMiddleware)
		deps.LearningHandler.Register(learning)
	}

	if deps.RoadmapHandler != nil {
		roadmaps := api.Group("/roadmaps", jwtMiddleware)
		deps.RoadmapHandler.Register(roadmaps)
	}

	if deps.MentorHandler != nil {
		mentor := api.Group("/mentor", jwtMiddleware, middleware.RateLimit("mentor", 60, time.Minute))
		deps.MentorHandler.Register(mentor)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware)
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.AdminHandler != nil {
		admin := api.Group("/admin", jwtMiddleware)
		deps.AdminHandler.Register(admin)
	}
}
