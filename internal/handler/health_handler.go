package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mindstep-labs/mindstep-api/internal/config"
	"github.com/mindstep-labs/mindstep-api/internal/utils"
)

var processStart = time.Now().UTC()

// HealthResponse is the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Uptime      string    `json:"uptime"`
}

// HealthCheck reports liveness plus basic service identity.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC()
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   now,
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Uptime:      now.Sub(processStart).Round(time.Second).String(),
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
