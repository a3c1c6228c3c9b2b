package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit builds a named rate limiter keyed by user id when a session is
// present, falling back to the client IP for anonymous routes such as sign-in.
func RateLimit(name string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 20
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			key := c.IP()
			if id, ok := c.Locals("user_id").(uint); ok && id > 0 {
				key = fmt.Sprintf("u%d", id)
			}
			return fmt.Sprintf("%s:%s", name, key)
		},
	})
}
