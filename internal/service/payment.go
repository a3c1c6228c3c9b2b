package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// simulatedGateway stands in for a real payment provider. It waits a fixed
// interval and approves every charge, which matches the demo upgrade flow.
type simulatedGateway struct {
	delay  time.Duration
	logger zerolog.Logger
}

// NewSimulatedGateway constructs the demo payment gateway.
func NewSimulatedGateway(delay time.Duration, logger zerolog.Logger) PaymentGateway {
	return &simulatedGateway{
		delay:  delay,
		logger: logger.With().Str("component", "payment_gateway").Logger(),
	}
}

func (g *simulatedGateway) Charge(ctx context.Context, userID uint, plan string) error {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	g.logger.Info().Uint("user_id", userID).Str("plan", plan).Msg("simulated charge approved")

	return nil
}
