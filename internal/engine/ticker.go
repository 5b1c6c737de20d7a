package engine

import (
	"context"
	"time"

	"github.com/rmbenavides/ZooDia/server/internal/platform/logger"
)

// DefaultTickRate paces a replayed day in server mode (one simulated tick
// per real interval). The engine itself is synchronous; the ticker only
// spaces Step calls out in wall-clock time so spectators can follow.
const DefaultTickRate = 500 * time.Millisecond

// Ticker replays a simulation on a real-time cadence.
type Ticker struct {
	sim    *Simulation
	logger *logger.Logger
	rate   time.Duration
}

// NewTicker creates a ticker for a simulation. A non-positive rate falls
// back to DefaultTickRate.
func NewTicker(sim *Simulation, log *logger.Logger, rate time.Duration) *Ticker {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Ticker{sim: sim, logger: log, rate: rate}
}

// Start drives the simulation until the day completes or the context is
// cancelled. Call in a goroutine.
func (t *Ticker) Start(ctx context.Context) {
	t.logger.Info("zoo day ticker started at %v per tick", t.rate)

	ticker := time.NewTicker(t.rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("zoo day ticker stopped by context at tick %d", t.sim.CurrentTick())
			return
		case <-ticker.C:
			if t.sim.Step() {
				t.logger.Info("zoo day ticker finished: day complete")
				return
			}
		}
	}
}
