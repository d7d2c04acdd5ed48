package game

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Run drives g in real time at frameRate frames per second until ctx is
// done, applying commands as they arrive. It is the loop goroutine for hosts
// without a terminal.
func Run(ctx context.Context, g *Game, frameRate int, commands <-chan Command) error {
	if frameRate <= 0 {
		frameRate = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()

	start := time.Now()
	last := start
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-commands:
			if err := g.Apply(ctx, cmd); err != nil {
				g.log.Warn("command failed", zap.String("command", string(cmd.Type)), zap.Error(err))
			}
		case t := <-ticker.C:
			g.Update(ctx, t.Sub(start), t.Sub(last))
			last = t
		}
	}
}

// Simulate runs g on a synthetic clock, one tick interval per frame, until
// the game ends or maxTicks steps have run. It reports the final status.
func Simulate(ctx context.Context, g *Game, maxTicks uint64) Status {
	interval := g.cfg.TickInterval
	now := time.Duration(0)
	g.Update(ctx, now, 0)

	for g.tick < maxTicks && g.winner == "" {
		if ctx.Err() != nil {
			break
		}
		now += interval
		g.Update(ctx, now, interval)
		if g.state == StatePaused && g.winner == "" {
			break
		}
	}
	return g.Status()
}
