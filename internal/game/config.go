package game

import (
	"time"

	"github.com/samdwyer/skirmish/internal/config"
	"github.com/samdwyer/skirmish/internal/world"
)

// DefaultTickInterval is the fixed simulation step.
const DefaultTickInterval = 100 * time.Millisecond

// Config holds game configuration options.
type Config struct {
	// Seed for spawn jitter and damage rolls. A seed of 0 means a random
	// seed will be generated.
	Seed int64

	// TickInterval is the game time between simulation steps.
	TickInterval time.Duration

	World world.Config
}

// DefaultConfig returns the stock settings with a random seed.
func DefaultConfig() Config {
	return Config{
		TickInterval: DefaultTickInterval,
		World:        world.DefaultConfig(),
	}
}

// ConfigFrom maps loaded settings onto a game Config.
func ConfigFrom(c *config.Config) Config {
	return Config{
		Seed:         c.Game.Seed,
		TickInterval: c.Game.TickInterval,
		World: world.Config{
			Width:        c.World.Width,
			Height:       c.World.Height,
			Terrain:      world.ParseTerrain(c.World.Terrain),
			Waves:        c.World.Waves,
			CooldownBase: c.World.CooldownBase,
		},
	}
}
