// Package config loads game settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game      GameConfig      `toml:"game"`
	World     WorldConfig     `toml:"world"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Server    ServerConfig    `toml:"server"`
}

type GameConfig struct {
	TickInterval time.Duration `toml:"tick_interval"` // fixed simulation step
	Seed         int64         `toml:"seed"`          // 0 = random seed
}

type WorldConfig struct {
	Width        float64       `toml:"width"`
	Height       float64       `toml:"height"`
	Terrain      string        `toml:"terrain"` // carried, not simulated
	Waves        int           `toml:"waves"`
	CooldownBase time.Duration `toml:"cooldown_base"` // divided by unit speed
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type TelemetryConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
}

type ServerConfig struct {
	BindAddress string `toml:"bind_address"`
	FrameRate   int    `toml:"frame_rate"` // host frames per second
}

// Load reads a TOML file on top of Defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.TickInterval <= 0 {
		errs = append(errs, errors.New("game.tick_interval must be positive"))
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, errors.New("world.width and world.height must be positive"))
	}
	if c.World.Waves < 0 {
		errs = append(errs, errors.New("world.waves must not be negative"))
	}
	if c.World.CooldownBase <= 0 {
		errs = append(errs, errors.New("world.cooldown_base must be positive"))
	}
	if c.Server.FrameRate <= 0 {
		errs = append(errs, errors.New("server.frame_rate must be positive"))
	}
	return errors.Join(errs...)
}

// Defaults returns the stock settings.
func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			TickInterval: 100 * time.Millisecond,
		},
		World: WorldConfig{
			Width:        800,
			Height:       600,
			Terrain:      "grass",
			Waves:        3,
			CooldownBase: time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "skirmish",
		},
		Server: ServerConfig{
			BindAddress: "127.0.0.1:8080",
			FrameRate:   30,
		},
	}
}
