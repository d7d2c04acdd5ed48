// Package world owns the battlefield: it spawns the armies, applies combat
// with per-unit cooldowns and decides when the battle is over.
package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/event"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

const (
	// Spawn layout, in world units.
	edgeMargin  = 80.0 // first wave's distance from its map edge
	waveSpacing = 60.0 // distance between consecutive waves
	jitterX     = 25.0
	jitterY     = 50.0
)

// Config describes a battlefield.
type Config struct {
	Width        float64
	Height       float64
	Terrain      Terrain
	Waves        int           // rows of units per side; each row has one unit of every type
	CooldownBase time.Duration // attack cooldown of a speed 1 unit
}

// DefaultConfig returns an 800x600 grass field with three waves.
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       600,
		Terrain:      TerrainGrass,
		Waves:        3,
		CooldownBase: time.Second,
	}
}

// Initialized is the payload of a world-initialized notification.
type Initialized struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Terrain     Terrain `json:"terrain"`
	PlayerUnits int     `json:"playerUnits"`
	EnemyUnits  int     `json:"enemyUnits"`
}

// Outcome reports whether the battle has ended and who won.
type Outcome struct {
	Over   bool           `json:"over"`
	Winner entity.Faction `json:"winner,omitempty"`
}

// World runs combat on top of a unit registry. Game time is the duration
// since the game started; cooldowns are deadlines on that clock.
type World struct {
	cfg       Config
	registry  *entity.Registry
	resolver  *combat.Resolver
	cooldowns map[int]time.Duration
	rng       *rand.Rand
	bus       *event.Bus
	log       *zap.Logger
	tracer    trace.Tracer
}

// New creates an empty world. rng drives spawn jitter; damage rolls come
// from the resolver.
func New(cfg Config, registry *entity.Registry, resolver *combat.Resolver, rng *rand.Rand, bus *event.Bus, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.CooldownBase <= 0 {
		cfg.CooldownBase = time.Second
	}
	return &World{
		cfg:       cfg,
		registry:  registry,
		resolver:  resolver,
		cooldowns: make(map[int]time.Duration),
		rng:       rng,
		bus:       bus,
		log:       log,
		tracer:    telemetry.Tracer("world"),
	}
}

// Initialize spawns both armies and emits world-initialized.
func (w *World) Initialize(ctx context.Context) error {
	_, span := w.tracer.Start(ctx, "world.initialize")
	defer span.End()

	if err := w.spawn(); err != nil {
		span.RecordError(err)
		return err
	}

	summary := Initialized{
		Width:       w.cfg.Width,
		Height:      w.cfg.Height,
		Terrain:     w.cfg.Terrain,
		PlayerUnits: w.registry.CountByFaction(entity.FactionPlayer),
		EnemyUnits:  w.registry.CountByFaction(entity.FactionEnemy),
	}
	span.SetAttributes(
		attribute.Int("world.waves", w.cfg.Waves),
		attribute.Int("world.player_units", summary.PlayerUnits),
		attribute.Int("world.enemy_units", summary.EnemyUnits),
	)
	w.log.Info("world initialized",
		zap.Int("player_units", summary.PlayerUnits),
		zap.Int("enemy_units", summary.EnemyUnits),
	)

	w.bus.Emit(event.WorldInitialized, summary)
	return nil
}

// spawn places one player and one enemy unit of every type per wave. Player
// waves grow up from the bottom edge and enemy waves down from the top, each
// type in its own column.
func (w *World) spawn() error {
	types := w.registry.Types().IDs()
	columns := float64(len(types) + 1)
	bounds := w.Bounds()

	for wave := 0; wave < w.cfg.Waves; wave++ {
		offset := edgeMargin + float64(wave)*waveSpacing
		for i, typeID := range types {
			baseX := w.cfg.Width * float64(i+1) / columns

			player := bounds.Clamp(entity.Vec2{
				X: baseX + w.jitter(jitterX),
				Y: w.cfg.Height - offset + w.jitter(jitterY),
			})
			if _, err := w.registry.CreateUnit(typeID, player, entity.FactionPlayer); err != nil {
				return fmt.Errorf("spawn player %s: %w", typeID, err)
			}

			enemy := bounds.Clamp(entity.Vec2{
				X: baseX + w.jitter(jitterX),
				Y: offset + w.jitter(jitterY),
			})
			if _, err := w.registry.CreateUnit(typeID, enemy, entity.FactionEnemy); err != nil {
				return fmt.Errorf("spawn enemy %s: %w", typeID, err)
			}
		}
	}
	return nil
}

// jitter returns a uniform offset in [-amount, amount).
func (w *World) jitter(amount float64) float64 {
	return (w.rng.Float64()*2 - 1) * amount
}

// MoveUnit places a unit at pos.
func (w *World) MoveUnit(id int, pos entity.Vec2) {
	w.registry.MoveUnit(id, pos)
}

// ProcessCombat has the attacker strike the defender at game time now. It
// does nothing and returns false while the attacker is cooling down or when
// either unit is gone. Otherwise the attacker's cooldown restarts, whether or
// not the defender was in range, and it returns true if the defender was
// defeated and removed.
func (w *World) ProcessCombat(ctx context.Context, attackerID, defenderID int, now time.Duration) bool {
	attacker, ok := w.registry.Unit(attackerID)
	if !ok || w.CoolingDown(attackerID, now) {
		return false
	}
	if _, ok := w.registry.Unit(defenderID); !ok {
		return false
	}

	_, span := w.tracer.Start(ctx, "combat.attack")
	defer span.End()

	// Update removes the defender once its health reaches zero.
	var defeated bool
	var remaining int
	w.registry.Update(defenderID, func(d *entity.Unit) {
		defeated = w.resolver.PerformAttack(attacker, d)
		remaining = d.Health
	})
	w.cooldowns[attackerID] = now + w.cooldownFor(attacker)

	span.SetAttributes(
		attribute.Int("combat.attacker_id", attackerID),
		attribute.Int("combat.defender_id", defenderID),
		attribute.Int("combat.defender_health", remaining),
		attribute.Bool("combat.defeated", defeated),
	)

	if defeated {
		w.log.Debug("unit defeated",
			zap.Int("unit_id", defenderID),
			zap.Int("attacker_id", attackerID),
		)
		delete(w.cooldowns, defenderID)
	}
	return defeated
}

// CheckCombatForUnit lets a unit attack the first enemy it can reach. It
// does nothing if the unit is gone or cooling down.
func (w *World) CheckCombatForUnit(ctx context.Context, id int, now time.Duration) {
	u, ok := w.registry.Unit(id)
	if !ok || w.CoolingDown(id, now) {
		return
	}
	targets := combat.FindEnemiesInRange(u, w.registry.Units())
	if len(targets) == 0 {
		return
	}
	w.ProcessCombat(ctx, id, targets[0].ID, now)
}

// CoolingDown reports whether a unit must wait before attacking again.
func (w *World) CoolingDown(id int, now time.Duration) bool {
	return now < w.cooldowns[id]
}

// cooldownFor is CooldownBase scaled down by speed.
func (w *World) cooldownFor(u entity.Unit) time.Duration {
	if u.Speed <= 0 {
		return w.cfg.CooldownBase
	}
	return w.cfg.CooldownBase / time.Duration(u.Speed)
}

// GameOver checks whether one side has been wiped out. Players are checked
// first, so a field with no units at all is an enemy win.
func (w *World) GameOver() Outcome {
	if w.registry.CountByFaction(entity.FactionPlayer) == 0 {
		return Outcome{Over: true, Winner: entity.FactionEnemy}
	}
	if w.registry.CountByFaction(entity.FactionEnemy) == 0 {
		return Outcome{Over: true, Winner: entity.FactionPlayer}
	}
	return Outcome{}
}

// Reset clears the field and cooldowns, respawns both armies and emits
// world-reset.
func (w *World) Reset(ctx context.Context) error {
	_, span := w.tracer.Start(ctx, "world.reset")
	defer span.End()

	w.registry.Clear()
	w.cooldowns = make(map[int]time.Duration)

	if err := w.spawn(); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.Int("world.units", w.registry.Count()))

	w.bus.Emit(event.WorldReset, nil)
	return nil
}

// Registry returns the unit registry the world operates on.
func (w *World) Registry() *entity.Registry {
	return w.registry
}

// Bounds returns the playable area.
func (w *World) Bounds() Rect {
	return Rect{Width: w.cfg.Width, Height: w.cfg.Height}
}

// Config returns the battlefield settings.
func (w *World) Config() Config {
	return w.cfg
}
