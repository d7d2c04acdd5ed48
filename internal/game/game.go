package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/event"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/world"
)

// Status is a snapshot of the game for hosts. It is also the payload of
// game-initialized.
type Status struct {
	ID          string         `json:"gameId"`
	State       State          `json:"state"`
	Tick        uint64         `json:"tick"`
	PlayerUnits int            `json:"playerUnits"`
	EnemyUnits  int            `json:"enemyUnits"`
	Winner      entity.Faction `json:"winner,omitempty"`
}

// Over is the payload of a game-over notification.
type Over struct {
	Winner entity.Faction `json:"winner"`
	GameID string         `json:"gameId"`
}

// Game holds the entire game state. Time passed to Update is game time: any
// monotonically increasing clock the host chooses, such as time since start.
//
// A Game is not safe for concurrent use; hosts call it from one goroutine.
type Game struct {
	id       string
	cfg      Config
	bus      *event.Bus
	registry *entity.Registry
	world    *world.World
	log      *zap.Logger
	tracer   trace.Tracer

	state   State
	tick    uint64
	last    time.Duration // time the most recent step was due
	hasLast bool          // false until the first Update after init, resume or reset
	winner  entity.Faction
}

// New creates a game with its own event bus, registry and world. Nothing is
// spawned until Initialize.
func New(cfg Config, opts ...Option) (*Game, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.types == nil {
		types, err := gamedata.LoadUnitTypeRegistry()
		if err != nil {
			return nil, err
		}
		o.types = types
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	if o.damageRand == nil {
		o.damageRand = rng
	}

	id := uuid.NewString()
	log := o.log.With(zap.String("game_id", id))

	bus := event.NewBus()
	registry := entity.NewRegistry(o.types, bus, log)
	resolver := combat.NewResolver(o.damageRand, bus)

	return &Game{
		id:       id,
		cfg:      cfg,
		bus:      bus,
		registry: registry,
		world:    world.New(cfg.World, registry, resolver, rng, bus, log),
		log:      log,
		tracer:   telemetry.Tracer("game"),
		state:    StateRunning,
	}, nil
}

// Initialize spawns the battlefield and emits game-initialized. The first
// Update afterwards only sets the clock baseline.
func (g *Game) Initialize(ctx context.Context) error {
	ctx, span := g.tracer.Start(ctx, "game.init")
	defer span.End()

	if err := g.world.Initialize(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	g.state = StateRunning
	g.hasLast = false
	g.tick = 0
	g.winner = ""

	span.SetAttributes(
		attribute.String("game.id", g.id),
		attribute.Int("game.units", g.registry.Count()),
	)
	g.log.Info("game initialized", zap.Int("units", g.registry.Count()))

	g.bus.Emit(event.GameInitialized, g.Status())
	return nil
}

// Update advances the simulation to game time now. It runs at most one step
// per call; when the host falls behind, the backlog is worked off one step
// per frame.
func (g *Game) Update(ctx context.Context, now, delta time.Duration) {
	if !g.hasLast {
		g.last = now
		g.hasLast = true
		return
	}
	if g.state == StatePaused {
		return
	}
	if now-g.last < g.cfg.TickInterval {
		return
	}
	g.last += g.cfg.TickInterval
	g.step(ctx, now, delta)
}

// step runs one simulation tick: enemies advance, every unit gets a chance
// to attack, then the outcome is checked.
func (g *Game) step(ctx context.Context, now, delta time.Duration) {
	ctx, span := g.tracer.Start(ctx, "game.step")
	defer span.End()

	g.tick++
	before := g.registry.Count()

	moved := g.advanceEnemies()

	for _, u := range g.registry.Units() {
		g.world.CheckCombatForUnit(ctx, u.ID, now)
	}

	span.SetAttributes(
		attribute.Int64("game.tick", int64(g.tick)),
		attribute.Int64("frame.delta_ms", delta.Milliseconds()),
		attribute.Int("game.moved", moved),
		attribute.Int("game.defeats", before-g.registry.Count()),
		attribute.Int("game.player_units", g.registry.CountByFaction(entity.FactionPlayer)),
		attribute.Int("game.enemy_units", g.registry.CountByFaction(entity.FactionEnemy)),
	)

	if out := g.world.GameOver(); out.Over {
		g.finish(ctx, out.Winner)
	}
}

func (g *Game) finish(ctx context.Context, winner entity.Faction) {
	_, span := g.tracer.Start(ctx, "game.over")
	defer span.End()

	g.state = StatePaused
	g.winner = winner

	span.SetAttributes(
		attribute.String("game.winner", string(winner)),
		attribute.Int64("game.ticks", int64(g.tick)),
	)
	g.log.Info("game over", zap.String("winner", string(winner)), zap.Uint64("tick", g.tick))

	g.bus.Emit(event.GameOver, Over{Winner: winner, GameID: g.id})
}

// Pause stops the simulation. It does nothing if already paused.
func (g *Game) Pause() {
	if g.state == StatePaused {
		return
	}
	g.state = StatePaused
	g.bus.Emit(event.GamePaused, nil)
}

// Resume restarts the simulation. The next Update sets a new clock baseline
// so time spent paused is not caught up. It does nothing if already running.
func (g *Game) Resume() {
	if g.state == StateRunning {
		return
	}
	g.state = StateRunning
	g.hasLast = false
	g.bus.Emit(event.GameResumed, nil)
}

// MoveUnit places a unit at pos. Ignored while paused.
func (g *Game) MoveUnit(id int, pos entity.Vec2) {
	if g.state == StatePaused {
		g.log.Debug("move ignored while paused", zap.Int("unit_id", id))
		return
	}
	g.world.MoveUnit(id, pos)
}

// MoveSelected sends every selected player unit to pos. Ignored while paused.
func (g *Game) MoveSelected(pos entity.Vec2) {
	if g.state == StatePaused {
		return
	}
	for _, u := range g.registry.SelectedUnits() {
		if u.Faction == entity.FactionPlayer {
			g.world.MoveUnit(u.ID, pos)
		}
	}
}

// SelectUnits replaces the selection. Allowed while paused.
func (g *Game) SelectUnits(ids []int) {
	g.registry.SelectUnits(ids)
}

// SelectInArea selects the player units inside the box spanned by the two
// corners and returns how many were selected. Allowed while paused.
func (g *Game) SelectInArea(x1, y1, x2, y2 float64) int {
	var ids []int
	for _, u := range g.registry.UnitsInArea(x1, y1, x2, y2) {
		if u.Faction == entity.FactionPlayer {
			ids = append(ids, u.ID)
		}
	}
	g.registry.SelectUnits(ids)
	return len(ids)
}

// DeselectAll clears the selection. Allowed while paused.
func (g *Game) DeselectAll() {
	g.registry.DeselectAll()
}

// Reset respawns the battlefield, unpauses and emits game-reset with the
// game id.
func (g *Game) Reset(ctx context.Context) error {
	if err := g.world.Reset(ctx); err != nil {
		return err
	}
	g.state = StateRunning
	g.hasLast = false
	g.tick = 0
	g.winner = ""

	g.log.Info("game reset")
	g.bus.Emit(event.GameReset, g.id)
	return nil
}

// Status returns a snapshot of the game.
func (g *Game) Status() Status {
	return Status{
		ID:          g.id,
		State:       g.state,
		Tick:        g.tick,
		PlayerUnits: g.registry.CountByFaction(entity.FactionPlayer),
		EnemyUnits:  g.registry.CountByFaction(entity.FactionEnemy),
		Winner:      g.winner,
	}
}

// ID returns the game's unique id.
func (g *Game) ID() string { return g.id }

// State returns whether the game is running or paused.
func (g *Game) State() State { return g.state }

// Tick returns the number of simulation steps run since the last reset.
func (g *Game) Tick() uint64 { return g.tick }

// Bus returns the game's event bus.
func (g *Game) Bus() *event.Bus { return g.bus }

// Registry returns the game's units.
func (g *Game) Registry() *entity.Registry { return g.registry }

// World returns the battlefield.
func (g *Game) World() *world.World { return g.world }
