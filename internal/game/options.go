package game

import (
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

type options struct {
	log        *zap.Logger
	damageRand combat.Rand
	types      *gamedata.UnitTypeRegistry
}

// Option customizes a Game.
type Option func(*options)

// WithLogger sets the logger shared by the game and its subsystems.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithDamageRand replaces the seeded source used for damage rolls.
func WithDamageRand(r combat.Rand) Option {
	return func(o *options) { o.damageRand = r }
}

// WithUnitTypes replaces the embedded unit type table.
func WithUnitTypes(types *gamedata.UnitTypeRegistry) Option {
	return func(o *options) { o.types = types }
}
