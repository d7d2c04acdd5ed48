// Package entity provides battlefield units, their factory and the registry
// that owns them.
package entity

import "errors"

var (
	// ErrUnknownUnitType is returned when a unit is requested for a type that
	// has no template.
	ErrUnknownUnitType = errors.New("unknown unit type")

	// ErrUnitNotFound marks commands addressed to a unit that no longer
	// exists. It is logged, never returned to the tick loop.
	ErrUnitNotFound = errors.New("unit not found")
)

// Faction decides which units may target each other.
type Faction string

const (
	FactionPlayer  Faction = "player"
	FactionEnemy   Faction = "enemy"
	FactionNeutral Faction = "neutral"
)

// Valid reports whether f is one of the known factions.
func (f Faction) Valid() bool {
	switch f {
	case FactionPlayer, FactionEnemy, FactionNeutral:
		return true
	default:
		return false
	}
}

// Unit is a single combatant on the battlefield. Values handed out by the
// Registry are snapshots; changing them has no effect on the simulation.
type Unit struct {
	ID        int     `json:"id"`
	Type      string  `json:"type"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
	Attack    int     `json:"attack"`
	Defense   int     `json:"defense"`
	Speed     int     `json:"speed"`
	Range     int     `json:"range"`
	Position  Vec2    `json:"position"`
	Selected  bool    `json:"selected"`
	Faction   Faction `json:"faction"`
}

// IsAlive returns true if the unit has health remaining.
func (u Unit) IsAlive() bool { return u.Health > 0 }

// UnitMoved is the payload of a unit-moved notification.
type UnitMoved struct {
	Unit        Unit `json:"unit"`
	OldPosition Vec2 `json:"oldPosition"`
	NewPosition Vec2 `json:"newPosition"`
}

// UnitAmount is the payload of unit-damaged and unit-healed notifications.
type UnitAmount struct {
	Unit   Unit `json:"unit"`
	Amount int  `json:"amount"`
}
