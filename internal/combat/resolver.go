// Package combat resolves attacks between battlefield units.
package combat

import (
	"math"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/event"
)

// RangeUnit is the number of world units covered by one point of Range.
const RangeUnit = 50.0

// Rand is the randomness source for damage rolls. *rand.Rand satisfies it;
// tests swap in fixed sources.
type Rand interface {
	Intn(n int) int
}

// Attack is the payload of a combat-attack notification.
type Attack struct {
	Attacker                entity.Unit `json:"attacker"`
	Defender                entity.Unit `json:"defender"`
	Damage                  int         `json:"damage"`
	DefenderRemainingHealth int         `json:"defenderRemainingHealth"`
}

// Defeat is the payload of a combat-defeat notification.
type Defeat struct {
	Attacker entity.Unit `json:"attacker"`
	Defender entity.Unit `json:"defender"`
}

// Distance returns the straight-line distance between two points.
func Distance(a, b entity.Vec2) float64 {
	return b.Sub(a).Len()
}

// InRange reports whether target is within the attacker's reach. Only the
// attacker's range counts, so the check is not symmetric.
func InRange(attacker, target entity.Unit) bool {
	return Distance(attacker.Position, target.Position) <= float64(attacker.Range)*RangeUnit
}

// FindClosestEnemy returns the nearest unit of a different faction. On a tie
// the unit that comes first in all wins.
func FindClosestEnemy(u entity.Unit, all []entity.Unit) (entity.Unit, bool) {
	var closest entity.Unit
	found := false
	best := math.Inf(1)
	for _, other := range all {
		if other.Faction == u.Faction {
			continue
		}
		if d := Distance(u.Position, other.Position); d < best {
			best = d
			closest = other
			found = true
		}
	}
	return closest, found
}

// FindEnemiesInRange returns every unit of a different faction that u can
// reach, in the order of all.
func FindEnemiesInRange(u entity.Unit, all []entity.Unit) []entity.Unit {
	var out []entity.Unit
	for _, other := range all {
		if other.Faction != u.Faction && InRange(u, other) {
			out = append(out, other)
		}
	}
	return out
}

// Resolver rolls damage and applies attacks.
type Resolver struct {
	rng Rand
	bus *event.Bus
}

// NewResolver creates a resolver that rolls with rng and reports to bus.
func NewResolver(rng Rand, bus *event.Bus) *Resolver {
	return &Resolver{rng: rng, bus: bus}
}

// CalculateDamage rolls the damage attacker deals to defender without
// applying it.
//
//	base = attack - defense/2   (integer halving)
//	min  = max(1, floor(base*0.8))
//	max  = max(min, ceil(base*1.2))
//
// The result is uniform in [min, max] and never below 1.
func (r *Resolver) CalculateDamage(attacker, defender entity.Unit) int {
	minDmg, maxDmg := DamageBounds(attacker, defender)
	return minDmg + r.rng.Intn(maxDmg-minDmg+1)
}

// DamageBounds returns the inclusive damage range of attacker against
// defender.
func DamageBounds(attacker, defender entity.Unit) (minDmg, maxDmg int) {
	base := attacker.Attack - defender.Defense/2

	// base*0.8 and base*1.2 as exact fifths, so whole results stay whole.
	minDmg = int(math.Floor(float64(base*4) / 5))
	if minDmg < 1 {
		minDmg = 1
	}
	maxDmg = int(math.Ceil(float64(base*6) / 5))
	if maxDmg < minDmg {
		maxDmg = minDmg
	}
	return minDmg, maxDmg
}

// PerformAttack has attacker strike defender. Out of range, nothing happens
// and it returns false. Otherwise damage is applied to defender, floored at
// zero health, and it returns true if the defender was defeated.
func (r *Resolver) PerformAttack(attacker entity.Unit, defender *entity.Unit) bool {
	if !InRange(attacker, *defender) {
		return false
	}

	damage := r.CalculateDamage(attacker, *defender)
	defender.Health -= damage
	if defender.Health < 0 {
		defender.Health = 0
	}

	r.bus.Emit(event.CombatAttack, Attack{
		Attacker:                attacker,
		Defender:                *defender,
		Damage:                  damage,
		DefenderRemainingHealth: defender.Health,
	})

	if defender.Health <= 0 {
		r.bus.Emit(event.CombatDefeat, Defeat{Attacker: attacker, Defender: *defender})
		return true
	}
	return false
}
