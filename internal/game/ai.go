package game

import (
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
)

// stepPerSpeed is the distance covered per tick for each point of speed.
const stepPerSpeed = 2.0

// advanceEnemies moves every enemy that cannot reach a player unit one step
// toward the closest one. Enemies already in range hold their ground.
func (g *Game) advanceEnemies() int {
	players := g.registry.UnitsByFaction(entity.FactionPlayer)
	if len(players) == 0 {
		return 0
	}

	moved := 0
	for _, e := range g.registry.UnitsByFaction(entity.FactionEnemy) {
		target, ok := combat.FindClosestEnemy(e, players)
		if !ok || combat.InRange(e, target) {
			continue
		}
		g.world.MoveUnit(e.ID, stepToward(e, target.Position))
		moved++
	}
	return moved
}

// stepToward returns where u ends up after one tick of walking to target.
func stepToward(u entity.Unit, target entity.Vec2) entity.Vec2 {
	dir := target.Sub(u.Position).Norm()
	return u.Position.Add(dir.Scale(float64(u.Speed) * stepPerSpeed))
}
