package event

// Topic names a notification on the bus.
type Topic string

// Registry notifications.
const (
	UnitAdded       Topic = "unit-added"       // entity.Unit
	UnitRemoved     Topic = "unit-removed"     // entity.Unit (last known state)
	UnitSelected    Topic = "unit-selected"    // entity.Unit
	UnitDeselected  Topic = "unit-deselected"  // entity.Unit
	UnitsSelected   Topic = "units-selected"   // []entity.Unit
	UnitsDeselected Topic = "units-deselected" // []entity.Unit
	UnitMoved       Topic = "unit-moved"       // entity.UnitMoved
	UnitDamaged     Topic = "unit-damaged"     // entity.UnitAmount
	UnitHealed      Topic = "unit-healed"      // entity.UnitAmount
	UnitsCleared    Topic = "units-cleared"    // nil
)

// Combat notifications.
const (
	CombatAttack Topic = "combat-attack" // combat.Attack
	CombatDefeat Topic = "combat-defeat" // combat.Defeat
)

// World and game lifecycle notifications.
const (
	WorldInitialized Topic = "world-initialized" // world.Initialized
	WorldReset       Topic = "world-reset"       // nil
	GameInitialized  Topic = "game-initialized"  // game.Status
	GamePaused       Topic = "game-paused"       // nil
	GameResumed      Topic = "game-resumed"      // nil
	GameOver         Topic = "game-over"         // game.Over
	GameReset        Topic = "game-reset"        // string (game id)
)

// AllTopics lists every topic the simulation emits, in declaration order.
var AllTopics = []Topic{
	UnitAdded, UnitRemoved, UnitSelected, UnitDeselected,
	UnitsSelected, UnitsDeselected, UnitMoved, UnitDamaged, UnitHealed, UnitsCleared,
	CombatAttack, CombatDefeat,
	WorldInitialized, WorldReset,
	GameInitialized, GamePaused, GameResumed, GameOver, GameReset,
}
