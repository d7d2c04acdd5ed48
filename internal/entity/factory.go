package entity

import (
	"fmt"

	"github.com/samdwyer/skirmish/internal/gamedata"
)

// Factory builds units from type templates. Each factory owns its id counter,
// so independent games never share id space. Ids start at 1 and are never
// reused.
type Factory struct {
	types  *gamedata.UnitTypeRegistry
	nextID int
}

// NewFactory creates a factory backed by the given template table.
func NewFactory(types *gamedata.UnitTypeRegistry) *Factory {
	return &Factory{types: types, nextID: 1}
}

// Create returns a new full-health unit of the given type. An empty faction
// means FactionPlayer. The position is copied.
func (f *Factory) Create(unitType string, pos Vec2, faction Faction) (Unit, error) {
	def := f.types.GetByID(unitType)
	if def == nil {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnitType, unitType)
	}
	if faction == "" {
		faction = FactionPlayer
	}
	if !faction.Valid() {
		return Unit{}, fmt.Errorf("invalid faction %q", faction)
	}

	u := Unit{
		ID:        f.nextID,
		Type:      def.ID,
		Health:    def.HP,
		MaxHealth: def.HP,
		Attack:    def.Attack,
		Defense:   def.Defense,
		Speed:     def.Speed,
		Range:     def.Range,
		Position:  pos,
		Faction:   faction,
	}
	f.nextID++
	return u, nil
}

// Types returns the template table the factory reads from.
func (f *Factory) Types() *gamedata.UnitTypeRegistry {
	return f.types
}
