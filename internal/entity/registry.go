package entity

import (
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/event"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// Registry owns every live unit and the current selection. Units are kept in
// creation order, which is the order all queries return them in.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	factory  *Factory
	bus      *event.Bus
	log      *zap.Logger
	units    []*Unit
	index    map[int]*Unit
	selected []int // selection order
}

// NewRegistry creates an empty registry. Notifications go to bus.
func NewRegistry(types *gamedata.UnitTypeRegistry, bus *event.Bus, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		factory: NewFactory(types),
		bus:     bus,
		log:     log,
		index:   make(map[int]*Unit),
	}
}

// CreateUnit builds a unit from its type template and adds it.
func (r *Registry) CreateUnit(unitType string, pos Vec2, faction Faction) (Unit, error) {
	u, err := r.factory.Create(unitType, pos, faction)
	if err != nil {
		return Unit{}, err
	}
	live := &u
	r.units = append(r.units, live)
	r.index[u.ID] = live

	r.bus.Emit(event.UnitAdded, u)
	return u, nil
}

// RemoveUnit deletes a unit, dropping it from the selection first. Unknown
// ids are ignored.
func (r *Registry) RemoveUnit(id int) {
	live, ok := r.index[id]
	if !ok {
		return
	}
	delete(r.index, id)
	for i, u := range r.units {
		if u.ID == id {
			r.units = append(r.units[:i], r.units[i+1:]...)
			break
		}
	}

	if live.Selected {
		live.Selected = false
		r.dropSelected(id)
		r.bus.Emit(event.UnitDeselected, *live)
	}

	r.bus.Emit(event.UnitRemoved, *live)
}

// SelectUnits replaces the selection with the given ids. Unknown and
// duplicate ids are ignored.
func (r *Registry) SelectUnits(ids []int) {
	r.clearSelection()

	for _, id := range ids {
		live, ok := r.index[id]
		if !ok || live.Selected {
			continue
		}
		live.Selected = true
		r.selected = append(r.selected, id)
		r.bus.Emit(event.UnitSelected, *live)
	}

	r.bus.Emit(event.UnitsSelected, r.SelectedUnits())
}

// DeselectAll clears the selection. It does nothing when nothing is selected.
func (r *Registry) DeselectAll() {
	r.clearSelection()
}

// clearSelection drops every selection flag and reports the previous
// selection, if there was one.
func (r *Registry) clearSelection() {
	if len(r.selected) == 0 {
		return
	}
	previous := make([]Unit, 0, len(r.selected))
	for _, id := range r.selected {
		if live, ok := r.index[id]; ok {
			live.Selected = false
			previous = append(previous, *live)
		}
	}
	r.selected = nil
	r.bus.Emit(event.UnitsDeselected, previous)
}

func (r *Registry) dropSelected(id int) {
	for i, sel := range r.selected {
		if sel == id {
			r.selected = append(r.selected[:i], r.selected[i+1:]...)
			return
		}
	}
}

// MoveUnit places a unit at pos.
func (r *Registry) MoveUnit(id int, pos Vec2) {
	live, ok := r.index[id]
	if !ok {
		r.log.Debug("move ignored", zap.Int("unit_id", id), zap.Error(ErrUnitNotFound))
		return
	}
	old := live.Position
	live.Position = pos

	r.bus.Emit(event.UnitMoved, UnitMoved{Unit: *live, OldPosition: old, NewPosition: pos})
}

// DamageUnit lowers a unit's health, flooring at zero, and removes it when
// nothing is left. It returns true if the unit was defeated.
func (r *Registry) DamageUnit(id int, amount int) bool {
	live, ok := r.index[id]
	if !ok {
		r.log.Debug("damage ignored", zap.Int("unit_id", id), zap.Error(ErrUnitNotFound))
		return false
	}
	if amount < 0 {
		amount = 0
	}
	live.Health -= amount
	if live.Health < 0 {
		live.Health = 0
	}

	r.bus.Emit(event.UnitDamaged, UnitAmount{Unit: *live, Amount: amount})

	if live.Health <= 0 {
		r.RemoveUnit(id)
		return true
	}
	return false
}

// HealUnit raises a unit's health up to its maximum and returns the amount
// actually restored. Nothing is emitted when that amount is zero.
func (r *Registry) HealUnit(id int, amount int) int {
	live, ok := r.index[id]
	if !ok {
		r.log.Debug("heal ignored", zap.Int("unit_id", id), zap.Error(ErrUnitNotFound))
		return 0
	}
	delta := amount
	if missing := live.MaxHealth - live.Health; delta > missing {
		delta = missing
	}
	if delta <= 0 {
		return 0
	}
	live.Health += delta

	r.bus.Emit(event.UnitHealed, UnitAmount{Unit: *live, Amount: delta})
	return delta
}

// Update runs fn against a copy of the unit with the given id, stores the
// result and reports whether the unit exists. ID, faction and selection are
// kept; health is clamped to [0, MaxHealth]. A unit left without health is
// removed before Update returns.
func (r *Registry) Update(id int, fn func(*Unit)) bool {
	live, ok := r.index[id]
	if !ok {
		return false
	}
	u := *live
	fn(&u)

	u.ID, u.Faction, u.Selected = live.ID, live.Faction, live.Selected
	if u.Health > u.MaxHealth {
		u.Health = u.MaxHealth
	}
	if u.Health < 0 {
		u.Health = 0
	}
	*live = u

	if live.Health <= 0 {
		r.RemoveUnit(id)
	}
	return true
}

// Clear removes every unit and the selection. Ids keep counting up.
func (r *Registry) Clear() {
	r.units = nil
	r.index = make(map[int]*Unit)
	r.selected = nil
	r.bus.Emit(event.UnitsCleared, nil)
}

// =============================================================================
// Queries
// =============================================================================

// Unit returns a snapshot of the unit with the given id.
func (r *Registry) Unit(id int) (Unit, bool) {
	live, ok := r.index[id]
	if !ok {
		return Unit{}, false
	}
	return *live, true
}

// Units returns snapshots of all units in creation order.
func (r *Registry) Units() []Unit {
	out := make([]Unit, len(r.units))
	for i, u := range r.units {
		out[i] = *u
	}
	return out
}

// UnitsByFaction returns snapshots of the units belonging to f.
func (r *Registry) UnitsByFaction(f Faction) []Unit {
	out := make([]Unit, 0, len(r.units))
	for _, u := range r.units {
		if u.Faction == f {
			out = append(out, *u)
		}
	}
	return out
}

// SelectedUnits returns snapshots of the selected units in selection order.
func (r *Registry) SelectedUnits() []Unit {
	out := make([]Unit, 0, len(r.selected))
	for _, id := range r.selected {
		if live, ok := r.index[id]; ok {
			out = append(out, *live)
		}
	}
	return out
}

// UnitsInArea returns the units inside the box spanned by the two corners,
// edges included. The corners may be given in any order.
func (r *Registry) UnitsInArea(x1, y1, x2, y2 float64) []Unit {
	minX, maxX := x1, x2
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := y1, y2
	if minY > maxY {
		minY, maxY = maxY, minY
	}

	var out []Unit
	for _, u := range r.units {
		p := u.Position
		if p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY {
			out = append(out, *u)
		}
	}
	return out
}

// Count returns the number of units.
func (r *Registry) Count() int {
	return len(r.units)
}

// CountByFaction returns the number of units belonging to f.
func (r *Registry) CountByFaction(f Faction) int {
	n := 0
	for _, u := range r.units {
		if u.Faction == f {
			n++
		}
	}
	return n
}

// Types returns the template table units are built from.
func (r *Registry) Types() *gamedata.UnitTypeRegistry {
	return r.factory.Types()
}
