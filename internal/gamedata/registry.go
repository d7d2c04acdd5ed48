package gamedata

import (
	"errors"
	"fmt"
)

// UnitTypeRegistry holds loaded unit type definitions in file order and
// provides lookup by ID. It is read-only once built.
type UnitTypeRegistry struct {
	byID map[string]*UnitTypeDef
	all  []UnitTypeDef
}

// NewUnitTypeRegistry creates a registry from loaded unit type definitions.
func NewUnitTypeRegistry(defs []UnitTypeDef) (*UnitTypeRegistry, error) {
	registry := &UnitTypeRegistry{
		byID: make(map[string]*UnitTypeDef, len(defs)),
		all:  make([]UnitTypeDef, len(defs)),
	}
	copy(registry.all, defs)
	for i := range registry.all {
		def := &registry.all[i]
		if def.ID == "" {
			return nil, fmt.Errorf("unit type at index %d has no id", i)
		}
		if def.HP <= 0 {
			return nil, fmt.Errorf("unit type %q: hp must be positive", def.ID)
		}
		if def.Speed <= 0 {
			return nil, fmt.Errorf("unit type %q: speed must be positive", def.ID)
		}
		if _, dup := registry.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate unit type %q", def.ID)
		}
		registry.byID[def.ID] = def
	}
	return registry, nil
}

// LoadUnitTypeRegistry loads and creates a registry from the embedded unit_types.yaml.
func LoadUnitTypeRegistry() (*UnitTypeRegistry, error) {
	defs, err := LoadUnitTypes()
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, errors.New("no unit types loaded from unit_types.yaml")
	}
	return NewUnitTypeRegistry(defs)
}

// MustLoadUnitTypeRegistry loads a registry, panicking on error.
func MustLoadUnitTypeRegistry() *UnitTypeRegistry {
	registry, err := LoadUnitTypeRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the unit type definition with the given ID, or nil if not found.
func (r *UnitTypeRegistry) GetByID(id string) *UnitTypeDef {
	return r.byID[id]
}

// All returns a copy of all unit type definitions in file order.
func (r *UnitTypeRegistry) All() []UnitTypeDef {
	out := make([]UnitTypeDef, len(r.all))
	copy(out, r.all)
	return out
}

// IDs returns the unit type IDs in file order.
func (r *UnitTypeRegistry) IDs() []string {
	ids := make([]string, len(r.all))
	for i := range r.all {
		ids[i] = r.all[i].ID
	}
	return ids
}

// Count returns the number of unit types in the registry.
func (r *UnitTypeRegistry) Count() int {
	return len(r.all)
}
