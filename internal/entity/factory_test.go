package entity

import (
	"errors"
	"testing"

	"github.com/samdwyer/skirmish/internal/gamedata"
)

func TestFactoryCreateAllTypes(t *testing.T) {
	types := gamedata.MustLoadUnitTypeRegistry()
	factory := NewFactory(types)

	for _, def := range types.All() {
		u, err := factory.Create(def.ID, Vec2{X: 10, Y: 20}, FactionEnemy)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", def.ID, err)
		}
		if u.Health != def.HP || u.MaxHealth != def.HP {
			t.Errorf("Create(%q) health = %d/%d, want %d/%d", def.ID, u.Health, u.MaxHealth, def.HP, def.HP)
		}
		if u.Selected {
			t.Errorf("Create(%q) should not be selected", def.ID)
		}
		if u.Attack != def.Attack || u.Defense != def.Defense || u.Speed != def.Speed || u.Range != def.Range {
			t.Errorf("Create(%q) stats not copied from template", def.ID)
		}
		if u.Faction != FactionEnemy {
			t.Errorf("Create(%q).Faction = %q, want enemy", def.ID, u.Faction)
		}
	}
}

func TestFactoryIDsIncrease(t *testing.T) {
	factory := NewFactory(gamedata.MustLoadUnitTypeRegistry())

	prev := 0
	for i := 0; i < 5; i++ {
		u, err := factory.Create("archer", Vec2{}, FactionPlayer)
		if err != nil {
			t.Fatalf("Create() error: %v", err)
		}
		if u.ID <= prev {
			t.Errorf("id %d not greater than previous %d", u.ID, prev)
		}
		prev = u.ID
	}
}

func TestFactoriesHaveIndependentIDs(t *testing.T) {
	types := gamedata.MustLoadUnitTypeRegistry()
	a := NewFactory(types)
	b := NewFactory(types)

	ua, _ := a.Create("archer", Vec2{}, FactionPlayer)
	a.Create("archer", Vec2{}, FactionPlayer)
	ub, _ := b.Create("archer", Vec2{}, FactionPlayer)

	if ua.ID != 1 || ub.ID != 1 {
		t.Errorf("first ids = %d, %d, want 1, 1", ua.ID, ub.ID)
	}
}

func TestFactoryUnknownType(t *testing.T) {
	factory := NewFactory(gamedata.MustLoadUnitTypeRegistry())

	_, err := factory.Create("dragon", Vec2{}, FactionPlayer)
	if !errors.Is(err, ErrUnknownUnitType) {
		t.Fatalf("Create(dragon) error = %v, want ErrUnknownUnitType", err)
	}

	// A failed create must not burn an id.
	u, err := factory.Create("archer", Vec2{}, FactionPlayer)
	if err != nil {
		t.Fatalf("Create(archer) error: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("first successful id = %d, want 1", u.ID)
	}
}

func TestFactoryDefaultFaction(t *testing.T) {
	factory := NewFactory(gamedata.MustLoadUnitTypeRegistry())

	u, err := factory.Create("mage-squad", Vec2{}, "")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if u.Faction != FactionPlayer {
		t.Errorf("default faction = %q, want player", u.Faction)
	}

	if _, err := factory.Create("mage-squad", Vec2{}, Faction("pirates")); err == nil {
		t.Error("Create() with an invalid faction should fail")
	}
}

func TestFactoryCopiesPosition(t *testing.T) {
	factory := NewFactory(gamedata.MustLoadUnitTypeRegistry())

	pos := Vec2{X: 1, Y: 2}
	u, _ := factory.Create("archer", pos, FactionPlayer)
	pos.X = 99

	if u.Position.X != 1 {
		t.Errorf("unit position changed with caller's value: %v", u.Position)
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	if v.Len() != 5 {
		t.Errorf("Len() = %v, want 5", v.Len())
	}
	n := v.Norm()
	if n.X != 0.6 || n.Y != 0.8 {
		t.Errorf("Norm() = %v, want {0.6 0.8}", n)
	}
	if (Vec2{}).Norm() != (Vec2{}) {
		t.Error("Norm() of zero vector should be zero")
	}
	if got := v.Sub(Vec2{X: 1, Y: 1}).Add(Vec2{X: 1}).Scale(2); got != (Vec2{X: 6, Y: 6}) {
		t.Errorf("Sub/Add/Scale = %v, want {6 6}", got)
	}
}
