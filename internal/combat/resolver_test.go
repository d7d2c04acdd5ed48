package combat

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/event"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// fixedRand always rolls the same offset, clamped into [0, n).
type fixedRand struct{ roll int }

func (f fixedRand) Intn(n int) int {
	if f.roll >= n {
		return n - 1
	}
	return f.roll
}

// highRand always rolls the top of the range.
type highRand struct{}

func (highRand) Intn(n int) int { return n - 1 }

// testFactory is shared so units across a test get distinct ids.
var testFactory = entity.NewFactory(gamedata.MustLoadUnitTypeRegistry())

func newUnit(t *testing.T, unitType string, pos entity.Vec2, faction entity.Faction) entity.Unit {
	t.Helper()
	u, err := testFactory.Create(unitType, pos, faction)
	if err != nil {
		t.Fatalf("Create(%q) error: %v", unitType, err)
	}
	return u
}

func TestDistanceSymmetric(t *testing.T) {
	a := entity.Vec2{X: 3, Y: -7}
	b := entity.Vec2{X: -12.5, Y: 40}

	if Distance(a, b) != Distance(b, a) {
		t.Errorf("Distance(a,b) = %v, Distance(b,a) = %v", Distance(a, b), Distance(b, a))
	}
	if got := Distance(entity.Vec2{}, entity.Vec2{X: 30, Y: 40}); got != 50 {
		t.Errorf("Distance() = %v, want 50", got)
	}
}

func TestInRangeUsesAttackerRange(t *testing.T) {
	archer := newUnit(t, "archer", entity.Vec2{X: 0, Y: 0}, entity.FactionPlayer)             // range 5 -> 250
	infantry := newUnit(t, "infantry-medium", entity.Vec2{X: 0, Y: 100}, entity.FactionEnemy) // range 1 -> 50

	if !InRange(archer, infantry) {
		t.Error("archer should reach infantry at 100")
	}
	if InRange(infantry, archer) {
		t.Error("infantry should not reach archer at 100")
	}
}

func TestInRangeBoundaryInclusive(t *testing.T) {
	a := newUnit(t, "infantry-heavy", entity.Vec2{}, entity.FactionPlayer) // range 1 -> 50
	b := newUnit(t, "archer", entity.Vec2{X: 50}, entity.FactionEnemy)
	c := newUnit(t, "archer", entity.Vec2{X: 50.01}, entity.FactionEnemy)

	if !InRange(a, b) {
		t.Error("distance equal to reach should be in range")
	}
	if InRange(a, c) {
		t.Error("distance beyond reach should be out of range")
	}
}

func TestDamageBounds(t *testing.T) {
	types := gamedata.MustLoadUnitTypeRegistry()
	tests := []struct {
		attacker, defender string
		min, max           int
	}{
		{"archer", "infantry-medium", 8, 12},        // base 12 - 2 = 10
		{"infantry-medium", "infantry-heavy", 3, 5}, // base 8 - 4 = 4
		{"mage-high", "mage-high", 11, 17},          // base 15 - 1 = 14
		{"infantry-heavy", "mage-squad", 6, 10},     // base 10 - 2 = 8
		{"mage-squad", "infantry-heavy", 4, 8},      // base 10 - 4 = 6
	}

	factory := entity.NewFactory(types)
	for _, tt := range tests {
		a, _ := factory.Create(tt.attacker, entity.Vec2{}, entity.FactionPlayer)
		d, _ := factory.Create(tt.defender, entity.Vec2{}, entity.FactionEnemy)
		gotMin, gotMax := DamageBounds(a, d)
		if gotMin != tt.min || gotMax != tt.max {
			t.Errorf("DamageBounds(%s, %s) = [%d,%d], want [%d,%d]",
				tt.attacker, tt.defender, gotMin, gotMax, tt.min, tt.max)
		}
	}
}

func TestDamageBoundsClampToOne(t *testing.T) {
	weak := entity.Unit{Attack: 1}
	tank := entity.Unit{Defense: 40}

	gotMin, gotMax := DamageBounds(weak, tank)
	if gotMin != 1 || gotMax != 1 {
		t.Errorf("DamageBounds() = [%d,%d], want [1,1]", gotMin, gotMax)
	}
}

func TestCalculateDamageAlwaysAtLeastOne(t *testing.T) {
	resolver := NewResolver(rand.New(rand.NewSource(12345)), event.NewBus())
	types := gamedata.MustLoadUnitTypeRegistry()
	factory := entity.NewFactory(types)

	for _, atk := range types.IDs() {
		for _, def := range types.IDs() {
			a, _ := factory.Create(atk, entity.Vec2{}, entity.FactionPlayer)
			d, _ := factory.Create(def, entity.Vec2{}, entity.FactionEnemy)
			minDmg, maxDmg := DamageBounds(a, d)
			for i := 0; i < 50; i++ {
				dmg := resolver.CalculateDamage(a, d)
				if dmg < 1 || dmg < minDmg || dmg > maxDmg {
					t.Fatalf("CalculateDamage(%s, %s) = %d, want in [%d,%d] and >= 1", atk, def, dmg, minDmg, maxDmg)
				}
			}
		}
	}
}

func TestCalculateDamageDeterministicWithSameSeed(t *testing.T) {
	a := newUnit(t, "mage-high", entity.Vec2{}, entity.FactionPlayer)
	d := newUnit(t, "archer", entity.Vec2{}, entity.FactionEnemy)

	r1 := NewResolver(rand.New(rand.NewSource(7)), event.NewBus())
	r2 := NewResolver(rand.New(rand.NewSource(7)), event.NewBus())
	for i := 0; i < 20; i++ {
		if x, y := r1.CalculateDamage(a, d), r2.CalculateDamage(a, d); x != y {
			t.Fatalf("roll %d: %d != %d", i, x, y)
		}
	}
}

func TestPerformAttackArcherOnInfantry(t *testing.T) {
	bus := event.NewBus()
	rec := event.NewRecorder(bus)
	resolver := NewResolver(rand.New(rand.NewSource(99)), bus)

	archer := newUnit(t, "archer", entity.Vec2{X: 0, Y: 0}, entity.FactionPlayer)
	infantry := newUnit(t, "infantry-medium", entity.Vec2{X: 0, Y: 100}, entity.FactionEnemy)

	if defeated := resolver.PerformAttack(archer, &infantry); defeated {
		t.Error("infantry should survive one arrow")
	}
	if infantry.Health < 68 || infantry.Health > 72 {
		t.Errorf("infantry health = %d, want in [68,72]", infantry.Health)
	}

	ev, ok := rec.Last(event.CombatAttack)
	if !ok {
		t.Fatal("no combat-attack event")
	}
	attack := ev.Payload.(Attack)
	if attack.Damage != 80-infantry.Health || attack.DefenderRemainingHealth != infantry.Health {
		t.Errorf("combat-attack payload = %+v, health now %d", attack, infantry.Health)
	}
	if attack.Attacker.ID != archer.ID || attack.Defender.ID != infantry.ID {
		t.Errorf("combat-attack ids = %d -> %d, want %d -> %d",
			attack.Attacker.ID, attack.Defender.ID, archer.ID, infantry.ID)
	}
}

func TestPerformAttackOutOfRange(t *testing.T) {
	bus := event.NewBus()
	rec := event.NewRecorder(bus)
	resolver := NewResolver(highRand{}, bus)

	a := newUnit(t, "infantry-heavy", entity.Vec2{}, entity.FactionPlayer)
	d := newUnit(t, "archer", entity.Vec2{X: 51}, entity.FactionEnemy)

	if resolver.PerformAttack(a, &d) {
		t.Error("out-of-range attack reported defeat")
	}
	if d.Health != d.MaxHealth {
		t.Errorf("defender health = %d, want untouched %d", d.Health, d.MaxHealth)
	}
	if len(rec.Events) != 0 {
		t.Errorf("out-of-range attack emitted %v", rec.Topics())
	}
}

func TestPerformAttackDefeat(t *testing.T) {
	bus := event.NewBus()
	rec := event.NewRecorder(bus)
	resolver := NewResolver(fixedRand{roll: 0}, bus)

	a := newUnit(t, "mage-high", entity.Vec2{}, entity.FactionPlayer)
	d := newUnit(t, "archer", entity.Vec2{X: 10}, entity.FactionEnemy)
	d.Health = 3

	if !resolver.PerformAttack(a, &d) {
		t.Error("attack on a 3 hp unit should defeat it")
	}
	if d.Health != 0 {
		t.Errorf("defender health = %d, want floored at 0", d.Health)
	}
	want := []event.Topic{event.CombatAttack, event.CombatDefeat}
	got := rec.Topics()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestFindClosestEnemy(t *testing.T) {
	me := newUnit(t, "archer", entity.Vec2{}, entity.FactionEnemy)
	ally := newUnit(t, "archer", entity.Vec2{X: 1}, entity.FactionEnemy)
	far := newUnit(t, "archer", entity.Vec2{X: 100}, entity.FactionPlayer)
	tieA := newUnit(t, "archer", entity.Vec2{X: 10}, entity.FactionPlayer)
	tieB := newUnit(t, "archer", entity.Vec2{X: -10}, entity.FactionNeutral)

	got, ok := FindClosestEnemy(me, []entity.Unit{me, ally, far, tieA, tieB})
	if !ok || got.ID != tieA.ID {
		t.Errorf("FindClosestEnemy() = %d (%v), want %d", got.ID, ok, tieA.ID)
	}

	if _, ok := FindClosestEnemy(me, []entity.Unit{me, ally}); ok {
		t.Error("FindClosestEnemy() with no enemies should report none")
	}
}

func TestFindEnemiesInRange(t *testing.T) {
	me := newUnit(t, "mage-squad", entity.Vec2{}, entity.FactionPlayer) // reach 150
	ally := newUnit(t, "archer", entity.Vec2{X: 5}, entity.FactionPlayer)
	near := newUnit(t, "archer", entity.Vec2{X: 120}, entity.FactionEnemy)
	tooFar := newUnit(t, "archer", entity.Vec2{X: 151}, entity.FactionEnemy)
	nearer := newUnit(t, "archer", entity.Vec2{X: 20}, entity.FactionNeutral)

	got := FindEnemiesInRange(me, []entity.Unit{ally, near, tooFar, nearer})
	if len(got) != 2 || got[0].ID != near.ID || got[1].ID != nearer.ID {
		t.Errorf("FindEnemiesInRange() = %v, want ids [%d %d] in registry order", got, near.ID, nearer.ID)
	}
}
