package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findConsumable(t *testing.T, name string) *Consumable {
	t.Helper()
	for _, build := range consumableCatalog {
		c := build()
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no consumable named %q in the catalog", name)
	return nil
}

func TestConsumableChargesDeplete(t *testing.T) {
	rng := NewStream(1)
	p := NewPlayer("Drifter")
	draught := findConsumable(t, ConsumableHealingDraught)

	require.Equal(t, 2, draught.Charges)
	draught.Use(p, nil, rng)
	assert.Equal(t, 1, draught.Charges)
	assert.True(t, draught.Available())

	draught.Use(p, nil, rng)
	assert.Equal(t, 0, draught.Charges)
	assert.False(t, draught.Available())

	line := draught.Use(p, nil, rng)
	assert.Equal(t, 0, draught.Charges, "charges must never go negative")
	assert.Contains(t, line, "spent")
}

func TestHealingDraughtRespectsCap(t *testing.T) {
	rng := NewStream(1)
	p := NewPlayer("Drifter")
	p.Stats.Health = p.Stats.HealthCap() - 1
	findConsumable(t, ConsumableHealingDraught).Use(p, nil, rng)
	assert.Equal(t, p.Stats.HealthCap(), p.Stats.Health)
}

func TestStaminaTonic(t *testing.T) {
	rng := NewStream(1)
	p := NewPlayer("Drifter")
	p.Stats.Stamina = 2
	findConsumable(t, ConsumableStaminaTonic).Use(p, nil, rng)
	assert.Equal(t, 5, p.Stats.Stamina)
}

func TestShockGrenadeFloorsGuard(t *testing.T) {
	rng := NewStream(1)
	p := NewPlayer("Drifter")
	foe := &Combatant{Name: "Brute raider", Stats: Stats{Health: 10, Guard: 1}, Statuses: map[string]int{}}

	findConsumable(t, ConsumableShockGrenade).Use(p, foe, rng)
	assert.Equal(t, 0, foe.Stats.Guard, "guard must floor at zero")
	assert.Equal(t, 8, foe.Stats.Health)
}

func TestShockGrenadeWithoutTarget(t *testing.T) {
	rng := NewStream(1)
	p := NewPlayer("Drifter")
	grenade := findConsumable(t, ConsumableShockGrenade)
	line := grenade.Use(p, nil, rng)
	assert.Contains(t, line, "fumbles")
}

func TestFocusCharmGrantsInspired(t *testing.T) {
	rng := NewStream(1)
	p := NewPlayer("Drifter")
	findConsumable(t, ConsumableFocusCharm).Use(p, nil, rng)
	assert.True(t, p.HasStatus(StatusInspired))
	assert.Equal(t, 2, p.Statuses[StatusInspired])
}

func TestConsumableSummary(t *testing.T) {
	c := &Consumable{Name: "Healing Draught", Charges: 2}
	assert.Equal(t, "Healing Draught (2 charges)", c.Summary())
	c.Charges = 1
	assert.Equal(t, "Healing Draught (1 charge)", c.Summary())
}

func TestRollConsumableDropChance(t *testing.T) {
	rng := NewStream(55)
	dropped := 0
	for i := 0; i < 300; i++ {
		if c := RollConsumableDrop(rng, 3); c != nil {
			dropped++
			assert.True(t, c.Available())
		}
	}
	// Chance at danger 3 is 0.30; expect roughly that share of rolls.
	assert.Greater(t, dropped, 40)
	assert.Less(t, dropped, 160)
}

func TestRollConsumableDropIndependentCharges(t *testing.T) {
	rng := NewStream(8)
	var a, b *Consumable
	for a == nil || b == nil || a.Name != b.Name {
		a, b = b, RollConsumableDrop(rng, 6)
	}
	a.Charges = 0
	assert.True(t, b.Available(), "two drops shared a charge counter")
}
