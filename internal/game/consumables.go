package game

import (
	"fmt"
	"math/rand/v2"
)

// ConsumableEffect applies a consumable's mechanics and returns the journal
// line describing what happened. Target is nil unless the consumable
// requires one.
type ConsumableEffect func(user, target *Combatant, rng *rand.Rand) string

// Consumable is a limited-charge usable. Charges only ever decrease; an
// empty consumable stays in the inventory but is excluded from availability.
type Consumable struct {
	Name           string
	Description    string
	Charges        int
	RequiresTarget bool
	Effect         ConsumableEffect
}

func (c *Consumable) Available() bool {
	return c.Charges > 0
}

func (c *Consumable) Summary() string {
	unit := "charges"
	if c.Charges == 1 {
		unit = "charge"
	}
	return fmt.Sprintf("%s (%d %s)", c.Name, c.Charges, unit)
}

// Use spends one charge and applies the effect.
func (c *Consumable) Use(user, target *Combatant, rng *rand.Rand) string {
	if c.Charges <= 0 {
		return fmt.Sprintf("The %s is spent.", c.Name)
	}
	c.Charges--
	return c.Effect(user, target, rng)
}

const (
	ConsumableHealingDraught = "Healing Draught"
	ConsumableStaminaTonic   = "Stamina Tonic"
	ConsumableShockGrenade   = "Shock Grenade"
	ConsumableFocusCharm     = "Focus Charm"
)

// consumableCatalog builds fresh instances so every drop owns its own charge
// counter.
var consumableCatalog = []func() *Consumable{
	func() *Consumable {
		return &Consumable{
			Name:        ConsumableHealingDraught,
			Description: "Bitter herbs that knit wounds closed.",
			Charges:     2,
			Effect: func(user, _ *Combatant, _ *rand.Rand) string {
				heal := 4
				user.Stats.Health = minInt(user.Stats.Health+heal, user.Stats.HealthCap())
				return fmt.Sprintf("%s drinks the draught, restoring %d health.", user.Name, heal)
			},
		}
	},
	func() *Consumable {
		return &Consumable{
			Name:        ConsumableStaminaTonic,
			Description: "Sharp spirits that banish fatigue.",
			Charges:     2,
			Effect: func(user, _ *Combatant, _ *rand.Rand) string {
				gain := 3
				user.Stats.Stamina = minInt(user.Stats.Stamina+gain, user.Stats.StaminaCap())
				return fmt.Sprintf("%s downs the tonic, restoring %d stamina.", user.Name, gain)
			},
		}
	},
	func() *Consumable {
		return &Consumable{
			Name:           ConsumableShockGrenade,
			Description:    "A resonant charge that shatters defenses.",
			Charges:        1,
			RequiresTarget: true,
			Effect: func(user, target *Combatant, _ *rand.Rand) string {
				if target == nil {
					return fmt.Sprintf("%s fumbles the grenade with nothing to throw it at.", user.Name)
				}
				target.Stats.Guard = maxInt(target.Stats.Guard-2, 0)
				target.Stats.Health -= 2
				return fmt.Sprintf("The grenade bursts against %s, stripping its guard and dealing 2 damage.", target.Name)
			},
		}
	},
	func() *Consumable {
		return &Consumable{
			Name:        ConsumableFocusCharm,
			Description: "A humming trinket that sharpens the mind.",
			Charges:     1,
			Effect: func(user, _ *Combatant, _ *rand.Rand) string {
				user.AddStatus(StatusInspired, 2)
				return fmt.Sprintf("%s clasps the charm and feels inspired.", user.Name)
			},
		}
	},
}

// RollConsumableDrop rolls for a consumable from the flat table. Only the
// chance scales with danger, not the table.
func RollConsumableDrop(rng *rand.Rand, danger int) *Consumable {
	chance := 0.15 + float64(danger)*0.05
	if chance > 0.5 {
		chance = 0.5
	}
	if rng.Float64() > chance {
		return nil
	}
	return consumableCatalog[rng.IntN(len(consumableCatalog))]()
}
