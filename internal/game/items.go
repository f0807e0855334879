package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

type ItemSlot string

const (
	SlotWeapon  ItemSlot = "weapon"
	SlotArmor   ItemSlot = "armor"
	SlotTrinket ItemSlot = "trinket"
)

// Item is an equippable piece of gear. Immutable once rolled.
type Item struct {
	Name          string
	Slot          ItemSlot
	DamageBonus   int
	GuardBonus    int
	RecoveryBonus int
	Description   string
}

// Score is the heuristic used to rank gear for auto-equip.
func (i Item) Score() int {
	return i.DamageBonus*3 + i.GuardBonus*2 + i.RecoveryBonus
}

func (i Item) Summary() string {
	var parts []string
	if i.DamageBonus != 0 {
		parts = append(parts, fmt.Sprintf("+%d dmg", i.DamageBonus))
	}
	if i.GuardBonus != 0 {
		parts = append(parts, fmt.Sprintf("+%d guard", i.GuardBonus))
	}
	if i.RecoveryBonus != 0 {
		parts = append(parts, fmt.Sprintf("+%d recovery", i.RecoveryBonus))
	}
	bonuses := strings.Join(parts, ", ")
	if bonuses == "" {
		bonuses = "no bonus"
	}
	return fmt.Sprintf("%s (%s)", i.Name, bonuses)
}

var lowTierItems = []Item{
	{Name: "Rusted Shiv", Slot: SlotWeapon, DamageBonus: 1, Description: "A chipped blade that cuts deeper than it looks."},
	{Name: "Tattered Cloak", Slot: SlotArmor, GuardBonus: 1, Description: "Layers of fabric that blunt stray blows."},
	{Name: "Field Rations", Slot: SlotTrinket, RecoveryBonus: 1, Description: "Boosts stamina and focus after exertion."},
}

var midTierItems = []Item{
	{Name: "Balanced Spear", Slot: SlotWeapon, DamageBonus: 2, Description: "Well-weighted, perfect for precise strikes."},
	{Name: "Iron Buckler", Slot: SlotArmor, GuardBonus: 2, Description: "Reliable cover that catches incoming hits."},
	{Name: "Reinforced Harness", Slot: SlotArmor, DamageBonus: 1, GuardBonus: 1, Description: "Keeps movement sharp while protecting vital spots."},
	{Name: "Medicinal Kit", Slot: SlotTrinket, RecoveryBonus: 2, Description: "Herbs and bandages accelerate recovery between blows."},
}

var highTierItems = []Item{
	{Name: "Edge of Echoes", Slot: SlotWeapon, DamageBonus: 3, Description: "Resonating blade that finds openings effortlessly."},
	{Name: "Guardian's Bulwark", Slot: SlotArmor, GuardBonus: 3, Description: "Heavy plating that turns aside ferocious strikes."},
	{Name: "Battle Hymn Charm", Slot: SlotTrinket, DamageBonus: 1, GuardBonus: 1, RecoveryBonus: 1, Description: "A talisman that steadies breath and timing alike."},
}

// RollItemDrop rolls for a gear drop. Chance and tier both scale with the
// location's danger.
func RollItemDrop(rng *rand.Rand, danger int) *Item {
	chance := 0.2 + float64(danger)*0.1
	if chance > 0.75 {
		chance = 0.75
	}
	if rng.Float64() > chance {
		return nil
	}

	var table []Item
	switch {
	case danger >= 5:
		table = highTierItems
	case danger >= 3:
		table = midTierItems
	default:
		table = lowTierItems
	}

	rolled := table[rng.IntN(len(table))]
	return &rolled
}

// BestItem returns the highest scoring item for a slot, or nil when the
// collection holds none for it.
func BestItem(items []*Item, slot ItemSlot) *Item {
	var best *Item
	for _, item := range items {
		if item == nil || item.Slot != slot {
			continue
		}
		if best == nil || item.Score() > best.Score() {
			best = item
		}
	}
	return best
}
