package game

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

// Stats are the core numbers for any combatant. Health and stamina have soft
// caps derived from awareness.
type Stats struct {
	Health    int
	Stamina   int
	Skill     int
	Awareness int
	Guard     int
}

func (s Stats) Alive() bool {
	return s.Health > 0
}

func (s Stats) HealthCap() int {
	return s.Awareness + 10
}

func (s Stats) StaminaCap() int {
	return s.Awareness + 6
}

const maxGuard = 4

// Player status effects. Durations count encounters, not rounds.
const (
	StatusInspired = "inspired"
	StatusScouted  = "scouted"
	StatusCursed   = "cursed"
)

// Combatant aggregates stats, loadout, and active statuses. One instance is
// owned exclusively by the orchestrator; enemies live for a single encounter.
type Combatant struct {
	Name        string
	Stats       Stats
	Weapon      *Item
	Armor       *Item
	Trinket     *Item
	Stash       []*Item
	Consumables []*Consumable
	Statuses    map[string]int
}

func NewPlayer(name string) *Combatant {
	return &Combatant{
		Name:     name,
		Stats:    Stats{Health: 12, Stamina: 8, Skill: 4, Awareness: 4},
		Statuses: make(map[string]int),
	}
}

func (c *Combatant) HasStatus(name string) bool {
	return c.Statuses[name] > 0
}

// AddStatus grants or refreshes a status for the given number of encounters.
func (c *Combatant) AddStatus(name string, duration int) {
	if duration <= 0 {
		return
	}
	if c.Statuses == nil {
		c.Statuses = make(map[string]int)
	}
	if duration > c.Statuses[name] {
		c.Statuses[name] = duration
	}
}

// TickStatuses decrements every active status by one encounter and returns
// the names that expired, sorted for stable journal output.
func (c *Combatant) TickStatuses() []string {
	var expired []string
	for name, remaining := range c.Statuses {
		remaining--
		if remaining <= 0 {
			delete(c.Statuses, name)
			expired = append(expired, name)
			continue
		}
		c.Statuses[name] = remaining
	}
	sort.Strings(expired)
	return expired
}

func (c *Combatant) equipped() []*Item {
	var items []*Item
	for _, item := range []*Item{c.Weapon, c.Armor, c.Trinket} {
		if item != nil {
			items = append(items, item)
		}
	}
	return items
}

// EquippedIn returns the item currently held in a slot.
func (c *Combatant) EquippedIn(slot ItemSlot) *Item {
	switch slot {
	case SlotWeapon:
		return c.Weapon
	case SlotArmor:
		return c.Armor
	case SlotTrinket:
		return c.Trinket
	default:
		return nil
	}
}

// Equip places an item into its slot, returning whatever it displaced.
func (c *Combatant) Equip(item *Item) *Item {
	var previous *Item
	switch item.Slot {
	case SlotWeapon:
		previous, c.Weapon = c.Weapon, item
	case SlotArmor:
		previous, c.Armor = c.Armor, item
	case SlotTrinket:
		previous, c.Trinket = c.Trinket, item
	}
	return previous
}

func (c *Combatant) DamageBonus() int {
	total := 0
	for _, item := range c.equipped() {
		total += item.DamageBonus
	}
	return total
}

func (c *Combatant) RecoveryBonus() int {
	total := 0
	for _, item := range c.equipped() {
		total += item.RecoveryBonus
	}
	return total
}

// EffectiveSkill is base skill adjusted by active statuses.
func (c *Combatant) EffectiveSkill() int {
	skill := c.Stats.Skill
	if c.HasStatus(StatusInspired) {
		skill++
	}
	if c.HasStatus(StatusCursed) {
		skill--
	}
	if skill < 0 {
		skill = 0
	}
	return skill
}

func (c *Combatant) EffectiveAwareness() int {
	awareness := c.Stats.Awareness
	if c.HasStatus(StatusInspired) {
		awareness++
	}
	if c.HasStatus(StatusScouted) {
		awareness++
	}
	return awareness
}

// GuardValue is the total damage reduction: the raw guard counter plus
// equipment and status bonuses.
func (c *Combatant) GuardValue() int {
	guard := c.Stats.Guard
	for _, item := range c.equipped() {
		guard += item.GuardBonus
	}
	if c.HasStatus(StatusScouted) {
		guard++
	}
	if c.HasStatus(StatusCursed) {
		guard--
	}
	if guard < 0 {
		guard = 0
	}
	return guard
}

var attackVariance = []int{-1, 0, 0, 1}

// Attack strikes the target. Damage always lands for at least 1.
func (c *Combatant) Attack(target *Combatant, rng *rand.Rand) string {
	variance := attackVariance[rng.IntN(len(attackVariance))]
	damage := c.EffectiveSkill() + c.DamageBonus() - target.GuardValue() + variance
	if damage < 1 {
		damage = 1
	}
	target.Stats.Health -= damage
	return fmt.Sprintf("%s strikes %s for %d damage.", c.Name, target.Name, damage)
}

// Guard raises the guard counter, capped at 4.
func (c *Combatant) Guard() string {
	if c.Stats.Guard < maxGuard {
		c.Stats.Guard++
	}
	return fmt.Sprintf("%s braces, raising guard to %d.", c.Name, c.Stats.Guard)
}

// Recover restores stamina and a little health, bounded by the
// awareness-derived soft caps.
func (c *Combatant) Recover() string {
	staminaGain := 2 + c.RecoveryBonus()
	healthGain := 1
	c.Stats.Stamina = minInt(c.Stats.Stamina+staminaGain, c.Stats.StaminaCap())
	c.Stats.Health = minInt(c.Stats.Health+healthGain, c.Stats.HealthCap())
	return fmt.Sprintf("%s steadies their breathing, recovering %d stamina and %d health.",
		c.Name, staminaGain, healthGain)
}

// DescribeCombatants summarises one or more combatants on a single line.
func DescribeCombatants(combatants ...*Combatant) string {
	parts := make([]string, 0, len(combatants))
	for _, c := range combatants {
		parts = append(parts, fmt.Sprintf("%s: HP %d, ST %d, SK %d, AW %d, GD %d",
			c.Name, c.Stats.Health, c.Stats.Stamina, c.Stats.Skill, c.Stats.Awareness, c.Stats.Guard))
	}
	return strings.Join(parts, " | ")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
