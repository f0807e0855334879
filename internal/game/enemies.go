package game

import (
	"fmt"
	"math/rand/v2"
)

// Archetype is the closed set of enemy behavior variants.
type Archetype string

const (
	ArchetypeSkirmisher Archetype = "skirmisher"
	ArchetypeBrute      Archetype = "brute"
	ArchetypeCaster     Archetype = "caster"
)

// EnemyIntent is the action an enemy has committed to for the round, plus
// the telegraph line revealed to the player before they act.
type EnemyIntent struct {
	Action    CombatAction
	Telegraph string
}

// EnemyTemplate configures stats, behavior, and rewards for an archetype.
// Templates are immutable, process-wide data.
type EnemyTemplate struct {
	Key             Archetype
	Title           string
	Description     string
	Base            Stats
	Scaling         Stats
	PreferredBiomes []string
	LootMultiplier  float64
	XPValue         float64
}

var enemyNameSuffixes = []string{"strider", "prowler", "fiend", "raider", "stalker"}

// Spawn instantiates a combatant scaled by location danger.
func (t *EnemyTemplate) Spawn(danger int, rng *rand.Rand) *Combatant {
	scale := danger - 1
	if scale < 0 {
		scale = 0
	}
	suffix := enemyNameSuffixes[rng.IntN(len(enemyNameSuffixes))]
	return &Combatant{
		Name: fmt.Sprintf("%s %s", t.Title, suffix),
		Stats: Stats{
			Health:    t.Base.Health + t.Scaling.Health*scale,
			Stamina:   t.Base.Stamina + t.Scaling.Stamina*scale,
			Skill:     t.Base.Skill + t.Scaling.Skill*scale,
			Awareness: t.Base.Awareness + t.Scaling.Awareness*scale,
		},
		Statuses: make(map[string]int),
	}
}

// Decide computes the round's intent from the enemy's resources and the
// player's guard. Dispatch is an exhaustive match over the closed archetype
// set.
func (t *EnemyTemplate) Decide(enemy, player *Combatant, rng *rand.Rand) EnemyIntent {
	switch t.Key {
	case ArchetypeSkirmisher:
		return skirmisherIntent(enemy, player, rng)
	case ArchetypeBrute:
		return bruteIntent(enemy, player, rng)
	case ArchetypeCaster:
		return casterIntent(enemy, player, rng)
	default:
		return EnemyIntent{Action: ActionAttack, Telegraph: "lunges without finesse"}
	}
}

func skirmisherIntent(enemy, player *Combatant, rng *rand.Rand) EnemyIntent {
	if enemy.Stats.Stamina <= 1 {
		return EnemyIntent{Action: ActionRecover, Telegraph: "backpedals to regain footing"}
	}
	if player.Stats.Guard <= 1 || enemy.Stats.Stamina >= 3 {
		return EnemyIntent{Action: ActionAttack, Telegraph: "darts in for a decisive strike"}
	}
	if rng.Float64() < 0.4 {
		return EnemyIntent{Action: ActionAttack, Telegraph: "lashes out before you can reset"}
	}
	return EnemyIntent{Action: ActionGuard, Telegraph: "circles warily, blades ready to counter"}
}

func bruteIntent(enemy, player *Combatant, rng *rand.Rand) EnemyIntent {
	if enemy.Stats.Stamina <= 0 {
		return EnemyIntent{Action: ActionRecover, Telegraph: "huffs to catch a breath"}
	}
	if enemy.Stats.Health > enemy.Stats.Awareness && enemy.Stats.Stamina >= 2 {
		return EnemyIntent{Action: ActionAttack, Telegraph: "winds up for a crushing blow"}
	}
	if player.Stats.Guard >= 2 && rng.Float64() < 0.5 {
		return EnemyIntent{Action: ActionGuard, Telegraph: "raises defenses, daring you to approach"}
	}
	if enemy.Stats.Health < maxInt(4, enemy.Stats.Awareness/2) && rng.Float64() < 0.4 {
		return EnemyIntent{Action: ActionRecover, Telegraph: "tries to shrug off pain"}
	}
	return EnemyIntent{Action: ActionAttack, Telegraph: "barrels forward without hesitation"}
}

func casterIntent(enemy, player *Combatant, rng *rand.Rand) EnemyIntent {
	if enemy.Stats.Stamina <= 1 {
		return EnemyIntent{Action: ActionRecover, Telegraph: "chants to draw in energy"}
	}
	if player.Stats.Guard >= 3 {
		return EnemyIntent{Action: ActionGuard, Telegraph: "raises a shimmering ward"}
	}
	if player.Stats.Health <= 4 && rng.Float64() < 0.6 {
		return EnemyIntent{Action: ActionAttack, Telegraph: "lets loose a focused hex"}
	}
	if rng.Float64() < 0.3 {
		return EnemyIntent{Action: ActionGuard, Telegraph: "anchors themselves with a rune"}
	}
	return EnemyIntent{Action: ActionAttack, Telegraph: "gathers volatile power to fling your way"}
}

// OnHit applies the archetype's secondary effect after a connected attack.
// Returns an empty string when nothing triggers.
func (t *EnemyTemplate) OnHit(enemy, player *Combatant, rng *rand.Rand) string {
	switch t.Key {
	case ArchetypeSkirmisher:
		if player.Stats.Guard <= 0 {
			return ""
		}
		player.Stats.Guard--
		return fmt.Sprintf("%s's feint strips away your guard!", enemy.Name)
	case ArchetypeBrute:
		if player.Stats.Stamina <= 0 {
			return ""
		}
		drain := 1
		if player.Stats.Stamina > 2 && rng.Float64() < 0.35 {
			drain = 2
		}
		player.Stats.Stamina = maxInt(player.Stats.Stamina-drain, 0)
		return fmt.Sprintf("The impact staggers you, draining %d stamina!", drain)
	case ArchetypeCaster:
		burn := 1
		if rng.Float64() >= 0.5 {
			burn = 2
		}
		player.Stats.Health -= burn
		return fmt.Sprintf("Hexfire lingers, burning you for %d extra damage!", burn)
	default:
		return ""
	}
}

func BuiltInEnemies() []*EnemyTemplate {
	return []*EnemyTemplate{
		{
			Key:             ArchetypeSkirmisher,
			Title:           "Skirmisher",
			Description:     "quick strikers that punish overextending foes",
			Base:            Stats{Health: 7, Stamina: 8, Skill: 4, Awareness: 4},
			Scaling:         Stats{Health: 1, Stamina: 1, Skill: 1, Awareness: 1},
			PreferredBiomes: []string{BiomeRuins, BiomeWetlands},
			LootMultiplier:  1.0,
			XPValue:         1.0,
		},
		{
			Key:             ArchetypeBrute,
			Title:           "Brute",
			Description:     "relentless maulers that trade blows for exhaustion",
			Base:            Stats{Health: 9, Stamina: 7, Skill: 3, Awareness: 3},
			Scaling:         Stats{Health: 2, Stamina: 1, Skill: 1, Awareness: 1},
			PreferredBiomes: []string{BiomeRuins, BiomeCaverns},
			LootMultiplier:  1.3,
			XPValue:         1.2,
		},
		{
			Key:             ArchetypeCaster,
			Title:           "Hexcaster",
			Description:     "mystics whose spells punish the unwary",
			Base:            Stats{Health: 6, Stamina: 7, Skill: 4, Awareness: 5},
			Scaling:         Stats{Health: 1, Stamina: 1, Skill: 1, Awareness: 2},
			PreferredBiomes: []string{BiomeWetlands, BiomeCaverns},
			LootMultiplier:  1.15,
			XPValue:         1.4,
		},
	}
}

// PickEnemyTemplate weights archetypes by biome preference and danger before
// drawing one from the stream.
func PickEnemyTemplate(biomeKey string, danger int, rng *rand.Rand) *EnemyTemplate {
	templates := BuiltInEnemies()
	weights := make([]float64, len(templates))
	for i, template := range templates {
		weight := 1.0
		for _, preferred := range template.PreferredBiomes {
			if preferred == biomeKey {
				weight += 0.65
				break
			}
		}
		switch template.Key {
		case ArchetypeBrute:
			if danger >= 4 {
				weight += 0.5
			}
		case ArchetypeCaster:
			if danger >= 3 {
				weight += 0.35
			}
		case ArchetypeSkirmisher:
			if danger <= 2 {
				weight += 0.35
			}
		}
		weights[i] = weight
	}
	return templates[weightedPick(rng, weights)]
}
