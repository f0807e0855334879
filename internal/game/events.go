package game

import (
	"fmt"
	"math/rand/v2"
)

// StatusGrant is one status effect an event outcome wants applied. The
// orchestrator applies grants after the event resolves; resolvers never
// touch the status map themselves.
type StatusGrant struct {
	Name     string
	Duration int
	Source   string
}

// EventOutcome is the narrative and mechanical result of one chosen option.
type EventOutcome struct {
	Narration  string
	Outcome    string
	Item       *Item
	Consumable *Consumable
	Statuses   []StatusGrant
}

type EventResolver func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome

// EventOption is a selectable branch within a scenario. Risk is a
// descriptive tag (safe, balanced, trade, risky) used by the autopilot.
type EventOption struct {
	Title    string
	Detail   string
	Risk     string
	Resolver EventResolver
}

// EventScenario is a themed event. A nil BiomeKeys list applies everywhere.
type EventScenario struct {
	Title     string
	Intro     string
	BiomeKeys []string
	Options   []EventOption
}

func (s *EventScenario) appliesTo(biomeKey string) bool {
	if len(s.BiomeKeys) == 0 {
		return true
	}
	for _, key := range s.BiomeKeys {
		if key == biomeKey {
			return true
		}
	}
	return false
}

// passesCheck is the pure core of a skill check: die roll plus effective
// skill and awareness (plus any option bonus) against the threshold.
func passesCheck(roll, effSkill, effAwareness, bonus, threshold int) bool {
	return roll+effSkill+effAwareness+bonus >= threshold
}

func skillCheck(player *Combatant, threshold, bonus int, rng *rand.Rand) bool {
	roll := 2 + rng.IntN(5)
	return passesCheck(roll, player.EffectiveSkill(), player.EffectiveAwareness(), bonus, threshold)
}

// PickScenario filters the pool to scenarios matching the biome, falling
// back to the full pool when nothing matches.
func PickScenario(scenarios []EventScenario, biomeKey string, rng *rand.Rand) EventScenario {
	var candidates []EventScenario
	for _, scenario := range scenarios {
		if scenario.appliesTo(biomeKey) {
			candidates = append(candidates, scenario)
		}
	}
	if len(candidates) == 0 {
		candidates = scenarios
	}
	return candidates[rng.IntN(len(candidates))]
}

func BuiltInScenarios() []EventScenario {
	return []EventScenario{
		ruinsArchive(),
		wetlandsShrine(),
		cavernEchoes(),
		wanderingCartographer(),
	}
}

func ruinsArchive() EventScenario {
	studyInscriptions := func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome {
		bonus := 0
		if player.Trinket != nil {
			bonus = 1
		}
		if skillCheck(player, 11+loc.Danger, bonus, rng) {
			return EventOutcome{
				Narration: "You read the fractured murals, piecing together forgotten tactics.",
				Outcome:   "Insight flows through you; the scripture inspires your stance.",
				Item:      RollItemDrop(rng, loc.Danger+1),
				Statuses:  []StatusGrant{{Name: StatusInspired, Duration: 2, Source: "studying war-songs"}},
			}
		}
		player.Stats.Health -= maxInt(1, loc.Danger-1)
		return EventOutcome{
			Narration: "The glyphs flare angrily and backlash against your mind.",
			Outcome:   fmt.Sprintf("You reel, suffering a curse (health %d).", player.Stats.Health),
			Statuses:  []StatusGrant{{Name: StatusCursed, Duration: 2, Source: "hexed murals"}},
		}
	}

	pryOpenCache := func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome {
		staminaCost := maxInt(1, loc.Danger/2)
		player.Stats.Stamina = maxInt(player.Stats.Stamina-staminaCost, 0)
		variance := rng.IntN(4) - 1
		powerScore := player.EffectiveSkill() + player.DamageBonus() + variance
		if powerScore >= loc.Danger+2 {
			return EventOutcome{
				Narration:  "The stone lid groans aside, revealing preserved tools.",
				Outcome:    fmt.Sprintf("Your exertion pays off. You spend %d stamina to seize the cache.", staminaCost),
				Item:       RollItemDrop(rng, loc.Danger+1),
				Consumable: RollConsumableDrop(rng, loc.Danger),
				Statuses:   []StatusGrant{{Name: StatusScouted, Duration: 2, Source: "surveyed treasure room"}},
			}
		}
		damage := maxInt(1, loc.Danger-variance)
		player.Stats.Health -= damage
		return EventOutcome{
			Narration: "A load-bearing pillar snaps. Dust and debris crash onto you.",
			Outcome:   fmt.Sprintf("The attempt backfires for %d damage (health %d).", damage, player.Stats.Health),
			Statuses:  []StatusGrant{{Name: StatusCursed, Duration: 1, Source: "falling masonry"}},
		}
	}

	chartRubble := func(player *Combatant, loc *Location, _ *rand.Rand) EventOutcome {
		player.Stats.Stamina = maxInt(player.Stats.Stamina-1, 0)
		guardBoost := 1
		if player.HasStatus(StatusScouted) {
			guardBoost = 2
		}
		player.Stats.Guard = minInt(player.Stats.Guard+guardBoost, maxGuard)
		return EventOutcome{
			Narration: "You mark safe walkways and loose stones for the path ahead.",
			Outcome:   fmt.Sprintf("You trade 1 stamina for awareness of ambush angles (guard +%d).", guardBoost),
			Statuses:  []StatusGrant{{Name: StatusScouted, Duration: 3, Source: "mapped hallways"}},
		}
	}

	return EventScenario{
		Title:     "Shattered Archive",
		Intro:     "Ruined vaults loom with cracked murals and hidden recesses.",
		BiomeKeys: []string{BiomeRuins},
		Options: []EventOption{
			{Title: "Study inscriptions", Detail: "Risk a mental duel with the old wards.", Risk: "risky", Resolver: studyInscriptions},
			{Title: "Pry open cache", Detail: "Force a sealed alcove, spending stamina for loot.", Risk: "balanced", Resolver: pryOpenCache},
			{Title: "Chart the rubble", Detail: "Scout safe lines of travel, trading effort for safety.", Risk: "safe", Resolver: chartRubble},
		},
	}
}

func wetlandsShrine() EventScenario {
	harvestLotus := func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome {
		armorHelp := 0
		if player.Armor != nil {
			armorHelp = 1
		}
		if skillCheck(player, 10+loc.Danger-armorHelp, 0, rng) {
			return EventOutcome{
				Narration:  "You balance along the stones, clipping glowing lotus buds.",
				Outcome:    "The harvested herbs bolster your kit and steady your mind.",
				Consumable: RollConsumableDrop(rng, loc.Danger+1),
				Statuses:   []StatusGrant{{Name: StatusInspired, Duration: 1, Source: "botanical insight"}},
			}
		}
		damage := maxInt(1, loc.Danger-armorHelp)
		player.Stats.Health -= damage
		return EventOutcome{
			Narration: "The bog water surges. A leeching current drags you under.",
			Outcome:   fmt.Sprintf("You escape but feel cursed and lose %d health (health %d).", damage, player.Stats.Health),
			Statuses:  []StatusGrant{{Name: StatusCursed, Duration: 2, Source: "swamp curse"}},
		}
	}

	leaveOffering := func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome {
		if len(player.Consumables) > 0 {
			player.Consumables = player.Consumables[1:]
			return EventOutcome{
				Narration: "You leave supplies at a mossy idol; the waters still in approval.",
				Outcome:   "The shrine returns the favor with a guiding current.",
				Item:      RollItemDrop(rng, maxInt(1, loc.Danger-1)),
				Statuses:  []StatusGrant{{Name: StatusScouted, Duration: 2, Source: "guided by currents"}},
			}
		}
		return EventOutcome{
			Narration: "Empty-handed, you whisper a promise you cannot keep.",
			Outcome:   "The bog is unimpressed. Nothing changes, but you move on warily.",
			Statuses:  []StatusGrant{{Name: StatusScouted, Duration: 1, Source: "cautious pacing"}},
		}
	}

	chaseWisps := func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome {
		wispTest := 1 + rng.IntN(4) + player.EffectiveAwareness()
		if wispTest >= loc.Danger+3 {
			return EventOutcome{
				Narration: "You follow flickering lights to a cache tangled in reeds.",
				Outcome:   "A risky pursuit pays off; you feel invigorated by the hunt.",
				Item:      RollItemDrop(rng, loc.Danger+2),
				Statuses:  []StatusGrant{{Name: StatusInspired, Duration: 2, Source: "trickster pursuit"}},
			}
		}
		player.Stats.Stamina = maxInt(player.Stats.Stamina-2, 0)
		return EventOutcome{
			Narration: "The lights vanish. You slog in circles through sucking mud.",
			Outcome:   "Exhaustion sets in (lose 2 stamina) and the chill leaves you cursed.",
			Statuses:  []StatusGrant{{Name: StatusCursed, Duration: 1, Source: "bog misdirection"}},
		}
	}

	return EventScenario{
		Title:     "Bog Shrine",
		Intro:     "An altar sits above a flooded causeway, wisps dancing between reeds.",
		BiomeKeys: []string{BiomeWetlands},
		Options: []EventOption{
			{Title: "Harvest lotus", Detail: "Collect luminous herbs for later use.", Risk: "balanced", Resolver: harvestLotus},
			{Title: "Leave an offering", Detail: "Trade a consumable for the shrine's favor.", Risk: "trade", Resolver: leaveOffering},
			{Title: "Chase will-o'-wisps", Detail: "Pursue mysterious lights for a hidden reward.", Risk: "risky", Resolver: chaseWisps},
		},
	}
}

func cavernEchoes() EventScenario {
	rideThermal := func(player *Combatant, _ *Location, rng *rand.Rand) EventOutcome {
		gain := 1 + rng.IntN(2)
		player.Stats.Stamina = minInt(player.Stats.Stamina+gain, player.Stats.StaminaCap())
		return EventOutcome{
			Narration: "You let an updraft carry your glider-cloth through a narrow shaft.",
			Outcome:   fmt.Sprintf("The lift restores %d stamina and scouts exits.", gain),
			Statuses:  []StatusGrant{{Name: StatusScouted, Duration: 2, Source: "mapped vents"}},
		}
	}

	mineCrystals := func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome {
		pickBonus := 0
		if player.Weapon != nil {
			pickBonus = 1
		}
		if skillCheck(player, 10+loc.Danger, pickBonus, rng) {
			return EventOutcome{
				Narration: "Your strikes split a resonant crystal vein.",
				Outcome:   "The shards sing to your nerves, sharpening your focus.",
				Item:      RollItemDrop(rng, loc.Danger+2),
				Statuses:  []StatusGrant{{Name: StatusInspired, Duration: 2, Source: "harmonic resonance"}},
			}
		}
		backlash := maxInt(1, loc.Danger-pickBonus)
		player.Stats.Health -= backlash
		return EventOutcome{
			Narration: "A crystal explodes, rattling your bones with discordant sound.",
			Outcome:   fmt.Sprintf("You are rattled and cursed, losing %d health (health %d).", backlash, player.Stats.Health),
			Statuses:  []StatusGrant{{Name: StatusCursed, Duration: 2, Source: "resonant backlash"}},
		}
	}

	listenForPaths := func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome {
		awarenessTest := player.EffectiveAwareness() + 1 + rng.IntN(4)
		if awarenessTest >= loc.Danger+2 {
			return EventOutcome{
				Narration: "You attune to the echoes, charting enemy movements ahead.",
				Outcome:   "The sound-map inspires you to exploit openings first.",
				Statuses: []StatusGrant{
					{Name: StatusScouted, Duration: 2, Source: "echo mapping"},
					{Name: StatusInspired, Duration: 1, Source: "rhythmic focus"},
				},
			}
		}
		return EventOutcome{
			Narration: "The echoes overlap confusingly; you strain to parse them.",
			Outcome:   "No clear path emerges, but the practice steels your guard.",
			Statuses:  []StatusGrant{{Name: StatusScouted, Duration: 1, Source: "nervous pacing"}},
		}
	}

	return EventScenario{
		Title:     "Echoing Hollows",
		Intro:     "Vent chimneys roar and crystal lattices glitter with dull resonance.",
		BiomeKeys: []string{BiomeCaverns},
		Options: []EventOption{
			{Title: "Ride a thermal", Detail: "Glide on rising heat to glimpse nearby tunnels.", Risk: "safe", Resolver: rideThermal},
			{Title: "Mine crystals", Detail: "Strike a crystal vein for rare shards.", Risk: "risky", Resolver: mineCrystals},
			{Title: "Listen for paths", Detail: "Use sound to trace threats and openings.", Risk: "balanced", Resolver: listenForPaths},
		},
	}
}

func wanderingCartographer() EventScenario {
	tradeRoutes := func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome {
		if len(player.Stash) > 0 {
			player.Stash = player.Stash[:len(player.Stash)-1]
			return EventOutcome{
				Narration: "The cartographer barters maps for one of your spare tools.",
				Outcome:   "You exchange gear for a detailed chart of the region.",
				Item:      RollItemDrop(rng, maxInt(1, loc.Danger-1)),
				Statuses:  []StatusGrant{{Name: StatusScouted, Duration: 2, Source: "borrowed map"}},
			}
		}
		return EventOutcome{
			Narration: "With little to trade, you rely on shared stories instead.",
			Outcome:   "The cartographer still marks a shortcut out of kindness.",
			Statuses:  []StatusGrant{{Name: StatusScouted, Duration: 1, Source: "charity shortcut"}},
		}
	}

	sparForTips := func(player *Combatant, loc *Location, rng *rand.Rand) EventOutcome {
		player.Stats.Stamina = maxInt(player.Stats.Stamina-1, 0)
		duelScore := player.EffectiveSkill() + 1 + rng.IntN(4)
		if duelScore >= loc.Danger+2 {
			player.Stats.Skill++
			return EventOutcome{
				Narration: "A quick spar sharpens your blade-work under watchful eyes.",
				Outcome:   "You impress the cartographer, gaining a tip and a skill boost (+1 skill).",
				Statuses:  []StatusGrant{{Name: StatusInspired, Duration: 2, Source: "friendly duel"}},
			}
		}
		player.Stats.Health--
		return EventOutcome{
			Narration: "Your footing slips in the bout.",
			Outcome:   "Bruised but wiser (lose 1 health) and cursed by doubt.",
			Statuses:  []StatusGrant{{Name: StatusCursed, Duration: 1, Source: "rattled confidence"}},
		}
	}

	return EventScenario{
		Title: "Wandering Cartographer",
		Intro: "A lone guide offers rough maps and sparring lessons between travels.",
		Options: []EventOption{
			{Title: "Trade routes", Detail: "Swap a spare item for reliable scouting.", Risk: "trade", Resolver: tradeRoutes},
			{Title: "Spar for tips", Detail: "Spend stamina to test yourself and learn.", Risk: "balanced", Resolver: sparForTips},
		},
	}
}
