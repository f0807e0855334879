package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEncounter(t *testing.T, player, foe *Combatant, script []CombatAction) (*Encounter, *[]string) {
	t.Helper()
	var journal []string
	step := 0
	template := BuiltInEnemies()[0]
	return &Encounter{
		Player:   player,
		Foe:      foe,
		Template: template,
		Location: testLocation("arena", BiomeRuins),
		rng:      NewStream(7),
		log:      func(line string) { journal = append(journal, line) },
		chooseAction: func(EnemyIntent) CombatAction {
			if step < len(script) {
				action := script[step]
				step++
				return action
			}
			return ActionAttack
		},
		useConsumable: func() bool { return false },
	}, &journal
}

func TestCombatVictorySkipsEnemyTurn(t *testing.T) {
	player := NewPlayer("Drifter")
	foe := &Combatant{Name: "Skirmisher strider", Stats: Stats{Health: 1, Stamina: 3, Skill: 2}, Statuses: map[string]int{}}

	enc, journal := testEncounter(t, player, foe, []CombatAction{ActionAttack})
	result := enc.Run()

	assert.Equal(t, CombatVictory, result)
	assert.Equal(t, 1, enc.Rounds())
	assert.Equal(t, 12, player.Stats.Health, "dead enemy must not get a final action")
	for _, line := range *journal {
		assert.NotContains(t, line, "strikes Drifter", "enemy acted after dying")
	}
}

func TestCombatDefeat(t *testing.T) {
	player := NewPlayer("Drifter")
	player.Stats.Health = 1
	player.Stats.Skill = 0
	foe := &Combatant{Name: "Brute raider", Stats: Stats{Health: 50, Stamina: 50, Skill: 8}, Statuses: map[string]int{}}

	enc, _ := testEncounter(t, player, foe, nil)
	result := enc.Run()

	assert.Equal(t, CombatDefeat, result)
	assert.False(t, player.Stats.Alive())
}

func TestCombatExhaustedAttackFallsBackToRecover(t *testing.T) {
	player := NewPlayer("Drifter")
	player.Stats.Stamina = 0
	foe := &Combatant{Name: "Skirmisher fiend", Stats: Stats{Health: 1, Stamina: 3, Skill: 1}, Statuses: map[string]int{}}

	enc, journal := testEncounter(t, player, foe, []CombatAction{ActionAttack, ActionAttack, ActionAttack})
	result := enc.Run()

	require.NotEmpty(t, *journal)
	exhausted := false
	for _, line := range *journal {
		if strings.Contains(line, "too exhausted to attack") {
			exhausted = true
		}
	}
	assert.True(t, exhausted, "exhaustion fallback never triggered")
	// The fallback recovery replenishes stamina, so the second attack lands
	// and finishes the one-health foe.
	assert.Equal(t, CombatVictory, result)
	assert.GreaterOrEqual(t, enc.Rounds(), 2, "the exhausted round must not deal damage")
}

func TestCombatAttackSpendsStamina(t *testing.T) {
	player := NewPlayer("Drifter")
	player.Stats.Skill = 10
	foe := &Combatant{Name: "Skirmisher stalker", Stats: Stats{Health: 1, Stamina: 3}, Statuses: map[string]int{}}

	enc, _ := testEncounter(t, player, foe, []CombatAction{ActionAttack})
	enc.Run()
	assert.Equal(t, 7, player.Stats.Stamina)
}

func TestCombatGuardActionRaisesGuard(t *testing.T) {
	player := NewPlayer("Drifter")
	player.Stats.Health = 100 // survive long enough to observe
	foe := &Combatant{Name: "Hexcaster fiend", Stats: Stats{Health: 1, Stamina: 3, Skill: 1}, Statuses: map[string]int{}}

	enc, _ := testEncounter(t, player, foe, []CombatAction{ActionGuard, ActionAttack, ActionAttack})
	enc.Run()
	assert.GreaterOrEqual(t, player.Stats.Guard, 1)
}

func TestCombatUseWithoutConsumableLogsFallback(t *testing.T) {
	player := NewPlayer("Drifter")
	foe := &Combatant{Name: "Skirmisher prowler", Stats: Stats{Health: 1, Stamina: 3}, Statuses: map[string]int{}}

	enc, journal := testEncounter(t, player, foe, []CombatAction{ActionUse, ActionAttack})
	enc.Run()

	found := false
	for _, line := range *journal {
		if strings.Contains(line, "No consumable used") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCombatEnemyFaltersAtZeroStamina(t *testing.T) {
	player := NewPlayer("Drifter")
	player.Stats.Health = 100
	player.Stats.Skill = 0
	// A brute with no stamina must falter instead of attacking.
	foe := &Combatant{Name: "Brute prowler", Stats: Stats{Health: 30, Stamina: 0, Skill: 5, Awareness: 1}, Statuses: map[string]int{}}

	var journal []string
	rounds := 0
	enc := &Encounter{
		Player:   player,
		Foe:      foe,
		Template: BuiltInEnemies()[1],
		Location: testLocation("arena", BiomeRuins),
		rng:      NewStream(3),
		log:      func(line string) { journal = append(journal, line) },
		chooseAction: func(EnemyIntent) CombatAction {
			rounds++
			if rounds > 1 {
				// End the fight quickly once the falter has been observed.
				foe.Stats.Health = 1
				player.Stats.Skill = 10
				return ActionAttack
			}
			return ActionGuard
		},
		useConsumable: func() bool { return false },
	}
	enc.Run()

	// The brute's own intent at 0 stamina is Recover; if it had chosen to
	// attack anyway, resolveEnemyAction forces the falter line.
	assert.Equal(t, 100, player.Stats.Health, "a stamina-starved brute still dealt damage")
}

func TestCombatRoundLogNamesLocation(t *testing.T) {
	player := NewPlayer("Drifter")
	foe := &Combatant{Name: "Skirmisher stray", Stats: Stats{Health: 1, Stamina: 3}, Statuses: map[string]int{}}

	enc, journal := testEncounter(t, player, foe, []CombatAction{ActionAttack})
	enc.Run()

	require.NotEmpty(t, *journal)
	assert.Contains(t, (*journal)[0], "arena", "round header must say where the fight happens")
}

func TestCombatStateStrings(t *testing.T) {
	assert.Equal(t, "Victory", CombatVictory.String())
	assert.Equal(t, "Defeat", CombatDefeat.String())
	assert.Equal(t, "RoundStart", CombatRoundStart.String())
}
