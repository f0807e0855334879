package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enemyTemplate(t *testing.T, key Archetype) *EnemyTemplate {
	t.Helper()
	for _, template := range BuiltInEnemies() {
		if template.Key == key {
			return template
		}
	}
	t.Fatalf("no template for archetype %q", key)
	return nil
}

func TestSpawnScalesWithDanger(t *testing.T) {
	skirmisher := enemyTemplate(t, ArchetypeSkirmisher)

	low := skirmisher.Spawn(1, NewStream(1))
	assert.Equal(t, skirmisher.Base.Health, low.Stats.Health)

	high := skirmisher.Spawn(4, NewStream(1))
	assert.Equal(t, skirmisher.Base.Health+3*skirmisher.Scaling.Health, high.Stats.Health)
	assert.Equal(t, skirmisher.Base.Skill+3*skirmisher.Scaling.Skill, high.Stats.Skill)
}

func TestSpawnNamesUseTitle(t *testing.T) {
	brute := enemyTemplate(t, ArchetypeBrute)
	spawned := brute.Spawn(2, NewStream(5))
	assert.Contains(t, spawned.Name, "Brute ")
}

func TestSkirmisherIntents(t *testing.T) {
	skirmisher := enemyTemplate(t, ArchetypeSkirmisher)
	player := NewPlayer("Drifter")

	exhausted := &Combatant{Stats: Stats{Health: 5, Stamina: 1}, Statuses: map[string]int{}}
	intent := skirmisher.Decide(exhausted, player, NewStream(1))
	assert.Equal(t, ActionRecover, intent.Action)

	fresh := &Combatant{Stats: Stats{Health: 5, Stamina: 5}, Statuses: map[string]int{}}
	intent = skirmisher.Decide(fresh, player, NewStream(1))
	assert.Equal(t, ActionAttack, intent.Action)
}

func TestBruteIntents(t *testing.T) {
	brute := enemyTemplate(t, ArchetypeBrute)
	player := NewPlayer("Drifter")

	winded := &Combatant{Stats: Stats{Health: 9, Stamina: 0}, Statuses: map[string]int{}}
	intent := brute.Decide(winded, player, NewStream(1))
	assert.Equal(t, ActionRecover, intent.Action)

	healthy := &Combatant{Stats: Stats{Health: 9, Stamina: 5, Awareness: 3}, Statuses: map[string]int{}}
	intent = brute.Decide(healthy, player, NewStream(1))
	assert.Equal(t, ActionAttack, intent.Action)
}

func TestCasterIntents(t *testing.T) {
	caster := enemyTemplate(t, ArchetypeCaster)

	guarded := NewPlayer("Drifter")
	guarded.Stats.Guard = 3
	fresh := &Combatant{Stats: Stats{Health: 6, Stamina: 5}, Statuses: map[string]int{}}
	intent := caster.Decide(fresh, guarded, NewStream(1))
	assert.Equal(t, ActionGuard, intent.Action)

	drained := &Combatant{Stats: Stats{Health: 6, Stamina: 1}, Statuses: map[string]int{}}
	intent = caster.Decide(drained, NewPlayer("Drifter"), NewStream(1))
	assert.Equal(t, ActionRecover, intent.Action)
}

func TestIntentsCarryTelegraphs(t *testing.T) {
	player := NewPlayer("Drifter")
	rng := NewStream(3)
	for _, template := range BuiltInEnemies() {
		foe := template.Spawn(3, rng)
		for i := 0; i < 10; i++ {
			intent := template.Decide(foe, player, rng)
			assert.NotEmpty(t, intent.Telegraph, "archetype %s", template.Key)
			assert.Contains(t, []CombatAction{ActionAttack, ActionGuard, ActionRecover}, intent.Action)
		}
	}
}

func TestSkirmisherOnHitStripsGuard(t *testing.T) {
	skirmisher := enemyTemplate(t, ArchetypeSkirmisher)
	foe := skirmisher.Spawn(2, NewStream(1))
	player := NewPlayer("Drifter")
	player.Stats.Guard = 2

	line := skirmisher.OnHit(foe, player, NewStream(1))
	assert.NotEmpty(t, line)
	assert.Equal(t, 1, player.Stats.Guard)

	player.Stats.Guard = 0
	line = skirmisher.OnHit(foe, player, NewStream(1))
	assert.Empty(t, line, "no guard to strip means no effect")
	assert.Equal(t, 0, player.Stats.Guard)
}

func TestBruteOnHitDrainsStamina(t *testing.T) {
	brute := enemyTemplate(t, ArchetypeBrute)
	foe := brute.Spawn(2, NewStream(1))
	player := NewPlayer("Drifter")
	rng := NewStream(2)

	start := player.Stats.Stamina
	line := brute.OnHit(foe, player, rng)
	assert.NotEmpty(t, line)
	drained := start - player.Stats.Stamina
	assert.GreaterOrEqual(t, drained, 1)
	assert.LessOrEqual(t, drained, 2)
}

func TestCasterOnHitBurns(t *testing.T) {
	caster := enemyTemplate(t, ArchetypeCaster)
	foe := caster.Spawn(2, NewStream(1))
	player := NewPlayer("Drifter")
	rng := NewStream(2)

	start := player.Stats.Health
	line := caster.OnHit(foe, player, rng)
	assert.NotEmpty(t, line)
	burn := start - player.Stats.Health
	assert.GreaterOrEqual(t, burn, 1)
	assert.LessOrEqual(t, burn, 2)
}

func TestPickEnemyTemplateFavorsBiome(t *testing.T) {
	rng := NewStream(31)
	counts := map[Archetype]int{}
	for i := 0; i < 600; i++ {
		counts[PickEnemyTemplate(BiomeCaverns, 5, rng).Key]++
	}
	// Brutes prefer caverns and high danger; skirmishers get neither boost.
	require.Positive(t, counts[ArchetypeBrute])
	assert.Greater(t, counts[ArchetypeBrute], counts[ArchetypeSkirmisher])
}
