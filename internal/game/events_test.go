package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassesCheck(t *testing.T) {
	tests := []struct {
		name      string
		roll      int
		skill     int
		awareness int
		bonus     int
		threshold int
		want      bool
	}{
		{name: "strong roll clears a ruins study check", roll: 6, skill: 4, awareness: 4, bonus: 0, threshold: 11, want: true},
		{name: "weak roll misses the same check", roll: 2, skill: 4, awareness: 4, bonus: 0, threshold: 11, want: false},
		{name: "trinket bonus tips a borderline check", roll: 2, skill: 4, awareness: 4, bonus: 1, threshold: 11, want: true},
		{name: "exact total passes", roll: 3, skill: 4, awareness: 4, bonus: 0, threshold: 11, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := passesCheck(tc.roll, tc.skill, tc.awareness, tc.bonus, tc.threshold)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuiltInScenariosCoverage(t *testing.T) {
	scenarios := BuiltInScenarios()
	require.Len(t, scenarios, 4)
	for _, s := range scenarios {
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Intro)
		require.NotEmpty(t, s.Options, "scenario %q has no options", s.Title)
		for _, opt := range s.Options {
			assert.NotNil(t, opt.Resolver, "option %q in %q", opt.Title, s.Title)
			assert.Contains(t, []string{"safe", "balanced", "trade", "risky"}, opt.Risk)
		}
	}
}

func TestPickScenarioHonorsBiome(t *testing.T) {
	scenarios := BuiltInScenarios()
	rng := NewStream(17)
	for i := 0; i < 50; i++ {
		picked := PickScenario(scenarios, BiomeWetlands, rng)
		assert.True(t, picked.appliesTo(BiomeWetlands),
			"picked %q for wetlands", picked.Title)
	}
}

func TestPickScenarioFallsBackToFullPool(t *testing.T) {
	only := []EventScenario{
		{Title: "Ruins Only", BiomeKeys: []string{BiomeRuins}, Options: []EventOption{{Title: "x"}}},
	}
	picked := PickScenario(only, BiomeCaverns, NewStream(1))
	assert.Equal(t, "Ruins Only", picked.Title)
}

func TestCartographerAppliesEverywhere(t *testing.T) {
	s := wanderingCartographer()
	for _, biome := range []string{BiomeRuins, BiomeWetlands, BiomeCaverns} {
		assert.True(t, s.appliesTo(biome))
	}
}

func TestLeaveOfferingConsumesSupply(t *testing.T) {
	p := NewPlayer("Drifter")
	p.Consumables = append(p.Consumables, findConsumable(t, ConsumableStaminaTonic))
	loc := testLocation("shrine", BiomeWetlands)

	shrine := wetlandsShrine()
	var offering EventOption
	for _, opt := range shrine.Options {
		if opt.Risk == "trade" {
			offering = opt
		}
	}
	require.NotNil(t, offering.Resolver)

	outcome := offering.Resolver(p, loc, NewStream(4))
	assert.Empty(t, p.Consumables, "the offering must consume a supply")
	require.NotEmpty(t, outcome.Statuses)
	assert.Equal(t, StatusScouted, outcome.Statuses[0].Name)
	assert.Equal(t, 2, outcome.Statuses[0].Duration)
}

func TestLeaveOfferingEmptyHanded(t *testing.T) {
	p := NewPlayer("Drifter")
	loc := testLocation("shrine", BiomeWetlands)

	shrine := wetlandsShrine()
	var offering EventOption
	for _, opt := range shrine.Options {
		if opt.Risk == "trade" {
			offering = opt
		}
	}

	outcome := offering.Resolver(p, loc, NewStream(4))
	assert.Nil(t, outcome.Item)
	require.NotEmpty(t, outcome.Statuses)
	assert.Equal(t, 1, outcome.Statuses[0].Duration)
}

func TestTradeRoutesSpendsStashItem(t *testing.T) {
	p := NewPlayer("Drifter")
	spare := &Item{Name: "Rusted Shiv", Slot: SlotWeapon, DamageBonus: 1}
	p.Stash = append(p.Stash, spare)
	loc := testLocation("crossroads", BiomeRuins)

	cartographer := wanderingCartographer()
	outcome := cartographer.Options[0].Resolver(p, loc, NewStream(6))
	assert.Empty(t, p.Stash)
	require.NotEmpty(t, outcome.Statuses)
	assert.Equal(t, StatusScouted, outcome.Statuses[0].Name)
}

func TestChartRubbleCapsGuard(t *testing.T) {
	p := NewPlayer("Drifter")
	p.Stats.Guard = maxGuard
	p.AddStatus(StatusScouted, 2)
	loc := testLocation("archive", BiomeRuins)

	archive := ruinsArchive()
	var chart EventOption
	for _, opt := range archive.Options {
		if opt.Risk == "safe" {
			chart = opt
		}
	}
	chart.Resolver(p, loc, NewStream(2))
	assert.Equal(t, maxGuard, p.Stats.Guard)
}

func TestResolversNeverMutateStatusesDirectly(t *testing.T) {
	// Status changes flow back as grants for the orchestrator to apply;
	// chasing wisps on a failure must therefore leave the map untouched.
	p := NewPlayer("Drifter")
	p.Stats.Awareness = 0
	loc := testLocation("bog", BiomeWetlands)
	loc.Danger = 9

	shrine := wetlandsShrine()
	var chase EventOption
	for _, opt := range shrine.Options {
		if opt.Risk == "risky" {
			chase = opt
		}
	}
	outcome := chase.Resolver(p, loc, NewStream(3))
	assert.Empty(t, p.Statuses)
	require.NotEmpty(t, outcome.Statuses)
	assert.Equal(t, StatusCursed, outcome.Statuses[0].Name)
}
