package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollDecayDurationBands(t *testing.T) {
	tests := []struct {
		name        string
		instability int
		allowed     map[int]bool
	}{
		{name: "calm worlds always roll the middle", instability: 0, allowed: map[int]bool{3: true}},
		{name: "low band mixes in endpoints", instability: 4, allowed: map[int]bool{2: true, 3: true, 4: true}},
		{name: "high band mixes in endpoints", instability: 7, allowed: map[int]bool{2: true, 3: true, 4: true}},
		{name: "unstable worlds only roll endpoints", instability: 10, allowed: map[int]bool{2: true, 4: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := NewStream(123)
			for i := 0; i < 200; i++ {
				got := rollDecayDuration(tc.instability, rng)
				require.True(t, tc.allowed[got], "iteration %d rolled %d", i, got)
			}
		})
	}
}

func TestDecayInitializeCoversAllNodes(t *testing.T) {
	rng := NewStream(5)
	world := GenerateWorld(rng, 6)
	manager := NewDecayManager()
	manager.Initialize(world, 5, rng)

	for _, id := range world.Order {
		state, ok := manager.State(id)
		require.True(t, ok, "no decay state for %s", id)
		assert.Equal(t, 0, state.StageIndex)
		assert.GreaterOrEqual(t, state.Duration, decayMinDuration)
		assert.LessOrEqual(t, state.Duration, decayMaxDuration)
		assert.Equal(t, state.Duration, state.Remaining)
		assert.Equal(t, "Fresh", world.Nodes[id].DecayStage)
		assert.False(t, world.Nodes[id].Removed)
	}
}

func TestDecayAdvanceOnlyTouchesFrontier(t *testing.T) {
	rng := NewStream(8)
	world := GenerateWorld(rng, 6)
	manager := NewDecayManager()
	manager.Initialize(world, 5, rng)

	shown := world.Order[1]
	frozen := world.Order[2]
	before, _ := manager.State(frozen)

	manager.Advance(1, []string{shown}, 5, world, rng)

	after, _ := manager.State(frozen)
	assert.Equal(t, before, after, "non-frontier location aged")

	aged, _ := manager.State(shown)
	assert.True(t, aged.Remaining < aged.Duration || aged.StageIndex > 0,
		"frontier location did not age")
}

func TestDecayAdvanceCascades(t *testing.T) {
	rng := NewStream(9)
	world := GenerateWorld(rng, 6)
	manager := NewDecayManager()
	manager.Initialize(world, 5, rng)

	id := world.Order[1]
	// Enough time to burn through every stage regardless of rolled durations.
	removed := manager.Advance(decayMaxDuration*3+1, []string{id}, 5, world, rng)

	require.Contains(t, removed, id)
	state, _ := manager.State(id)
	assert.Equal(t, int(DecayRemoved), state.StageIndex)
	assert.True(t, world.Nodes[id].Removed)
	assert.Equal(t, "Removed", world.Nodes[id].DecayStage)
}

func TestDecayStagesMonotonic(t *testing.T) {
	rng := NewStream(14)
	world := GenerateWorld(rng, 6)
	manager := NewDecayManager()
	manager.Initialize(world, 8, rng)

	id := world.Order[1]
	last := 0
	for i := 0; i < 20; i++ {
		manager.Advance(1, []string{id}, 8, world, rng)
		state, _ := manager.State(id)
		require.GreaterOrEqual(t, state.StageIndex, last, "stage regressed on tick %d", i)
		require.LessOrEqual(t, state.StageIndex, int(DecayRemoved))
		last = state.StageIndex
	}
	assert.Equal(t, int(DecayRemoved), last, "location survived 20 ticks of decay")
}

func TestDecayRemovedStaysRemoved(t *testing.T) {
	rng := NewStream(21)
	world := GenerateWorld(rng, 6)
	manager := NewDecayManager()
	manager.Initialize(world, 10, rng)

	id := world.Order[1]
	manager.Advance(50, []string{id}, 10, world, rng)
	removedAgain := manager.Advance(5, []string{id}, 10, world, rng)
	assert.NotContains(t, removedAgain, id, "already-removed location reported again")
}

func TestDecayZeroTimeIsNoop(t *testing.T) {
	rng := NewStream(2)
	world := GenerateWorld(rng, 6)
	manager := NewDecayManager()
	manager.Initialize(world, 5, rng)

	id := world.Order[1]
	before, _ := manager.State(id)
	removed := manager.Advance(0, []string{id}, 5, world, rng)
	after, _ := manager.State(id)

	assert.Empty(t, removed)
	assert.Equal(t, before, after)
	assert.Equal(t, 0, manager.TimeElapsed())
}

func TestDecayTimeElapsedAccumulates(t *testing.T) {
	rng := NewStream(2)
	world := GenerateWorld(rng, 6)
	manager := NewDecayManager()
	manager.Initialize(world, 5, rng)

	manager.Advance(2, nil, 5, world, rng)
	manager.Advance(3, nil, 5, world, rng)
	assert.Equal(t, 5, manager.TimeElapsed())
}
