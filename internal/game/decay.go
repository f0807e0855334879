package game

import (
	"math/rand/v2"
)

type DecayStage int

const (
	DecayFresh DecayStage = iota
	DecayFading
	DecayWithering
	DecayRemoved
)

func (s DecayStage) String() string {
	switch s {
	case DecayFresh:
		return "Fresh"
	case DecayFading:
		return "Fading"
	case DecayWithering:
		return "Withering"
	case DecayRemoved:
		return "Removed"
	default:
		return "Unknown"
	}
}

const (
	decayMinDuration = 2
	decayMaxDuration = 4
)

// DecayState is the manager's private copy of a location's decay clock. The
// Location display fields are synced from it, never written directly.
type DecayState struct {
	StageIndex int
	Remaining  int
	Duration   int
}

// DecayManager ages frontier-visible locations as travel time passes.
type DecayManager struct {
	states      map[string]*DecayState
	timeElapsed int
}

func NewDecayManager() *DecayManager {
	return &DecayManager{states: make(map[string]*DecayState)}
}

// Initialize seeds a decay state for every location, rolling durations with
// the instability-weighted distribution.
func (m *DecayManager) Initialize(world *WorldGraph, instability int, rng *rand.Rand) {
	for _, id := range world.Order {
		duration := rollDecayDuration(instability, rng)
		state := &DecayState{StageIndex: 0, Remaining: duration, Duration: duration}
		m.states[id] = state
		m.sync(world.Nodes[id], state)
	}
}

// rollDecayDuration picks a duration in [2,4]. Instability bands weight the
// endpoints ("extreme") against the interior value: higher instability means
// locations either collapse fast or linger long.
func rollDecayDuration(instability int, rng *rand.Rand) int {
	var extremeWeight, innerWeight int
	switch {
	case instability < 3:
		extremeWeight, innerWeight = 0, 10
	case instability < 6:
		extremeWeight, innerWeight = 4, 6
	case instability < 9:
		extremeWeight, innerWeight = 6, 4
	default:
		extremeWeight, innerWeight = 10, 0
	}

	if rng.IntN(extremeWeight+innerWeight) < extremeWeight {
		if rng.IntN(2) == 0 {
			return decayMinDuration
		}
		return decayMaxDuration
	}
	return (decayMinDuration + decayMaxDuration) / 2
}

// Advance decays only the locations currently visible on the frontier.
// Overshoot cascades through stages: a large timeSpent can push a location
// through several transitions in one call. Returns the ids that reached the
// Removed stage during this call.
func (m *DecayManager) Advance(timeSpent int, frontierIDs []string, instability int, world *WorldGraph, rng *rand.Rand) []string {
	var removed []string
	if timeSpent <= 0 {
		return removed
	}

	m.timeElapsed += timeSpent
	for _, id := range frontierIDs {
		state, ok := m.states[id]
		if !ok || state.StageIndex >= int(DecayRemoved) {
			continue
		}

		state.Remaining -= timeSpent
		for state.Remaining <= 0 && state.StageIndex < int(DecayRemoved) {
			state.StageIndex++
			if state.StageIndex >= int(DecayRemoved) {
				break
			}
			fresh := rollDecayDuration(instability, rng)
			state.Duration = fresh
			state.Remaining += fresh
		}

		m.sync(world.Nodes[id], state)
		if state.StageIndex >= int(DecayRemoved) {
			removed = append(removed, id)
		}
	}
	return removed
}

// State returns a copy of a location's decay bookkeeping.
func (m *DecayManager) State(id string) (DecayState, bool) {
	state, ok := m.states[id]
	if !ok {
		return DecayState{}, false
	}
	return *state, true
}

func (m *DecayManager) TimeElapsed() int {
	return m.timeElapsed
}

func (m *DecayManager) sync(loc *Location, state *DecayState) {
	if loc == nil {
		return
	}
	loc.DecayStage = DecayStage(state.StageIndex).String()
	loc.DecayRemaining = state.Remaining
	loc.DecayDuration = state.Duration
	loc.Removed = state.StageIndex >= int(DecayRemoved)
}
