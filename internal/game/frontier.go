package game

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// FrontierModifier is one named, signed contribution to the frontier size.
type FrontierModifier struct {
	Label  string
	Amount int
}

// FrontierSize keeps its modifier lists inspectable instead of collapsing
// them into a single number; guardrail entries record out-of-range totals.
type FrontierSize struct {
	Base     int
	Positive []FrontierModifier
	Negative []FrontierModifier
	Min      int
	Max      int
}

const (
	frontierBase = 4
	frontierMin  = 1
	frontierMax  = 7
)

func (f FrontierSize) RawTotal() int {
	total := f.Base
	for _, m := range f.Positive {
		total += m.Amount
	}
	for _, m := range f.Negative {
		total -= m.Amount
	}
	return total
}

func (f FrontierSize) Clamped() int {
	total := f.RawTotal()
	if total < f.Min {
		return f.Min
	}
	if total > f.Max {
		return f.Max
	}
	return total
}

// biomeFrontierModifiers maps biome keys to their fixed frontier
// contribution. Biomes without an entry contribute nothing.
var biomeFrontierModifiers = map[string]struct {
	label    string
	positive bool
}{
	BiomeCaverns:  {label: "cavern echoes carry far", positive: true},
	BiomeWetlands: {label: "wetland mists close in", positive: false},
}

// ComputeFrontierSize derives how many exits the player is shown. Awareness
// contributes one point per 5; candidate biomes add their fixed modifiers;
// guardrail entries are appended whenever the raw total leaves [1,7] so the
// rationale stays visible even though the final value is clamped.
func ComputeFrontierSize(awareness int, candidates []*Location, extraPositive, extraNegative []FrontierModifier) FrontierSize {
	size := FrontierSize{Base: frontierBase, Min: frontierMin, Max: frontierMax}

	if bonus := awareness / 5; bonus > 0 {
		size.Positive = append(size.Positive, FrontierModifier{Label: "awareness", Amount: bonus})
	}
	for _, loc := range candidates {
		mod, ok := biomeFrontierModifiers[loc.Biome.Key]
		if !ok {
			continue
		}
		if mod.positive {
			size.Positive = append(size.Positive, FrontierModifier{Label: mod.label, Amount: 1})
		} else {
			size.Negative = append(size.Negative, FrontierModifier{Label: mod.label, Amount: 1})
		}
	}
	size.Positive = append(size.Positive, extraPositive...)
	size.Negative = append(size.Negative, extraNegative...)

	if raw := size.RawTotal(); raw > size.Max {
		size.Negative = append(size.Negative, FrontierModifier{Label: "guardrail", Amount: raw - size.Max})
	} else if raw < size.Min {
		size.Positive = append(size.Positive, FrontierModifier{Label: "guardrail", Amount: size.Min - raw})
	}
	return size
}

// FrontierOption is one resolved, player-facing choice. Placeholder options
// signal a dead end rather than a viable exit.
type FrontierOption struct {
	Exit        Exit
	Destination *Location
	Placeholder bool
	Detail      string
}

type FrontierState struct {
	Options []FrontierOption
	Size    FrontierSize
	DeadEnd bool
}

// DestinationIDs lists the location ids currently visible on the frontier.
func (f FrontierState) DestinationIDs() []string {
	var ids []string
	for _, opt := range f.Options {
		if !opt.Placeholder {
			ids = append(ids, opt.Destination.ID)
		}
	}
	return ids
}

// BuildFrontier resolves the choice set offered at one decision point. Exits
// to removed destinations are filtered first; the rest are sorted by
// destination id for determinism and shuffled with the main stream only when
// they exceed the target size.
func BuildFrontier(current *Location, world *WorldGraph, awareness int, rng *rand.Rand) FrontierState {
	viable := make([]Exit, 0, len(current.Exits))
	for _, exit := range current.Exits {
		dest, ok := world.Nodes[exit.Destination]
		if !ok || dest.Removed {
			continue
		}
		viable = append(viable, exit)
	}

	if len(viable) == 0 {
		return FrontierState{
			DeadEnd: true,
			Options: []FrontierOption{{
				Placeholder: true,
				Detail:      "Every path ahead has rotted away.",
			}},
		}
	}

	sort.Slice(viable, func(a, b int) bool {
		return viable[a].Destination < viable[b].Destination
	})

	candidates := make([]*Location, len(viable))
	for i, exit := range viable {
		candidates[i] = world.Nodes[exit.Destination]
	}
	size := ComputeFrontierSize(awareness, candidates, nil, nil)

	if target := size.Clamped(); len(viable) > target {
		rng.Shuffle(len(viable), func(a, b int) {
			viable[a], viable[b] = viable[b], viable[a]
		})
		viable = viable[:target]
		sort.Slice(viable, func(a, b int) bool {
			return viable[a].Destination < viable[b].Destination
		})
	}

	state := FrontierState{Size: size}
	for _, exit := range viable {
		dest := world.Nodes[exit.Destination]
		state.Options = append(state.Options, FrontierOption{
			Exit:        exit,
			Destination: dest,
			Detail:      describeDecay(dest, awareness),
		})
	}
	return state
}

// describeDecay formats decay information at the granularity the player's
// awareness has earned: bare stage, a qualitative hint, or exact timing.
func describeDecay(loc *Location, awareness int) string {
	switch {
	case awareness >= 10:
		remaining := loc.DecayRemaining
		if remaining < 0 {
			remaining = 0
		}
		return fmt.Sprintf("%s, %d travel until the next stage", loc.DecayStage, remaining)
	case awareness >= 5:
		hint := "holding for a while"
		switch {
		case loc.DecayRemaining <= 0:
			hint = "shifts immediately"
		case loc.DecayRemaining == 1:
			hint = "about to shift"
		case loc.DecayRemaining <= 2:
			hint = "shifting soon"
		}
		return fmt.Sprintf("%s (%s)", loc.DecayStage, hint)
	default:
		return loc.DecayStage
	}
}
