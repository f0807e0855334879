package game

import (
	"fmt"
	"math/rand/v2"
)

type EncounterKind string

const (
	EncounterEnemy EncounterKind = "enemy"
	EncounterRest  EncounterKind = "rest"
	EncounterEvent EncounterKind = "event"
)

// Exit is a one-way edge out of a location. Immutable once created.
type Exit struct {
	Destination string
	Label       string
	Cost        int
	Note        string
}

// Location is one node of the world graph. After generation only the decay
// display fields change, and only the DecayManager writes them.
type Location struct {
	ID               string
	Name             string
	Biome            *BiomeTemplate
	Danger           int
	Encounter        EncounterKind
	Description      string
	RewardMultiplier float64
	Exits            []Exit

	DecayStage     string
	DecayRemaining int
	DecayDuration  int
	Removed        bool
}

// WorldGraph maps location ids to locations. Order preserves generation
// order; the final entry is the terminal node.
type WorldGraph struct {
	Nodes map[string]*Location
	Start string
	Order []string
}

func (w *WorldGraph) Terminal() string {
	if len(w.Order) == 0 {
		return ""
	}
	return w.Order[len(w.Order)-1]
}

const minWorldSteps = 3

var encounterKinds = []EncounterKind{EncounterEnemy, EncounterRest, EncounterEvent}

// GenerateWorld builds the full location graph for a run. All randomness
// comes from the passed stream in a fixed call order, so (seed, steps) pins
// the graph exactly.
func GenerateWorld(rng *rand.Rand, steps int) *WorldGraph {
	if steps < minWorldSteps {
		steps = minWorldSteps
	}

	biomes := BuiltInBiomes()
	world := &WorldGraph{Nodes: make(map[string]*Location, steps)}

	for idx := 0; idx < steps; idx++ {
		biome := biomes[weightedPick(rng, biomePickWeights)]
		kind := encounterKinds[weightedPick(rng, biome.encounterWeights())]
		danger := 1 + rng.IntN(3) + idx/2
		flavor := biome.Flavors[rng.IntN(len(biome.Flavors))]
		id := fmt.Sprintf("node-%02d", idx+1)

		loc := &Location{
			ID:               id,
			Name:             fmt.Sprintf("Node %d", idx+1),
			Biome:            biome,
			Danger:           danger,
			Encounter:        kind,
			Description:      fmt.Sprintf("You reach %s. Threat level %d.", flavor, danger),
			RewardMultiplier: biome.RewardMultiplier + 0.05*float64(danger-1),
		}
		world.Nodes[id] = loc
		world.Order = append(world.Order, id)
	}
	world.Start = world.Order[0]

	linkForward(rng, world)
	linkCamps(world)
	return world
}

var forwardLabels = []string{"Press onward", "Take the winding trail"}

// linkForward draws 1-2 forward targets per non-terminal node from the next
// two nodes in generation order. Successors always come from later nodes, so
// forward edges form a DAG.
func linkForward(rng *rand.Rand, world *WorldGraph) {
	for i, id := range world.Order {
		if i == len(world.Order)-1 {
			break // terminal node keeps zero exits
		}
		end := i + 3
		if end > len(world.Order) {
			end = len(world.Order)
		}
		candidates := append([]string(nil), world.Order[i+1:end]...)
		rng.Shuffle(len(candidates), func(a, b int) {
			candidates[a], candidates[b] = candidates[b], candidates[a]
		})
		count := 1 + rng.IntN(2)
		if count > len(candidates) {
			count = len(candidates)
		}

		node := world.Nodes[id]
		for slot, destID := range candidates[:count] {
			dest := world.Nodes[destID]
			node.Exits = append(node.Exits, Exit{
				Destination: destID,
				Label:       forwardLabels[slot%len(forwardLabels)],
				Cost:        travelCost(dest),
			})
		}
	}
}

// linkCamps gives every non-rest, non-terminal node a single back-edge to the
// most recent rest node generated before it. These are the only edges that
// can introduce cycles.
func linkCamps(world *WorldGraph) {
	lastRest := ""
	for i, id := range world.Order {
		node := world.Nodes[id]
		if node.Encounter == EncounterRest {
			lastRest = id
			continue
		}
		if lastRest != "" && i < len(world.Order)-1 {
			node.Exits = append(node.Exits, Exit{
				Destination: lastRest,
				Label:       "Return to camp",
				Cost:        1,
				Note:        "backtrack",
			})
		}
	}
}

func travelCost(dest *Location) int {
	cost := dest.Biome.TravelCost + dest.Danger/3
	if cost < 1 {
		cost = 1
	}
	return cost
}
