package game

// BiomeTemplate describes a biome shared by reference across many locations.
// Templates are immutable once built.
type BiomeTemplate struct {
	Key              string
	Title            string
	Flavors          []string
	EnemyWeight      float64
	RestWeight       float64
	EventWeight      float64
	RewardMultiplier float64
	TravelCost       int
}

const (
	BiomeRuins    = "ruins"
	BiomeWetlands = "wetlands"
	BiomeCaverns  = "caverns"
)

// biomePickWeights is the fixed (danger-independent) distribution used when
// assigning a biome to a generated location.
var biomePickWeights = []float64{0.4, 0.3, 0.3}

func BuiltInBiomes() []*BiomeTemplate {
	build := func(key, title string, enemy, rest, event, reward float64, travel int, flavors ...string) *BiomeTemplate {
		return &BiomeTemplate{
			Key:              key,
			Title:            title,
			Flavors:          flavors,
			EnemyWeight:      enemy,
			RestWeight:       rest,
			EventWeight:      event,
			RewardMultiplier: reward,
			TravelCost:       travel,
		}
	}

	return []*BiomeTemplate{
		build(BiomeRuins, "Ruins", 0.5, 0.2, 0.3, 1.0, 1,
			"shattered towers and drifting ash",
			"ivy-choked halls turned into a den of beasts",
			"collapsed galleries scarred by old sieges"),
		build(BiomeWetlands, "Wetlands", 0.4, 0.2, 0.4, 1.1, 2,
			"silent marshes wrapped in mist",
			"flooded causeways between drowned idols",
			"reed mazes humming with insect song"),
		build(BiomeCaverns, "Caverns", 0.45, 0.25, 0.3, 1.15, 2,
			"fractured caverns buzzing with faint echoes",
			"glimmering basalt galleries warmed by hidden vents",
			"crystal lattices glittering with dull resonance"),
	}
}

func (b *BiomeTemplate) encounterWeights() []float64 {
	return []float64{b.EnemyWeight, b.RestWeight, b.EventWeight}
}
