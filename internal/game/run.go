package game

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// RunConfig holds the already-validated knobs for one expedition. The CLI
// layer owns argument parsing; the core only re-checks cheap invariants.
type RunConfig struct {
	Seed        int64
	Steps       int
	Auto        bool
	Instability int
	PlayerName  string
}

const (
	defaultSteps       = 6
	DefaultInstability = 5
)

func (c *RunConfig) Validate() error {
	if c.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", c.Steps)
	}
	if c.Instability < 0 {
		return fmt.Errorf("instability must not be negative, got %d", c.Instability)
	}
	return nil
}

type RunOutcome int

const (
	OutcomeDefeat RunOutcome = iota
	OutcomeVictory
	OutcomeStranded
)

func (o RunOutcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeStranded:
		return "stranded"
	default:
		return "unknown"
	}
}

// Run sequences one expedition through a generated world. It owns the single
// random stream, the player aggregate, and all mutable run state; the
// decision provider and sink are the only external collaborators.
type Run struct {
	cfg      RunConfig
	rng      *rand.Rand
	provider DecisionProvider
	sink     Sink

	player    *Combatant
	world     *WorldGraph
	decay     *DecayManager
	scenarios []EventScenario

	current    string
	route      []string
	journal    []string
	experience int
	level      int
	xpToNext   int

	// Decision context for the autopilot; valid only while the matching
	// provider call is in flight.
	pendingFoe         *Combatant
	pendingConsumables []*Consumable
	pendingScenario    *EventScenario
	pendingFrontier    *FrontierState
}

// NewRun builds a ready-to-play expedition. A nil provider selects the
// built-in autopilot when cfg.Auto is set.
func NewRun(cfg RunConfig, provider DecisionProvider, sink Sink) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Steps == 0 {
		cfg.Steps = defaultSteps
	}
	if cfg.Steps < minWorldSteps {
		cfg.Steps = minWorldSteps
	}
	if cfg.PlayerName == "" {
		cfg.PlayerName = "Drifter"
	}
	if sink == nil {
		return nil, fmt.Errorf("a journal sink is required")
	}

	rng := NewStream(cfg.Seed)
	world := GenerateWorld(rng, cfg.Steps)
	decay := NewDecayManager()
	decay.Initialize(world, cfg.Instability, rng)

	r := &Run{
		cfg:       cfg,
		rng:       rng,
		sink:      sink,
		player:    NewPlayer(cfg.PlayerName),
		world:     world,
		decay:     decay,
		scenarios: BuiltInScenarios(),
		current:   world.Start,
		level:     1,
		xpToNext:  5,
	}

	if provider == nil {
		if !cfg.Auto {
			return nil, fmt.Errorf("interactive runs need a decision provider")
		}
		provider = &AutoPilot{run: r}
	}
	r.provider = provider
	return r, nil
}

func (r *Run) Seed() int64 {
	return r.cfg.Seed
}

func (r *Run) Player() *Combatant {
	return r.player
}

func (r *Run) World() *WorldGraph {
	return r.world
}

func (r *Run) log(entry string) {
	r.journal = append(r.journal, entry)
	r.sink.Append(entry)
}

// Play walks the expedition to one of its terminal outcomes. Defeat, victory
// and stranding are all ordinary results; nothing in here errors out.
func (r *Run) Play() RunOutcome {
	r.log("=== Expedition Begins ===")
	for {
		loc := r.world.Nodes[r.current]
		r.route = append(r.route, loc.Name)
		r.describeLocation(loc)

		switch loc.Encounter {
		case EncounterEnemy:
			if !r.handleCombat(loc) {
				r.log("You collapse. The expedition ends here.")
				return OutcomeDefeat
			}
		case EncounterRest:
			r.handleRest(loc)
		default:
			r.handleEvent(loc)
		}

		if !r.player.Stats.Alive() {
			r.log("Your injuries are too severe to continue.")
			return OutcomeDefeat
		}
		if len(loc.Exits) == 0 {
			r.log("You have reached the end of this route. Victory!")
			return OutcomeVictory
		}

		frontier := BuildFrontier(loc, r.world, r.player.EffectiveAwareness(), r.rng)
		if frontier.DeadEnd {
			r.presentDeadEnd(frontier)
			return OutcomeStranded
		}

		exit := r.chooseExit(loc, frontier)
		r.applyTravelCost(exit)
		if !r.player.Stats.Alive() {
			r.log("You collapse. The expedition ends here.")
			return OutcomeDefeat
		}
		r.advanceDecay(exit, frontier)
		r.current = exit.Destination
	}
}

func (r *Run) describeLocation(loc *Location) {
	r.log(fmt.Sprintf("\n[%d] %s (%s) :: %s", len(r.route), loc.Name, loc.Biome.Title, loc.Description))
	r.log(fmt.Sprintf("Encounter: %s, danger %d, rewards x%.2f.",
		strings.ToUpper(string(loc.Encounter)), loc.Danger, loc.RewardMultiplier))
	r.log("Status :: " + DescribeCombatants(r.player))
	r.log("Route so far: " + strings.Join(r.route, " -> "))
}

func (r *Run) describeStatusEffects(context string) {
	if len(r.player.Statuses) == 0 {
		return
	}
	var notes []string
	if r.player.HasStatus(StatusScouted) {
		notes = append(notes, "scouted (+guard/+awareness)")
	}
	if r.player.HasStatus(StatusInspired) {
		notes = append(notes, "inspired (+skill/+awareness)")
	}
	if r.player.HasStatus(StatusCursed) {
		notes = append(notes, "cursed (-skill/-guard)")
	}
	r.log(fmt.Sprintf("Statuses for this %s: %s", context, strings.Join(notes, ", ")))
}

func (r *Run) grantStatus(name string, duration int, source string) {
	previous := r.player.Statuses[name]
	r.player.AddStatus(name, duration)
	label := fmt.Sprintf("%s for %d encounters (%s).", name, r.player.Statuses[name], source)
	if previous > 0 {
		r.log("Status refreshed: " + label)
	} else {
		r.log("Status gained: " + label)
	}
}

func (r *Run) decayStatuses(context string) {
	if expired := r.player.TickStatuses(); len(expired) > 0 {
		r.log(fmt.Sprintf("Statuses fade after the %s: %s.", context, strings.Join(expired, ", ")))
	}
}

// --- combat ---

func (r *Run) handleCombat(loc *Location) bool {
	template := PickEnemyTemplate(loc.Biome.Key, loc.Danger, r.rng)
	foe := template.Spawn(loc.Danger, r.rng)
	r.pendingFoe = foe
	defer func() { r.pendingFoe = nil }()

	r.log(fmt.Sprintf("A %s emerges: %s. Threat level %d.",
		strings.ToLower(template.Title), template.Description, loc.Danger))
	r.describeStatusEffects("combat")

	encounter := &Encounter{
		Player:   r.player,
		Foe:      foe,
		Template: template,
		Location: loc,
		rng:      r.rng,
		log:      r.log,
		chooseAction: func(intent EnemyIntent) CombatAction {
			return r.choosePlayerAction()
		},
		useConsumable: func() bool {
			return r.useConsumable(true, foe)
		},
	}

	if encounter.Run() == CombatDefeat {
		return false
	}

	lootBase := loc.Danger / 2
	if lootBase < 1 {
		lootBase = 1
	}
	loot := maxInt(1, int(math.Round(float64(lootBase)*loc.RewardMultiplier*template.LootMultiplier)))
	xpGain := maxInt(1, int(math.Round(float64(loc.Danger)*template.XPValue*loc.RewardMultiplier)))
	r.player.Stats.Stamina = minInt(r.player.Stats.Stamina+loot, r.player.Stats.StaminaCap())
	r.log(fmt.Sprintf("Enemy defeated. You salvage %d stamina worth of supplies and gain %d insight.", loot, xpGain))
	r.awardExperience(xpGain, "victory")

	if item := RollItemDrop(r.rng, loc.Danger); item != nil {
		r.addItem(item)
	}
	if consumable := RollConsumableDrop(r.rng, loc.Danger); consumable != nil {
		r.addConsumable(consumable)
	}
	r.decayStatuses("combat")
	return true
}

var combatActionChoices = []Choice{
	{Label: "Attack", Value: string(ActionAttack)},
	{Label: "Guard", Value: string(ActionGuard)},
	{Label: "Recover", Value: string(ActionRecover)},
	{Label: "Use consumable", Value: string(ActionUse)},
}

func (r *Run) choosePlayerAction() CombatAction {
	value := r.provider.Choose("Choose your action:", combatActionChoices)
	switch action := CombatAction(value); action {
	case ActionAttack, ActionGuard, ActionRecover, ActionUse:
		return action
	default:
		return ActionRecover
	}
}

// --- consumables ---

func (r *Run) availableConsumables(inCombat bool) []*Consumable {
	var available []*Consumable
	for _, c := range r.player.Consumables {
		if !c.Available() {
			continue
		}
		if c.RequiresTarget && !inCombat {
			continue
		}
		available = append(available, c)
	}
	return available
}

func (r *Run) useConsumable(inCombat bool, foe *Combatant) bool {
	available := r.availableConsumables(inCombat)
	if len(available) == 0 {
		return false
	}

	r.pendingConsumables = available
	defer func() { r.pendingConsumables = nil }()

	options := make([]Choice, 0, len(available)+1)
	for i, c := range available {
		targetNote := "(self)"
		if c.RequiresTarget {
			targetNote = "(requires target)"
		}
		options = append(options, Choice{
			Label: fmt.Sprintf("%s %s :: %s", c.Summary(), targetNote, c.Description),
			Value: fmt.Sprintf("consumable:%d", i),
		})
	}
	options = append(options, Choice{Label: "Cancel", Value: "cancel"})

	value := r.provider.Choose("Choose a consumable to use:", options)
	idx, ok := parseIndexedValue(value, "consumable:")
	if !ok || idx >= len(available) {
		return false
	}

	chosen := available[idx]
	var target *Combatant
	if chosen.RequiresTarget {
		target = foe
	}
	r.log(chosen.Use(r.player, target, r.rng))
	return true
}

var yesNoChoices = []Choice{
	{Label: "Yes", Value: "yes"},
	{Label: "No", Value: "no"},
}

func (r *Run) maybeUseConsumable(reason string) {
	if len(r.availableConsumables(false)) == 0 {
		return
	}
	answer := r.provider.Choose(fmt.Sprintf("Use a consumable before %s?", reason), yesNoChoices)
	if answer == "yes" {
		r.useConsumable(false, nil)
	}
}

// --- rest and events ---

func (r *Run) handleRest(loc *Location) {
	r.maybeUseConsumable("resting")
	heal := maxInt(1, int(math.Round(float64(2+loc.Danger/2)*loc.RewardMultiplier)))
	stamina := maxInt(2, int(math.Round(3*loc.RewardMultiplier)))
	r.player.Stats.Health = minInt(r.player.Stats.Health+heal, r.player.Stats.HealthCap())
	r.player.Stats.Stamina = minInt(r.player.Stats.Stamina+stamina, r.player.Stats.StaminaCap())
	r.log(fmt.Sprintf("Safe pocket: you rest, healing %d and restoring %d stamina.", heal, stamina))
	r.log("Status :: " + DescribeCombatants(r.player))
	r.awardExperience(1, "resting and reflecting")
	r.decayStatuses("rest")
}

func (r *Run) handleEvent(loc *Location) {
	r.maybeUseConsumable("facing the event")

	scenario := PickScenario(r.scenarios, loc.Biome.Key, r.rng)
	r.log(fmt.Sprintf("Event: %s [%s]", scenario.Title, loc.Biome.Title))
	r.log(scenario.Intro)
	r.describeStatusEffects("event")

	choice := r.chooseEventOption(&scenario)
	r.log(fmt.Sprintf("You choose: %s. %s", choice.Title, choice.Detail))

	outcome := choice.Resolver(r.player, loc, r.rng)
	r.log(outcome.Narration)
	r.log(outcome.Outcome)
	for _, grant := range outcome.Statuses {
		r.grantStatus(grant.Name, grant.Duration, grant.Source)
	}
	if outcome.Item != nil {
		r.addItem(outcome.Item)
	}
	if outcome.Consumable != nil {
		r.addConsumable(outcome.Consumable)
	}
	if bonus := RollConsumableDrop(r.rng, loc.Danger); bonus != nil {
		r.addConsumable(bonus)
	}
	r.awardExperience(1, "learning from the encounter")
	r.log("Status :: " + DescribeCombatants(r.player))
	r.decayStatuses("event")
}

func (r *Run) chooseEventOption(scenario *EventScenario) EventOption {
	r.pendingScenario = scenario
	defer func() { r.pendingScenario = nil }()

	r.log("Choose how to respond:")
	options := make([]Choice, 0, len(scenario.Options))
	for i, option := range scenario.Options {
		r.log(fmt.Sprintf(" %d. %s [%s] :: %s", i+1, option.Title, option.Risk, option.Detail))
		options = append(options, Choice{
			Label: fmt.Sprintf("%s [%s]", option.Title, option.Risk),
			Value: fmt.Sprintf("event:%d", i),
		})
	}

	value := r.provider.Choose("Select your response:", options)
	idx, ok := parseIndexedValue(value, "event:")
	if !ok || idx >= len(scenario.Options) {
		idx = 0
	}
	return scenario.Options[idx]
}

// --- inventory ---

func (r *Run) addItem(item *Item) {
	r.player.Stash = append(r.player.Stash, item)
	r.log(fmt.Sprintf("You obtain %s. %s", item.Summary(), item.Description))
	if r.cfg.Auto {
		r.autoEquip(item.Slot)
	} else {
		r.promptEquip(item)
	}
}

// autoEquip swaps in the best stashed item for a slot, but never downgrades:
// the incumbent stays unless strictly outscored.
func (r *Run) autoEquip(slot ItemSlot) {
	candidate := BestItem(r.player.Stash, slot)
	if candidate == nil {
		return
	}
	current := r.player.EquippedIn(slot)
	if current == candidate {
		return
	}
	if current != nil && candidate.Score() <= current.Score() {
		return
	}
	previous := "nothing"
	if current != nil {
		previous = current.Summary()
	}
	r.player.Equip(candidate)
	r.log(fmt.Sprintf("Auto-equip: swapping %s for %s.", previous, candidate.Summary()))
}

// promptEquip asks for confirmation only when the candidate outscores the
// incumbent; weaker gear is stowed without a prompt.
func (r *Run) promptEquip(item *Item) {
	current := r.player.EquippedIn(item.Slot)
	if current == nil {
		r.player.Equip(item)
		r.log(fmt.Sprintf("You equip %s.", item.Summary()))
		return
	}
	if item.Score() <= current.Score() {
		r.log(fmt.Sprintf("You stow the %s for later, keeping %s equipped.", item.Name, current.Summary()))
		return
	}

	prompt := fmt.Sprintf("Equip %s to replace %s in your %s slot?", item.Summary(), current.Summary(), item.Slot)
	if r.provider.Choose(prompt, yesNoChoices) == "yes" {
		r.player.Equip(item)
		r.log(fmt.Sprintf("You equip %s.", item.Summary()))
	} else {
		r.log(fmt.Sprintf("You keep %s equipped.", current.Summary()))
	}
}

func (r *Run) addConsumable(consumable *Consumable) {
	r.player.Consumables = append(r.player.Consumables, consumable)
	r.log(fmt.Sprintf("You obtain %s. %s", consumable.Summary(), consumable.Description))
}

// --- experience ---

func (r *Run) awardExperience(amount int, reason string) {
	r.experience += amount
	r.log(fmt.Sprintf("You gain %d insight from %s (total %d).", amount, reason, r.experience))
	r.maybeLevelUp()
}

func (r *Run) maybeLevelUp() {
	for r.experience >= r.xpToNext {
		r.experience -= r.xpToNext
		r.level++
		r.log(fmt.Sprintf("Insight crystallizes. You reach level %d!", r.level))
		r.offerTalentChoice()
		r.xpToNext = 5 + (r.level-1)*3
	}
}

var talentChoices = []Choice{
	{Label: "Bolster vitality (+3 health)", Value: "talent:health"},
	{Label: "Deepen stamina reserves (+2 stamina)", Value: "talent:stamina"},
	{Label: "Sharpen skill (+1 skill)", Value: "talent:skill"},
	{Label: "Widen awareness (+1 awareness)", Value: "talent:awareness"},
}

func (r *Run) offerTalentChoice() {
	value := r.provider.Choose("Choose how to grow from your experience:", talentChoices)
	switch value {
	case "talent:health":
		r.player.Stats.Health = minInt(r.player.Stats.Health+3, r.player.Stats.HealthCap())
		r.log("You feel stronger: Bolster vitality (+3 health).")
	case "talent:stamina":
		r.player.Stats.Stamina = minInt(r.player.Stats.Stamina+2, r.player.Stats.StaminaCap())
		r.log("You feel stronger: Deepen stamina reserves (+2 stamina).")
	case "talent:awareness":
		r.player.Stats.Awareness++
		r.log("You feel stronger: Widen awareness (+1 awareness).")
	default:
		r.player.Stats.Skill++
		r.log("You feel stronger: Sharpen skill (+1 skill).")
	}
}

// --- travel ---

func (r *Run) presentDeadEnd(frontier FrontierState) {
	r.log("Paths branch ahead:")
	option := frontier.Options[0]
	r.log(" 1. " + option.Detail)
	r.provider.Choose("No viable paths remain. Accept the end of the expedition?", []Choice{
		{Label: "Accept", Value: "accept"},
	})
	r.log("The decay has outpaced you. The expedition ends amid the ruins of its own map.")
}

func (r *Run) chooseExit(loc *Location, frontier FrontierState) Exit {
	r.pendingFrontier = &frontier
	defer func() { r.pendingFrontier = nil }()

	r.log("Paths branch ahead:")
	options := make([]Choice, 0, len(frontier.Options))
	for i, opt := range frontier.Options {
		note := ""
		if opt.Exit.Note != "" {
			note = fmt.Sprintf(" [%s]", opt.Exit.Note)
		}
		line := fmt.Sprintf("%s toward %s (cost %d stamina, danger %d, %s, %s)%s",
			opt.Exit.Label, opt.Destination.Name, opt.Exit.Cost, opt.Destination.Danger,
			opt.Destination.Biome.Title, opt.Detail, note)
		r.log(fmt.Sprintf(" %d. %s", i+1, line))
		options = append(options, Choice{Label: line, Value: fmt.Sprintf("exit:%d", i)})
	}

	value := r.provider.Choose("Choose your path:", options)
	idx, ok := parseIndexedValue(value, "exit:")
	if !ok || idx >= len(frontier.Options) {
		idx = 0
	}
	return frontier.Options[idx].Exit
}

func (r *Run) applyTravelCost(exit Exit) {
	r.player.Stats.Guard = 0
	r.player.Stats.Stamina -= exit.Cost
	if r.player.Stats.Stamina < 0 {
		deficit := -r.player.Stats.Stamina
		r.player.Stats.Stamina = 0
		r.player.Stats.Health -= deficit
		r.log(fmt.Sprintf("Travel grinds you down: you spend %d stamina and lose %d health pushing onward.",
			exit.Cost, deficit))
		return
	}
	r.log(fmt.Sprintf("You spend %d stamina reaching the next waypoint.", exit.Cost))
}

// advanceDecay ages the locations that were just shown on the frontier. The
// chosen destination is normally excluded, since the player is already
// entering it. When it was the only option the exclusion is skipped: time
// must keep eroding something, or a two-node orbit could persist untouched
// forever.
func (r *Run) advanceDecay(chosen Exit, frontier FrontierState) {
	var ids []string
	for _, id := range frontier.DestinationIDs() {
		if id != chosen.Destination {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		ids = []string{chosen.Destination}
	}
	removed := r.decay.Advance(chosen.Cost, ids, r.cfg.Instability, r.world, r.rng)
	for _, id := range removed {
		r.log(fmt.Sprintf("%s succumbs to the decay and is lost.", r.world.Nodes[id].Name))
	}
}
