package game

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Choice is one selectable option presented to a decision provider.
type Choice struct {
	Label string
	Value string
}

// DecisionProvider supplies one discrete choice per call. Implementations
// must return one of the supplied values and may block for as long as they
// need; the engine has no timeout. Re-prompting on malformed input is the
// provider's own responsibility.
type DecisionProvider interface {
	Choose(prompt string, options []Choice) string
}

// Sink receives journal lines in order. Append-only, no acknowledgment.
type Sink interface {
	Append(line string)
}

// LineSink writes journal lines to an io.Writer, one per line.
type LineSink struct {
	w io.Writer
}

func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: w}
}

func (s *LineSink) Append(line string) {
	fmt.Fprintln(s.w, line)
}

// AutoPilot is the built-in heuristic decision provider. It reads the run it
// is bound to directly, which is safe because the whole simulation is
// single-threaded and strictly turn-sequenced.
type AutoPilot struct {
	run *Run
}

func (a *AutoPilot) Choose(prompt string, options []Choice) string {
	if len(options) == 0 {
		return ""
	}
	switch {
	case isCombatActionPrompt(options):
		return string(a.pickCombatAction())
	case strings.HasPrefix(options[0].Value, "consumable:"):
		return a.pickConsumable(options)
	case strings.HasPrefix(options[0].Value, "event:"):
		return a.pickEventOption(options)
	case strings.HasPrefix(options[0].Value, "exit:"):
		return a.pickExit(options)
	case strings.HasPrefix(options[0].Value, "talent:"):
		return a.pickTalent(options)
	case options[0].Value == "yes" || options[0].Value == "no":
		return a.answerConsumableOffer()
	default:
		return options[0].Value
	}
}

func isCombatActionPrompt(options []Choice) bool {
	for _, opt := range options {
		switch CombatAction(opt.Value) {
		case ActionAttack, ActionGuard, ActionRecover, ActionUse:
		default:
			return false
		}
	}
	return true
}

func (a *AutoPilot) pickCombatAction() CombatAction {
	player := a.run.player
	if a.shouldUseConsumable() {
		return ActionUse
	}
	if player.Stats.Health <= 4 {
		return ActionRecover
	}
	if player.Stats.Guard < 2 && player.Stats.Stamina < 3 {
		return ActionRecover
	}
	return ActionAttack
}

func (a *AutoPilot) shouldUseConsumable() bool {
	player := a.run.player
	foe := a.run.pendingFoe
	available := a.run.availableConsumables(true)
	if len(available) == 0 {
		return false
	}
	if player.Stats.Health <= 4 {
		return hasConsumable(available, ConsumableHealingDraught)
	}
	if player.Stats.Stamina <= 2 {
		return hasConsumable(available, ConsumableStaminaTonic)
	}
	if foe != nil && foe.Stats.Guard >= 2 {
		return hasConsumable(available, ConsumableShockGrenade)
	}
	return false
}

func hasConsumable(consumables []*Consumable, name string) bool {
	for _, c := range consumables {
		if c.Name == name {
			return true
		}
	}
	return false
}

// pickConsumable walks a fixed priority list before falling back to the
// first available option.
func (a *AutoPilot) pickConsumable(options []Choice) string {
	player := a.run.player
	foe := a.run.pendingFoe

	var priority []string
	if player.Stats.Health <= 5 {
		priority = append(priority, ConsumableHealingDraught)
	}
	if player.Stats.Stamina <= 2 {
		priority = append(priority, ConsumableStaminaTonic)
	}
	if foe != nil && foe.Stats.Guard >= 1 {
		priority = append(priority, ConsumableShockGrenade)
	}
	if player.Stats.Skill < 6 {
		priority = append(priority, ConsumableFocusCharm)
	}

	for _, desired := range priority {
		for i, c := range a.run.pendingConsumables {
			if c.Name == desired {
				return fmt.Sprintf("consumable:%d", i)
			}
		}
	}
	for _, opt := range options {
		if opt.Value != "cancel" {
			return opt.Value
		}
	}
	return options[0].Value
}

func (a *AutoPilot) pickEventOption(options []Choice) string {
	scenario := a.run.pendingScenario
	player := a.run.player
	if scenario == nil {
		return options[0].Value
	}

	score := func(option EventOption) int {
		base := 2
		switch option.Risk {
		case "safe":
			base = 3
		case "risky":
			base = 1
		}
		if player.Stats.Health <= 4 && option.Risk == "risky" {
			base--
		}
		if player.Stats.Stamina <= 2 && option.Risk == "trade" {
			base--
		}
		if player.HasStatus(StatusInspired) && option.Risk == "risky" {
			base++
		}
		return base
	}

	bestIdx, bestScore := 0, score(scenario.Options[0])
	for i := 1; i < len(scenario.Options); i++ {
		if s := score(scenario.Options[i]); s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	selected := scenario.Options[bestIdx]
	a.run.log(fmt.Sprintf("Auto-pick event response: %s (%s).", selected.Title, selected.Risk))
	return fmt.Sprintf("event:%d", bestIdx)
}

// pickExit heads for the cheapest, least dangerous destination.
func (a *AutoPilot) pickExit(options []Choice) string {
	frontier := a.run.pendingFrontier
	if frontier == nil {
		return options[0].Value
	}
	bestIdx, bestCost := -1, 0
	for i, opt := range frontier.Options {
		if opt.Placeholder {
			continue
		}
		cost := opt.Destination.Danger + opt.Exit.Cost
		if bestIdx < 0 || cost < bestCost {
			bestIdx, bestCost = i, cost
		}
	}
	if bestIdx < 0 {
		return options[0].Value
	}
	return fmt.Sprintf("exit:%d", bestIdx)
}

// pickTalent grows the player's weakest stat.
func (a *AutoPilot) pickTalent(options []Choice) string {
	stats := a.run.player.Stats
	byStat := map[string]int{
		"health":    stats.Health,
		"stamina":   stats.Stamina,
		"skill":     stats.Skill,
		"awareness": stats.Awareness,
	}

	best := ""
	for _, opt := range options {
		key := strings.TrimPrefix(opt.Value, "talent:")
		if best == "" || byStat[key] < byStat[best] {
			best = key
		}
	}
	return "talent:" + best
}

func (a *AutoPilot) answerConsumableOffer() string {
	player := a.run.player
	if player.Stats.Health <= 6 || player.Stats.Stamina <= 2 {
		return "yes"
	}
	return "no"
}

func parseIndexedValue(value, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(value, prefix)
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
