package game

import (
	"fmt"
	"math/rand/v2"
)

type CombatAction string

const (
	ActionAttack  CombatAction = "attack"
	ActionGuard   CombatAction = "guard"
	ActionRecover CombatAction = "recover"
	ActionUse     CombatAction = "use"
)

type CombatState int

const (
	CombatRoundStart CombatState = iota
	CombatPlayerDeciding
	CombatPlayerResolved
	CombatEnemyActing
	CombatRoundEnd
	CombatVictory
	CombatDefeat
)

func (s CombatState) String() string {
	switch s {
	case CombatRoundStart:
		return "RoundStart"
	case CombatPlayerDeciding:
		return "PlayerDeciding"
	case CombatPlayerResolved:
		return "PlayerResolved"
	case CombatEnemyActing:
		return "EnemyActing"
	case CombatRoundEnd:
		return "RoundEnd"
	case CombatVictory:
		return "Victory"
	case CombatDefeat:
		return "Defeat"
	default:
		return "Unknown"
	}
}

// Encounter drives one combat between the player and a spawned enemy. The
// orchestrator wires in its own journal and decision hooks; the encounter
// owns nothing beyond the round loop.
type Encounter struct {
	Player   *Combatant
	Foe      *Combatant
	Template *EnemyTemplate
	Location *Location

	rng *rand.Rand
	log func(string)
	// chooseAction is invoked after the enemy's intent is revealed, so the
	// player always reacts to a telegraphed choice.
	chooseAction  func(intent EnemyIntent) CombatAction
	useConsumable func() bool

	state  CombatState
	rounds int
}

// Rounds reports how many rounds the encounter ran.
func (e *Encounter) Rounds() int {
	return e.rounds
}

// Run executes the round loop until one side falls, returning CombatVictory
// or CombatDefeat. Defeat is a normal outcome, never an error.
func (e *Encounter) Run() CombatState {
	e.state = CombatRoundStart
	var intent EnemyIntent
	var action CombatAction

	for {
		switch e.state {
		case CombatRoundStart:
			e.rounds++
			e.log(fmt.Sprintf("-- Combat Round %d :: %s --", e.rounds, e.Location.Name))
			e.log(DescribeCombatants(e.Player, e.Foe))
			intent = e.Template.Decide(e.Foe, e.Player, e.rng)
			e.log(fmt.Sprintf("%s signals intent: %s [%s].", e.Foe.Name, intent.Telegraph, intent.Action))
			e.state = CombatPlayerDeciding

		case CombatPlayerDeciding:
			action = e.chooseAction(intent)
			e.state = CombatPlayerResolved

		case CombatPlayerResolved:
			e.resolvePlayerAction(action)
			if !e.Foe.Stats.Alive() {
				e.state = CombatVictory
				break
			}
			e.state = CombatEnemyActing

		case CombatEnemyActing:
			e.resolveEnemyAction(intent.Action)
			e.state = CombatRoundEnd

		case CombatRoundEnd:
			if !e.Player.Stats.Alive() {
				e.state = CombatDefeat
				break
			}
			e.state = CombatRoundStart

		case CombatVictory, CombatDefeat:
			return e.state
		}
	}
}

func (e *Encounter) resolvePlayerAction(action CombatAction) {
	switch action {
	case ActionAttack:
		if e.Player.Stats.Stamina <= 0 {
			e.log(fmt.Sprintf("%s is too exhausted to attack and steadies instead.", e.Player.Name))
			e.log(e.Player.Recover())
			return
		}
		e.Player.Stats.Stamina--
		e.log(e.Player.Attack(e.Foe, e.rng))
	case ActionGuard:
		e.log(e.Player.Guard())
	case ActionUse:
		if !e.useConsumable() {
			e.log("No consumable used; you steady yourself instead.")
		}
	default:
		e.log(e.Player.Recover())
	}
}

// resolveEnemyAction executes the intent the enemy declared at the start of
// the round; nothing is re-decided here.
func (e *Encounter) resolveEnemyAction(action CombatAction) {
	switch action {
	case ActionGuard:
		e.log(e.Foe.Guard())
		return
	case ActionRecover:
		e.log(e.Foe.Recover())
		return
	}

	if e.Foe.Stats.Stamina <= 0 {
		e.Foe.Stats.Stamina++
		e.log(fmt.Sprintf("%s falters, forced to regain stamina instead.", e.Foe.Name))
		return
	}
	e.Foe.Stats.Stamina--
	e.log(e.Foe.Attack(e.Player, e.rng))
	if effect := e.Template.OnHit(e.Foe, e.Player, e.rng); effect != "" {
		e.log(effect)
	}
}
