package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/nazukimio/pyokemon-tcg/internal/log"
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyNormal
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty accepts "easy", "normal" or "hard" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "normal", "":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q", s)
	}
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	parsed, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ThinkingTime is the pause a UI shows before the AI moves.
func (d Difficulty) ThinkingTime() time.Duration {
	switch d {
	case DifficultyEasy:
		return 500 * time.Millisecond
	case DifficultyHard:
		return 1500 * time.Millisecond
	default:
		return time.Second
	}
}

// AI is a simple rule-based opponent.
type AI struct {
	Difficulty Difficulty
}

func NewAI(d Difficulty) *AI {
	return &AI{Difficulty: d}
}

// Plan returns the AI's intended moves for seat from the current legal actions, in priority
// order: one energy attachment, one draw trainer, one basic Pokémon, then an attack. It is
// empty when it is not seat's main phase.
func (ai *AI) Plan(e *Engine, seat int) []Action {
	if e.CurrentSeat() != seat || e.Phase != PhaseMain || e.Finished() {
		return nil
	}
	legal := e.LegalActions()
	var plan []Action
	if a, ok := ai.pickEnergy(e, legal); ok {
		plan = append(plan, a)
	}
	if a, ok := lo.Find(legal, isDrawTrainer); ok {
		plan = append(plan, a)
	}
	if a, ok := lo.Find(legal, func(a Action) bool { return a.Type == ActionPlayBasic }); ok {
		plan = append(plan, a)
	}
	if a, ok := ai.pickAttack(e, legal); ok {
		plan = append(plan, a)
	}
	return plan
}

func isDrawTrainer(a Action) bool {
	if a.Type != ActionPlayTrainer {
		return false
	}
	t := a.Card.Trainer()
	return t != nil && lo.ContainsBy(t.Effects, func(tag string) bool {
		_, ok := tagAmount(tag, "draw")
		return ok
	})
}

// pickEnergy attaches to the active Pokémon, else the first benched one. On hard, energy
// goes to the bench Pokémon best typed against the opponent once the active can pay for
// all of its attacks.
func (ai *AI) pickEnergy(e *Engine, legal []Action) (Action, bool) {
	energy := lo.Filter(legal, func(a Action, _ int) bool { return a.Type == ActionAttachEnergy })
	if len(energy) == 0 {
		return Action{}, false
	}
	p, opp := e.Current(), e.Opponent()
	if ai.Difficulty == DifficultyHard && p.Active != nil && opp.Active != nil && len(p.Bench) > 0 && fullyPowered(p.Active) {
		best := lo.MaxBy(p.Bench, func(a, b *InPlayCard) bool {
			return TypeEffectiveness(a.Pokemon().Type, opp.Active.Pokemon().Type) >
				TypeEffectiveness(b.Pokemon().Type, opp.Active.Pokemon().Type)
		})
		t, _ := p.TargetOf(best)
		if a, ok := lo.Find(energy, func(a Action) bool { return a.Target == t }); ok {
			return a, true
		}
	}
	for _, t := range []Target{ActiveTarget(), BenchTarget(0)} {
		if a, ok := lo.Find(energy, func(a Action) bool { return a.Target == t }); ok {
			return a, true
		}
	}
	return Action{}, false
}

func fullyPowered(ip *InPlayCard) bool {
	return lo.EveryBy(ip.Pokemon().Attacks, func(a Attack) bool { return ip.CostSatisfied(a.Cost) })
}

// pickAttack chooses among the affordable attacks according to difficulty.
func (ai *AI) pickAttack(e *Engine, legal []Action) (Action, bool) {
	attacks := lo.Filter(legal, func(a Action, _ int) bool { return a.Type == ActionAttack })
	if len(attacks) == 0 {
		return Action{}, false
	}
	attacker := e.Current().Active
	printed := func(a Action) Attack { return attacker.Pokemon().Attacks[a.AttackIndex] }

	switch ai.Difficulty {
	case DifficultyEasy:
		return attacks[0], true
	case DifficultyNormal:
		return lo.MaxBy(attacks, func(a, b Action) bool { return printed(a).Damage > printed(b).Damage }), true
	default:
		defender := e.Opponent().Active
		expected := func(a Action) int {
			base := printed(a).Damage
			if base > 0 {
				base += damageBonus(attacker)
			}
			return defender.DamageFrom(base, attacker.Pokemon().Type)
		}
		return lo.MaxBy(attacks, func(a, b Action) bool {
			da, db := expected(a), expected(b)
			koA, koB := da >= defender.CurrentHP, db >= defender.CurrentHP
			if koA != koB {
				return koA
			}
			if da != db {
				return da > db
			}
			return len(printed(a).Cost) < len(printed(b).Cost)
		}), true
	}
}

// AIController adapts an AI to PlayerController. It plays at most one draw trainer and one
// basic Pokémon per turn, attacks when it can and otherwise ends the turn.
type AIController struct {
	AI    *AI
	Seat  int
	Think bool // wait ThinkingTime before each move

	turn          int
	playedTrainer bool
	playedBasic   bool
}

func NewAIController(seat int, d Difficulty) *AIController {
	return &AIController{AI: NewAI(d), Seat: seat}
}

func (c *AIController) ChooseAction(ctx context.Context, e *Engine, actions []Action) (Action, error) {
	if c.Think {
		select {
		case <-ctx.Done():
			return Action{}, ctx.Err()
		case <-time.After(c.AI.Difficulty.ThinkingTime()):
		}
	}
	if e.Turn != c.turn {
		c.turn = e.Turn
		c.playedTrainer = false
		c.playedBasic = false
	}

	for _, a := range c.AI.Plan(e, c.Seat) {
		switch a.Type {
		case ActionPlayTrainer:
			if c.playedTrainer {
				continue
			}
			c.playedTrainer = true
		case ActionPlayBasic:
			if c.playedBasic {
				continue
			}
			c.playedBasic = true
		}
		return a, nil
	}

	if a, ok := lo.Find(actions, func(a Action) bool { return a.Type == ActionEndTurn }); ok {
		return a, nil
	}
	return actions[len(actions)-1], nil
}

func (c *AIController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
