package game

import (
	"fmt"
)

// ActionType enumerates the kinds of moves a player can make during the main phase.
type ActionType int

const (
	ActionPlayBasic ActionType = iota
	ActionEvolve
	ActionAttachEnergy
	ActionPlayTrainer
	ActionRetreat
	ActionAttack
	ActionEndTurn
	ActionConcede // never listed by LegalActions; any seat may send it on its turn
)

func (a ActionType) String() string {
	switch a {
	case ActionPlayBasic:
		return "play_basic"
	case ActionEvolve:
		return "evolve"
	case ActionAttachEnergy:
		return "attach_energy"
	case ActionPlayTrainer:
		return "play_trainer"
	case ActionRetreat:
		return "retreat"
	case ActionAttack:
		return "attack"
	case ActionEndTurn:
		return "end_turn"
	case ActionConcede:
		return "concede"
	default:
		return "unknown"
	}
}

func (a ActionType) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ActionType) UnmarshalText(b []byte) error {
	for t := ActionPlayBasic; t <= ActionConcede; t++ {
		if t.String() == string(b) {
			*a = t
			return nil
		}
	}
	return fmt.Errorf("unknown action type %q", b)
}

// Action is one legal move, ready to be passed back to Apply.
type Action struct {
	Type        ActionType `json:"type"`
	Seat        int        `json:"seat"`
	HandIndex   int        `json:"hand_index,omitempty"`
	Target      Target     `json:"target"`
	AttackIndex int        `json:"attack_index,omitempty"`
	BenchIndex  int        `json:"bench_index,omitempty"`

	Card       *Card  `json:"-"` // card played from hand, or the attacking/retreating Pokémon
	TargetName string `json:"target_name,omitempty"`
	Desc       string `json:"desc"`
}

func (a Action) String() string { return a.Desc }

// LegalActions lists every move the current player can make right now. Empty outside the
// main phase. Duplicate cards in hand produce one action per distinct card and target.
func (e *Engine) LegalActions() []Action {
	if e.Finished() || e.State != BattleInProgress || e.Phase != PhaseMain {
		return nil
	}
	p, opp := e.Current(), e.Opponent()
	seat := p.Seat
	inPlay := p.InPlay()

	var actions []Action
	seen := make(map[string]bool)
	add := func(a Action, key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		a.Seat = seat
		actions = append(actions, a)
	}

	for i, c := range p.Hand {
		switch v := c.Variant.(type) {
		case *Pokemon:
			if v.Stage == StageBasic {
				if p.Active != nil && len(p.Bench) >= MaxBenchSize {
					continue
				}
				where := "bench"
				if p.Active == nil {
					where = "active spot"
				}
				add(Action{Type: ActionPlayBasic, HandIndex: i, Card: c,
					Desc: fmt.Sprintf("Play %s to the %s", c.Name, where)}, "basic/"+c.ID)
				continue
			}
			for _, ip := range inPlay {
				if ip.Name() != v.EvolvesFrom {
					continue
				}
				t, _ := p.TargetOf(ip)
				add(Action{Type: ActionEvolve, HandIndex: i, Target: t, Card: c, TargetName: ip.Name(),
					Desc: fmt.Sprintf("Evolve %s (%s) into %s", ip.Name(), t, c.Name)},
					fmt.Sprintf("evolve/%s/%s", c.ID, t))
			}
		case *Energy:
			if p.EnergyPlayedThisTurn {
				continue
			}
			for _, ip := range inPlay {
				t, _ := p.TargetOf(ip)
				add(Action{Type: ActionAttachEnergy, HandIndex: i, Target: t, Card: c, TargetName: ip.Name(),
					Desc: fmt.Sprintf("Attach %s to %s (%s)", c.Name, ip.Name(), t)},
					fmt.Sprintf("energy/%s/%s", c.ID, t))
			}
		case *Trainer:
			if v.TrainerKind == TrainerSupporter && p.SupporterPlayedThisTurn {
				continue
			}
			if !v.NeedsTarget() {
				add(Action{Type: ActionPlayTrainer, HandIndex: i, Card: c,
					Desc: fmt.Sprintf("Play %s", c.Name)}, "trainer/"+c.ID)
				continue
			}
			for _, ip := range inPlay {
				if v.TrainerKind != TrainerTool && ip.DamageCounter == 0 {
					continue
				}
				t, _ := p.TargetOf(ip)
				add(Action{Type: ActionPlayTrainer, HandIndex: i, Target: t, Card: c, TargetName: ip.Name(),
					Desc: fmt.Sprintf("Play %s on %s (%s)", c.Name, ip.Name(), t)},
					fmt.Sprintf("trainer/%s/%s", c.ID, t))
			}
		}
	}

	if active := p.Active; active != nil {
		if !p.HasAttacked && opp.Active != nil {
			for i, atk := range active.Pokemon().Attacks {
				if !active.CanAttack(i) {
					continue
				}
				add(Action{Type: ActionAttack, AttackIndex: i, Target: ActiveTarget(), Card: active.Card,
					TargetName: opp.Active.Name(),
					Desc:       fmt.Sprintf("Attack with %s: %s (%d) on %s", active.Name(), atk.Name, atk.Damage, opp.Active.Name())},
					fmt.Sprintf("attack/%d", i))
			}
		}
		if active.CanRetreat() {
			for i, ip := range p.Bench {
				add(Action{Type: ActionRetreat, BenchIndex: i, Card: active.Card, TargetName: ip.Name(),
					Desc: fmt.Sprintf("Retreat %s for %s", active.Name(), ip.Name())},
					fmt.Sprintf("retreat/%d", i))
			}
		}
	}

	add(Action{Type: ActionEndTurn, Desc: "End turn"}, "end")
	return actions
}

// Apply performs an action on behalf of its seat.
func (e *Engine) Apply(a Action) error {
	if e.Finished() {
		return e.reject(a.Type.String(), violation(ErrBattleFinished, ""))
	}
	if a.Seat != e.current {
		return e.reject(a.Type.String(), violation(ErrNotYourTurn, "seat %d acted during %s's turn", a.Seat, e.Current()))
	}
	switch a.Type {
	case ActionPlayBasic, ActionEvolve, ActionAttachEnergy, ActionPlayTrainer:
		return e.PlayCard(a.HandIndex, a.Target)
	case ActionAttack:
		return e.AttackTarget(a.AttackIndex, a.Target)
	case ActionRetreat:
		return e.Retreat(a.BenchIndex)
	case ActionEndTurn:
		return e.EndTurn()
	case ActionConcede:
		return e.Concede(a.Seat)
	default:
		return fmt.Errorf("unknown action type %d", a.Type)
	}
}
