package game

import (
	"context"
	"testing"

	"github.com/nazukimio/pyokemon-tcg/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script of actions.
// Used in tests to deterministically drive the battle.
type ScriptedController struct {
	t       *testing.T
	name    string
	actions []ScriptedAction
	pos     int
}

type ScriptedAction struct {
	// Match by ActionType: picks the first action of this type
	Type ActionType
	// Optional: match by card name (card played, or the attacking/retreating Pokémon)
	CardName string
	// Optional: match by target Pokémon name
	TargetName string
	// Optional: match by attack name
	AttackName string
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddAction(actionType ActionType, cardName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: actionType, CardName: cardName})
	return sc
}

func (sc *ScriptedController) AddTargeted(actionType ActionType, cardName, targetName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: actionType, CardName: cardName, TargetName: targetName})
	return sc
}

func (sc *ScriptedController) AddAttack(attackName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionAttack, AttackName: attackName})
	return sc
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, e *Engine, actions []Action) (Action, error) {
	if sc.pos < len(sc.actions) {
		// Peek at the next scripted action and only consume it if it matches an available action.
		// This allows scripts to span multiple turns without scripting every EndTurn.
		scripted := sc.actions[sc.pos]
		for _, a := range actions {
			if !scripted.matches(a) {
				continue
			}
			sc.pos++
			return a, nil
		}
	}
	for _, a := range actions {
		if a.Type == ActionEndTurn {
			return a, nil
		}
	}
	return actions[len(actions)-1], nil
}

func (s ScriptedAction) matches(a Action) bool {
	if a.Type != s.Type {
		return false
	}
	if s.CardName != "" && (a.Card == nil || a.Card.Name != s.CardName) {
		return false
	}
	if s.TargetName != "" && a.TargetName != s.TargetName {
		return false
	}
	if s.AttackName != "" {
		if a.Card == nil || a.Card.Pokemon() == nil || a.Card.Pokemon().Attacks[a.AttackIndex].Name != s.AttackName {
			return false
		}
	}
	return true
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// --- Test deck helpers ---

func filler() *Card { return BasicEnergy(TypeFighting) }

func cards(ids ...string) []*Card {
	out := make([]*Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, MustLookupCard(id))
	}
	return out
}

func padTo(cs []*Card, n int) []*Card {
	out := append([]*Card(nil), cs...)
	for len(out) < n {
		out = append(out, filler())
	}
	return out
}

// stackedDeck creates a deck for unshuffled battles: the first PrizeCount cards become
// prizes, the next InitialHandSize the opening hand, then draws in order. Short groups
// are padded with Fighting Energy, as is the deck up to 30 cards.
func stackedDeck(prizes, hand, draws []*Card) *Deck {
	all := append(padTo(prizes, PrizeCount), padTo(hand, InitialHandSize)...)
	all = append(all, draws...)
	return NewDeck("test", padTo(all, 30))
}

// newTestEngine sets up an unshuffled battle where P1 goes first and starts turn 1.
func newTestEngine(t *testing.T, d1, d2 *Deck) (*Engine, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	e := NewEngine(
		PlayerSpec{ID: "ash", Name: "Ash", Deck: d1},
		PlayerSpec{ID: "gary", Name: "Gary", Deck: d2},
		Config{Seed: 7, Logger: logger, NoShuffle: true, FirstPlayer: 1},
	)
	if err := e.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := e.StartTurn(); err != nil {
		t.Fatalf("StartTurn: %v", err)
	}
	return e, logger
}

// handIndex returns the hand index of the first card with the given name.
func handIndex(t *testing.T, p *Player, name string) int {
	t.Helper()
	for i, c := range p.Hand {
		if c.Name == name {
			return i
		}
	}
	t.Fatalf("%s has no %s in hand", p, name)
	return -1
}

// runMatchToCompletion runs a match and returns it with the logger for inspection.
func runMatchToCompletion(t *testing.T, cfg MatchConfig, p0, p1 PlayerController) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Engine.Logger = logger
	cfg.Engine.NoShuffle = true
	if cfg.Engine.FirstPlayer == 0 {
		cfg.Engine.FirstPlayer = 1
	}
	if cfg.Engine.Seed == 0 {
		cfg.Engine.Seed = 42
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 60
	}

	m := NewMatch(cfg, p0, p1)
	winner, err := m.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Match error: %v", err)
	}

	t.Logf("Match result: winner=%d (%s)", winner, m.Engine.Result)
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
	return m, logger
}
