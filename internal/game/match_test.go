package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nazukimio/pyokemon-tcg/internal/log"
)

// TestScriptedKnockoutWins: Pikachu powers up over two turns and knocks out P2's only Pokémon.
func TestScriptedKnockoutWins(t *testing.T) {
	p0 := NewScriptedController(t, "P1")
	p1 := NewScriptedController(t, "P2")

	// Turn 1 (P1): attach, end turn (second attach is not legal)
	p0.AddAction(ActionAttachEnergy, "Electric Energy")
	// Turn 3 (P1): attach again, Thunder Jolt (30 x2 weakness) knocks out Squirtle
	p0.AddAction(ActionAttachEnergy, "Electric Energy")
	p0.AddAttack("Thunder Jolt")

	cfg := MatchConfig{
		P1: PlayerSpec{Name: "Ash", Deck: stackedDeck(nil, cards("pikachu", "electric-energy", "electric-energy"), nil)},
		P2: PlayerSpec{Name: "Gary", Deck: stackedDeck(nil, cards("squirtle"), nil)},
	}
	m, logger := runMatchToCompletion(t, cfg, p0, p1)

	wins := logger.EventsOfType(log.EventWin)
	if len(wins) != 1 {
		t.Fatalf("expected a win event, got %d", len(wins))
	}
	if wins[0].Player != 0 || m.Engine.WinnerSeat() != 0 {
		t.Errorf("expected P1 to win, got P%d", wins[0].Player+1)
	}
	if m.Engine.Turn != 3 {
		t.Errorf("expected the battle to end on turn 3, got %d", m.Engine.Turn)
	}
	kos := logger.EventsOfType(log.EventKnockout)
	if len(kos) != 1 || kos[0].Card != "Squirtle" {
		t.Errorf("expected Squirtle knocked out, got %v", kos)
	}
}

// TestTurnLimitEndsWithoutWinner: nobody attacks, the match stops at the turn limit.
func TestTurnLimitEndsWithoutWinner(t *testing.T) {
	cfg := MatchConfig{
		P1:       PlayerSpec{Deck: stackedDeck(nil, cards("pikachu"), nil)},
		P2:       PlayerSpec{Deck: stackedDeck(nil, cards("squirtle"), nil)},
		MaxTurns: 6,
	}
	m, logger := runMatchToCompletion(t, cfg, NewScriptedController(t, "P1"), NewScriptedController(t, "P2"))

	if m.Engine.WinnerSeat() != -1 || !m.Engine.Finished() {
		t.Fatalf("expected no winner, got %d (%s)", m.Engine.WinnerSeat(), m.Engine.Result)
	}
	if n := len(logger.EventsOfType(log.EventNoContest)); n != 1 {
		t.Errorf("expected 1 no-contest event, got %d", n)
	}
	if n := len(logger.EventsOfType(log.EventNewTurn)); n != 7 {
		t.Errorf("expected 7 turns started, got %d", n)
	}
}

// TestTurnsAlternate: every new turn belongs to the other player.
func TestTurnsAlternate(t *testing.T) {
	cfg := MatchConfig{
		P1:       PlayerSpec{Deck: stackedDeck(nil, cards("pikachu"), nil)},
		P2:       PlayerSpec{Deck: stackedDeck(nil, cards("squirtle"), nil)},
		MaxTurns: 8,
	}
	_, logger := runMatchToCompletion(t, cfg, NewScriptedController(t, "P1"), NewScriptedController(t, "P2"))

	turns := logger.EventsOfType(log.EventNewTurn)
	for i, ev := range turns {
		if ev.Player != i%2 {
			t.Errorf("turn %d belongs to P%d", ev.Turn, ev.Player+1)
		}
		if ev.Turn != i+1 {
			t.Errorf("expected turn %d, got %d", i+1, ev.Turn)
		}
	}
}

type recordingController struct {
	ScriptedController
	events []log.GameEvent
}

func (r *recordingController) Notify(ctx context.Context, event log.GameEvent) error {
	r.events = append(r.events, event)
	return nil
}

func TestControllersAreNotified(t *testing.T) {
	p0 := &recordingController{ScriptedController: *NewScriptedController(t, "P1")}
	p1 := &recordingController{ScriptedController: *NewScriptedController(t, "P2")}
	cfg := MatchConfig{
		P1:       PlayerSpec{Deck: stackedDeck(nil, cards("pikachu"), nil)},
		P2:       PlayerSpec{Deck: stackedDeck(nil, cards("squirtle"), nil)},
		MaxTurns: 2,
	}
	_, logger := runMatchToCompletion(t, cfg, p0, p1)

	all := logger.Events()
	if len(p0.events) != len(all) || len(p1.events) != len(all) {
		t.Fatalf("expected both controllers to see %d events, got %d and %d", len(all), len(p0.events), len(p1.events))
	}
	for i := range all {
		if p0.events[i].Seq != all[i].Seq {
			t.Errorf("event %d: notified seq %d, logged %d", i, p0.events[i].Seq, all[i].Seq)
		}
	}
}

type failingController struct{ ScriptedController }

var errDisconnected = errors.New("disconnected")

func (f *failingController) ChooseAction(ctx context.Context, e *Engine, actions []Action) (Action, error) {
	return Action{}, errDisconnected
}

func TestControllerErrorStopsMatch(t *testing.T) {
	cfg := MatchConfig{
		P1:     PlayerSpec{Deck: stackedDeck(nil, cards("pikachu"), nil)},
		P2:     PlayerSpec{Deck: stackedDeck(nil, cards("squirtle"), nil)},
		Engine: Config{NoShuffle: true, FirstPlayer: 1},
	}
	m := NewMatch(cfg, &failingController{}, NewScriptedController(t, "P2"))
	if _, err := m.Run(context.Background()); !errors.Is(err, errDisconnected) {
		t.Fatalf("expected the controller error, got %v", err)
	}
}

func TestCanceledContextStopsMatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := MatchConfig{
		P1:     PlayerSpec{Deck: stackedDeck(nil, cards("pikachu"), nil)},
		P2:     PlayerSpec{Deck: stackedDeck(nil, cards("squirtle"), nil)},
		Engine: Config{NoShuffle: true},
	}
	m := NewMatch(cfg, NewScriptedController(t, "P1"), NewScriptedController(t, "P2"))
	if _, err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// TestAIvsAI plays the repository decks against each other with every difficulty.
func TestAIvsAI(t *testing.T) {
	df, err := ReadDeckFile("../../decks.yaml")
	if err != nil {
		t.Fatal(err)
	}
	cat := NewCatalog()
	for _, d := range []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		t.Run(d.String(), func(t *testing.T) {
			d1, err := df.Deck(1, cat)
			if err != nil {
				t.Fatal(err)
			}
			d2, err := df.Deck(2, cat)
			if err != nil {
				t.Fatal(err)
			}
			logger := log.NewMemoryLogger()
			m := NewMatch(MatchConfig{
				P1:     PlayerSpec{Name: "Red", Deck: d1},
				P2:     PlayerSpec{Name: "Blue", Deck: d2},
				Engine: Config{Seed: 2024, Logger: logger},
			}, NewAIController(0, d), NewAIController(1, d))

			winner, err := m.Run(context.Background())
			if err != nil {
				t.Fatalf("match error: %v", err)
			}
			if !m.Engine.Finished() {
				t.Fatal("expected the match to finish")
			}
			t.Logf("%s", m.Engine.Summary())
			if winner >= 0 && len(logger.EventsOfType(log.EventWin)) != 1 {
				t.Errorf("expected exactly one win event")
			}
			if n := len(logger.EventsOfType(log.EventRuleViolation)); n != 0 {
				t.Errorf("AI made %d illegal moves", n)
			}
		})
	}
}

type concedingController struct{ ScriptedController }

func (c *concedingController) ChooseAction(ctx context.Context, e *Engine, actions []Action) (Action, error) {
	return Action{Type: ActionConcede}, nil
}

func TestConcedeAction(t *testing.T) {
	cfg := MatchConfig{
		P1: PlayerSpec{Deck: stackedDeck(nil, cards("pikachu"), nil)},
		P2: PlayerSpec{Deck: stackedDeck(nil, cards("squirtle"), nil)},
	}
	m, logger := runMatchToCompletion(t, cfg, NewScriptedController(t, "P1"), &concedingController{})

	if m.Engine.WinnerSeat() != 0 || m.Engine.Turn != 2 {
		t.Fatalf("expected P1 to win on turn 2, got seat %d on turn %d", m.Engine.WinnerSeat(), m.Engine.Turn)
	}
	if wins := logger.EventsOfType(log.EventWin); len(wins) != 1 || !strings.Contains(wins[0].Details, "concede") {
		t.Errorf("expected a concede win, got %v", wins)
	}
}
