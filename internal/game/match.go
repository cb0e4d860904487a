package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/nazukimio/pyokemon-tcg/internal/log"
)

// PlayerController is the interface that human (network, WebSocket) and AI players implement.
type PlayerController interface {
	// ChooseAction presents the legal actions and waits for the player to pick one.
	ChooseAction(ctx context.Context, e *Engine, actions []Action) (Action, error)

	// Notify sends a battle event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// MatchConfig holds configuration for running a battle between two controllers.
type MatchConfig struct {
	P1, P2   PlayerSpec
	Engine   Config
	MaxTurns int // stop with no winner after this many turns (0 = 200)
}

const (
	defaultMaxTurns   = 200
	maxActionsPerTurn = 100
)

// Match drives an Engine by asking each seat's controller for actions.
type Match struct {
	Engine      *Engine
	Controllers [2]PlayerController
	Logger      log.EventLogger
	ctx         context.Context
	maxTurns    int
}

// NewMatch creates a match from the given config and player controllers.
func NewMatch(cfg MatchConfig, p0, p1 PlayerController) *Match {
	logger := cfg.Engine.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = defaultMaxTurns
	}

	m := &Match{
		Controllers: [2]PlayerController{p0, p1},
		Logger:      logger,
		ctx:         context.Background(),
		maxTurns:    maxTurns,
	}
	ecfg := cfg.Engine
	ecfg.Logger = &notifyingLogger{EventLogger: logger, m: m}
	m.Engine = NewEngine(cfg.P1, cfg.P2, ecfg)
	return m
}

// Run executes the whole battle. Returns the winning seat (0, 1, or -1 for no winner).
func (m *Match) Run(ctx context.Context) (int, error) {
	m.ctx = ctx
	e := m.Engine

	if err := e.Setup(); err != nil {
		return -1, err
	}
	if err := e.StartTurn(); err != nil {
		return -1, err
	}

	for !e.Finished() {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		if e.Turn > m.maxTurns {
			e.StopNoContest(fmt.Sprintf("turn limit of %d reached", m.maxTurns))
			break
		}
		if err := m.runTurn(); err != nil {
			return e.WinnerSeat(), err
		}
	}
	return e.WinnerSeat(), nil
}

// runTurn asks the current controller for actions until the turn passes or the battle ends.
func (m *Match) runTurn() error {
	e := m.Engine
	turn := e.Turn
	seat := e.CurrentSeat()

	for n := 0; !e.Finished() && e.Turn == turn; n++ {
		if n >= maxActionsPerTurn {
			e.diag.Info("action limit reached, ending turn", "seat", seat, "turn", turn)
			return e.EndTurn()
		}
		actions := e.LegalActions()
		if len(actions) == 0 {
			return fmt.Errorf("no legal actions for seat %d in %s", seat, e.Phase)
		}
		chosen, err := m.Controllers[seat].ChooseAction(m.ctx, e, actions)
		if err != nil {
			return err
		}
		chosen.Seat = seat
		if err := e.Apply(chosen); err != nil {
			if IsRuleViolation(err) {
				// already logged as a no-op; ask again
				continue
			}
			return err
		}
	}
	return nil
}

// notify sends an event to both controllers.
func (m *Match) notify(event log.GameEvent) {
	for i := range m.Controllers {
		if err := m.Controllers[i].Notify(m.ctx, event); err != nil && !errors.Is(err, context.Canceled) {
			m.Engine.diag.V(1).Info("notify failed", "seat", i, "error", err.Error())
		}
	}
}

// notifyingLogger forwards every stored event to the match's controllers.
type notifyingLogger struct {
	log.EventLogger
	m *Match
}

func (l *notifyingLogger) Log(event log.GameEvent) {
	l.EventLogger.Log(event)
	if last, ok := l.EventLogger.(interface{ LastEvent() log.GameEvent }); ok {
		event = last.LastEvent()
	}
	l.m.notify(event)
}
