package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nazukimio/pyokemon-tcg/internal/game"
	"github.com/nazukimio/pyokemon-tcg/internal/log"
	pnet "github.com/nazukimio/pyokemon-tcg/internal/net"
)

// DecisionType identifies what kind of decision the battle is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionGameOver     DecisionType = "game_over"
)

// agentSeat is the seat the MCP agent plays; the built-in AI takes the other one.
const agentSeat = 0

// PendingDecision represents a decision the battle is waiting for.
type PendingDecision struct {
	Type    DecisionType
	State   *pnet.StateView
	Actions []pnet.ActionView
}

// ActionResponse is sent from the tools to the agent's controller.
type ActionResponse struct {
	Index   int
	Concede bool
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string            `json:"session_id"`
	Events    []pnet.EventView  `json:"events"`
	State     *pnet.StateView   `json:"state,omitempty"`
	Actions   []pnet.ActionView `json:"actions,omitempty"`
	GameOver  bool              `json:"game_over"`
	Winner    string            `json:"winner,omitempty"` // "you", "ai" or empty
	Result    string            `json:"result,omitempty"`
}

// SessionOptions selects decks and the opponent for a new session.
type SessionOptions struct {
	DecksFile  string
	Catalog    *game.Catalog
	Deck       int // agent's deck (1-indexed)
	AIDeck     int // AI's deck (1-indexed)
	Difficulty game.Difficulty
	Seed       int64
	MaxTurns   int
}

// Session holds the state of a single MCP battle against the built-in AI.
type Session struct {
	ID    string
	match *game.Match
	agent *AgentController

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision
	cancel         context.CancelFunc

	mu       sync.Mutex
	events   []pnet.EventView
	gameOver bool
	winner   int
	result   string
}

// NewSession loads both decks and starts the battle in the background.
func NewSession(opts SessionOptions) (*Session, error) {
	cat := opts.Catalog
	if cat == nil {
		cat = game.NewCatalog()
	}
	agentDeck, err := game.DeckByNumber(opts.DecksFile, opts.Deck, cat)
	if err != nil {
		return nil, fmt.Errorf("load agent deck: %w", err)
	}
	aiDeck, err := game.DeckByNumber(opts.DecksFile, opts.AIDeck, cat)
	if err != nil {
		return nil, fmt.Errorf("load AI deck: %w", err)
	}

	sess := &Session{
		ID:        uuid.NewString(),
		pendingCh: make(chan *PendingDecision, 1),
		winner:    -1,
	}
	sess.agent = NewAgentController(agentSeat, sess)
	sess.match = game.NewMatch(game.MatchConfig{
		P1:       game.PlayerSpec{ID: "agent", Name: "Agent", Deck: agentDeck},
		P2:       game.PlayerSpec{ID: "ai", Name: "AI (" + opts.Difficulty.String() + ")", Deck: aiDeck},
		Engine:   game.Config{Seed: opts.Seed, Logger: log.NewMemoryLogger()},
		MaxTurns: opts.MaxTurns,
	}, sess.agent, game.NewAIController(1-agentSeat, opts.Difficulty))

	ctx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel

	go func() {
		winner, err := sess.match.Run(ctx)
		result := sess.match.Engine.Result
		if err != nil {
			result = fmt.Sprintf("error: %v", err)
		}

		sess.mu.Lock()
		sess.gameOver = true
		sess.winner = winner
		sess.result = result
		sess.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		sess.pendingCh <- &PendingDecision{
			Type:  DecisionGameOver,
			State: pnet.BuildStateView(sess.match.Engine, agentSeat),
		}
	}()

	return sess, nil
}

// Close stops the battle goroutine.
func (s *Session) Close() {
	s.cancel()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *Session) appendEvent(ev *pnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *Session) drainEvents() []pnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []pnet.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the battle, then builds a
// ToolResponse with the accumulated events and the pending decision.
func (s *Session) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending

	resp := &ToolResponse{
		SessionID: s.ID,
		Events:    s.drainEvents(),
		State:     pending.State,
	}
	if pending.Type == DecisionGameOver {
		s.fillResult(resp)
		return resp, nil
	}
	resp.Actions = pending.Actions
	return resp, nil
}

// snapshot reports the current state without waiting.
func (s *Session) snapshot() *ToolResponse {
	resp := &ToolResponse{
		SessionID: s.ID,
		Events:    s.drainEvents(),
	}
	if s.currentPending != nil {
		resp.State = s.currentPending.State
		resp.Actions = s.currentPending.Actions
	}
	s.fillResult(resp)
	return resp
}

func (s *Session) fillResult(resp *ToolResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gameOver {
		return
	}
	resp.GameOver = true
	resp.Actions = nil
	resp.Result = s.result
	switch s.winner {
	case agentSeat:
		resp.Winner = "you"
	case 1 - agentSeat:
		resp.Winner = "ai"
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
