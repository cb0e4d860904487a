package mcp

import (
	"context"

	"github.com/nazukimio/pyokemon-tcg/internal/game"
	"github.com/nazukimio/pyokemon-tcg/internal/log"
	"github.com/nazukimio/pyokemon-tcg/internal/net"
)

// AgentController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type AgentController struct {
	seat       int
	session    *Session
	responseCh chan ActionResponse
}

// NewAgentController creates a controller for the given seat.
func NewAgentController(seat int, session *Session) *AgentController {
	return &AgentController{
		seat:       seat,
		session:    session,
		responseCh: make(chan ActionResponse),
	}
}

// ChooseAction implements game.PlayerController.
func (c *AgentController) ChooseAction(ctx context.Context, e *game.Engine, actions []game.Action) (game.Action, error) {
	pending := &PendingDecision{
		Type:    DecisionChooseAction,
		State:   net.BuildStateView(e, c.seat),
		Actions: net.ActionViews(actions),
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	var resp ActionResponse
	select {
	case resp = <-c.responseCh:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	if resp.Concede {
		return game.Action{Type: game.ActionConcede, Seat: c.seat, Desc: "Concede"}, nil
	}
	if resp.Index < 0 || resp.Index >= len(actions) {
		return actions[len(actions)-1], nil
	}
	return actions[resp.Index], nil
}

// Notify implements game.PlayerController.
func (c *AgentController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(net.EventViewOf(event))
	return nil
}
