package web

import (
	"context"
	"fmt"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/nazukimio/pyokemon-tcg/internal/game"
	"github.com/nazukimio/pyokemon-tcg/internal/log"
	pnet "github.com/nazukimio/pyokemon-tcg/internal/net"
)

// WSController implements game.PlayerController over a websocket, one JSON message per frame.
// It speaks the same messages as the TCP protocol.
type WSController struct {
	conn *websocket.Conn
	seat int
	mu   sync.Mutex
}

// NewWSController creates a controller for the given websocket connection.
func NewWSController(conn *websocket.Conn, seat int) *WSController {
	return &WSController{conn: conn, seat: seat}
}

// ChooseAction implements game.PlayerController.
func (c *WSController) ChooseAction(ctx context.Context, e *game.Engine, actions []game.Action) (game.Action, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := pnet.ServerMessage{
		Type:    pnet.MsgChooseAction,
		Actions: pnet.ActionViews(actions),
		State:   pnet.BuildStateView(e, c.seat),
	}
	for {
		if err := wsjson.Write(ctx, c.conn, msg); err != nil {
			return game.Action{}, fmt.Errorf("send choose_action: %w", err)
		}
		var resp pnet.ClientMessage
		if err := wsjson.Read(ctx, c.conn, &resp); err != nil {
			return game.Action{}, fmt.Errorf("recv action: %w", err)
		}

		switch {
		case resp.Type == pnet.MsgConcede:
			return game.Action{Type: game.ActionConcede, Seat: c.seat, Desc: "Concede"}, nil
		case resp.Type == pnet.MsgAction && resp.Index >= 0 && resp.Index < len(actions):
			return actions[resp.Index], nil
		}
		reply := pnet.ServerMessage{Type: pnet.MsgError,
			Message: fmt.Sprintf("expected an action between 0 and %d or concede", len(actions)-1)}
		if err := wsjson.Write(ctx, c.conn, reply); err != nil {
			return game.Action{}, fmt.Errorf("send error: %w", err)
		}
	}
}

// Notify implements game.PlayerController.
func (c *WSController) Notify(ctx context.Context, event log.GameEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return wsjson.Write(ctx, c.conn, pnet.ServerMessage{Type: pnet.MsgNotify, Event: pnet.EventViewOf(event)})
}

// SendGameOver sends the final result.
func (c *WSController) SendGameOver(ctx context.Context, winner int, result string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return wsjson.Write(ctx, c.conn, pnet.ServerMessage{Type: pnet.MsgGameOver, Winner: winner, Result: result})
}
