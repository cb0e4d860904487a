package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/nazukimio/pyokemon-tcg/internal/game"
	"github.com/nazukimio/pyokemon-tcg/internal/log"
)

// NetworkController implements game.PlayerController over a JSON stream (usually a TCP connection).
type NetworkController struct {
	enc  *json.Encoder
	dec  *json.Decoder
	seat int // which seat this controller plays (0 or 1)
	mu   sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn io.ReadWriter, seat int) *NetworkController {
	return &NetworkController{
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
		seat: seat,
	}
}

// BuildStateView creates a StateView from the perspective of the given seat.
func BuildStateView(e *game.Engine, seat int) *StateView {
	snap := e.SnapshotFor(seat)
	me, opp := e.Players[seat], e.Players[1-seat]
	return &StateView{
		You:        playerView(snap.PlayerSnapshots[me.ID]),
		Opponent:   playerView(snap.PlayerSnapshots[opp.ID]),
		Turn:       snap.TurnNumber,
		Phase:      snap.CurrentPhase.String(),
		IsYourTurn: e.CurrentSeat() == seat,
		Stadium:    snap.Stadium,
	}
}

func playerView(ps game.PlayerSnapshot) PlayerView {
	return PlayerView{
		Name:         ps.Name,
		HandCount:    ps.HandCount,
		Hand:         ps.Hand,
		Active:       ps.ActivePokemon,
		Bench:        ps.Bench,
		DeckCount:    ps.DeckCount,
		PrizeCount:   ps.PrizeCount,
		DiscardCount: ps.DiscardCount,
	}
}

// ActionViews numbers the legal actions for a client menu.
func ActionViews(actions []game.Action) []ActionView {
	views := make([]ActionView, len(actions))
	for i, a := range actions {
		views[i] = ActionView{Index: i, Type: a.Type, Desc: a.String()}
	}
	return views
}

// EventViewOf converts a battle event for the wire.
func EventViewOf(event log.GameEvent) *EventView {
	return &EventView{
		Seq:     event.Seq,
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseAction implements game.PlayerController. An out-of-range reply is answered with an
// error message and the choice is asked again. A "concede" reply ends the battle.
func (nc *NetworkController) ChooseAction(ctx context.Context, e *game.Engine, actions []game.Action) (game.Action, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:    MsgChooseAction,
		Actions: ActionViews(actions),
		State:   BuildStateView(e, nc.seat),
	}
	for {
		if err := ctx.Err(); err != nil {
			return game.Action{}, err
		}
		if err := nc.send(msg); err != nil {
			return game.Action{}, fmt.Errorf("send choose_action: %w", err)
		}
		resp, err := nc.recv()
		if err != nil {
			return game.Action{}, fmt.Errorf("recv action: %w", err)
		}

		switch resp.Type {
		case MsgConcede:
			return game.Action{Type: game.ActionConcede, Seat: nc.seat, Desc: "Concede"}, nil
		case MsgAction:
			if resp.Index >= 0 && resp.Index < len(actions) {
				return actions[resp.Index], nil
			}
			err = nc.send(ServerMessage{Type: MsgError,
				Message: fmt.Sprintf("action %d out of range (0-%d)", resp.Index, len(actions)-1)})
		default:
			err = nc.send(ServerMessage{Type: MsgError, Message: fmt.Sprintf("unexpected message %q", resp.Type)})
		}
		if err != nil {
			return game.Action{}, fmt.Errorf("send error: %w", err)
		}
	}
}

// SendGameOver sends a game_over message to the client.
func (nc *NetworkController) SendGameOver(winner int, result string) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgGameOver, Winner: winner, Result: result})
}

// Notify implements game.PlayerController.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: MsgNotify, Event: EventViewOf(event)})
}
