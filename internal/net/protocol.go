package net

import "github.com/nazukimio/pyokemon-tcg/internal/game"

// Message types for the JSON protocol over TCP. The websocket endpoint reuses them.
const (
	MsgNotify       = "notify"
	MsgChooseAction = "choose_action"
	MsgGameOver     = "game_over"
	MsgError        = "error"

	MsgAction  = "action"
	MsgConcede = "concede"
	MsgJoin    = "join"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action"
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`

	// For "game_over"
	Winner int    `json:"winner"` // seat, -1 when nobody won
	Result string `json:"result,omitempty"`

	// For "error"
	Message string `json:"message,omitempty"`
}

// EventView is a simplified battle event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int             `json:"index"`
	Type  game.ActionType `json:"type"`
	Desc  string          `json:"desc"`
}

// StateView is the battle state from one player's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"is_your_turn"`
	Stadium    string     `json:"stadium,omitempty"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	Name         string                            `json:"name"`
	HandCount    int                               `json:"hand_count"`
	Hand         []string                          `json:"hand,omitempty"` // card names (only for "you")
	Active       *game.CardView                    `json:"active"`
	Bench        [game.MaxBenchSize]*game.CardView `json:"bench"`
	DeckCount    int                               `json:"deck_count"`
	PrizeCount   int                               `json:"prize_count"`
	DiscardCount int                               `json:"discard_count"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action"
	Index int `json:"index"`

	// For "join" (initial handshake)
	DeckNumber int    `json:"deck_number,omitempty"`
	Name       string `json:"name,omitempty"`
}
