package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/nazukimio/pyokemon-tcg/internal/game"
)

// Client connects to a battle server and provides a terminal REPL.
type Client struct {
	conn io.ReadWriter
	in   io.Reader
	out  io.Writer
}

// NewClient wraps an established connection. in and out default to the terminal.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Client{conn: conn, in: in, out: out}
}

// Connect connects to a server, sends the deck choice, and runs the REPL.
func Connect(ctx context.Context, addr string, deckNumber int, name string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	c := NewClient(conn, nil, nil)
	if err := c.Join(deckNumber, name); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Connected! Waiting for the battle to start...")
	return c.RunREPL(ctx)
}

// Join sends the handshake with the chosen deck.
func (c *Client) Join(deckNumber int, name string) error {
	if err := json.NewEncoder(c.conn).Encode(ClientMessage{Type: MsgJoin, DeckNumber: deckNumber, Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return nil
}

// RunREPL reads server messages and handles them interactively until game_over.
// Typing "c" at the action prompt concedes.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgChooseAction:
			c.renderState(msg.State)
			c.renderActions(msg.Actions)
			reply, err := c.readChoice(reader, len(msg.Actions))
			if err != nil {
				return err
			}
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case MsgError:
			fmt.Fprintf(c.out, "Server: %s\n", msg.Message)

		case MsgGameOver:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          BATTLE OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	if phase == "" {
		phase = "          "
	}
	for len(phase) < 14 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(w, "║  %s  Hand: %d  Deck: %d  Prizes: %d  Discard: %d\n",
		strings.ToUpper(opp.Name), opp.HandCount, opp.DeckCount, opp.PrizeCount, opp.DiscardCount)
	fmt.Fprintf(w, "║  Bench:  %s\n", formatBench(opp.Bench))
	fmt.Fprintf(w, "║  Active: %s\n", formatPokemon(opp.Active))

	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	if sv.Stadium != "" {
		fmt.Fprintf(w, "║  Stadium: %s\n", sv.Stadium)
	}

	you := sv.You
	fmt.Fprintf(w, "║  Active: %s\n", formatPokemon(you.Active))
	fmt.Fprintf(w, "║  Bench:  %s\n", formatBench(you.Bench))
	fmt.Fprintf(w, "║  YOU  Hand: %d  Deck: %d  Prizes: %d  Discard: %d\n",
		you.HandCount, you.DeckCount, you.PrizeCount, you.DiscardCount)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(w, turnInfo)

	if len(you.Hand) > 0 {
		fmt.Fprintf(w, "\nHand: ")
		for i, name := range you.Hand {
			fmt.Fprintf(w, "[%d] %s  ", i+1, name)
		}
		fmt.Fprintln(w)
	}
}

func formatPokemon(cv *game.CardView) string {
	if cv == nil {
		return "[ ]"
	}
	s := fmt.Sprintf("[%s %d/%d HP", cv.Name, cv.CurrentHP, cv.MaxHP)
	if len(cv.Energies) > 0 {
		s += " " + strings.Join(lo.Map(cv.Energies, func(t game.EnergyType, _ int) string { return t.Title() }), ",")
	}
	if len(cv.Statuses) > 0 {
		s += " " + strings.Join(lo.Map(cv.Statuses, func(st game.StatusCondition, _ int) string { return st.Title() }), ",")
	}
	return s + "]"
}

func formatBench(bench [game.MaxBenchSize]*game.CardView) string {
	parts := make([]string, len(bench))
	for i, cv := range bench {
		parts[i] = formatPokemon(cv)
	}
	return strings.Join(parts, " ")
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
	fmt.Fprintln(c.out, "  c) Concede")
}

// readChoice prompts until the player enters a valid action number or "c".
func (c *Client) readChoice(reader *bufio.Reader, count int) (ClientMessage, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && err != nil {
			if errors.Is(err, io.EOF) {
				return ClientMessage{}, fmt.Errorf("input closed: %w", err)
			}
			return ClientMessage{}, fmt.Errorf("read input: %w", err)
		}
		if strings.EqualFold(line, "c") {
			return ClientMessage{Type: MsgConcede}, nil
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > count {
			fmt.Fprintf(c.out, "Enter a number between 1 and %d, or c to concede\n", count)
			continue
		}
		return ClientMessage{Type: MsgAction, Index: n - 1}, nil
	}
}
