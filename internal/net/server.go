package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/rs/zerolog"

	"github.com/nazukimio/pyokemon-tcg/internal/game"
	"github.com/nazukimio/pyokemon-tcg/internal/log"
	"github.com/nazukimio/pyokemon-tcg/internal/logging"
)

// Server hosts a battle. The host plays seat 0 through a local REPL; the opponent is either a
// TCP client (Run, Serve) or the built-in AI (RunSolo).
type Server struct {
	DeckFile string
	Catalog  *game.Catalog // nil uses the built-in cards
	Port     string
	HostDeck int // host's deck number (1-indexed)
	HostName string
	Seed     int64
	MaxTurns int

	Log zerolog.Logger
	In  io.Reader // host REPL input (default os.Stdin)
	Out io.Writer // host REPL output (default os.Stdout)
}

// Run starts listening, waits for a client to join, then runs the battle.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()
	return s.Serve(ctx, ln)
}

// Serve accepts exactly one joiner on ln and plays the battle against it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.Log.Info().Str("addr", ln.Addr().String()).Msg("waiting for opponent")

	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()
	s.Log.Info().Str("remote", conn.RemoteAddr().String()).Msg("opponent connected")

	// Read the joiner's deck choice
	var join ClientMessage
	if err := json.NewDecoder(conn).Decode(&join); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if join.Type != MsgJoin {
		return fmt.Errorf("expected %q handshake, got %q", MsgJoin, join.Type)
	}
	joinerDeck := join.DeckNumber
	if joinerDeck == 0 {
		joinerDeck = 2
	}
	opponent, err := s.loadDeck(joinerDeck)
	if err != nil {
		return fmt.Errorf("load joiner deck: %w", err)
	}

	joinerCtrl := NewNetworkController(conn, 1)
	spec := game.PlayerSpec{Name: join.Name, Deck: opponent}
	return s.play(ctx, spec, joinerCtrl, joinerCtrl.SendGameOver)
}

// RunSolo plays the host against the built-in AI using deck aiDeck.
func (s *Server) RunSolo(ctx context.Context, aiDeck int, d game.Difficulty) error {
	deck, err := s.loadDeck(aiDeck)
	if err != nil {
		return fmt.Errorf("load AI deck: %w", err)
	}
	ai := game.NewAIController(1, d)
	spec := game.PlayerSpec{Name: "AI (" + d.String() + ")", Deck: deck}
	return s.play(ctx, spec, ai, nil)
}

func (s *Server) loadDeck(n int) (*game.Deck, error) {
	cat := s.Catalog
	if cat == nil {
		cat = game.NewCatalog()
	}
	return game.DeckByNumber(s.DeckFile, n, cat)
}

// play runs the host's REPL against opponent and reports the result to both sides.
func (s *Server) play(ctx context.Context, opponent game.PlayerSpec, ctrl game.PlayerController, gameOver func(int, string) error) error {
	hostDeck, err := s.loadDeck(s.HostDeck)
	if err != nil {
		return fmt.Errorf("load host deck: %w", err)
	}
	s.Log.Info().
		Str("host", hostDeck.Name).Int("host_cards", hostDeck.Len()).
		Str("opponent", opponent.Deck.Name).Int("opponent_cards", opponent.Deck.Len()).
		Msg("decks loaded")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The host talks to its controller through an in-memory pipe
	hostConn, hostServerConn := net.Pipe()
	defer hostConn.Close()
	defer hostServerConn.Close()
	hostCtrl := NewNetworkController(hostServerConn, 0)

	logger := log.NewMemoryLogger()
	match := game.NewMatch(game.MatchConfig{
		P1:       game.PlayerSpec{Name: s.HostName, Deck: hostDeck},
		P2:       opponent,
		Engine:   game.Config{Seed: s.Seed, Logger: logger, Diag: logging.Logr(s.Log)},
		MaxTurns: s.MaxTurns,
	}, hostCtrl, ctrl)

	replDone := make(chan error, 1)
	go func() {
		client := NewClient(hostConn, s.input(), s.output())
		replDone <- client.RunREPL(ctx)
	}()

	matchDone := make(chan error, 1)
	go func() {
		winner, err := match.Run(ctx)
		if err != nil {
			matchDone <- fmt.Errorf("battle error: %w", err)
			return
		}
		result := match.Engine.Result
		if gameOver != nil {
			if err := gameOver(winner, result); err != nil {
				s.Log.Warn().Err(err).Msg("send game_over to opponent")
			}
		}
		if err := hostCtrl.SendGameOver(winner, result); err != nil {
			s.Log.Warn().Err(err).Msg("send game_over to host")
		}
		s.Log.Info().Str("battle", match.Engine.ID).Str("result", result).
			Int("turns", match.Engine.Turn).Int("events", len(logger.Events())).Msg("battle finished")
		matchDone <- nil
	}()

	select {
	case err := <-matchDone:
		if err != nil {
			return err
		}
		// the REPL returns once it has shown game_over
		return <-replDone
	case err := <-replDone:
		return err
	}
}

func (s *Server) input() io.Reader {
	if s.In != nil {
		return s.In
	}
	return os.Stdin
}

func (s *Server) output() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}
