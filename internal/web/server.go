package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/nazukimio/pyokemon-tcg/internal/game"
	"github.com/nazukimio/pyokemon-tcg/internal/log"
	"github.com/nazukimio/pyokemon-tcg/internal/logging"
	pnet "github.com/nazukimio/pyokemon-tcg/internal/net"
)

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Cards  []string `json:"cards"` // unique card names in list order
}

// Validation is the response of /api/decks/{n}/validate.
type Validation struct {
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems"`
}

// JoinMessage opens a websocket battle against the built-in AI.
type JoinMessage struct {
	Type       string `json:"type"` // "join"
	Name       string `json:"name,omitempty"`
	DeckNumber int    `json:"deck_number"`
	AIDeck     int    `json:"ai_deck,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

// Options configures the web server.
type Options struct {
	DecksFile  string
	Catalog    *game.Catalog // nil uses the built-in cards
	Difficulty game.Difficulty
	MaxTurns   int
	Log        zerolog.Logger
}

// Server is the JSON API and websocket battle server.
type Server struct {
	opts Options
	mux  *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	if opts.Catalog == nil {
		opts.Catalog = game.NewCatalog()
	}
	s := &Server{opts: opts, mux: http.NewServeMux()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/decks/{n}/validate", s.handleValidate)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lo.Map(s.opts.Catalog.Cards(), func(c *game.Card, _ int) game.CardDef {
		return game.DefOf(c)
	}))
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	df, err := game.ReadDeckFile(s.opts.DecksFile)
	if err != nil {
		s.opts.Log.Error().Err(err).Msg("read decks file")
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}

	decks := make([]DeckInfo, 0, len(df.Decks))
	for i, d := range df.Decks {
		entries := lo.UniqBy(d.Cards, func(c game.CardEntry) string { return c.ID + c.Name })
		decks = append(decks, DeckInfo{
			Number: i + 1,
			Name:   d.Name,
			Size:   lo.SumBy(d.Cards, func(c game.CardEntry) int { return c.Count }),
			Cards: lo.Map(entries, func(c game.CardEntry, _ int) string {
				if card, err := s.opts.Catalog.Lookup(lo.CoalesceOrEmpty(c.ID, c.Name)); err == nil {
					return card.Name
				}
				return lo.CoalesceOrEmpty(c.Name, c.ID)
			}),
		})
	}
	writeJSON(w, http.StatusOK, decks)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		http.Error(w, "deck number must be an integer", http.StatusBadRequest)
		return
	}
	df, err := game.ReadDeckFile(s.opts.DecksFile)
	if err != nil {
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}
	if n < 1 || n > len(df.Decks) {
		http.Error(w, fmt.Sprintf("deck %d not found", n), http.StatusNotFound)
		return
	}

	v := Validation{Number: n, Name: df.Decks[n-1].Name, Problems: []string{}}
	deck, err := df.Deck(n, s.opts.Catalog)
	if err != nil {
		v.Problems = append(v.Problems, err.Error())
	} else {
		v.Problems = append(v.Problems, deck.Validate()...)
	}
	v.Valid = len(v.Problems) == 0
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.opts.Log.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	if err := s.playOverWebSocket(ctx, conn); err != nil {
		s.opts.Log.Info().Err(err).Msg("websocket battle ended early")
		_ = wsjson.Write(ctx, conn, pnet.ServerMessage{Type: pnet.MsgError, Message: err.Error()})
		conn.Close(websocket.StatusPolicyViolation, "battle aborted")
		return
	}
	conn.Close(websocket.StatusNormalClosure, "battle ended")
}

// playOverWebSocket reads the join message and plays one battle against the AI.
func (s *Server) playOverWebSocket(ctx context.Context, conn *websocket.Conn) error {
	var join JoinMessage
	if err := wsjson.Read(ctx, conn, &join); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if join.Type != pnet.MsgJoin {
		return fmt.Errorf("expected %q message, got %q", pnet.MsgJoin, join.Type)
	}
	difficulty := s.opts.Difficulty
	if join.Difficulty != "" {
		d, err := game.ParseDifficulty(join.Difficulty)
		if err != nil {
			return err
		}
		difficulty = d
	}
	aiDeckNumber := lo.Ternary(join.AIDeck > 0, join.AIDeck, 2)

	df, err := game.ReadDeckFile(s.opts.DecksFile)
	if err != nil {
		return err
	}
	deck, err := df.Deck(join.DeckNumber, s.opts.Catalog)
	if err != nil {
		return err
	}
	aiDeck, err := df.Deck(aiDeckNumber, s.opts.Catalog)
	if err != nil {
		return err
	}

	ctrl := NewWSController(conn, 0)
	match := game.NewMatch(game.MatchConfig{
		P1:       game.PlayerSpec{Name: lo.CoalesceOrEmpty(join.Name, "Player"), Deck: deck},
		P2:       game.PlayerSpec{Name: "AI (" + difficulty.String() + ")", Deck: aiDeck},
		Engine:   game.Config{Seed: join.Seed, Logger: log.NewMemoryLogger(), Diag: logging.Logr(s.opts.Log)},
		MaxTurns: s.opts.MaxTurns,
	}, ctrl, game.NewAIController(1, difficulty))

	winner, err := match.Run(ctx)
	if err != nil {
		return err
	}
	s.opts.Log.Info().Str("battle", match.Engine.ID).Str("result", match.Engine.Result).Msg("websocket battle finished")
	return ctrl.SendGameOver(ctx, winner, match.Engine.Result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
