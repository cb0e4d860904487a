package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nazukimio/pyokemon-tcg/internal/game"
)

// Tools serves the battle tools for one stdio process. Only one battle runs at a time.
type Tools struct {
	DecksFile         string
	Catalog           *game.Catalog
	DefaultDifficulty game.Difficulty
	MaxTurns          int

	mu     sync.Mutex
	active *Session
}

// Register adds all battle tools to the MCP server.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(startBattleTool(), t.handleStartBattle)
	s.AddTool(takeActionTool(), t.handleTakeAction)
	s.AddTool(getBattleStateTool(), t.handleGetBattleState)
	s.AddTool(concedeTool(), t.handleConcede)
}

// --- Tool definitions ---

func startBattleTool() mcp.Tool {
	return mcp.NewTool("start_battle",
		mcp.WithDescription("Start a new Pokémon TCG battle against the built-in AI. You always play first seat. "+
			"Returns the initial state, the events so far and the numbered legal actions."),
		mcp.WithNumber("deck", mcp.Required(), mcp.Description("Your deck number (1-indexed from decks.yaml)")),
		mcp.WithNumber("ai_deck", mcp.Description("The AI's deck number (default 2)")),
		mcp.WithString("difficulty", mcp.Description("AI difficulty"), mcp.Enum("easy", "normal", "hard")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for a reproducible battle (0 = random)")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the legal action list. The AI then plays until it is your turn to decide again."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func getBattleStateTool() mcp.Tool {
	return mcp.NewTool("get_battle_state",
		mcp.WithDescription("Get the current battle state, accumulated events and legal actions without acting. Read-only."),
	)
}

func concedeTool() mcp.Tool {
	return mcp.NewTool("concede",
		mcp.WithDescription("Concede the current battle. The AI wins."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		return mcp.NewToolResultError("A battle is already running. Finish or concede it first."), nil
	}

	deck := request.GetInt("deck", 0)
	aiDeck := request.GetInt("ai_deck", 2)
	if deck < 1 || aiDeck < 1 {
		return mcp.NewToolResultError("deck and ai_deck must be >= 1"), nil
	}
	difficulty := t.DefaultDifficulty
	if name := request.GetString("difficulty", ""); name != "" {
		d, err := game.ParseDifficulty(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		difficulty = d
	}

	sess, err := NewSession(SessionOptions{
		DecksFile:  t.DecksFile,
		Catalog:    t.Catalog,
		Deck:       deck,
		AIDeck:     aiDeck,
		Difficulty: difficulty,
		Seed:       int64(request.GetInt("seed", 0)),
		MaxTurns:   t.MaxTurns,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start battle: %v", err), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		sess.Close()
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	if !resp.GameOver {
		t.active = sess
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess := t.active
	if sess == nil {
		return mcp.NewToolResultError("No battle is running. Use start_battle first."), nil
	}
	pending := sess.currentPending
	if pending == nil || pending.Type != DecisionChooseAction {
		return mcp.NewToolResultError("No pending decision."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Actions)-1), nil
	}
	return t.respond(ctx, sess, ActionResponse{Index: index})
}

func (t *Tools) handleConcede(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess := t.active
	if sess == nil {
		return mcp.NewToolResultError("No battle is running."), nil
	}
	return t.respond(ctx, sess, ActionResponse{Concede: true})
}

// respond hands the agent's answer to the battle and waits for the next decision. Must be called with mu held.
func (t *Tools) respond(ctx context.Context, sess *Session, answer ActionResponse) (*mcp.CallToolResult, error) {
	select {
	case sess.agent.responseCh <- answer:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if resp.GameOver {
		t.active = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleGetBattleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return mcp.NewToolResultError("No battle is running. Use start_battle first."), nil
	}
	return mcp.NewToolResultText(respondJSON(t.active.snapshot())), nil
}
