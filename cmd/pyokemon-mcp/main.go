package main

import (
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/nazukimio/pyokemon-tcg/internal/config"
	"github.com/nazukimio/pyokemon-tcg/internal/game"
	"github.com/nazukimio/pyokemon-tcg/internal/logging"
	pmcp "github.com/nazukimio/pyokemon-tcg/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	decks := flag.String("decks", cfg.Decks, "path to decks YAML file")
	difficulty := flag.String("difficulty", cfg.AIDifficulty, "default AI difficulty")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr as JSON.
	l, err := logging.New(os.Stderr, logging.Options{Level: cfg.LogLevel})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	game.SetInternalLogger(logging.Logr(l))

	d, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	cat := game.NewCatalog()
	if cfg.Cards != "" {
		if cat, err = game.LoadCatalog(cfg.Cards); err != nil {
			config.Exitf("Error: %v", err)
		}
	}

	s := server.NewMCPServer("pyokemon-tcg", "1.0.0", server.WithToolCapabilities(false))
	tools := &pmcp.Tools{DecksFile: *decks, Catalog: cat, DefaultDifficulty: d, MaxTurns: cfg.MaxTurns}
	tools.Register(s)

	l.Info().Str("decks", *decks).Stringer("difficulty", d).Msg("mcp server ready on stdio")
	if err := server.ServeStdio(s); err != nil {
		config.Exitf("Error: %v", err)
	}
}
