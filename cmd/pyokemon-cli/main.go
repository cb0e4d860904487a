package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/nazukimio/pyokemon-tcg/internal/config"
	"github.com/nazukimio/pyokemon-tcg/internal/game"
	"github.com/nazukimio/pyokemon-tcg/internal/logging"
	pnet "github.com/nazukimio/pyokemon-tcg/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	switch cmd {
	case "host":
		runHost(ctx, cfg, os.Args[2:])
	case "join":
		runJoin(ctx, cfg, os.Args[2:])
	case "solo":
		runSolo(ctx, cfg, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  pyokemon host [--deck N] [--port P] [--decks FILE] [--name NAME]")
	fmt.Println("  pyokemon join [--deck N] [--addr ADDR] [--name NAME]")
	fmt.Println("  pyokemon solo [--deck N] [--ai-deck N] [--difficulty easy|normal|hard]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a battle server and play as Player 1")
	fmt.Println("  join    Connect to a battle server and play as Player 2")
	fmt.Println("  solo    Play against the built-in AI")
	fmt.Println()
	fmt.Println("Defaults come from PYOKEMON_* environment variables.")
}

// setup builds the logger and card catalog shared by every subcommand.
func setup(cfg config.Config, level string) (zerolog.Logger, *game.Catalog) {
	l, err := logging.New(os.Stderr, logging.Options{Level: level, Console: true})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	game.SetInternalLogger(logging.Logr(l))

	if cfg.Cards == "" {
		return l, game.NewCatalog()
	}
	cat, err := game.LoadCatalog(cfg.Cards)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	return l, cat
}

func runHost(ctx context.Context, cfg config.Config, args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	deck := fs.Int("deck", 1, "deck number to use (from the decks file)")
	port := fs.Int("port", cfg.Port, "TCP port to listen on")
	decksFile := fs.String("decks", cfg.Decks, "path to decks file")
	name := fs.String("name", "Player 1", "your name")
	seed := fs.Int64("seed", cfg.Seed, "RNG seed (0 = random)")
	level := fs.String("log-level", cfg.LogLevel, "log level")
	fs.Parse(args)

	l, cat := setup(cfg, *level)
	srv := &pnet.Server{
		DeckFile: *decksFile,
		Catalog:  cat,
		Port:     strconv.Itoa(*port),
		HostDeck: *deck,
		HostName: *name,
		Seed:     *seed,
		MaxTurns: cfg.MaxTurns,
		Log:      l,
	}
	if err := srv.Run(ctx); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func runJoin(ctx context.Context, cfg config.Config, args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	deck := fs.Int("deck", 2, "deck number to use (from the host's decks file)")
	addr := fs.String("addr", fmt.Sprintf("localhost:%d", cfg.Port), "server address to connect to")
	name := fs.String("name", "Player 2", "your name")
	level := fs.String("log-level", cfg.LogLevel, "log level")
	fs.Parse(args)

	setup(cfg, *level)
	if err := pnet.Connect(ctx, *addr, *deck, *name); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func runSolo(ctx context.Context, cfg config.Config, args []string) {
	fs := flag.NewFlagSet("solo", flag.ExitOnError)
	deck := fs.Int("deck", 1, "deck number to use (from the decks file)")
	aiDeck := fs.Int("ai-deck", 2, "deck number for the AI")
	difficulty := fs.String("difficulty", cfg.AIDifficulty, "AI difficulty: easy, normal or hard")
	decksFile := fs.String("decks", cfg.Decks, "path to decks file")
	name := fs.String("name", "Player", "your name")
	seed := fs.Int64("seed", cfg.Seed, "RNG seed (0 = random)")
	level := fs.String("log-level", cfg.LogLevel, "log level")
	fs.Parse(args)

	d, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	l, cat := setup(cfg, *level)
	srv := &pnet.Server{
		DeckFile: *decksFile,
		Catalog:  cat,
		HostDeck: *deck,
		HostName: *name,
		Seed:     *seed,
		MaxTurns: cfg.MaxTurns,
		Log:      l,
	}
	if err := srv.RunSolo(ctx, *aiDeck, d); err != nil {
		config.Exitf("Error: %v", err)
	}
}
