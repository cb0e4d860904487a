package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nazukimio/pyokemon-tcg/internal/config"
	"github.com/nazukimio/pyokemon-tcg/internal/game"
	"github.com/nazukimio/pyokemon-tcg/internal/logging"
	"github.com/nazukimio/pyokemon-tcg/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	port := flag.Int("port", cfg.HTTPPort, "HTTP port to listen on")
	decksFile := flag.String("decks", cfg.Decks, "path to decks YAML file")
	difficulty := flag.String("difficulty", cfg.AIDifficulty, "default AI difficulty")
	flag.Parse()

	l, err := logging.New(os.Stderr, logging.Options{Level: cfg.LogLevel})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	game.SetInternalLogger(logging.Logr(l))

	d, err := game.ParseDifficulty(*difficulty)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	var cat *game.Catalog
	if cfg.Cards != "" {
		if cat, err = game.LoadCatalog(cfg.Cards); err != nil {
			config.Exitf("Error: %v", err)
		}
	}

	srv := web.NewServer(web.Options{
		DecksFile:  *decksFile,
		Catalog:    cat,
		Difficulty: d,
		MaxTurns:   cfg.MaxTurns,
		Log:        l,
	})

	l.Info().Int("port", *port).Msgf("pyokemon web API listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		config.Exitf("Error: %v", err)
	}
}
