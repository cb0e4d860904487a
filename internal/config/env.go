package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the environment shared by every command. Flags default to these values.
type Config struct {
	Decks        string `env:"PYOKEMON_DECKS" envDefault:"decks.yaml"`
	Cards        string `env:"PYOKEMON_CARDS"` // optional YAML card catalog
	Port         int    `env:"PYOKEMON_PORT" envDefault:"9999"`
	HTTPPort     int    `env:"PYOKEMON_HTTP_PORT" envDefault:"8080"`
	Seed         int64  `env:"PYOKEMON_SEED"`
	AIDifficulty string `env:"PYOKEMON_AI_DIFFICULTY" envDefault:"normal"`
	LogLevel     string `env:"PYOKEMON_LOG_LEVEL" envDefault:"info"`
	MaxTurns     int    `env:"PYOKEMON_MAX_TURNS" envDefault:"200"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the process environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.MaxTurns < 1 {
		return Config{}, fmt.Errorf("PYOKEMON_MAX_TURNS must be positive, got %d", cfg.MaxTurns)
	}
	return cfg, nil
}
