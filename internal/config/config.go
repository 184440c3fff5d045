// Package config loads runtime configuration from the environment and
// optional YAML data files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the simulation binary needs at startup.
type Config struct {
	AnthropicKey    string // empty disables LLM features
	DBPath          string
	Turns           int
	Seed            int64
	ResourceFile    string // optional YAML resource definitions
	PersonalityFile string // optional YAML personality presets
}

// Load reads configuration, preferring a local .env file when present.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		DBPath:          envOr("STATECRAFT_DB", "data/statecraft.db"),
		Turns:           10,
		ResourceFile:    os.Getenv("STATECRAFT_RESOURCES"),
		PersonalityFile: os.Getenv("STATECRAFT_PERSONALITIES"),
	}

	if v := os.Getenv("STATECRAFT_TURNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid STATECRAFT_TURNS %q", v)
		}
		cfg.Turns = n
	}

	if v := os.Getenv("STATECRAFT_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid STATECRAFT_SEED %q", v)
		}
		cfg.Seed = n
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
