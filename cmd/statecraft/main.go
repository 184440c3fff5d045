// Command statecraft runs a turn-based geopolitical strategy simulation.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/statecraft/internal/ai"
	"github.com/talgya/statecraft/internal/config"
	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/llm"
	"github.com/talgya/statecraft/internal/persistence"
	"github.com/talgya/statecraft/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Resources ─────────────────────────────────────────────────────
	registry := economy.DefaultRegistry()
	if cfg.ResourceFile != "" {
		registry, err = economy.LoadRegistry(cfg.ResourceFile)
		if err != nil {
			slog.Error("failed to load resources", "path", cfg.ResourceFile, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("resources loaded", "count", registry.Len())

	// ── Board ─────────────────────────────────────────────────────────
	genCfg := world.DefaultGenConfig()
	genCfg.Seed = cfg.Seed
	state := world.BuildGame(genCfg, registry)
	slog.Info("board generated",
		"game", state.GameID,
		"countries", len(state.Countries),
		"cities", len(state.Cities),
	)

	// ── LLM Client ────────────────────────────────────────────────────
	var completer llm.Completer
	if client := llm.NewClient(cfg.AnthropicKey); client.Enabled() {
		completer = client
		slog.Info("LLM client enabled")
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set — AI countries use rule-based planning only")
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.New(state, registry, completer)

	personalities := []ai.Personality{ai.Balanced, ai.Warmonger, ai.Diplomat, ai.Mercantile}
	if cfg.PersonalityFile != "" {
		loaded, err := ai.LoadPersonalities(cfg.PersonalityFile)
		if err != nil {
			slog.Error("failed to load personalities", "path", cfg.PersonalityFile, "error", err)
			os.Exit(1)
		}
		personalities = personalities[:0]
		for _, p := range loaded {
			personalities = append(personalities, p)
		}
	}

	i := 0
	for _, country := range state.Countries {
		if country.PlayerControlled {
			continue
		}
		planner, err := ai.NewPlanner(country.ID, personalities[i%len(personalities)])
		if err != nil {
			slog.Error("planner setup failed", "country", country.Name, "error", err)
			os.Exit(1)
		}
		eng.AddPlanner(planner)
		i++
	}

	// ── Run ───────────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, finishing current turn", "signal", sig)
		cancel()
	}()

	for turn := 0; turn < cfg.Turns; turn++ {
		eng.RunTurn(ctx)
		if err := db.SaveSnapshot(state); err != nil {
			slog.Error("snapshot save failed", "turn", state.Turn, "error", err)
		}
		state.AdvanceTurn()
		if ctx.Err() != nil {
			break
		}
	}

	slog.Info("simulation finished", "game", state.GameID, "final_turn", state.Turn)
}
