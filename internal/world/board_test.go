package world

import (
	"testing"

	"github.com/talgya/statecraft/internal/economy"
)

func TestBuildGame_Deterministic(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 42
	reg := economy.DefaultRegistry()

	a := BuildGame(cfg, reg)
	b := BuildGame(cfg, reg)

	if len(a.Countries) != cfg.Countries || len(b.Countries) != cfg.Countries {
		t.Fatalf("country counts %d/%d, want %d", len(a.Countries), len(b.Countries), cfg.Countries)
	}
	for i := range a.Countries {
		ca, cb := a.Countries[i], b.Countries[i]
		if ca.Name != cb.Name || ca.Q != cb.Q || ca.R != cb.R || ca.Color != cb.Color {
			t.Errorf("country %d differs between identical seeds: %+v vs %+v", i, ca, cb)
		}
		sa, sb := a.Stats[ca.ID], b.Stats[cb.ID]
		if sa.Population != sb.Population || sa.MilitaryStrength != sb.MilitaryStrength ||
			sa.ResourceProfile != sb.ResourceProfile {
			t.Errorf("country %d stats differ between identical seeds", i)
		}
		for res, qty := range sa.Resources {
			if sb.Resources[res] != qty {
				t.Errorf("country %d resource %s differs: %.1f vs %.1f", i, res, qty, sb.Resources[res])
			}
		}
	}
}

func TestBuildGame_Layout(t *testing.T) {
	cfg := GenConfig{Seed: 7, Radius: 10, Countries: 4, CitiesPerCountry: 3, PlayerCountry: true}
	state := BuildGame(cfg, economy.DefaultRegistry())

	if !state.Countries[0].PlayerControlled {
		t.Error("first country should be player-controlled")
	}
	for _, c := range state.Countries[1:] {
		if c.PlayerControlled {
			t.Errorf("country %s should be AI-controlled", c.Name)
		}
	}

	for _, c := range state.Countries {
		if owned := state.CitiesOf(c.ID); len(owned) != cfg.CitiesPerCountry {
			t.Errorf("%s owns %d cities, want %d", c.Name, len(owned), cfg.CitiesPerCountry)
		}
		stats := state.Stats[c.ID]
		if stats.Budget != 1000 {
			t.Errorf("%s opening budget %.0f, want 1000", c.Name, stats.Budget)
		}
		if len(stats.Resources) != economy.DefaultRegistry().Len() {
			t.Errorf("%s seeded with %d resources", c.Name, len(stats.Resources))
		}
	}
}

func TestBuildGame_RandomSeedStillValid(t *testing.T) {
	cfg := DefaultGenConfig()
	state := BuildGame(cfg, economy.DefaultRegistry())
	if len(state.Countries) != cfg.Countries {
		t.Errorf("got %d countries, want %d", len(state.Countries), cfg.Countries)
	}
}
