package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("STATECRAFT_DB", "")
	t.Setenv("STATECRAFT_TURNS", "")
	t.Setenv("STATECRAFT_SEED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "data/statecraft.db" || cfg.Turns != 10 || cfg.Seed != 0 {
		t.Errorf("defaults: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STATECRAFT_DB", "/tmp/x.db")
	t.Setenv("STATECRAFT_TURNS", "25")
	t.Setenv("STATECRAFT_SEED", "-7")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/x.db" || cfg.Turns != 25 || cfg.Seed != -7 {
		t.Errorf("overrides: %+v", cfg)
	}
}

func TestLoad_InvalidTurns(t *testing.T) {
	for _, v := range []string{"abc", "0", "-3"} {
		t.Setenv("STATECRAFT_TURNS", v)
		if _, err := Load(); err == nil {
			t.Errorf("STATECRAFT_TURNS=%q should be rejected", v)
		}
	}
}
