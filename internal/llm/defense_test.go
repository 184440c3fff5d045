package llm

import (
	"context"
	"strings"
	"testing"
)

type scriptedCompleter struct {
	reply string
	err   error

	lastSystem string
	lastUser   string
}

func (s *scriptedCompleter) Complete(_ context.Context, system, user string, _ int) (string, error) {
	s.lastSystem = system
	s.lastUser = user
	return s.reply, s.err
}

func TestParseAllocation(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"65", 65},
		{"I commit 72% of my forces.", 72},
		{"```\n40\n```", 40},
		{"-10", -10}, // clamping is the caller's job
		{"no numbers here", DefaultAllocation},
		{"", DefaultAllocation},
	}
	for _, c := range cases {
		if got := ParseAllocation(c.raw); got != c.want {
			t.Errorf("ParseAllocation(%q) = %.0f, want %.0f", c.raw, got, c.want)
		}
	}
}

func TestDefenseAllocation_PromptOmitsAttackerAllocation(t *testing.T) {
	// The defender decides blind: the prompt carries total strengths and
	// the tech gap, never the attacker's committed percentage.
	comp := &scriptedCompleter{reply: "55"}
	sit := DefenseSituation{
		DefenderName:     "Veridia",
		CityName:         "Port Halvern",
		CityValue:        18.5,
		OwnStrength:      600,
		AttackerStrength: 900,
		TechGap:          -1,
	}

	got, err := DefenseAllocation(context.Background(), comp, sit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 55 {
		t.Errorf("allocation = %.0f, want 55", got)
	}
	if !strings.Contains(comp.lastUser, "Port Halvern") {
		t.Errorf("prompt missing city name: %q", comp.lastUser)
	}
	if strings.Contains(strings.ToLower(comp.lastUser), "allocat") {
		t.Errorf("prompt leaks allocation wording: %q", comp.lastUser)
	}
}
