// Package ai provides the per-country decision layer: strategic
// planning, the economic/diplomatic/military advisors, and defense
// allocation. The majority of decisions are pure rule evaluation; the
// language model is consulted only where unpredictability matters, and
// every model failure falls back to the rules.
package ai

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Personality weights shape every decision an AI country makes. All
// weights are 0–1.
type Personality struct {
	Aggression      float64 `yaml:"aggression"`
	Cooperativeness float64 `yaml:"cooperativeness"`
	RiskTolerance   float64 `yaml:"risk_tolerance"`
	Honesty         float64 `yaml:"honesty"`
}

// Validate clamps all weights into [0, 1].
func (p *Personality) Validate() {
	clamp := func(v *float64) {
		if *v < 0 {
			*v = 0
		}
		if *v > 1 {
			*v = 1
		}
	}
	clamp(&p.Aggression)
	clamp(&p.Cooperativeness)
	clamp(&p.RiskTolerance)
	clamp(&p.Honesty)
}

// Describe returns a short temperament summary for prompts and logs.
func (p Personality) Describe() string {
	switch {
	case p.Aggression > 0.7:
		return "expansionist and quick to escalate"
	case p.Cooperativeness > 0.7:
		return "deal-seeking and alliance-minded"
	case p.RiskTolerance > 0.7:
		return "opportunistic, comfortable gambling"
	case p.Honesty < 0.3:
		return "duplicitous, trades on the black market"
	default:
		return "cautious and balanced"
	}
}

// Presets used when no personality file is supplied.
var (
	Balanced   = Personality{Aggression: 0.4, Cooperativeness: 0.5, RiskTolerance: 0.4, Honesty: 0.6}
	Warmonger  = Personality{Aggression: 0.9, Cooperativeness: 0.2, RiskTolerance: 0.7, Honesty: 0.4}
	Diplomat   = Personality{Aggression: 0.2, Cooperativeness: 0.9, RiskTolerance: 0.3, Honesty: 0.8}
	Mercantile = Personality{Aggression: 0.3, Cooperativeness: 0.6, RiskTolerance: 0.6, Honesty: 0.3}
)

// LoadPersonalities reads named personality presets from a YAML file.
func LoadPersonalities(path string) (map[string]Personality, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read personality file: %w", err)
	}
	var file struct {
		Personalities map[string]Personality `yaml:"personalities"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse personality file: %w", err)
	}
	for name, p := range file.Personalities {
		p.Validate()
		file.Personalities[name] = p
	}
	return file.Personalities, nil
}
