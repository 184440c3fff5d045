package ai

import (
	"fmt"
	"log/slog"

	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/llm"
)

// workingReserve is the resource quantity below which the planner
// considers a pricing-relevant resource short.
const workingReserve = 20.0

// pricingResources are the resources the action calculators consume;
// shortage in any of them inflates costs across the board.
var pricingResources = []string{"electronics", "rare_earths", "steel", "oil", "timber"}

// Planner computes a country's StrategicIntent each turn. The compiled
// focus rules are fixed per personality; the environment is rebuilt from
// live state on every call.
type Planner struct {
	country     game.CountryID
	personality Personality
	rules       []*FocusRule
}

// NewPlanner compiles the focus rules for one AI country.
func NewPlanner(country game.CountryID, p Personality) (*Planner, error) {
	rules, err := CompileFocusRules(p)
	if err != nil {
		return nil, fmt.Errorf("planner for %s: %w", country, err)
	}
	return &Planner{country: country, personality: p, rules: rules}, nil
}

// Personality returns the planner's weights for use by the advisors.
func (pl *Planner) Personality() Personality { return pl.personality }

// CountryID returns the country this planner decides for.
func (pl *Planner) CountryID() game.CountryID { return pl.country }

// PlanIntent evaluates the rule set against current stats. Pure rule
// evaluation — no external calls on this path.
func (pl *Planner) PlanIntent(state *game.GameState) StrategicIntent {
	env := pl.buildEnv(state)
	intent := EvaluateFocus(pl.rules, env)
	slog.Debug("intent planned", "country", pl.country, "focus", intent.Focus)
	return intent
}

// IntentFromAnalysis converts a batch LLM analysis into an intent,
// falling back to rule evaluation when the focus tag is unusable.
func (pl *Planner) IntentFromAnalysis(state *game.GameState, analysis llm.StrategicAnalysis) StrategicIntent {
	switch FocusTag(analysis.Focus) {
	case FocusEconomy, FocusMilitary, FocusDiplomacy, FocusTechnology:
		return StrategicIntent{Focus: FocusTag(analysis.Focus), Rationale: analysis.Rationale}
	default:
		slog.Warn("unusable focus from model, using rules", "country", pl.country, "focus", analysis.Focus)
		return pl.PlanIntent(state)
	}
}

func (pl *Planner) buildEnv(state *game.GameState) RuleEnv {
	stats := state.Stats[pl.country]
	env := RuleEnv{
		Budget:          stats.Budget,
		TechLevel:       stats.TechnologyLevel,
		InfraLevel:      stats.InfrastructureLevel,
		Military:        stats.MilitaryStrength,
		Population:      stats.Population,
		Cities:          len(state.CitiesOf(pl.country)),
		AvgRelation:     game.NeutralRelation,
		WeakestRelation: 100,
	}

	total, n := 0.0, 0
	for _, other := range state.Countries {
		if other.ID == pl.country {
			continue
		}
		rel := stats.RelationWith(other.ID)
		total += rel
		n++
		if rel < env.WeakestRelation {
			env.WeakestRelation = rel
		}
	}
	if n > 0 {
		env.AvgRelation = total / float64(n)
	}

	for _, res := range pricingResources {
		if stats.Resource(res) < workingReserve {
			env.ResourceShort = true
			break
		}
	}
	return env
}

// Summary builds the batch-prompt digest for this country.
func (pl *Planner) Summary(state *game.GameState) llm.CountrySummary {
	stats := state.Stats[pl.country]
	country := state.Country(pl.country)
	name := string(pl.country)
	if country != nil {
		name = country.Name
	}
	return llm.CountrySummary{
		ID:               pl.country,
		Name:             name,
		Budget:           stats.Budget,
		MilitaryStrength: stats.MilitaryStrength,
		TechnologyLevel:  stats.TechnologyLevel,
		Infrastructure:   stats.InfrastructureLevel,
		Cities:           len(state.CitiesOf(pl.country)),
		Personality:      pl.personality.Describe(),
	}
}
