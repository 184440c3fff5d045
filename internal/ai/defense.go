// DefenseAI — activates only when a city comes under attack.
package ai

import (
	"context"
	"log/slog"
	"math"

	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/llm"
	"github.com/talgya/statecraft/internal/military"
)

// Allocation clamps. The model is allowed a wider band than the rules so
// a human attacker cannot learn the formula by probing.
const (
	RuleAllocMin = 30.0
	RuleAllocMax = 80.0
	LLMAllocMin  = 30.0
	LLMAllocMax  = 90.0
)

// DefenseAI decides how much of a defender's strength to commit when one
// of its cities is attacked. The attacker's chosen allocation is never
// an input — both sides decide blind and the resolver brings the numbers
// together afterwards.
type DefenseAI struct {
	// Completer may be nil; the rule-based path then always applies.
	Completer llm.Completer
}

// DecideAllocation returns the defense commitment percentage.
// attackerIsPlayer selects the LLM path for unpredictability against
// humans; AI-vs-AI combat stays deterministic and free. Model failure
// falls back to the rules — the external call is never a single point
// of failure.
func (d DefenseAI) DecideAllocation(ctx context.Context, state *game.GameState, city *game.City, attacker game.CountryID, attackerIsPlayer bool) float64 {
	defender := city.OwnerID
	defStats := state.Stats[defender]
	atkStats := state.Stats[attacker]

	if attackerIsPlayer && d.Completer != nil {
		sit := llm.DefenseSituation{
			DefenderName:     countryName(state, defender),
			CityName:         city.Name,
			CityValue:        city.StrategicValue(),
			OwnStrength:      military.EffectiveStrength(defStats),
			AttackerStrength: military.EffectiveStrength(atkStats),
			TechGap:          defStats.TechnologyLevel - atkStats.TechnologyLevel,
		}
		pct, err := llm.DefenseAllocation(ctx, d.Completer, sit)
		if err == nil {
			return clampAlloc(pct, LLMAllocMin, LLMAllocMax)
		}
		slog.Warn("llm defense failed, using rules", "city", city.Name, "error", err)
	}

	return d.ruleAllocation(defStats, atkStats, city)
}

// ruleAllocation is the deterministic decision: a weighted function of
// city value, relative effective strengths, and the tech-level gap.
func (d DefenseAI) ruleAllocation(defender, attacker *game.CountryStats, city *game.City) float64 {
	defEff := military.EffectiveStrength(defender)
	if defEff < 1 {
		defEff = 1
	}
	ratio := military.EffectiveStrength(attacker) / defEff
	techGap := defender.TechnologyLevel - attacker.TechnologyLevel

	alloc := 35 +
		math.Min(city.StrategicValue(), 25) + // valuable cities get more
		(ratio-1)*25 - // stronger attackers demand more
		float64(techGap)*3 // a tech edge lets the defender hold back

	return clampAlloc(alloc, RuleAllocMin, RuleAllocMax)
}

func clampAlloc(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func countryName(state *game.GameState, id game.CountryID) string {
	if c := state.Country(id); c != nil {
		return c.Name
	}
	return string(id)
}
