// Package pricing provides the pure cost and affordability calculators
// shared by every action path. Player submissions and AI decisions are
// priced through these same functions, so the two paths cannot drift.
package pricing

import (
	"github.com/talgya/statecraft/internal/game"
)

// ShortagePenalty is the budget-cost inflation applied when required
// resources are unavailable — money substitutes for materials at a
// premium.
const ShortagePenalty = 1.5

// PricingResult is the outcome of pricing one action against a country's
// current stats. Never persisted; recomputed at every resolution.
type PricingResult struct {
	// BudgetCost is the base budget price, before any shortage penalty.
	BudgetCost float64

	// Resources are the quantities the action consumes when available.
	Resources map[string]float64

	// CanAfford reports whether the country holds every required
	// resource. Budget is deliberately not consulted here.
	CanAfford bool

	// PenaltyMultiplier is 1 when resources suffice, ShortagePenalty
	// otherwise. Always ≥ 1.
	PenaltyMultiplier float64
}

// EffectiveCost is the budget amount actually charged: the base cost
// inflated by the shortage penalty when materials are missing.
func (p PricingResult) EffectiveCost() float64 {
	return p.BudgetCost * p.PenaltyMultiplier
}

// price assembles a PricingResult, checking resource availability
// against the stats record.
func price(stats *game.CountryStats, budgetCost float64, resources map[string]float64) PricingResult {
	afford := true
	for id, need := range resources {
		if stats.Resource(id) < need {
			afford = false
			break
		}
	}
	mult := 1.0
	if !afford {
		mult = ShortagePenalty
	}
	return PricingResult{
		BudgetCost:        budgetCost,
		Resources:         resources,
		CanAfford:         afford,
		PenaltyMultiplier: mult,
	}
}

// ResearchPricing prices a technology-level advance. Cost climbs with the
// level already reached.
func ResearchPricing(stats *game.CountryStats) PricingResult {
	level := float64(stats.TechnologyLevel)
	return price(stats, 200*(1+0.5*level), map[string]float64{
		"electronics": 5 * (level + 1),
		"rare_earths": 2 * (level + 1),
	})
}

// InfrastructurePricing prices an infrastructure-level advance.
func InfrastructurePricing(stats *game.CountryStats) PricingResult {
	level := float64(stats.InfrastructureLevel)
	return price(stats, 150*(1+0.4*level), map[string]float64{
		"steel":  10 * (level + 1),
		"timber": 15 * (level + 1),
	})
}

// BuildupPricing prices a military expansion of the given unit count.
func BuildupPricing(stats *game.CountryStats, units int) PricingResult {
	n := float64(units)
	return price(stats, 50*n, map[string]float64{
		"steel": 2 * n,
		"oil":   1 * n,
	})
}

// RelationsPricing prices a diplomatic-relations boost. Pure budget
// spend; no materials are consumed, so the penalty never applies.
func RelationsPricing(stats *game.CountryStats, boost float64) PricingResult {
	return price(stats, 20*boost, nil)
}

// CanAffordAction checks only the (possibly penalized) budget cost
// against available budget. A resource shortage alone never blocks an
// action — it only makes it more expensive.
func CanAffordAction(p PricingResult, budget float64) bool {
	return budget >= p.EffectiveCost()
}

// ApplyActionCost deducts the action's cost from a cloned stats record
// and returns it. Budget is always deducted — the penalized amount when
// materials were short. Resources are deducted only when CanAfford was
// true. This is the parity contract every action path shares.
func ApplyActionCost(p PricingResult, stats *game.CountryStats) *game.CountryStats {
	next := stats.Clone()
	next.Budget -= p.EffectiveCost()
	if p.CanAfford {
		for id, need := range p.Resources {
			next.Resources[id] -= need
		}
	}
	return next
}

// AttackPricing is the flat economic cost of committing strength to an
// attack.
type AttackPricing struct {
	Cost float64
}

// CalculateAttackPricing prices an attack from the allocated strength:
// cost = 100 + allocatedStrength × 10, exactly.
func CalculateAttackPricing(allocatedStrength float64) AttackPricing {
	return AttackPricing{Cost: 100 + allocatedStrength*10}
}

// ApplyAttackCost deducts the attack cost from a cloned stats record,
// flooring the budget at zero.
func ApplyAttackCost(p AttackPricing, stats *game.CountryStats) *game.CountryStats {
	next := stats.Clone()
	next.Budget -= p.Cost
	if next.Budget < 0 {
		next.Budget = 0
	}
	return next
}
