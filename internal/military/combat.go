// Package military computes effective strength, attack costs, and combat
// outcomes. All functions are pure; applying an outcome to game state is
// the resolver's job.
package military

import (
	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/pricing"
)

const (
	// TechBonusPerLevel scales nominal strength into combat power.
	TechBonusPerLevel = 0.1

	// DefenderTerrainBonus is the fixed multiplier a defender's committed
	// strength receives for fighting on home ground.
	DefenderTerrainBonus = 1.2

	// Proportional losses on committed strength after combat.
	WinnerLossRate = 0.3
	LoserLossRate  = 0.6
)

// EffectiveStrength is nominal military strength scaled by the
// technology bonus.
func EffectiveStrength(stats *game.CountryStats) float64 {
	return stats.MilitaryStrength * (1 + TechBonusPerLevel*float64(stats.TechnologyLevel))
}

// RelationPenalty inflates attack cost when relations with the defender
// are poor. Neutral (50) and friendly relations carry no penalty.
func RelationPenalty(relation float64) float64 {
	p := 1 + (game.NeutralRelation-relation)/100
	if p < 1 {
		p = 1
	}
	return p
}

// AttackCost is the full economic cost of an attack: the attack-pricing
// formula on the allocated strength, scaled by the diplomatic-relations
// penalty between attacker and defender.
func AttackCost(attacker *game.CountryStats, target *game.City, allocatedStrength float64) float64 {
	base := pricing.CalculateAttackPricing(allocatedStrength).Cost
	return base * RelationPenalty(attacker.RelationWith(target.OwnerID))
}

// Outcome describes a resolved engagement.
type Outcome struct {
	AttackerWon bool

	// Committed effective strengths after all adjustments, including the
	// defender's terrain bonus.
	AttackerCommitted float64
	DefenderCommitted float64

	// Losses in nominal strength, proportional to each side's allocation.
	AttackerLosses float64
	DefenderLosses float64
}

// Resolve compares the attacker's allocated effective strength against
// the defender's, with the defender's terrain bonus applied. Each side's
// allocation percentage was decided without knowledge of the other's —
// the resolver only brings them together here.
func Resolve(attacker, defender *game.CountryStats, attackPct, defendPct float64) Outcome {
	atk := EffectiveStrength(attacker) * attackPct / 100
	def := EffectiveStrength(defender) * defendPct / 100 * DefenderTerrainBonus

	out := Outcome{
		AttackerWon:       atk > def,
		AttackerCommitted: atk,
		DefenderCommitted: def,
	}

	atkNominal := attacker.MilitaryStrength * attackPct / 100
	defNominal := defender.MilitaryStrength * defendPct / 100
	if out.AttackerWon {
		out.AttackerLosses = atkNominal * WinnerLossRate
		out.DefenderLosses = defNominal * LoserLossRate
	} else {
		out.AttackerLosses = atkNominal * LoserLossRate
		out.DefenderLosses = defNominal * WinnerLossRate
	}
	return out
}
