// Package engine drives turn resolution: action application, combat,
// deal execution, and the turn report. One engine owns one GameState;
// all mutations within a turn are an ordered sequence with no concurrent
// writers.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talgya/statecraft/internal/ai"
	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/military"
	"github.com/talgya/statecraft/internal/pricing"
)

// Relation shifts caused by an attack. Applied at attack submission,
// before combat resolves.
const (
	attackRelationHitDefender = 20.0 // defender's view of attacker drops
	attackRelationHitAttacker = 10.0 // attacker's view of defender drops
)

// Resolution is the outcome of applying one action. Affordability
// failures are ordinary results, never errors.
type Resolution struct {
	Action *game.GameAction
	Status game.ActionStatus
	Reason string
}

// Resolver applies actions to game state. Both player submissions and AI
// decisions pass through Resolve, sharing the pricing calculators
// bit-for-bit.
type Resolver struct {
	Market  *economy.Market
	Defense ai.DefenseAI

	// queued holds attacks deferred to end-of-turn resolution.
	queued []*game.GameAction
}

// Resolve dispatches one action against the state. Cost deduction and
// status transition happen together; the caller never observes a
// half-applied action. An action with no payload for its type is a
// contract violation and panics.
func (r *Resolver) Resolve(ctx context.Context, state *game.GameState, action *game.GameAction) Resolution {
	stats := state.Stats[action.CountryID]
	if stats == nil {
		panic(fmt.Sprintf("engine: action from unknown country %s", action.CountryID))
	}

	var res Resolution
	switch {
	case action.Research != nil:
		res = r.resolvePriced(state, action, pricing.ResearchPricing(stats), func(s *game.CountryStats) {
			s.TechnologyLevel++
		})
	case action.Infrastructure != nil:
		res = r.resolvePriced(state, action, pricing.InfrastructurePricing(stats), func(s *game.CountryStats) {
			s.InfrastructureLevel++
		})
	case action.Buildup != nil:
		b := action.Buildup
		res = r.resolvePriced(state, action, pricing.BuildupPricing(stats, b.Units), func(s *game.CountryStats) {
			s.MilitaryStrength += float64(b.Units) * 10
			s.MilitaryEquipment[b.Equipment] += b.Units
		})
	case action.Relations != nil:
		res = r.resolveRelations(state, action)
	case action.Trade != nil:
		res = r.resolveTrade(state, action)
	case action.Attack != nil:
		res = r.resolveAttack(ctx, state, action)
	default:
		panic(fmt.Sprintf("engine: action %s of type %s has no payload", action.ID, action.Type))
	}

	state.SetActionStatus(action, res.Status)
	return res
}

// resolvePriced is the shared path for research, infrastructure, and
// buildup: price, gate on budget only, apply cost, apply effect. A
// resource shortage never blocks — it is already priced in.
func (r *Resolver) resolvePriced(state *game.GameState, action *game.GameAction, p pricing.PricingResult, effect func(*game.CountryStats)) Resolution {
	stats := state.Stats[action.CountryID]
	if !pricing.CanAffordAction(p, stats.Budget) {
		return Resolution{Action: action, Status: game.StatusFailed, Reason: "insufficient budget"}
	}

	next := pricing.ApplyActionCost(p, stats)
	effect(next)
	state.WithUpdatedStats(action.CountryID, next)

	if !p.CanAfford {
		state.AddEvent("economy", fmt.Sprintf("%s paid a %.0f%% shortage premium on a %s action",
			countryName(state, action.CountryID), (p.PenaltyMultiplier-1)*100, action.Type))
	}
	return Resolution{Action: action, Status: game.StatusExecuted}
}

func (r *Resolver) resolveRelations(state *game.GameState, action *game.GameAction) Resolution {
	rel := action.Relations
	stats := state.Stats[action.CountryID]
	p := pricing.RelationsPricing(stats, rel.Boost)
	if !pricing.CanAffordAction(p, stats.Budget) {
		return Resolution{Action: action, Status: game.StatusFailed, Reason: "insufficient budget"}
	}

	next := pricing.ApplyActionCost(p, stats)
	next.DiplomaticRelations[rel.Target] = capRelation(next.RelationWith(rel.Target) + rel.Boost)
	state.WithUpdatedStats(action.CountryID, next)

	// Goodwill is partially reciprocated by the target.
	if target := state.Stats[rel.Target]; target != nil {
		tn := target.Clone()
		tn.DiplomaticRelations[action.CountryID] = capRelation(tn.RelationWith(action.CountryID) + rel.Boost*0.8)
		state.WithUpdatedStats(rel.Target, tn)
	}

	state.AddEvent("diplomacy", fmt.Sprintf("%s invested in relations with %s",
		countryName(state, action.CountryID), countryName(state, rel.Target)))
	return Resolution{Action: action, Status: game.StatusExecuted}
}

// resolveTrade executes a black-market buy or sell at the market's
// current premium/discount prices.
func (r *Resolver) resolveTrade(state *game.GameState, action *game.GameAction) Resolution {
	t := action.Trade
	stats := state.Stats[action.CountryID]

	if t.Sell {
		if stats.Resource(t.Resource) < t.Quantity {
			return Resolution{Action: action, Status: game.StatusFailed, Reason: "insufficient stock to sell"}
		}
		next := stats.Clone()
		next.Resources[t.Resource] -= t.Quantity
		next.Budget += r.Market.BlackMarketSell(t.Resource) * t.Quantity
		state.WithUpdatedStats(action.CountryID, next)
	} else {
		cost := r.Market.BlackMarketBuy(t.Resource) * t.Quantity
		if stats.Budget < cost {
			return Resolution{Action: action, Status: game.StatusFailed, Reason: "insufficient budget"}
		}
		next := stats.Clone()
		next.Budget -= cost
		next.Resources[t.Resource] += t.Quantity
		state.WithUpdatedStats(action.CountryID, next)
	}

	state.AddEvent("economy", fmt.Sprintf("%s moved %.0f %s on the black market",
		countryName(state, action.CountryID), t.Quantity, t.Resource))
	return Resolution{Action: action, Status: game.StatusExecuted}
}

// resolveAttack applies the economic cost and diplomatic fallout, then
// either resolves combat synchronously or queues it for end of turn.
func (r *Resolver) resolveAttack(ctx context.Context, state *game.GameState, action *game.GameAction) Resolution {
	atk := action.Attack
	stats := state.Stats[action.CountryID]
	city := state.City(atk.City)
	if city == nil || city.OwnerID != atk.Target {
		return Resolution{Action: action, Status: game.StatusFailed, Reason: "target city not held by target country"}
	}

	allocated := stats.MilitaryStrength * atk.AllocationPct / 100
	cost := military.AttackCost(stats, city, allocated)

	next := pricing.ApplyAttackCost(pricing.AttackPricing{Cost: cost}, stats)
	next.DiplomaticRelations[atk.Target] = floorRelation(next.RelationWith(atk.Target) - attackRelationHitAttacker)
	state.WithUpdatedStats(action.CountryID, next)

	if defender := state.Stats[atk.Target]; defender != nil {
		dn := defender.Clone()
		dn.DiplomaticRelations[action.CountryID] = floorRelation(dn.RelationWith(action.CountryID) - attackRelationHitDefender)
		state.WithUpdatedStats(atk.Target, dn)
	}

	state.SetCityUnderAttack(atk.City, true)
	state.AddEvent("combat", fmt.Sprintf("%s marches on %s", countryName(state, action.CountryID), city.Name))

	if atk.LiveResolution {
		r.resolveCombat(ctx, state, action)
	} else {
		r.queued = append(r.queued, action)
	}
	return Resolution{Action: action, Status: game.StatusExecuted}
}

// ResolveQueuedCombat resolves all attacks deferred during the turn, in
// submission order.
func (r *Resolver) ResolveQueuedCombat(ctx context.Context, state *game.GameState) {
	for _, action := range r.queued {
		r.resolveCombat(ctx, state, action)
	}
	r.queued = nil
}

// resolveCombat obtains the defender's independent allocation and
// settles the engagement. The defender's decision call receives no
// knowledge of the attacker's allocation.
func (r *Resolver) resolveCombat(ctx context.Context, state *game.GameState, action *game.GameAction) {
	atk := action.Attack
	city := state.City(atk.City)
	if city == nil || city.OwnerID != atk.Target {
		// Captured or lost earlier this turn; nothing left to fight over.
		return
	}

	attacker := state.Country(action.CountryID)
	attackerIsPlayer := attacker != nil && attacker.PlayerControlled
	defendPct := r.Defense.DecideAllocation(ctx, state, city, action.CountryID, attackerIsPlayer)

	atkStats := state.Stats[action.CountryID]
	defStats := state.Stats[atk.Target]
	outcome := military.Resolve(atkStats, defStats, atk.AllocationPct, defendPct)

	an := atkStats.Clone()
	an.MilitaryStrength = floorZero(an.MilitaryStrength - outcome.AttackerLosses)
	state.WithUpdatedStats(action.CountryID, an)

	dn := defStats.Clone()
	dn.MilitaryStrength = floorZero(dn.MilitaryStrength - outcome.DefenderLosses)
	state.WithUpdatedStats(atk.Target, dn)

	if outcome.AttackerWon {
		state.TransferCity(atk.City, action.CountryID)
		state.AddEvent("combat", fmt.Sprintf("%s captured %s from %s",
			countryName(state, action.CountryID), city.Name, countryName(state, atk.Target)))
	} else {
		state.SetCityUnderAttack(atk.City, false)
		state.AddEvent("combat", fmt.Sprintf("%s repelled the assault on %s",
			countryName(state, atk.Target), city.Name))
	}

	slog.Info("combat resolved",
		"city", city.Name,
		"attacker", countryName(state, action.CountryID),
		"defender", countryName(state, atk.Target),
		"attacker_committed", fmt.Sprintf("%.1f", outcome.AttackerCommitted),
		"defender_committed", fmt.Sprintf("%.1f", outcome.DefenderCommitted),
		"captured", outcome.AttackerWon,
	)
}

func capRelation(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}

func floorRelation(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func countryName(state *game.GameState, id game.CountryID) string {
	if c := state.Country(id); c != nil {
		return c.Name
	}
	return string(id)
}
