// The sub-advisors — diplomacy, economy, military. Each consumes the
// turn's StrategicIntent and emits zero or more GameActions through pure
// rule evaluation. No advisor ever calls the model: the bulk of AI play
// must cost nothing.
package ai

import (
	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/military"
	"github.com/talgya/statecraft/internal/pricing"
)

// EconomicAI proposes research, infrastructure, and black-market trade
// actions.
type EconomicAI struct{}

// Advise emits economic actions for the focus. Affordability is checked
// with the same pricing calculators resolution uses, so an emitted
// action is expected to execute.
func (EconomicAI) Advise(state *game.GameState, country game.CountryID, intent StrategicIntent, p Personality) []*game.GameAction {
	stats := state.Stats[country]
	var actions []*game.GameAction

	switch intent.Focus {
	case FocusTechnology:
		rp := pricing.ResearchPricing(stats)
		if pricing.CanAffordAction(rp, stats.Budget) {
			a := game.NewAction(country, game.ActionResearch, state.Turn)
			a.Research = &game.ResearchPayload{}
			actions = append(actions, a)
		}

	case FocusEconomy:
		ip := pricing.InfrastructurePricing(stats)
		if pricing.CanAffordAction(ip, stats.Budget) {
			a := game.NewAction(country, game.ActionEconomic, state.Turn)
			a.Infrastructure = &game.InfrastructurePayload{}
			actions = append(actions, a)
		}

		// Low-honesty countries top up missing materials on the black
		// market rather than eating the shortage penalty.
		if p.Honesty < 0.5 && stats.Budget > 600 {
			for _, res := range pricingResources {
				deficit := workingReserve - stats.Resource(res)
				if deficit > 0 {
					a := game.NewAction(country, game.ActionEconomic, state.Turn)
					a.Trade = &game.TradePayload{Resource: res, Quantity: deficit}
					actions = append(actions, a)
					break
				}
			}
		}
	}
	return actions
}

// MilitaryAI proposes buildup and attack actions.
type MilitaryAI struct{}

// Advise emits military actions. Target selection is blind to what any
// defender will later commit — only published strength and relations are
// consulted.
func (MilitaryAI) Advise(state *game.GameState, country game.CountryID, intent StrategicIntent, p Personality) []*game.GameAction {
	if intent.Focus != FocusMilitary {
		return nil
	}
	stats := state.Stats[country]
	var actions []*game.GameAction

	if target, city := pickTarget(state, country, stats, p); city != nil {
		alloc := 30 + p.RiskTolerance*40
		a := game.NewAction(country, game.ActionMilitary, state.Turn)
		a.Attack = &game.AttackPayload{
			Target:        target,
			City:          city.ID,
			AllocationPct: alloc,
		}
		actions = append(actions, a)
		return actions
	}

	units := 5 + int(p.Aggression*10)
	bp := pricing.BuildupPricing(stats, units)
	if pricing.CanAffordAction(bp, stats.Budget) {
		a := game.NewAction(country, game.ActionMilitary, state.Turn)
		a.Buildup = &game.BuildupPayload{Equipment: "armor", Units: units}
		actions = append(actions, a)
	}
	return actions
}

// pickTarget returns the most attractive hostile city, or nil when no
// attack clears the personality's risk bar.
func pickTarget(state *game.GameState, country game.CountryID, stats *game.CountryStats, p Personality) (game.CountryID, *game.City) {
	own := military.EffectiveStrength(stats)
	requiredEdge := 1.3 - p.RiskTolerance*0.4 // bold countries attack near-peers

	var bestCity *game.City
	var bestTarget game.CountryID
	bestValue := 0.0

	for _, other := range state.Countries {
		if other.ID == country {
			continue
		}
		if stats.RelationWith(other.ID) >= 40 {
			continue
		}
		theirs := military.EffectiveStrength(state.Stats[other.ID])
		if own < theirs*requiredEdge {
			continue
		}
		for _, city := range state.CitiesOf(other.ID) {
			if v := city.StrategicValue(); v > bestValue {
				bestValue = v
				bestCity = city
				bestTarget = other.ID
			}
		}
	}
	return bestTarget, bestCity
}

// DiplomacyAI proposes relation boosts and multi-turn deals.
type DiplomacyAI struct{}

// Advise emits diplomatic actions and deal proposals.
func (DiplomacyAI) Advise(state *game.GameState, country game.CountryID, intent StrategicIntent, p Personality) ([]*game.GameAction, []*game.Deal) {
	stats := state.Stats[country]
	var actions []*game.GameAction
	var deals []*game.Deal

	if intent.Focus == FocusDiplomacy {
		if worst := worstRelation(state, country, stats); worst != "" {
			boost := 5 + p.Cooperativeness*10
			rp := pricing.RelationsPricing(stats, boost)
			if pricing.CanAffordAction(rp, stats.Budget) {
				a := game.NewAction(country, game.ActionDiplomacy, state.Turn)
				a.Relations = &game.RelationsPayload{Target: worst, Boost: boost}
				actions = append(actions, a)
			}
		}
	}

	// Cooperative countries offer a standing resource-for-budget deal to
	// their closest friend.
	if p.Cooperativeness > 0.6 {
		if friend, surplus := exportablePartner(state, country, stats); friend != "" {
			expiry := state.Turn + 5
			deals = append(deals, &game.Deal{
				ID:       game.NewDealID(),
				Proposer: country,
				Receiver: friend,
				Commitments: []game.Commitment{
					{Kind: game.CommitResource, From: country, Resource: surplus, Quantity: 10},
					{Kind: game.CommitBudget, From: friend, Budget: 150},
				},
				Status:      game.DealProposed,
				CreatedTurn: state.Turn,
				ExpiryTurn:  &expiry,
			})
		}
	}
	return actions, deals
}

// EvaluateProposal decides whether a country accepts a proposed deal.
// Cooperative personalities accept on thinner goodwill.
func (DiplomacyAI) EvaluateProposal(state *game.GameState, deal *game.Deal, p Personality) bool {
	stats := state.Stats[deal.Receiver]
	if stats == nil {
		return false
	}
	threshold := 40 + (1-p.Cooperativeness)*20
	return stats.RelationWith(deal.Proposer) >= threshold
}

func worstRelation(state *game.GameState, country game.CountryID, stats *game.CountryStats) game.CountryID {
	var worst game.CountryID
	lowest := game.NeutralRelation
	for _, other := range state.Countries {
		if other.ID == country {
			continue
		}
		if rel := stats.RelationWith(other.ID); rel < lowest {
			lowest = rel
			worst = other.ID
		}
	}
	return worst
}

// exportablePartner finds the friendliest country and a resource held
// well above working reserve, if any. Already-active deals with the same
// partner suppress a repeat proposal.
func exportablePartner(state *game.GameState, country game.CountryID, stats *game.CountryStats) (game.CountryID, string) {
	var friend game.CountryID
	best := 60.0
	for _, other := range state.Countries {
		if other.ID == country {
			continue
		}
		if rel := stats.RelationWith(other.ID); rel > best {
			best = rel
			friend = other.ID
		}
	}
	if friend == "" {
		return "", ""
	}
	for _, d := range state.Deals {
		if d.Proposer == country && d.Receiver == friend &&
			(d.Status == game.DealProposed || d.Status == game.DealActive) {
			return "", ""
		}
	}
	for res, qty := range stats.Resources {
		if qty > workingReserve*5 {
			return friend, res
		}
	}
	return "", ""
}
