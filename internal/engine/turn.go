package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/statecraft/internal/ai"
	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/llm"
)

// Per-turn baseline budget income.
const (
	baseIncome      = 150.0
	incomePerInfra  = 25.0
	planningTimeout = 45 * time.Second
)

// Engine sequences one game's turns. Planning for different countries
// runs concurrently — the advisors only read state — and every mutation
// is merged back sequentially, so the single-writer invariant on
// GameState holds for the whole turn.
type Engine struct {
	State    *game.GameState
	Registry *economy.Registry
	Market   *economy.Market
	Resolver *Resolver
	Deals    DealExecutor

	// Planners for AI-controlled countries, in country order.
	Planners []*ai.Planner

	// Completer may be nil: the engine then plans every country with
	// rules alone.
	Completer llm.Completer

	diplomacy ai.DiplomacyAI
	economic  ai.EconomicAI
	military  ai.MilitaryAI
}

// New assembles an engine over existing state.
func New(state *game.GameState, reg *economy.Registry, completer llm.Completer) *Engine {
	market := economy.NewMarket(reg)
	return &Engine{
		State:     state,
		Registry:  reg,
		Market:    market,
		Resolver:  &Resolver{Market: market, Defense: ai.DefenseAI{Completer: completer}},
		Completer: completer,
	}
}

// AddPlanner registers an AI planner for a country.
func (e *Engine) AddPlanner(p *ai.Planner) {
	e.Planners = append(e.Planners, p)
}

// plannedTurn is one country's planning output, merged sequentially.
type plannedTurn struct {
	country game.CountryID
	intent  ai.StrategicIntent
	actions []*game.GameAction
	deals   []*game.Deal
}

// RunTurn executes one full turn: AI planning, action resolution, queued
// combat, deal execution, income and decay, report. Player actions
// already submitted to the state resolve alongside the AI's in the same
// pass. The turn counter is not advanced — the caller snapshots the
// finished turn first, then calls State.AdvanceTurn.
func (e *Engine) RunTurn(ctx context.Context) {
	turn := e.State.Turn
	slog.Info("turn starting", "game", e.State.GameID, "turn", turn)

	e.refreshMarketStock()

	analyses := e.batchAnalyses(ctx)
	planned := e.planConcurrently(analyses)

	// Sequential merge preserves the single-writer invariant.
	for _, p := range planned {
		for _, a := range p.actions {
			e.State.SubmitAction(a)
		}
		for _, d := range p.deals {
			e.State.AddDeal(d)
			e.State.AddEvent("deal", "deal proposed by "+countryName(e.State, d.Proposer))
		}
		slog.Debug("country planned", "country", countryName(e.State, p.country),
			"focus", p.intent.Focus, "actions", len(p.actions), "deals", len(p.deals))
	}

	e.evaluateProposals()

	for _, action := range e.State.PendingActions() {
		res := e.Resolver.Resolve(ctx, e.State, action)
		if res.Status == game.StatusFailed {
			slog.Debug("action failed", "country", countryName(e.State, action.CountryID),
				"type", action.Type, "reason", res.Reason)
		}
	}

	e.Resolver.ResolveQueuedCombat(ctx, e.State)
	e.Deals.ProcessTurn(e.State)
	e.collectIncome()
	e.refreshMarketStock()
	e.report()
}

// batchAnalyses consults the model once for all AI countries. Any
// failure degrades to rule-based planning for everyone — a stalled or
// garbled model response never stalls the turn.
func (e *Engine) batchAnalyses(ctx context.Context) map[game.CountryID]llm.StrategicAnalysis {
	if e.Completer == nil || len(e.Planners) == 0 {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, planningTimeout)
	defer cancel()

	summaries := make([]llm.CountrySummary, 0, len(e.Planners))
	for _, p := range e.Planners {
		summaries = append(summaries, p.Summary(e.State))
	}

	analyses, err := llm.BatchStrategy(cctx, e.Completer, summaries)
	if err != nil {
		slog.Warn("batch planning failed, all countries fall back to rules", "error", err)
		return nil
	}
	return analyses
}

// planConcurrently runs each country's planner and advisors in parallel.
// Planning only reads state; nothing is written until the merge.
func (e *Engine) planConcurrently(analyses map[game.CountryID]llm.StrategicAnalysis) []plannedTurn {
	results := make([]plannedTurn, len(e.Planners))

	var wg sync.WaitGroup
	for i, p := range e.Planners {
		wg.Add(1)
		go func(i int, p *ai.Planner) {
			defer wg.Done()
			results[i] = e.planCountry(p, analyses)
		}(i, p)
	}
	wg.Wait()

	return results
}

func (e *Engine) planCountry(p *ai.Planner, analyses map[game.CountryID]llm.StrategicAnalysis) plannedTurn {
	id := p.CountryID()

	var intent ai.StrategicIntent
	if analysis, ok := analyses[id]; ok {
		intent = p.IntentFromAnalysis(e.State, analysis)
	} else {
		intent = p.PlanIntent(e.State)
	}

	pers := p.Personality()
	out := plannedTurn{country: id, intent: intent}

	diploActions, deals := e.diplomacy.Advise(e.State, id, intent, pers)
	out.actions = append(out.actions, diploActions...)
	out.deals = deals
	out.actions = append(out.actions, e.economic.Advise(e.State, id, intent, pers)...)
	out.actions = append(out.actions, e.military.Advise(e.State, id, intent, pers)...)
	return out
}

// evaluateProposals lets AI receivers accept or reject deals proposed
// this turn. Proposals to the human player stay proposed until answered
// out of band.
func (e *Engine) evaluateProposals() {
	for _, d := range e.State.Deals {
		if d.Status != game.DealProposed {
			continue
		}
		receiver := e.State.Country(d.Receiver)
		if receiver == nil || receiver.PlayerControlled {
			continue
		}
		planner := e.plannerFor(d.Receiver)
		if planner == nil {
			continue
		}
		if e.diplomacy.EvaluateProposal(e.State, d, planner.Personality()) {
			e.State.SetDealStatus(d, game.DealAccepted)
			e.State.AddEvent("deal", countryName(e.State, d.Receiver)+" accepted a deal from "+countryName(e.State, d.Proposer))
		} else {
			e.State.SetDealStatus(d, game.DealRejected)
			e.State.AddEvent("deal", countryName(e.State, d.Receiver)+" rejected a deal from "+countryName(e.State, d.Proposer))
		}
	}
	e.Deals.ActivateAccepted(e.State)
}

func (e *Engine) plannerFor(id game.CountryID) *ai.Planner {
	for _, p := range e.Planners {
		if p.CountryID() == id {
			return p
		}
	}
	return nil
}

// collectIncome applies per-turn city yields, baseline budget income,
// and storage decay for every country.
func (e *Engine) collectIncome() {
	for _, c := range e.State.Countries {
		stats := e.State.Stats[c.ID]
		next := stats.Clone()

		next.Budget += baseIncome + incomePerInfra*float64(next.InfrastructureLevel)
		for _, city := range e.State.CitiesOf(c.ID) {
			for res, qty := range city.Yields {
				next.Resources[res] += qty
			}
		}
		e.Market.ApplyDecay(next.Resources)

		e.State.WithUpdatedStats(c.ID, next)
	}
}

// refreshMarketStock recomputes global stock per resource from every
// country's holdings. Market prices for the next pricing consumer
// reflect true scarcity.
func (e *Engine) refreshMarketStock() {
	for _, id := range e.Registry.IDs() {
		total := 0.0
		for _, stats := range e.State.Stats {
			total += stats.Resource(id)
		}
		e.Market.SetStock(id, total)
	}
}
