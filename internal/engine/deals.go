package engine

import (
	"fmt"

	"github.com/talgya/statecraft/internal/game"
)

// DealExecutor advances multi-turn agreements: every active deal emits a
// progress event each turn, and deals whose expiry turn is reached are
// completed.
//
// Commitments are not verified against current resource levels before a
// trade tick counts — terms enforcement (availability checks, partial
// fulfillment, violation marking) is a forward extension point, and
// callers must not assume it happens here.
type DealExecutor struct{}

// ProcessTurn advances all active deals for the state's current turn.
func (DealExecutor) ProcessTurn(state *game.GameState) {
	for _, d := range state.ActiveDeals() {
		state.AddEvent("deal", fmt.Sprintf("trade tick: %s ↔ %s (%d commitments)",
			countryName(state, d.Proposer), countryName(state, d.Receiver), len(d.Commitments)))

		if d.Expired(state.Turn) {
			state.SetDealStatus(d, game.DealCompleted)
			state.AddEvent("deal", fmt.Sprintf("deal between %s and %s ran to term",
				countryName(state, d.Proposer), countryName(state, d.Receiver)))
		}
	}
}

// ActivateAccepted moves deals that were accepted this turn into the
// active state so they begin ticking next ProcessTurn.
func (DealExecutor) ActivateAccepted(state *game.GameState) {
	for _, d := range state.Deals {
		if d.Status == game.DealAccepted {
			state.SetDealStatus(d, game.DealActive)
		}
	}
}
