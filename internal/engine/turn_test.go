package engine

import (
	"context"
	"testing"

	"github.com/talgya/statecraft/internal/ai"
	"github.com/talgya/statecraft/internal/economy"
	"github.com/talgya/statecraft/internal/game"
)

func turnEngine(t *testing.T, completer *recordingCompleter) *Engine {
	t.Helper()
	f := newFixture()

	var eng *Engine
	if completer != nil {
		eng = New(f.state, economy.DefaultRegistry(), completer)
	} else {
		eng = New(f.state, economy.DefaultRegistry(), nil)
	}

	p, err := ai.NewPlanner(f.ai, ai.Balanced)
	if err != nil {
		t.Fatal(err)
	}
	eng.AddPlanner(p)
	return eng
}

func TestRunTurn_RulesOnly(t *testing.T) {
	eng := turnEngine(t, nil)
	before := eng.State.Stats[eng.Planners[0].CountryID()].Budget

	eng.RunTurn(context.Background())

	if pending := eng.State.PendingActions(); len(pending) != 0 {
		t.Errorf("%d actions still pending after the turn", len(pending))
	}
	if eng.State.Turn != 1 {
		t.Errorf("RunTurn must not advance the turn counter, got %d", eng.State.Turn)
	}

	// Income always lands, whatever the AI spent.
	after := eng.State.Stats[eng.Planners[0].CountryID()]
	income := baseIncome + incomePerInfra*float64(after.InfrastructureLevel)
	if after.Budget > before+income {
		t.Errorf("budget %.2f exceeds pre-turn budget plus income", after.Budget)
	}
	if after.Budget <= 0 {
		t.Errorf("budget %.2f after a quiet turn", after.Budget)
	}
}

func TestRunTurn_GarbledModelDegradesToRules(t *testing.T) {
	rec := &recordingCompleter{reply: "sorry, I refuse to answer in JSON"}
	eng := turnEngine(t, rec)

	eng.RunTurn(context.Background())

	if len(rec.prompts) == 0 {
		t.Error("batch planning never consulted the model")
	}
	if pending := eng.State.PendingActions(); len(pending) != 0 {
		t.Errorf("garbled model response left %d actions pending", len(pending))
	}
}

func TestRunTurn_PlayerActionResolvesAlongsideAI(t *testing.T) {
	eng := turnEngine(t, nil)
	var player game.CountryID
	for _, c := range eng.State.Countries {
		if c.PlayerControlled {
			player = c.ID
		}
	}

	a := game.NewAction(player, game.ActionResearch, eng.State.Turn)
	a.Research = &game.ResearchPayload{}
	eng.State.SubmitAction(a)

	eng.RunTurn(context.Background())

	if a.Status != game.StatusExecuted {
		t.Errorf("player action status %s, want %s", a.Status, game.StatusExecuted)
	}
	if eng.State.Stats[player].TechnologyLevel != 3 {
		t.Error("player research effect not applied")
	}
}

func TestRefreshMarketStock(t *testing.T) {
	eng := turnEngine(t, nil)
	eng.refreshMarketStock()

	// Two countries each hold 50 steel in the fixture.
	if got := eng.Market.GlobalStock["steel"]; got != 100 {
		t.Errorf("steel stock %.1f, want 100", got)
	}
	if got := eng.Market.GlobalStock["grain"]; got != 0 {
		t.Errorf("grain stock %.1f, want 0", got)
	}
}
