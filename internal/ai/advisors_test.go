package ai

import (
	"testing"

	"github.com/talgya/statecraft/internal/game"
)

func advisorState() (*game.GameState, game.CountryID, game.CountryID) {
	g := game.NewGameState(game.NewGameID())
	self := &game.Country{ID: game.NewCountryID(), Name: "Veridia"}
	other := &game.Country{ID: game.NewCountryID(), Name: "Ostmark"}
	g.AddCountry(self, &game.CountryStats{
		Budget: 2000, TechnologyLevel: 2, InfrastructureLevel: 1, MilitaryStrength: 800,
		Population:        8_000_000,
		Resources:         map[string]float64{"electronics": 50, "rare_earths": 50, "steel": 50, "oil": 50, "timber": 50},
		MilitaryEquipment: map[string]int{}, DiplomaticRelations: map[game.CountryID]float64{},
	})
	g.AddCountry(other, &game.CountryStats{
		Budget: 500, TechnologyLevel: 1, InfrastructureLevel: 1, MilitaryStrength: 300,
		Population:        4_000_000,
		Resources:         map[string]float64{},
		MilitaryEquipment: map[string]int{}, DiplomaticRelations: map[game.CountryID]float64{},
	})
	g.AddCity(&game.City{ID: game.NewCityID(), Name: "Ostport", OwnerID: other.ID, Population: 300_000})
	return g, self.ID, other.ID
}

func TestEconomicAdvise_TechnologyFocus(t *testing.T) {
	g, self, _ := advisorState()
	actions := EconomicAI{}.Advise(g, self, StrategicIntent{Focus: FocusTechnology}, Balanced)
	if len(actions) != 1 || actions[0].Research == nil {
		t.Fatalf("expected one research action, got %v", actions)
	}
	if actions[0].Type != game.ActionResearch || actions[0].Status != game.StatusPending {
		t.Errorf("action = %+v", actions[0])
	}
}

func TestEconomicAdvise_BlackMarketTopUp(t *testing.T) {
	g, self, _ := advisorState()
	g.Stats[self].Resources["electronics"] = 5 // below working reserve

	dishonest := Personality{Aggression: 0.3, Cooperativeness: 0.5, RiskTolerance: 0.5, Honesty: 0.2}
	actions := EconomicAI{}.Advise(g, self, StrategicIntent{Focus: FocusEconomy}, dishonest)

	var trade *game.GameAction
	for _, a := range actions {
		if a.Trade != nil {
			trade = a
		}
	}
	if trade == nil {
		t.Fatal("dishonest country with a deficit should buy on the black market")
	}
	if trade.Trade.Resource != "electronics" || trade.Trade.Quantity != 15 {
		t.Errorf("trade = %+v", trade.Trade)
	}

	honest := Personality{Honesty: 0.9, Cooperativeness: 0.5}
	for _, a := range (EconomicAI{}).Advise(g, self, StrategicIntent{Focus: FocusEconomy}, honest) {
		if a.Trade != nil {
			t.Error("honest country should not touch the black market")
		}
	}
}

func TestMilitaryAdvise_AttackSelection(t *testing.T) {
	g, self, other := advisorState()
	g.Stats[self].DiplomaticRelations[other] = 20 // hostile

	actions := MilitaryAI{}.Advise(g, self, StrategicIntent{Focus: FocusMilitary}, Warmonger)
	if len(actions) != 1 || actions[0].Attack == nil {
		t.Fatalf("expected one attack, got %v", actions)
	}
	atk := actions[0].Attack
	if atk.Target != other {
		t.Errorf("target = %s, want %s", atk.Target, other)
	}
	if atk.AllocationPct < 30 || atk.AllocationPct > 70 {
		t.Errorf("allocation %.1f outside the advisor's band", atk.AllocationPct)
	}
}

func TestMilitaryAdvise_BuildupWhenNoTarget(t *testing.T) {
	g, self, _ := advisorState() // neutral relations, nothing to attack
	actions := MilitaryAI{}.Advise(g, self, StrategicIntent{Focus: FocusMilitary}, Warmonger)
	if len(actions) != 1 || actions[0].Buildup == nil {
		t.Fatalf("expected a buildup, got %v", actions)
	}
	if actions[0].Buildup.Units != 5+int(Warmonger.Aggression*10) {
		t.Errorf("units = %d", actions[0].Buildup.Units)
	}
}

func TestMilitaryAdvise_RespectsFocus(t *testing.T) {
	g, self, other := advisorState()
	g.Stats[self].DiplomaticRelations[other] = 10
	if actions := (MilitaryAI{}).Advise(g, self, StrategicIntent{Focus: FocusEconomy}, Warmonger); actions != nil {
		t.Errorf("military advisor acted outside its focus: %v", actions)
	}
}

func TestDiplomacyAdvise_BoostAndDeal(t *testing.T) {
	g, self, other := advisorState()
	g.Stats[self].DiplomaticRelations[other] = 30
	g.Stats[self].Resources["grain"] = 200 // exportable surplus

	// A cooperative country boosts its worst relation and proposes a deal
	// once a friend exists.
	actions, deals := DiplomacyAI{}.Advise(g, self, StrategicIntent{Focus: FocusDiplomacy}, Diplomat)
	if len(actions) != 1 || actions[0].Relations == nil {
		t.Fatalf("expected one relations action, got %v", actions)
	}
	if actions[0].Relations.Target != other {
		t.Errorf("boost target = %s, want worst relation %s", actions[0].Relations.Target, other)
	}
	if len(deals) != 0 {
		t.Errorf("no friend above the deal threshold yet, got %d deals", len(deals))
	}

	g.Stats[self].DiplomaticRelations[other] = 75
	_, deals = DiplomacyAI{}.Advise(g, self, StrategicIntent{Focus: FocusDiplomacy}, Diplomat)
	if len(deals) != 1 {
		t.Fatalf("expected one deal proposal, got %d", len(deals))
	}
	d := deals[0]
	if d.Receiver != other || d.Status != game.DealProposed || d.ExpiryTurn == nil {
		t.Errorf("deal = %+v", d)
	}

	// A matching open proposal suppresses a duplicate.
	g.AddDeal(d)
	_, deals = DiplomacyAI{}.Advise(g, self, StrategicIntent{Focus: FocusDiplomacy}, Diplomat)
	if len(deals) != 0 {
		t.Errorf("duplicate proposal emitted: %d deals", len(deals))
	}
}

func TestEvaluateProposal(t *testing.T) {
	g, self, other := advisorState()
	deal := &game.Deal{Proposer: self, Receiver: other}

	g.Stats[other].DiplomaticRelations[self] = 45
	if (DiplomacyAI{}).EvaluateProposal(g, deal, Warmonger) {
		t.Error("uncooperative receiver accepted on thin goodwill")
	}
	if !(DiplomacyAI{}.EvaluateProposal(g, deal, Diplomat)) {
		t.Error("cooperative receiver rejected a reasonable deal")
	}
}
