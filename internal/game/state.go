package game

import (
	"fmt"
	"log/slog"
)

// Event is a notable occurrence during turn resolution, persisted with
// snapshots and surfaced to observers.
type Event struct {
	Turn        int    `json:"turn" db:"turn"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "combat", "economy", "diplomacy", "deal", "ai"
}

// Operation records one named state mutation. Every change to GameState
// goes through a method that appends here, so a turn can be audited or
// replayed mutation by mutation.
type Operation struct {
	Turn    int       `json:"turn"`
	Name    string    `json:"name"`
	Country CountryID `json:"country,omitempty"`
	Detail  string    `json:"detail,omitempty"`
}

// GameState is the authoritative mutable container for one game's current
// turn. Owned exclusively by the turn-resolution pipeline while a turn is
// processing; reads within a turn always observe the latest applied
// mutation.
type GameState struct {
	GameID    GameID                     `json:"game_id"`
	Turn      int                        `json:"turn"`
	Countries []*Country                 `json:"countries"`
	Stats     map[CountryID]*CountryStats `json:"stats"`
	Cities    []*City                    `json:"cities"`
	Actions   []*GameAction              `json:"actions"`
	Deals     []*Deal                    `json:"deals"`

	Events []Event     `json:"events"`
	Ops    []Operation `json:"ops"`
}

// NewGameState creates an empty state for turn 1.
func NewGameState(id GameID) *GameState {
	return &GameState{
		GameID: id,
		Turn:   1,
		Stats:  make(map[CountryID]*CountryStats),
	}
}

// Country returns the static country record for an id, or nil.
func (g *GameState) Country(id CountryID) *Country {
	for _, c := range g.Countries {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// City returns the city record for an id, or nil.
func (g *GameState) City(id CityID) *City {
	for _, c := range g.Cities {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// CitiesOf returns all cities currently owned by a country.
func (g *GameState) CitiesOf(id CountryID) []*City {
	var owned []*City
	for _, c := range g.Cities {
		if c.OwnerID == id {
			owned = append(owned, c)
		}
	}
	return owned
}

// PendingActions returns submitted actions not yet resolved this turn.
func (g *GameState) PendingActions() []*GameAction {
	var pending []*GameAction
	for _, a := range g.Actions {
		if a.Status == StatusPending {
			pending = append(pending, a)
		}
	}
	return pending
}

// ActiveDeals returns deals in the active lifecycle state.
func (g *GameState) ActiveDeals() []*Deal {
	var active []*Deal
	for _, d := range g.Deals {
		if d.Status == DealActive {
			active = append(active, d)
		}
	}
	return active
}

// record appends a named operation to the turn's mutation log.
func (g *GameState) record(name string, country CountryID, detail string) {
	g.Ops = append(g.Ops, Operation{Turn: g.Turn, Name: name, Country: country, Detail: detail})
}

// AddEvent appends a categorized event for the current turn.
func (g *GameState) AddEvent(category, description string) {
	g.Events = append(g.Events, Event{Turn: g.Turn, Description: description, Category: category})
}

// WithUpdatedStats installs a new stats record for a country. Replace
// semantics — the record is swapped whole, never merged. Panics when the
// record violates the non-negative budget/resource invariant: all paths
// feeding mutations are expected to respect pricing's guarantees, so a
// violation is a programming error, not a game condition.
func (g *GameState) WithUpdatedStats(id CountryID, stats *CountryStats) {
	mustValidStats(id, stats)
	g.Stats[id] = stats
	g.record("update_stats", id, "")
}

// AddCountry registers a country and its opening stats.
func (g *GameState) AddCountry(c *Country, stats *CountryStats) {
	mustValidStats(c.ID, stats)
	g.Countries = append(g.Countries, c)
	g.Stats[c.ID] = stats
	g.record("add_country", c.ID, c.Name)
}

// AddCity registers a city.
func (g *GameState) AddCity(c *City) {
	g.Cities = append(g.Cities, c)
	g.record("add_city", c.OwnerID, c.Name)
}

// SubmitAction appends a pending action. Both the player path and the AI
// path enter resolution through here.
func (g *GameState) SubmitAction(a *GameAction) {
	g.Actions = append(g.Actions, a)
	g.record("submit_action", a.CountryID, string(a.Type))
}

// SetActionStatus transitions an action out of pending.
func (g *GameState) SetActionStatus(a *GameAction, status ActionStatus) {
	a.Status = status
	g.record("action_status", a.CountryID, fmt.Sprintf("%s → %s", a.Type, status))
}

// AddDeal registers a deal.
func (g *GameState) AddDeal(d *Deal) {
	g.Deals = append(g.Deals, d)
	g.record("add_deal", d.Proposer, string(d.Status))
}

// SetDealStatus transitions a deal's lifecycle state.
func (g *GameState) SetDealStatus(d *Deal, status DealStatus) {
	d.Status = status
	g.record("deal_status", d.Proposer, string(status))
}

// TransferCity moves a city and its population to a new owner. Used by
// combat capture and city-transfer deal commitments.
func (g *GameState) TransferCity(id CityID, to CountryID) {
	city := g.City(id)
	if city == nil {
		panic(fmt.Sprintf("game: transfer of unknown city %s", id))
	}
	from := city.OwnerID
	city.OwnerID = to
	city.UnderAttack = false
	g.record("transfer_city", to, fmt.Sprintf("%s from %s", city.Name, from))
}

// SetCityUnderAttack flags or clears a city's under-attack marker.
func (g *GameState) SetCityUnderAttack(id CityID, under bool) {
	city := g.City(id)
	if city == nil {
		panic(fmt.Sprintf("game: flagging unknown city %s", id))
	}
	city.UnderAttack = under
	g.record("city_under_attack", city.OwnerID, fmt.Sprintf("%s=%t", city.Name, under))
}

// AdvanceTurn increments the turn counter and clears the resolved action
// list and the previous turn's operation log.
func (g *GameState) AdvanceTurn() {
	g.Turn++
	g.Actions = nil
	g.Ops = nil
	slog.Debug("turn advanced", "game", g.GameID, "turn", g.Turn)
}

// mustValidStats fails fast on invariant violations: budget and every
// resource quantity must be non-negative after any mutation.
func mustValidStats(id CountryID, s *CountryStats) {
	if s == nil {
		panic(fmt.Sprintf("game: nil stats for country %s", id))
	}
	if s.Budget < 0 {
		panic(fmt.Sprintf("game: negative budget %.2f for country %s", s.Budget, id))
	}
	for res, qty := range s.Resources {
		if qty < 0 {
			panic(fmt.Sprintf("game: negative %s quantity %.2f for country %s", res, qty, id))
		}
	}
}
