package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// report logs the end-of-turn summary in the style of a daily digest:
// aggregate numbers first, then the turn's notable events.
func (e *Engine) report() {
	totalBudget := 0.0
	totalMilitary := 0.0
	var totalPop int64
	for _, stats := range e.State.Stats {
		totalBudget += stats.Budget
		totalMilitary += stats.MilitaryStrength
		totalPop += stats.Population
	}

	eventCounts := make(map[string]int)
	turnEvents := 0
	for _, ev := range e.State.Events {
		if ev.Turn == e.State.Turn {
			eventCounts[ev.Category]++
			turnEvents++
		}
	}

	slog.Info("turn report",
		"game", e.State.GameID,
		"turn", e.State.Turn,
		"countries", len(e.State.Countries),
		"population", humanize.Comma(totalPop),
		"total_budget", humanize.CommafWithDigits(totalBudget, 0),
		"total_military", humanize.CommafWithDigits(totalMilitary, 0),
		"active_deals", len(e.State.ActiveDeals()),
		"events", turnEvents,
		"events_combat", eventCounts["combat"],
		"events_deal", eventCounts["deal"],
		"events_economy", eventCounts["economy"],
		"events_diplomacy", eventCounts["diplomacy"],
	)

	for _, ev := range e.State.Events {
		if ev.Turn == e.State.Turn && (ev.Category == "combat" || ev.Category == "deal") {
			slog.Info("event", "category", ev.Category, "description", ev.Description)
		}
	}

	for _, c := range e.State.Countries {
		stats := e.State.Stats[c.ID]
		slog.Debug("country report",
			"country", c.Name,
			"budget", humanize.CommafWithDigits(stats.Budget, 0),
			"military", fmt.Sprintf("%.0f", stats.MilitaryStrength),
			"tech", stats.TechnologyLevel,
			"infra", stats.InfrastructureLevel,
			"cities", len(e.State.CitiesOf(c.ID)),
		)
	}
}
