// Defense allocation via the model — a single bounded integer pulled out
// of free-form text.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// DefaultAllocation is the safe fallback when the model's reply yields
// no usable number.
const DefaultAllocation = 50.0

// DefenseSituation is the state digest sent when a human attack triggers
// an LLM defense decision.
type DefenseSituation struct {
	DefenderName     string
	CityName         string
	CityValue        float64
	OwnStrength      float64
	AttackerStrength float64 // attacker's total effective strength, not their allocation
	TechGap          int     // defender tech minus attacker tech
}

const defenseSystemPrompt = `You decide what fraction of a country's military to commit to defending a city under attack in a turn-based strategy game. Consider the city's value, the relative strengths, and the technology gap. Be unpredictable — a rigid formula would be exploited.

Respond with a single integer between 30 and 90: the percentage of effective military strength to commit. No other text.`

// DefenseAllocation asks the model for a defense commitment percentage.
// The attacker's chosen allocation is deliberately absent from the
// situation — the defender decides blind.
func DefenseAllocation(ctx context.Context, c Completer, sit DefenseSituation) (float64, error) {
	user := fmt.Sprintf(
		"%s must defend %s (strategic value %.1f).\nOwn effective strength: %.0f. Attacker's total effective strength: %.0f. Technology gap: %+d.\nWhat percentage do you commit?",
		sit.DefenderName, sit.CityName, sit.CityValue,
		sit.OwnStrength, sit.AttackerStrength, sit.TechGap,
	)

	raw, err := c.Complete(ctx, defenseSystemPrompt, user, 16)
	if err != nil {
		return 0, fmt.Errorf("defense allocation: %w", err)
	}
	return ParseAllocation(raw), nil
}

var intPattern = regexp.MustCompile(`-?\d+`)

// ParseAllocation extracts the first integer from a model reply. On any
// failure it returns DefaultAllocation; range clamping is the caller's
// policy.
func ParseAllocation(raw string) float64 {
	match := intPattern.FindString(strings.TrimSpace(StripFences(raw)))
	if match == "" {
		slog.Warn("defense reply without a number, using default", "raw", raw)
		return DefaultAllocation
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		slog.Warn("defense reply unparseable, using default", "raw", raw)
		return DefaultAllocation
	}
	return float64(n)
}
