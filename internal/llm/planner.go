// Batch strategic planning — one model call covers many countries, and a
// defensive normalizer turns whatever comes back into validated game data.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/talgya/statecraft/internal/game"
)

// StrategicAnalysis is the model's per-country assessment.
type StrategicAnalysis struct {
	Focus      string   `json:"focus"`
	Rationale  string   `json:"rationale"`
	ActionPlan []string `json:"action_plan"`
}

// CountrySummary is the state digest included in the batch prompt for
// one country.
type CountrySummary struct {
	ID               game.CountryID
	Name             string
	Budget           float64
	MilitaryStrength float64
	TechnologyLevel  int
	Infrastructure   int
	Cities           int
	Personality      string
}

const plannerSystemPrompt = `You are the strategic advisor for several AI-controlled countries in a turn-based geopolitical strategy game. For each country you receive a state summary; produce one strategic assessment per country.

Respond ONLY with a JSON object of the form:
{
  "countries": [
    {"countryId": "<the country's id exactly as given>", "focus": "economy|military|diplomacy|technology", "rationale": "one sentence", "action_plan": ["step", "step"]}
  ]
}

Include every country you were given and no others. No markdown fences, no prose outside the JSON.`

// BatchStrategy asks the model for a strategic analysis of every listed
// country in a single call, then normalizes the reply. The returned map
// contains only requested countries that validated; a missing entry
// means the caller falls back to rule-based planning for that country.
func BatchStrategy(ctx context.Context, c Completer, summaries []CountrySummary) (map[game.CountryID]StrategicAnalysis, error) {
	if len(summaries) == 0 {
		return map[game.CountryID]StrategicAnalysis{}, nil
	}

	prompt := buildBatchPrompt(summaries)
	raw, err := c.Complete(ctx, plannerSystemPrompt, prompt, 1024)
	if err != nil {
		return nil, fmt.Errorf("batch strategy: %w", err)
	}

	requested := make([]game.CountryID, len(summaries))
	for i, s := range summaries {
		requested[i] = s.ID
	}
	return NormalizeBatch(raw, requested), nil
}

func buildBatchPrompt(summaries []CountrySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Assess the following %d countries this turn.\n\n", len(summaries))
	for _, s := range summaries {
		fmt.Fprintf(&b, "Country %s (%s)\n", s.ID, s.Name)
		fmt.Fprintf(&b, "- budget: %.0f | military: %.0f | tech: %d | infrastructure: %d | cities: %d\n",
			s.Budget, s.MilitaryStrength, s.TechnologyLevel, s.Infrastructure, s.Cities)
		if s.Personality != "" {
			fmt.Fprintf(&b, "- temperament: %s\n", s.Personality)
		}
		b.WriteString("\n")
	}
	b.WriteString("Respond with the JSON object described in your instructions.")
	return b.String()
}

// batchEntry mirrors one element of the model's countries array. The
// countryId field frequently arrives wrapped in extra text — names,
// parentheses, trailing punctuation — so it is normalized by shape, not
// trusted verbatim.
type batchEntry struct {
	CountryID  string   `json:"countryId"`
	Focus      string   `json:"focus"`
	Rationale  string   `json:"rationale"`
	ActionPlan []string `json:"action_plan"`
}

// uuidPattern matches the fixed-length hexadecimal identifier shape used
// for country ids, anywhere inside a larger string.
var uuidPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// NormalizeBatch turns a raw model response into a map keyed by country
// id, keeping only entries whose extracted id matches one of the
// requested countries. Never panics; irrecoverable parses yield an empty
// map and a warning.
func NormalizeBatch(raw string, requested []game.CountryID) map[game.CountryID]StrategicAnalysis {
	result := make(map[game.CountryID]StrategicAnalysis)

	wanted := make(map[game.CountryID]bool, len(requested))
	for _, id := range requested {
		wanted[game.CountryID(strings.ToLower(string(id)))] = true
	}

	cleaned := StripFences(raw)

	var parsed struct {
		Countries []batchEntry `json:"countries"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		slog.Warn("batch response unparseable", "error", err, "length", len(raw))
		return result
	}

	for _, entry := range parsed.Countries {
		match := uuidPattern.FindString(entry.CountryID)
		if match == "" {
			slog.Warn("batch entry without recognizable id", "field", entry.CountryID)
			continue
		}
		id := game.CountryID(strings.ToLower(match))
		if !wanted[id] {
			slog.Warn("batch entry for unrequested country discarded", "id", id)
			continue
		}
		result[id] = StrategicAnalysis{
			Focus:      strings.ToLower(strings.TrimSpace(entry.Focus)),
			Rationale:  entry.Rationale,
			ActionPlan: entry.ActionPlan,
		}
	}

	return result
}

// StripFences removes surrounding markdown code-fence markers that
// models add despite instructions.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
