package llm

import (
	"testing"

	"github.com/talgya/statecraft/internal/game"
)

const (
	idA = game.CountryID("11111111-2222-3333-4444-555555555555")
	idB = game.CountryID("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	idC = game.CountryID("99999999-8888-7777-6666-555555555555")
)

func TestNormalizeBatch_WrappedIdentifiers(t *testing.T) {
	// Models decorate identifiers with names and punctuation; the
	// normalizer has to recover the bare id.
	raw := `{"countries":[
		{"countryId":"Veridia (` + string(idA) + `)","focus":"economy","rationale":"r","action_plan":["p"]},
		{"countryId":"` + string(idB) + `,","focus":"military","rationale":"r","action_plan":["p"]}
	]}`

	got := NormalizeBatch(raw, []game.CountryID{idA, idB})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(got), got)
	}
	if got[idA].Focus != "economy" || got[idB].Focus != "military" {
		t.Errorf("focus mismatch: %+v", got)
	}
}

func TestNormalizeBatch_CodeFences(t *testing.T) {
	body := `{"countries":[{"countryId":"` + string(idA) + `","focus":"diplomacy","rationale":"hold the line","action_plan":["a","b"]}]}`
	fenced := "```json\n" + body + "\n```"

	plain := NormalizeBatch(body, []game.CountryID{idA})
	wrapped := NormalizeBatch(fenced, []game.CountryID{idA})
	if len(plain) != 1 || len(wrapped) != 1 {
		t.Fatalf("expected 1 entry each, got %d and %d", len(plain), len(wrapped))
	}
	if plain[idA].Focus != wrapped[idA].Focus || plain[idA].Rationale != wrapped[idA].Rationale {
		t.Errorf("fenced and unfenced responses disagree: %+v vs %+v", plain[idA], wrapped[idA])
	}
}

func TestNormalizeBatch_UppercaseIdentifier(t *testing.T) {
	upper := "AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE"
	raw := `{"countries":[{"countryId":"` + upper + `","focus":"economy","rationale":"r","action_plan":[]}]}`
	got := NormalizeBatch(raw, []game.CountryID{idB})
	if _, ok := got[idB]; !ok {
		t.Errorf("uppercase identifier should normalize to requested id, got %v", got)
	}
}

func TestNormalizeBatch_DiscardsUnrequested(t *testing.T) {
	raw := `{"countries":[
		{"countryId":"` + string(idA) + `","focus":"economy","rationale":"r","action_plan":[]},
		{"countryId":"` + string(idC) + `","focus":"military","rationale":"r","action_plan":[]}
	]}`

	got := NormalizeBatch(raw, []game.CountryID{idA})
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if _, ok := got[idC]; ok {
		t.Error("entry for an unrequested country survived normalization")
	}
}

func TestNormalizeBatch_MalformedResponse(t *testing.T) {
	for _, raw := range []string{
		"",
		"I cannot produce JSON today.",
		`{"countries": "not an array"}`,
		`{"countries":[{`,
	} {
		got := NormalizeBatch(raw, []game.CountryID{idA})
		if got == nil {
			t.Errorf("normalizer returned nil map for %q", raw)
		}
		if len(got) != 0 {
			t.Errorf("expected empty result for %q, got %v", raw, got)
		}
	}
}

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		`{"a":1}`:                 `{"a":1}`,
	}
	for in, want := range cases {
		if got := StripFences(in); got != want {
			t.Errorf("StripFences(%q) = %q, want %q", in, got, want)
		}
	}
}
