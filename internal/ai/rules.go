// Focus rules — the strategic planner's condition → focus pairs,
// compiled to expr bytecode once per country and evaluated every turn.
package ai

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// FocusTag is a turn-scoped decision emphasis.
type FocusTag string

const (
	FocusEconomy    FocusTag = "economy"
	FocusMilitary   FocusTag = "military"
	FocusDiplomacy  FocusTag = "diplomacy"
	FocusTechnology FocusTag = "technology"
)

// StrategicIntent is the planner's output for one country and one turn:
// a focus plus a free-text rationale. Consumed by the advisors within
// the same turn, never persisted.
type StrategicIntent struct {
	Focus     FocusTag
	Rationale string
}

// RuleEnv exposes the numbers a focus rule condition may consult.
type RuleEnv struct {
	Budget          float64
	TechLevel       int
	InfraLevel      int
	Military        float64
	Population      int64
	Cities          int
	AvgRelation     float64
	WeakestRelation float64
	ResourceShort   bool // any pricing-relevant resource below a working reserve
}

// FocusRule is one condition → focus pair. Higher priority evaluates
// first; the first matching rule decides the intent.
type FocusRule struct {
	Name         string
	Priority     int
	ConditionSrc string
	Focus        FocusTag
	Rationale    string
	program      *vm.Program
}

// CompileFocusRules generates the planner's rule set from personality
// weights. Conditions are built via fmt.Sprintf with interpolated
// values, so the compiler never generates invalid expr.
func CompileFocusRules(p Personality) ([]*FocusRule, error) {
	p.Validate()

	rules := []*FocusRule{
		{
			Name:         "economy-rescue",
			Priority:     900,
			ConditionSrc: `Budget < 300`,
			Focus:        FocusEconomy,
			Rationale:    "treasury nearly empty, rebuilding the economy",
		},
		{
			Name:         "resupply",
			Priority:     850,
			ConditionSrc: `ResourceShort && Budget >= 400`,
			Focus:        FocusEconomy,
			Rationale:    "critical resources short, restocking before they gate everything else",
		},
		{
			Name:         "mend-relations",
			Priority:     int(lerp(250, 700, p.Cooperativeness)),
			ConditionSrc: fmt.Sprintf(`WeakestRelation < %.0f`, lerp(20, 45, p.Cooperativeness)),
			Focus:        FocusDiplomacy,
			Rationale:    "a relationship is deteriorating toward open hostility",
		},
		{
			Name:         "press-advantage",
			Priority:     int(lerp(300, 800, p.Aggression)),
			ConditionSrc: fmt.Sprintf(`Military >= %.0f && Budget >= %.0f && WeakestRelation < 40`, lerp(800, 400, p.Aggression), lerp(1000, 500, p.RiskTolerance)),
			Focus:        FocusMilitary,
			Rationale:    "strong position against a hostile neighbor",
		},
		{
			Name:         "tech-push",
			Priority:     int(lerp(350, 600, p.RiskTolerance)),
			ConditionSrc: fmt.Sprintf(`TechLevel < 6 && Budget >= %.0f`, lerp(900, 500, p.RiskTolerance)),
			Focus:        FocusTechnology,
			Rationale:    "surplus budget best spent on the technology gap",
		},
		{
			Name:         "default-economy",
			Priority:     100,
			ConditionSrc: `true`,
			Focus:        FocusEconomy,
			Rationale:    "nothing pressing, compounding the economy",
		},
	}

	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}

// EvaluateFocus runs the rule set against the environment and returns
// the first matching rule's intent. The trailing always-true rule
// guarantees a result.
func EvaluateFocus(rules []*FocusRule, env RuleEnv) StrategicIntent {
	for _, r := range rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			// Compiled from a fixed template; a runtime error here is a
			// bug, but one rule must not sink the whole plan.
			continue
		}
		if match, ok := result.(bool); ok && match {
			return StrategicIntent{Focus: r.Focus, Rationale: r.Rationale}
		}
	}
	return StrategicIntent{Focus: FocusEconomy, Rationale: "fallback"}
}

func lerp(min, max, t float64) float64 {
	return min + (max-min)*t
}
