// Package relation classifies exercise-variant names as a percentage of one of
// the four base lifts.
package relation

import (
	"strings"
	"unicode"

	"github.com/misterclayt0n/prescribe/internal/models"
)

// Relation is an exercise expressed as a multiple of a base lift.
type Relation struct {
	Lift       models.BaseLift
	Multiplier float64
}

// Stage is the step of resolution that decided a name.
type Stage int

const (
	StageUnmatched Stage = iota
	StageExact
	StageSpecial
	StageExcluded
	StageFuzzy
)

var stageNames = []string{"unmatched", "exact", "special", "excluded", "fuzzy"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Resolution explains how a name was classified. Relation is nil when no
// load recommendation should be made.
type Resolution struct {
	Relation *Relation
	Stage    Stage
	Rule     string
}

// Resolver is stateless; the zero value is ready to use.
type Resolver struct{}

func New() *Resolver { return &Resolver{} }

// Resolve returns the relation for name, or nil for "no correlation".
func (r *Resolver) Resolve(name string) *Relation {
	return r.Explain(name).Relation
}

// Explain resolves name in fixed order: exact variant tables, the good
// morning special case, the no-correlation exclusions, then fuzzy family
// matching. Exclusions run before fuzzy matching so that e.g. "DB Bench
// Press" never lands on the barbell bench.
func (r *Resolver) Explain(name string) Resolution {
	n := normalize(name)
	if n.lower == "" {
		return Resolution{Stage: StageUnmatched}
	}

	for _, table := range variantTables {
		if m, ok := table.variants[n.lower]; ok {
			return Resolution{
				Relation: &Relation{Lift: table.lift, Multiplier: m},
				Stage:    StageExact,
				Rule:     n.lower,
			}
		}
	}

	if goodMorning.match(n) {
		return Resolution{Relation: &Relation{Lift: models.LiftDeadlift, Multiplier: goodMorningMultiplier}, Stage: StageSpecial, Rule: goodMorning.name}
	}

	if rule, ok := excluded(n); ok {
		return Resolution{Stage: StageExcluded, Rule: rule}
	}

	for _, f := range families {
		if !f.match(n) {
			continue
		}
		for _, m := range f.modifiers {
			if m.match(n) {
				return Resolution{
					Relation: &Relation{Lift: f.lift, Multiplier: m.multiplier},
					Stage:    StageFuzzy,
					Rule:     f.name + "/" + m.name,
				}
			}
		}
		if f.fallback == nil {
			return Resolution{Stage: StageFuzzy, Rule: f.name + "/unrecognized"}
		}
		return Resolution{
			Relation: &Relation{Lift: f.lift, Multiplier: *f.fallback},
			Stage:    StageFuzzy,
			Rule:     f.name + "/default",
		}
	}

	return Resolution{Stage: StageUnmatched}
}

// IsNoCorrelation reports whether name is excluded from automatic loading:
// isolation, machine, unilateral, bodyweight and olympic movements. Curated
// variants are never excluded.
func (r *Resolver) IsNoCorrelation(name string) bool {
	n := normalize(name)
	for _, table := range variantTables {
		if _, ok := table.variants[n.lower]; ok {
			return false
		}
	}
	_, ok := excluded(n)
	return ok
}

func excluded(n normalized) (string, bool) {
	if noCorrelationNames[n.lower] {
		return n.lower, true
	}
	for _, rule := range exclusionRules {
		if rule.match(n) {
			return rule.name, true
		}
	}
	return "", false
}

// normalized is the lowercased name plus its words. Only literal substring
// and word comparisons are made against it.
type normalized struct {
	lower string
	words []string
}

func normalize(name string) normalized {
	lower := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return normalized{lower: lower, words: words}
}

func (n normalized) has(sub string) bool { return strings.Contains(n.lower, sub) }

func (n normalized) word(w string) bool {
	for _, x := range n.words {
		if x == w {
			return true
		}
	}
	return false
}
