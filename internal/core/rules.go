package core

// rules.go defines the classification rule list.
//
// The classifier assigns a semantic type by evaluating an ordered sequence
// of tagged rule objects against a column's sample statistics; the first
// matching rule wins. Keeping the rules as data rather than nested
// conditionals preserves the priority ordering as an explicit, testable
// artifact: strings like "0" and "1" pass the numeric, boolean, and
// date-serial probes at once, and only the rule order decides the winner.

// SemanticType is the inferred meaning of a column's values, independent
// of how each raw cell happened to be encoded.
type SemanticType string

const (
	TypeNumber   SemanticType = "number"
	TypeDate     SemanticType = "date"
	TypeBoolean  SemanticType = "boolean"
	TypeCategory SemanticType = "category"
	TypeText     SemanticType = "text"
)

// SemanticTypes returns all semantic types in display order.
func SemanticTypes() []SemanticType {
	return []SemanticType{TypeNumber, TypeDate, TypeBoolean, TypeCategory, TypeText}
}

// ColumnStats holds the sample statistics a rule is evaluated against.
// Ratios are over the non-blank sample; Distinct counts normalized values
// (strings trimmed, other kinds compared as-is).
type ColumnStats struct {
	SampleSize   int
	NumericRatio float64
	DateRatio    float64
	BooleanRatio float64
	Distinct     int
	UniqueRatio  float64
}

// RuleKind tags the rule variant.
type RuleKind int

const (
	// RuleRatio matches when the probed coercer ratio exceeds MinRatio.
	RuleRatio RuleKind = iota
	// RuleCardinality matches low-cardinality columns: at most MaxDistinct
	// normalized values and a unique ratio below MaxUniqueRatio.
	RuleCardinality
)

// Probe selects which coercer ratio a RuleRatio rule tests.
type Probe int

const (
	ProbeNumeric Probe = iota
	ProbeDate
	ProbeBoolean
)

// Rule is one tagged-variant classification rule. Kind selects which
// fields apply: ratio rules use Probe and MinRatio, cardinality rules use
// MaxDistinct and MaxUniqueRatio. Assign is the type granted on match.
type Rule struct {
	Kind           RuleKind
	Assign         SemanticType
	Probe          Probe
	MinRatio       float64
	MaxDistinct    int
	MaxUniqueRatio float64
}

// Match reports whether the rule fires for the given statistics.
func (r Rule) Match(st ColumnStats) bool {
	switch r.Kind {
	case RuleRatio:
		return r.probedRatio(st) > r.MinRatio
	case RuleCardinality:
		return st.Distinct <= r.MaxDistinct && st.UniqueRatio < r.MaxUniqueRatio
	default:
		return false
	}
}

func (r Rule) probedRatio(st ColumnStats) float64 {
	switch r.Probe {
	case ProbeNumeric:
		return st.NumericRatio
	case ProbeDate:
		return st.DateRatio
	case ProbeBoolean:
		return st.BooleanRatio
	default:
		return 0
	}
}

// DefaultRules returns the standard rule list. Order is load-bearing:
// number before date before boolean, then the low-cardinality category
// check, with text as the classifier's fallback when nothing matches.
func DefaultRules() []Rule {
	return []Rule{
		{Kind: RuleRatio, Probe: ProbeNumeric, MinRatio: 0.7, Assign: TypeNumber},
		{Kind: RuleRatio, Probe: ProbeDate, MinRatio: 0.6, Assign: TypeDate},
		{Kind: RuleRatio, Probe: ProbeBoolean, MinRatio: 0.6, Assign: TypeBoolean},
		{Kind: RuleCardinality, MaxDistinct: 20, MaxUniqueRatio: 0.7, Assign: TypeCategory},
	}
}
