// Package core provides the schema-less analysis engine for tabular data.
//
// This package is the heart of the analyzer, containing all domain logic
// independent of any UI, transport, or file-format layer. It can be used by
// web handlers, CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around three stages, consumed in order:
//
//   - Value Coercers: leaf-level predicates and converters that test or
//     convert a single raw [Cell] against a candidate semantic type
//     ([IsNumeric], [IsDateLike], [ToNumber], [ToDateLabel], ...).
//   - Classifier: samples each column of a [Dataset] and assigns exactly one
//     [SemanticType] by evaluating an ordered [Rule] list over the sample's
//     statistics.
//   - Summarizer / Chart Projector: [Summarize] counts columns per type;
//     [ProjectChart] picks one numeric column and one dimension column and
//     projects every row onto an {x, y} pair.
//
// # Raw Cell Values
//
// A raw cell is an explicit tagged union: exactly one of absent, empty
// string, number, boolean, string, or calendar date. The coercers switch on
// the tag exhaustively, so every operation in this package is total: no
// coercer, classifier, or projector ever returns an error or panics on
// malformed input. Unparseable numbers coerce to 0, unparseable dates fall
// back to their plain string form, and ambiguous columns fall through to
// text.
//
// # Classification Rules
//
// The classifier evaluates rules in strict priority order; the first match
// wins. The default order (number, date, boolean, category, text) is a
// deliberate tie-break, because strings like "0" and "1" satisfy the
// numeric, boolean, and date-serial tests at once:
//
//	c := core.NewClassifier()
//	schema := c.Classify(ds)
//
// Custom rule lists and sample windows are supplied via options:
//
//	c := core.NewClassifier(
//	    core.WithSampleSize(100),
//	    core.WithRules(rules),
//	)
//
// # Purity
//
// Every operation reads its inputs and returns new immutable values. There
// is no shared mutable state, so independent datasets may be analyzed
// concurrently without coordination.
package core
