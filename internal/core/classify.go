package core

// classify.go assigns one semantic type per column by sampling a bounded
// prefix of the dataset and evaluating the rule list over the sample.

import "strings"

// DefaultSampleSize is the classification sample window: values are drawn
// from the first up to this many rows of each column.
const DefaultSampleSize = 50

// ColumnSchema is the inferred type for one column.
type ColumnSchema struct {
	Name string       `json:"name"`
	Type SemanticType `json:"type"`
}

// Classifier assigns semantic types using an ordered rule list over a
// bounded sample window. The zero-configured classifier (NewClassifier
// with no options) applies DefaultRules over DefaultSampleSize rows.
type Classifier struct {
	rules      []Rule
	sampleSize int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules replaces the classification rule list. The slice is copied;
// an empty list classifies every non-blank column as text.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = make([]Rule, len(rules))
		copy(c.rules, rules)
	}
}

// WithSampleSize sets the sample window. Values below 1 keep the default.
func WithSampleSize(n int) Option {
	return func(c *Classifier) {
		if n >= 1 {
			c.sampleSize = n
		}
	}
}

// NewClassifier builds a classifier with the default rules and sample
// window, then applies options.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		rules:      DefaultRules(),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns a copy of the classifier's rule list.
func (c *Classifier) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

// SampleSize returns the classifier's sample window.
func (c *Classifier) SampleSize() int { return c.sampleSize }

// Classify infers one ColumnSchema per column, preserving column order.
// It is a pure function of the first min(rows, sample window) rows: blank
// cells are excluded from each column's sample, a column whose sample
// comes up empty is text, and otherwise the first matching rule decides.
// An empty dataset yields an empty schema.
func (c *Classifier) Classify(d Dataset) []ColumnSchema {
	cols := d.Columns()
	schema := make([]ColumnSchema, 0, len(cols))
	if d.Len() == 0 {
		return schema
	}

	window := d.Len()
	if window > c.sampleSize {
		window = c.sampleSize
	}

	for _, name := range cols {
		sample := make([]Cell, 0, window)
		for i := 0; i < window; i++ {
			cell := d.Cell(i, name)
			if cell.IsBlank() {
				continue
			}
			sample = append(sample, cell)
		}
		schema = append(schema, ColumnSchema{Name: name, Type: c.classifySample(sample)})
	}
	return schema
}

// Classify infers column types with the default classifier.
func Classify(d Dataset) []ColumnSchema {
	return NewClassifier().Classify(d)
}

func (c *Classifier) classifySample(sample []Cell) SemanticType {
	if len(sample) == 0 {
		return TypeText
	}
	st := ComputeStats(sample)
	for _, rule := range c.rules {
		if rule.Match(st) {
			return rule.Assign
		}
	}
	return TypeText
}

// ComputeStats derives the rule-evaluation statistics for a non-empty
// sample of non-blank cells.
func ComputeStats(sample []Cell) ColumnStats {
	var numeric, date, boolean int
	distinct := make(map[any]struct{}, len(sample))

	for _, cell := range sample {
		if IsNumeric(cell) {
			numeric++
		}
		if IsDateLike(cell) {
			date++
		}
		if IsBooleanLike(cell) {
			boolean++
		}
		distinct[normalizedKey(cell)] = struct{}{}
	}

	size := float64(len(sample))
	return ColumnStats{
		SampleSize:   len(sample),
		NumericRatio: float64(numeric) / size,
		DateRatio:    float64(date) / size,
		BooleanRatio: float64(boolean) / size,
		Distinct:     len(distinct),
		UniqueRatio:  float64(len(distinct)) / size,
	}
}

// normalizedKey is the distinct-counting identity of a cell: strings are
// trimmed, every other kind compares as its native value.
func normalizedKey(c Cell) any {
	if s, ok := c.Text(); ok {
		return strings.TrimSpace(s)
	}
	return c.Any()
}
