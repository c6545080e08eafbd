package core

import (
	"testing"
)

// ----------------------------------------------------------------------------
// Summary Tests
// ----------------------------------------------------------------------------

func TestSummarizeCounts(t *testing.T) {
	ds := NewDataset([]string{"amount", "day", "status", "note"}, []Record{
		{"amount": String("1,200"), "day": String("2024-01-05"), "status": String("open"), "note": String("first")},
		{"amount": String("980"), "day": String("2024-01-06"), "status": String("open"), "note": String("second")},
		{"amount": String("310"), "day": String("2024-01-07"), "status": String("closed"), "note": String("third")},
		{"amount": String("4400"), "day": String("2024-01-08"), "status": String("open"), "note": String("fourth")},
	})
	schema := Classify(ds)

	summary := Summarize(ds, schema)
	if summary.TotalRows != 4 {
		t.Errorf("TotalRows = %d, want 4", summary.TotalRows)
	}
	if got := summary.CountByType[TypeNumber]; got != 1 {
		t.Errorf("number count = %d, want 1", got)
	}
	if got := summary.CountByType[TypeDate]; got != 1 {
		t.Errorf("date count = %d, want 1", got)
	}
	if got := summary.CountByType[TypeCategory]; got != 1 {
		t.Errorf("category count = %d, want 1", got)
	}
	if got := summary.CountByType[TypeText]; got != 1 {
		t.Errorf("text count = %d, want 1", got)
	}
}

func TestSummarizeCountsCoverSchema(t *testing.T) {
	ds := NewDataset([]string{"a", "b", "c"}, []Record{
		{"a": Number(1), "b": String("yes"), "c": String("x")},
		{"a": Number(2), "b": String("no"), "c": String("y")},
	})
	schema := Classify(ds)

	summary := Summarize(ds, schema)
	total := 0
	for _, n := range summary.CountByType {
		total += n
	}
	if total != len(schema) {
		t.Errorf("sum of counts = %d, want %d (one per column)", total, len(schema))
	}
}

func TestSummarizeEmptyDataset(t *testing.T) {
	ds := Dataset{}
	summary := Summarize(ds, Classify(ds))
	if summary.TotalRows != 0 {
		t.Errorf("TotalRows = %d, want 0", summary.TotalRows)
	}
	for typ, n := range summary.CountByType {
		if n != 0 {
			t.Errorf("count[%s] = %d, want 0", typ, n)
		}
	}
}

func TestSummarizeReportsEveryType(t *testing.T) {
	// The map carries a zero entry for each semantic type so clients can
	// render a stable breakdown without checking key presence.
	ds := NewDataset([]string{"v"}, []Record{{"v": Number(1)}})
	summary := Summarize(ds, Classify(ds))

	for _, typ := range SemanticTypes() {
		if _, ok := summary.CountByType[typ]; !ok {
			t.Errorf("CountByType missing key %q", typ)
		}
	}
	if len(summary.CountByType) != len(SemanticTypes()) {
		t.Errorf("CountByType has %d keys, want %d", len(summary.CountByType), len(SemanticTypes()))
	}
}
