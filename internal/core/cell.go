package core

// cell.go defines the raw cell value type handed to the engine by the
// ingestion layer.
//
// A Cell is a tagged union: exactly one of absent, empty string, number,
// boolean, string, or calendar date. Keeping the tag explicit lets the
// coercers in coerce.go switch exhaustively instead of sniffing dynamic
// types, and gives JSON a fixed mapping in both directions.

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// CellKind discriminates the variants of a raw cell value.
type CellKind int

const (
	KindAbsent CellKind = iota // missing key or explicit null
	KindEmpty                  // empty string
	KindNumber
	KindBool
	KindString
	KindDate
)

// String returns the kind name for logs and test output.
func (k CellKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Cell is a single raw cell value. The zero value is the absent cell.
type Cell struct {
	kind CellKind
	num  float64
	b    bool
	str  string
	date time.Time
}

// Absent returns the absent cell (missing key or explicit null).
func Absent() Cell { return Cell{kind: KindAbsent} }

// Empty returns the empty-string cell.
func Empty() Cell { return Cell{kind: KindEmpty} }

// Number returns a number cell.
func Number(v float64) Cell { return Cell{kind: KindNumber, num: v} }

// Bool returns a boolean cell.
func Bool(v bool) Cell { return Cell{kind: KindBool, b: v} }

// String returns a string cell. The empty string collapses to the
// empty-string variant so blank cells have one canonical form.
func String(s string) Cell {
	if s == "" {
		return Empty()
	}
	return Cell{kind: KindString, str: s}
}

// Date returns a calendar-date cell.
func Date(t time.Time) Cell { return Cell{kind: KindDate, date: t} }

// FromAny maps an arbitrary Go value onto the cell union. Unrecognized
// types are rendered through fmt so the mapping stays total.
func FromAny(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Absent()
	case Cell:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case time.Time:
		return Date(x)
	default:
		return String(fmt.Sprint(v))
	}
}

// Kind returns the variant tag.
func (c Cell) Kind() CellKind { return c.kind }

// IsBlank reports whether the cell is absent or the empty string. Blank
// cells are excluded from classification samples.
func (c Cell) IsBlank() bool {
	return c.kind == KindAbsent || c.kind == KindEmpty
}

// Float returns the numeric payload. ok is false unless the cell is a
// number.
func (c Cell) Float() (v float64, ok bool) {
	return c.num, c.kind == KindNumber
}

// Boolean returns the boolean payload. ok is false unless the cell is a
// native boolean.
func (c Cell) Boolean() (v bool, ok bool) {
	return c.b, c.kind == KindBool
}

// Text returns the string payload. ok is false unless the cell is a
// non-empty string.
func (c Cell) Text() (s string, ok bool) {
	return c.str, c.kind == KindString
}

// Time returns the date payload. ok is false unless the cell is a calendar
// date.
func (c Cell) Time() (t time.Time, ok bool) {
	return c.date, c.kind == KindDate
}

// Any returns the native Go value of the cell: nil for absent, "" for
// empty, float64, bool, string, or time.Time.
func (c Cell) Any() any {
	switch c.kind {
	case KindNumber:
		return c.num
	case KindBool:
		return c.b
	case KindString:
		return c.str
	case KindDate:
		return c.date
	case KindEmpty:
		return ""
	default:
		return nil
	}
}

// String returns the plain string form of the cell: "" for absent and
// empty, the shortest round-trip form for numbers, "true"/"false" for
// booleans, and ISO 8601 for dates.
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return formatFloat(c.num)
	case KindBool:
		return strconv.FormatBool(c.b)
	case KindString:
		return c.str
	case KindDate:
		return c.date.Format("2006-01-02")
	default:
		return ""
	}
}

// formatFloat renders a float without a trailing ".0" for whole values.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarshalJSON encodes the cell as its native JSON value: null, "", a
// number, a boolean, a string, or an ISO date string.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindAbsent:
		return []byte("null"), nil
	case KindEmpty:
		return []byte(`""`), nil
	case KindNumber:
		if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
			// JSON has no representation for these; fall back to null.
			return []byte("null"), nil
		}
		return json.Marshal(c.num)
	case KindBool:
		return json.Marshal(c.b)
	case KindString:
		return json.Marshal(c.str)
	case KindDate:
		return json.Marshal(c.date.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON value onto the union: null to absent, ""
// to empty, numbers, booleans, and strings to their variants. Dates never
// arrive from JSON directly; date-looking strings stay strings and are
// recognized by the coercers.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = FromAny(v)
	return nil
}
