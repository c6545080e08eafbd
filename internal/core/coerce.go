package core

// coerce.go provides the value coercers: per-cell predicates and converters
// that test or convert a single raw value against a candidate semantic type.
//
// These functions handle the messy reality of user-provided spreadsheet
// data:
//   - Thousands separators in numbers ("1,200")
//   - Multiple date formats (US, EU, ISO, compact)
//   - Spreadsheet date-serial numbers (days since 1899-12-30)
//   - Various boolean spellings (yes/no, y/n, true/false, 1/0)
//
// Every function is total: any input yields a definite answer, with defined
// fallbacks (0 for numbers, the plain string form for dates, FALSE-leaning
// booleans) so one malformed cell never aborts processing of its column.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numericRegex validates that a string is a valid numeric format after
// cleanup. Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years that
// would land more than this many years in the future are assumed to be in
// the previous century.
var TwoDigitYearPivot = 20

// Date layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// Spreadsheet date-serial heuristic: a bare number in [SerialMin, SerialMax)
// is treated as a day count since 1899-12-30 (the 1900 date system with its
// leap-year quirk folded into the epoch). The range covers roughly
// 1968-2064; it is a rough candidate window, not a calendar bound.
const (
	SerialMin = 25000
	SerialMax = 60000
)

// serialEpoch is day zero of the spreadsheet date system.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLabelLayout renders dates as M/D/YYYY without zero padding, e.g.
// "1/5/2024".
const dateLabelLayout = "1/2/2006"

// booleanWords is the recognized boolean vocabulary, keyed by trimmed
// lowercased spelling.
var booleanWords = map[string]bool{
	"true": true, "yes": true, "y": true, "1": true,
	"false": false, "no": false, "n": false, "0": false,
}

// IsNumeric reports whether the cell holds a finite number, or a non-empty
// string that parses as one after stripping grouping commas and trimming
// whitespace. Blanks, booleans, and dates are not numeric.
func IsNumeric(c Cell) bool {
	switch c.Kind() {
	case KindNumber:
		v, _ := c.Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case KindString:
		s, _ := c.Text()
		_, ok := parseNumber(s)
		return ok
	default:
		return false
	}
}

// IsBooleanLike reports whether the cell holds a native boolean, a number
// equal to 0 or 1, or a string spelled like a boolean (true/false, yes/no,
// y/n, 1/0).
func IsBooleanLike(c Cell) bool {
	switch c.Kind() {
	case KindBool:
		return true
	case KindNumber:
		v, _ := c.Float()
		return v == 0 || v == 1
	case KindString:
		s, _ := c.Text()
		_, ok := booleanWords[strings.ToLower(strings.TrimSpace(s))]
		return ok
	default:
		return false
	}
}

// IsDateLike reports whether the cell holds a calendar date, a string
// parseable as one, or a number in the spreadsheet date-serial range
// [SerialMin, SerialMax).
func IsDateLike(c Cell) bool {
	switch c.Kind() {
	case KindDate:
		return true
	case KindNumber:
		v, _ := c.Float()
		return v >= SerialMin && v < SerialMax
	case KindString:
		s, _ := c.Text()
		_, ok := ParseDate(s)
		return ok
	default:
		return false
	}
}

// ToNumber converts a cell to a number for arithmetic use. Native numbers
// pass through, strings are parsed after comma stripping, and everything
// else (or any parse failure) coerces to 0. The result is always finite.
func ToNumber(c Cell) float64 {
	switch c.Kind() {
	case KindNumber:
		v, _ := c.Float()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case KindString:
		s, _ := c.Text()
		if v, ok := parseNumber(s); ok {
			return v
		}
		return 0
	default:
		return 0
	}
}

// ToDateLabel produces a human-readable date string: from a native date,
// from a spreadsheet serial (days since 1899-12-30, fractional days as
// seconds), or from a parseable date string. Unparseable input falls back
// to the cell's plain string form.
func ToDateLabel(c Cell) string {
	switch c.Kind() {
	case KindDate:
		t, _ := c.Time()
		return t.Format(dateLabelLayout)
	case KindNumber:
		v, _ := c.Float()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return c.String()
		}
		return SerialToTime(v).Format(dateLabelLayout)
	case KindString:
		s, _ := c.Text()
		if t, ok := ParseDate(s); ok {
			return t.Format(dateLabelLayout)
		}
		return s
	default:
		return c.String()
	}
}

// ToBooleanLabel maps a cell to "TRUE" or "FALSE" using the same
// vocabulary as IsBooleanLike. Values outside the vocabulary lean FALSE.
func ToBooleanLabel(c Cell) string {
	truthy := false
	switch c.Kind() {
	case KindBool:
		truthy, _ = c.Boolean()
	case KindNumber:
		v, _ := c.Float()
		truthy = v == 1
	case KindString:
		s, _ := c.Text()
		truthy = booleanWords[strings.ToLower(strings.TrimSpace(s))]
	}
	if truthy {
		return "TRUE"
	}
	return "FALSE"
}

// ParseDate parses a date string against the supported layout list,
// trying unambiguous 4-digit-year layouts first and then 2-digit-year
// layouts with the pivot adjustment.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

// SerialToTime converts a spreadsheet date serial to a UTC time.
// Fractional days carry through as seconds (serial × 86400 s).
func SerialToTime(serial float64) time.Time {
	secs := serial * 86400
	return serialEpoch.Add(time.Duration(secs * float64(time.Second)))
}

// parseNumber parses a string as a finite number after trimming whitespace
// and stripping grouping commas.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
