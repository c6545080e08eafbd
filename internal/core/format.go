package core

// format.go renders cells for display once their column's semantic type is
// known. These helpers define the per-cell rendering contract the web
// layer and CLI follow: blank for absent/empty, thousands-grouped numbers,
// TRUE/FALSE badges, date labels, and plain (optionally truncated) text.

import (
	"strconv"
	"strings"
)

// FormatCell renders a cell according to its column's semantic type.
// Blank cells render as the empty string regardless of type.
func FormatCell(c Cell, t SemanticType) string {
	if c.IsBlank() {
		return ""
	}
	switch t {
	case TypeNumber:
		return FormatNumber(ToNumber(c))
	case TypeBoolean:
		return ToBooleanLabel(c)
	case TypeDate:
		return ToDateLabel(c)
	default:
		return c.String()
	}
}

// FormatNumber renders a number with comma-grouped thousands, keeping up
// to three fractional digits: 1200 -> "1,200", 1234567.5 -> "1,234,567.5".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 3 {
		s = strconv.FormatFloat(v, 'f', 3, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(fracPart)
	return b.String()
}

// Truncate shortens a string to at most max runes, marking the cut with an
// ellipsis. Values of max below 1 return the string unchanged.
func Truncate(s string, max int) string {
	if max < 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
