package web

// handlers_common.go holds small helpers shared across handlers.

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// writeJSON encodes v as JSON with the given status. Encoding errors are
// logged; the status line has already gone out by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// parseIntParam parses an integer query parameter, falling back to
// defaultVal when the parameter is missing or not a positive integer.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// clampInt bounds v to the range [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
