package web

// handlers_data.go serves stored analyses back out: listing, the full
// envelope, the derived schema/summary/chart pieces, paginated rows,
// and deletion.

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Erenthos/excel-ui/internal/core"
	"github.com/Erenthos/excel-ui/internal/session"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// RowsResponse is one page of dataset rows. Rendered rows carry the
// display-formatted string per cell instead of the raw value.
type RowsResponse struct {
	Rows       []map[string]any `json:"rows"`
	TotalRows  int              `json:"totalRows"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// handleListDatasets returns listing info for every stored analysis,
// newest first.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	infos := s.store.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"datasets": infos,
		"count":    len(infos),
	})
}

// handleGetDataset returns the full analysis envelope for one dataset.
func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	a, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toDatasetResponse(a))
}

// handleGetSchema returns the inferred column schema.
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	a, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a.Schema)
}

// handleGetSummary returns the per-type column counts.
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	a, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a.Summary)
}

// handleGetChart returns the derived chart series. Datasets with no
// numeric column have a null chart; that is a normal response, not an
// error.
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	a, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"chart": a.Chart})
}

// handleGetRows returns one page of rows. Query parameters: page
// (1-based), page_size, and rendered=true to get display-formatted
// strings instead of raw values.
func (s *Server) handleGetRows(w http.ResponseWriter, r *http.Request) {
	a, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	page := parseIntParam(r, "page", 1)
	pageSize := clampInt(parseIntParam(r, "page_size", defaultPageSize), 1, maxPageSize)

	total := len(a.Rows)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	lo := (page - 1) * pageSize
	hi := lo + pageSize
	if hi > total {
		hi = total
	}
	rows := a.Rows[lo:hi]

	if r.URL.Query().Get("rendered") == "true" {
		rows = renderRows(rows, a.Columns, a.Schema)
	}

	writeJSON(w, http.StatusOK, RowsResponse{
		Rows:       rows,
		TotalRows:  total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// handleDeleteDataset evicts a stored analysis.
func (s *Server) handleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	if !s.store.Delete(id) {
		s.respondError(w, r, session.ErrNotFound, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// snapshot fetches the analysis for the request's datasetID, writing
// the 404 envelope itself when the ID is unknown.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*session.Analysis, bool) {
	id := chi.URLParam(r, "datasetID")
	a, err := s.store.Snapshot(id)
	if err != nil {
		status := http.StatusNotFound
		if !errors.Is(err, session.ErrNotFound) {
			status = http.StatusInternalServerError
		}
		s.respondError(w, r, err, status)
		return nil, false
	}
	return a, true
}

// renderRows converts raw row values into display strings using each
// column's inferred type. Missing cells render as empty strings.
func renderRows(rows []map[string]any, columns []string, schema []core.ColumnSchema) []map[string]any {
	types := make(map[string]core.SemanticType, len(schema))
	for _, cs := range schema {
		types[cs.Name] = cs.Type
	}

	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		m := make(map[string]any, len(columns))
		for _, col := range columns {
			v, present := row[col]
			if !present {
				m[col] = ""
				continue
			}
			m[col] = core.FormatCell(core.FromAny(v), types[col])
		}
		out[i] = m
	}
	return out
}
