package web

import (
	"net/http"
	"time"

	"github.com/Erenthos/excel-ui/internal/core"
	"github.com/Erenthos/excel-ui/internal/session"
)

// DatasetResponse is the JSON view of one analyzed dataset, without row
// data. Rows are served separately with pagination.
type DatasetResponse struct {
	ID        string              `json:"id"`
	FileName  string              `json:"fileName"`
	CreatedAt time.Time           `json:"createdAt"`
	Columns   []string            `json:"columns"`
	Schema    []core.ColumnSchema `json:"schema"`
	Summary   core.Summary        `json:"summary"`
	Chart     *core.ChartSeries   `json:"chart"`
	TotalRows int                 `json:"totalRows"`
}

// StatusResponse reports server health details for monitoring.
type StatusResponse struct {
	Status   string                `json:"status"`
	Datasets int                   `json:"datasets"`
	Analyses session.LimiterStatus `json:"analyses"`
	Uptime   string                `json:"uptime"`
}

func toDatasetResponse(a *session.Analysis) DatasetResponse {
	return DatasetResponse{
		ID:        a.ID,
		FileName:  a.FileName,
		CreatedAt: a.CreatedAt,
		Columns:   a.Columns,
		Schema:    a.Schema,
		Summary:   a.Summary,
		Chart:     a.Chart,
		TotalRows: len(a.Rows),
	}
}

// handleIndex serves the embedded single-page UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleHealthz is the liveness probe.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus reports store occupancy and limiter state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:   "ok",
		Datasets: s.store.Len(),
		Analyses: s.limiter.Status(),
		Uptime:   time.Since(s.started).Round(time.Second).String(),
	})
}
