package web

// handlers_upload.go accepts new datasets, either as multipart file
// uploads or as JSON record arrays, runs the analysis engine over them,
// and stores the result in the session store.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Erenthos/excel-ui/internal/core"
	"github.com/Erenthos/excel-ui/internal/ingest"
	"github.com/Erenthos/excel-ui/internal/logging"
	"github.com/Erenthos/excel-ui/internal/session"
)

// handleUpload processes a spreadsheet file sent in the "file" multipart
// field, analyzes it, and responds with the stored dataset. An optional
// sampleSize query parameter overrides how many leading rows the
// classifier inspects.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.limiter.Acquire(ctx); err != nil {
		status := http.StatusServiceUnavailable
		if !errors.Is(err, session.ErrBusy) {
			status = http.StatusRequestTimeout
		}
		s.respondError(w, r, err, status)
		return
	}
	defer s.limiter.Release()

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		status := http.StatusBadRequest
		if isBodyTooLarge(err) {
			status = http.StatusRequestEntityTooLarge
		}
		s.respondError(w, r, fmt.Errorf("file too large or invalid form: %w", err), status)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("no file provided: %w", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	start := time.Now()
	ds, err := ingest.Read(header.Filename, file, ingest.Options{MaxRows: s.cfg.Upload.MaxRows})
	if err != nil {
		s.respondError(w, r, err, ingestErrorStatus(err))
		return
	}

	analysis := s.buildAnalysis(ds, header.Filename, s.sampleSize(r))
	id := s.store.Put(analysis)

	logging.FromContext(ctx).Info("dataset analyzed",
		"dataset_id", id,
		"file", header.Filename,
		"rows", len(analysis.Rows),
		"columns", len(analysis.Columns),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusCreated, toDatasetResponse(analysis))
}

// handleAnalyze accepts a JSON array of record objects, analyzes it like
// an uploaded file, and responds with the stored dataset. The dataset
// name can be set with the name query parameter.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.limiter.Acquire(ctx); err != nil {
		status := http.StatusServiceUnavailable
		if !errors.Is(err, session.ErrBusy) {
			status = http.StatusRequestTimeout
		}
		s.respondError(w, r, err, status)
		return
	}
	defer s.limiter.Release()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Analyze.MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		if isBodyTooLarge(err) {
			status = http.StatusRequestEntityTooLarge
		}
		s.respondError(w, r, err, status)
		return
	}

	ds, err := datasetFromJSON(body)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "inline"
	}

	analysis := s.buildAnalysis(ds, name, s.sampleSize(r))
	id := s.store.Put(analysis)

	logging.FromContext(ctx).Info("dataset analyzed",
		"dataset_id", id,
		"file", name,
		"rows", len(analysis.Rows),
		"columns", len(analysis.Columns),
	)
	writeJSON(w, http.StatusCreated, toDatasetResponse(analysis))
}

// sampleSize resolves the classifier sample window for a request,
// clamped to a sane range.
func (s *Server) sampleSize(r *http.Request) int {
	n := parseIntParam(r, "sampleSize", s.cfg.Analyze.SampleSize)
	return clampInt(n, 1, 1000)
}

// buildAnalysis runs the engine over a dataset and packages the result
// for the session store.
func (s *Server) buildAnalysis(ds core.Dataset, fileName string, sampleSize int) *session.Analysis {
	classifier := core.NewClassifier(core.WithSampleSize(sampleSize))
	schema := classifier.Classify(ds)

	return &session.Analysis{
		FileName:  fileName,
		CreatedAt: time.Now(),
		Columns:   ds.Columns(),
		Schema:    schema,
		Summary:   core.Summarize(ds, schema),
		Chart:     core.ProjectChart(ds, schema),
		Rows:      datasetRows(ds),
	}
}

// datasetRows flattens dataset cells to plain values for storage and
// row pagination. Absent cells stay out of the maps entirely.
func datasetRows(ds core.Dataset) []map[string]any {
	cols := ds.Columns()
	rows := make([]map[string]any, ds.Len())
	for i := range rows {
		m := make(map[string]any, len(cols))
		for _, col := range cols {
			c := ds.Cell(i, col)
			if c.Kind() == core.KindAbsent {
				continue
			}
			m[col] = c.Any()
		}
		rows[i] = m
	}
	return rows
}

// datasetFromJSON builds a dataset from a JSON array of record objects.
// The first record's keys, in their order of appearance, become the
// columns; keys that only later records carry are ignored.
func datasetFromJSON(data []byte) (core.Dataset, error) {
	var entries []any
	if err := json.Unmarshal(data, &entries); err != nil {
		return core.Dataset{}, err
	}
	if len(entries) == 0 {
		return core.Dataset{}, nil
	}

	columns, err := firstRecordKeys(data)
	if err != nil {
		return core.Dataset{}, err
	}

	records := make([]core.Record, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			return core.Dataset{}, fmt.Errorf("record %d is not an object", i)
		}
		rec := make(core.Record, len(columns))
		for _, col := range columns {
			if v, present := obj[col]; present {
				rec[col] = core.FromAny(v)
			}
		}
		records[i] = rec
	}
	return core.NewDataset(columns, records), nil
}

// firstRecordKeys extracts the first object's keys in document order.
// encoding/json maps lose key order, so the raw bytes are walked with a
// token decoder instead.
func firstRecordKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("record 0 is not an object")
	}
	if !dec.More() {
		return nil, nil
	}

	tok, err = dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("record 0 is not an object")
	}

	var keys []string
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("record 0 is not an object")
		}
		keys = append(keys, key)

		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipValue consumes one JSON value, descending through nested objects
// and arrays.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}

	depth := 1
	for depth > 0 {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		if dd, ok := tok.(json.Delim); ok {
			switch dd {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// isBodyTooLarge reports whether err came from http.MaxBytesReader.
func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// ingestErrorStatus picks the HTTP status for an ingest failure.
func ingestErrorStatus(err error) int {
	if errors.Is(err, ingest.ErrUnsupportedFormat) {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusUnprocessableEntity
}
