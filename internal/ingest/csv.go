package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/Erenthos/excel-ui/internal/core"
)

// ReadCSV parses CSV bytes into a dataset. The first row with any
// non-blank cell becomes the header; every later row maps positionally
// onto those columns. Ragged rows are tolerated: missing trailing cells
// stay absent and surplus cells are dropped. Entirely blank rows are
// skipped and do not count as data.
func ReadCSV(r io.Reader, opts Options) (core.Dataset, error) {
	cr := csv.NewReader(NewTextReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		columns []string
		rows    []core.Record
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return core.Dataset{}, &ParseError{Format: "csv", Err: err}
		}
		if isBlankRow(row) {
			continue
		}
		if columns == nil {
			columns = headerNames(row)
			continue
		}

		rec := make(core.Record, len(columns))
		for i, col := range columns {
			if i >= len(row) {
				break
			}
			rec[col] = core.String(CleanCell(row[i]))
		}
		rows = append(rows, rec)
		if opts.MaxRows > 0 && len(rows) >= opts.MaxRows {
			break
		}
	}

	if columns == nil {
		return core.Dataset{}, ErrNoData
	}
	return core.NewDataset(columns, rows), nil
}

// CleanCell strips common spreadsheet-export artifacts from a cell
// value: surrounding whitespace, the Excel text-formula wrapper
// (="value"), a leading formula marker, and stray surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if len(s) >= 3 && strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}
