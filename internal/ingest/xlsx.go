package ingest

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Erenthos/excel-ui/internal/core"
)

// ReadXLSX parses an Excel workbook into a dataset. Only the first sheet
// is read. Worksheet cells arrive from excelize as formatted strings, so
// values that parse as numbers or render as TRUE/FALSE are restored to
// typed cells; the classifier then sees what the workbook stored rather
// than a wall of text.
func ReadXLSX(r io.Reader, opts Options) (core.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return core.Dataset{}, &ParseError{Format: "xlsx", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return core.Dataset{}, ErrNoData
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return core.Dataset{}, &ParseError{Format: "xlsx", Err: err}
	}

	var (
		columns []string
		rows    []core.Record
	)
	for _, row := range grid {
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
			rec[col] = sheetCell(row[i])
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

// sheetCell restores the cell typing that string formatting erased.
// excelize renders boolean cells as TRUE or FALSE and unstyled numeric
// cells as plain decimal strings. Date-styled cells come back as
// formatted date text, which the date coercers recognize downstream.
func sheetCell(v string) core.Cell {
	if v == "" {
		return core.Empty()
	}
	switch v {
	case "TRUE":
		return core.Bool(true)
	case "FALSE":
		return core.Bool(false)
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		if !math.IsNaN(n) && !math.IsInf(n, 0) {
			return core.Number(n)
		}
	}
	return core.String(v)
}
