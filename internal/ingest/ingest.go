// Package ingest reads uploaded spreadsheet files into core datasets.
//
// Two formats are supported: CSV (with the usual export damage: byte
// order marks, broken quoting, ragged rows, formula-wrapped text) and
// Excel workbooks via excelize. Parsing is tolerant by design: malformed
// cells degrade to usable values instead of failing the whole file, so
// the only hard errors are an unreadable container or a file with no
// header row at all.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Erenthos/excel-ui/internal/core"
)

// Options control how much of a file is read.
type Options struct {
	// MaxRows caps the number of data rows read from a file.
	// Zero means no cap.
	MaxRows int
}

// Formats lists the file extensions Read accepts, in display order.
func Formats() []string {
	return []string{".csv", ".xlsx", ".xlsm", ".xltx", ".xltm"}
}

// Read parses the named file into a dataset, dispatching on the file
// extension. The extension check is case-insensitive.
func Read(name string, r io.Reader, opts Options) (core.Dataset, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(r, opts)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ReadXLSX(r, opts)
	default:
		return core.Dataset{}, fmt.Errorf("%w: file %q", ErrUnsupportedFormat, name)
	}
}

// headerNames turns the first non-blank row into column names. Blank
// header cells get positional names and duplicates get a numeric suffix
// so no column silently shadows another.
func headerNames(row []string) []string {
	names := make([]string, len(row))
	seen := make(map[string]bool, len(row))
	for i, raw := range row {
		name := CleanCell(raw)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		base := name
		for n := 2; seen[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
