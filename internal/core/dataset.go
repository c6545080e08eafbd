package core

// dataset.go defines the in-memory tabular input the engine operates on.

// Record maps a column name to its raw cell value for one row. Column
// order lives on the Dataset, not the map.
type Record map[string]Cell

// Dataset is an ordered sequence of records sharing one column set. The
// column list from construction is authoritative; keys missing from a
// record behave as absent cells.
type Dataset struct {
	columns []string
	rows    []Record
}

// NewDataset builds a dataset from an ordered column list and rows.
// Duplicate column names keep their first position only.
func NewDataset(columns []string, rows []Record) Dataset {
	seen := make(map[string]struct{}, len(columns))
	cols := make([]string, 0, len(columns))
	for _, name := range columns {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cols = append(cols, name)
	}
	return Dataset{columns: cols, rows: rows}
}

// Len returns the number of rows.
func (d Dataset) Len() int { return len(d.rows) }

// Columns returns the column names in discovery order. The returned slice
// is a copy.
func (d Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// Cell returns the value at row i, column name. Out-of-range rows and
// missing keys yield the absent cell.
func (d Dataset) Cell(i int, name string) Cell {
	if i < 0 || i >= len(d.rows) {
		return Absent()
	}
	c, ok := d.rows[i][name]
	if !ok {
		return Absent()
	}
	return c
}

// Row returns the record at index i, or nil when out of range.
func (d Dataset) Row(i int) Record {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// Records returns the underlying row slice. Callers that hand rows across
// a trust boundary should copy them first.
func (d Dataset) Records() []Record {
	return d.rows
}
