package core

// chart.go derives the default two-dimensional chart series from a
// classified dataset: the first numeric column supplies y, the first
// dimension column (date, category, or text) supplies x.

import "fmt"

// ChartPoint is one projected row. X is a string or numeric label; Y is
// the coerced numeric value.
type ChartPoint struct {
	X any     `json:"x"`
	Y float64 `json:"y"`
}

// ChartSeries is a chart-ready projection with one point per dataset row,
// row order preserved.
type ChartSeries struct {
	XLabel string       `json:"xLabel"`
	YLabel string       `json:"yLabel"`
	Data   []ChartPoint `json:"data"`
}

// ProjectChart derives the default series for a classified dataset.
//
// The y column is the first schema column of type number; when no column
// is numeric there is nothing to chart and the result is nil, a normal
// outcome the caller renders as a placeholder. The x column is the first
// date, category, or text column, falling back to the dataset's first
// column. Date x values are rendered through ToDateLabel; other x values
// pass through as-is. A blank x becomes the positional label "Row {i+1}",
// and every y coerces through ToNumber, so projection is total over the
// rows it is given.
func ProjectChart(d Dataset, schema []ColumnSchema) *ChartSeries {
	var yCol string
	for _, col := range schema {
		if col.Type == TypeNumber {
			yCol = col.Name
			break
		}
	}
	if yCol == "" {
		return nil
	}

	var xCol string
	var xType SemanticType
	for _, col := range schema {
		if col.Type == TypeDate || col.Type == TypeCategory || col.Type == TypeText {
			xCol, xType = col.Name, col.Type
			break
		}
	}
	if xCol == "" {
		if cols := d.Columns(); len(cols) > 0 {
			xCol = cols[0]
		}
	}

	data := make([]ChartPoint, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		var x any
		if xType == TypeDate {
			x = ToDateLabel(d.Cell(i, xCol))
		} else {
			x = d.Cell(i, xCol).Any()
		}
		if blankX(x) {
			x = fmt.Sprintf("Row %d", i+1)
		}
		data = append(data, ChartPoint{X: x, Y: ToNumber(d.Cell(i, yCol))})
	}

	return &ChartSeries{XLabel: xCol, YLabel: yCol, Data: data}
}

// blankX reports whether a projected x value is missing: nil (absent
// cell) or a zero-length string. Numeric zero is a real x value.
func blankX(x any) bool {
	if x == nil {
		return true
	}
	s, ok := x.(string)
	return ok && s == ""
}
