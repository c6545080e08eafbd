package core

// Summary profiles a classified dataset: the row count plus column counts
// per semantic type.
type Summary struct {
	TotalRows   int                  `json:"totalRows"`
	CountByType map[SemanticType]int `json:"countByType"`
}

// Summarize counts schema columns per semantic type. Every semantic type
// is present in the map even at zero, and the counts always sum to
// len(schema). An empty schema yields all-zero counts.
func Summarize(d Dataset, schema []ColumnSchema) Summary {
	counts := make(map[SemanticType]int, len(SemanticTypes()))
	for _, t := range SemanticTypes() {
		counts[t] = 0
	}
	for _, col := range schema {
		counts[col.Type]++
	}
	return Summary{
		TotalRows:   d.Len(),
		CountByType: counts,
	}
}
