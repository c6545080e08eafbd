package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"testing"
)

// generateTestCSV generates CSV data with the specified number of rows.
func generateTestCSV(rows int) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"ID", "Name", "Day", "Amount", "Status"})
	for i := 0; i < rows; i++ {
		w.Write([]string{
			"1001",
			"John Doe",
			"2024-01-15",
			"1,234.56",
			"active",
		})
	}
	w.Flush()

	return buf.Bytes()
}

// ============================================================================
// CSV Benchmarks
// ============================================================================

// BenchmarkReadCSV benchmarks a typical small upload end to end: BOM
// check, UTF-8 sanitization, cell cleaning, dataset assembly.
func BenchmarkReadCSV(b *testing.B) {
	data := generateTestCSV(100)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ReadCSV(bytes.NewReader(data), Options{})
	}
}

// BenchmarkReadCSV_Large benchmarks a row-heavy upload.
func BenchmarkReadCSV_Large(b *testing.B) {
	data := generateTestCSV(5000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ReadCSV(bytes.NewReader(data), Options{})
	}
}

// BenchmarkCleanCell benchmarks cell cleaning. Called for every cell
// during ingest.
func BenchmarkCleanCell(b *testing.B) {
	testCases := []string{
		"normal value",
		`="00123"`,
		`"quoted"`,
		"  whitespace  ",
		"'single quoted'",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			CleanCell(tc)
		}
	}
}

// BenchmarkCleanCell_Simple benchmarks the common case: nothing to do.
func BenchmarkCleanCell_Simple(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CleanCell("simple value")
	}
}

// ============================================================================
// Text Reader Benchmarks
// ============================================================================

// BenchmarkTextReader_ASCII benchmarks sanitization of clean ASCII,
// which should take the fast path.
func BenchmarkTextReader_ASCII(b *testing.B) {
	data := bytes.Repeat([]byte("plain ascii line with numbers 12345\n"), 300)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		io.Copy(io.Discard, NewTextReader(bytes.NewReader(data)))
	}
}

// BenchmarkTextReader_Multibyte benchmarks sanitization of text with
// multibyte runes, which forces full validation.
func BenchmarkTextReader_Multibyte(b *testing.B) {
	data := bytes.Repeat([]byte("héllo wörld €42\n"), 300)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		io.Copy(io.Discard, NewTextReader(bytes.NewReader(data)))
	}
}

// BenchmarkTextReader_WithBOM benchmarks the BOM strip on a larger file.
func BenchmarkTextReader_WithBOM(b *testing.B) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, bytes.Repeat([]byte("data line\n"), 1000)...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		io.Copy(io.Discard, NewTextReader(bytes.NewReader(data)))
	}
}

// ============================================================================
// Row Helpers
// ============================================================================

// BenchmarkIsBlankRow benchmarks blank-row detection with subtests.
func BenchmarkIsBlankRow(b *testing.B) {
	tests := []struct {
		name string
		row  []string
	}{
		{"wide_blank", make([]string, 50)},
		{"wide_non_blank", func() []string {
			row := make([]string, 50)
			row[49] = "data"
			return row
		}()},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				isBlankRow(tt.row)
			}
		})
	}
}

// BenchmarkHeaderNames benchmarks header normalization.
func BenchmarkHeaderNames(b *testing.B) {
	raw := []string{
		"Transaction ID", "Date", "Customer Name", "Amount",
		"", "Description", "Amount", "Reference",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		headerNames(raw)
	}
}

// BenchmarkHeaderNames_Wide benchmarks many columns.
func BenchmarkHeaderNames_Wide(b *testing.B) {
	raw := make([]string, 50)
	for i := range raw {
		raw[i] = strings.Repeat("Column_", i%5+1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		headerNames(raw)
	}
}
