// Package main provides the excelui CLI, which analyzes a spreadsheet
// file offline and prints the inferred schema, summary, and chart.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Erenthos/excel-ui/internal/core"
	"github.com/Erenthos/excel-ui/internal/ingest"
)

var (
	format     string
	sampleSize int
	maxRows    int
	pretty     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "excelui [input.xlsx|input.csv]",
		Short: "Infer column types and a default chart from a spreadsheet",
		Long: `excelui reads the first sheet of an Excel workbook or a CSV file,
infers a semantic type for every column, and derives a summary and a
default chart series. No schema or configuration is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: json, table")
	rootCmd.Flags().IntVar(&sampleSize, "sample", core.DefaultSampleSize, "Rows sampled per column when classifying")
	rootCmd.Flags().IntVar(&maxRows, "max-rows", 0, "Maximum rows to read (0 = no limit)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// analysisOutput is the JSON shape printed by --format json.
type analysisOutput struct {
	FileName  string              `json:"fileName"`
	Columns   []string            `json:"columns"`
	Schema    []core.ColumnSchema `json:"schema"`
	Summary   core.Summary        `json:"summary"`
	Chart     *core.ChartSeries   `json:"chart"`
	TotalRows int                 `json:"totalRows"`
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if format != "json" && format != "table" {
		return fmt.Errorf("invalid format: %s (must be json or table)", format)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	ds, err := ingest.Read(inputPath, f, ingest.Options{MaxRows: maxRows})
	if err != nil {
		return fmt.Errorf("analyze %s: %w", inputPath, err)
	}

	classifier := core.NewClassifier(core.WithSampleSize(sampleSize))
	schema := classifier.Classify(ds)
	out := analysisOutput{
		FileName:  inputPath,
		Columns:   ds.Columns(),
		Schema:    schema,
		Summary:   core.Summarize(ds, schema),
		Chart:     core.ProjectChart(ds, schema),
		TotalRows: ds.Len(),
	}

	if format == "json" {
		return printJSON(out)
	}
	printTable(ds, out)
	return nil
}

func printJSON(out analysisOutput) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// previewRows bounds how many data rows the table preview shows.
const previewRows = 10

func printTable(ds core.Dataset, out analysisOutput) {
	fmt.Printf("%s: %d rows, %d columns\n\n", out.FileName, out.TotalRows, len(out.Columns))

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)

	fmt.Fprintln(w, "COLUMN\tTYPE")
	for _, col := range out.Schema {
		fmt.Fprintf(w, "%s\t%s\n", core.Truncate(col.Name, 32), col.Type)
	}
	w.Flush()

	fmt.Println()
	fmt.Print("Summary:")
	for _, t := range core.SemanticTypes() {
		fmt.Printf("  %s=%d", t, out.Summary.CountByType[t])
	}
	fmt.Println()

	fmt.Println()
	if out.Chart == nil {
		fmt.Println("Chart: none (no numeric column)")
	} else {
		fmt.Printf("Chart: %s by %s, %d points\n", out.Chart.YLabel, out.Chart.XLabel, len(out.Chart.Data))
	}

	if out.TotalRows == 0 {
		return
	}

	types := make(map[string]core.SemanticType, len(out.Schema))
	for _, col := range out.Schema {
		types[col.Name] = col.Type
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for i, col := range out.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, core.Truncate(col, 20))
	}
	fmt.Fprintln(w)

	n := out.TotalRows
	if n > previewRows {
		n = previewRows
	}
	for i := 0; i < n; i++ {
		for j, col := range out.Columns {
			if j > 0 {
				fmt.Fprint(w, "\t")
			}
			cell := core.FormatCell(ds.Cell(i, col), types[col])
			fmt.Fprint(w, core.Truncate(cell, 20))
		}
		fmt.Fprintln(w)
	}
	w.Flush()

	if out.TotalRows > previewRows {
		fmt.Printf("... and %d more rows\n", out.TotalRows-previewRows)
	}
}
