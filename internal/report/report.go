// Package report renders category totals as the exported summary report.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"expenses/internal/core"
)

// DefaultFile is the report file name used when none is configured.
const DefaultFile = "expense_summary_report.csv"

// Header is the report column layout.
var Header = []string{"category", "total_spent"}

// Rows returns the report body, one row per category in totals order,
// with totals formatted to two decimals. The header is not included.
func Rows(totals core.CategoryTotals) [][]string {
	out := make([][]string, 0, totals.Len())
	for _, e := range totals.Entries() {
		out = append(out, []string{e.Name, core.FormatAmount(e.Amount)})
	}
	return out
}

// WriteCSV writes the header and body to w.
func WriteCSV(w io.Writer, totals core.CategoryTotals) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	if err := cw.WriteAll(Rows(totals)); err != nil {
		return fmt.Errorf("writing report rows: %w", err)
	}
	return nil
}

// ExportCategoryTotals writes the report to destination, replacing any
// existing file.
func ExportCategoryTotals(totals core.CategoryTotals, destination string) error {
	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := WriteCSV(f, totals); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	return nil
}
