package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"expenses/internal/core"
)

// Messages shown when there is nothing to report.
const (
	MsgNoExpenses       = "No expenses recorded yet."
	MsgNothingToExport  = "No expenses to export."
	msgNoMonthFormat    = "No expenses found for %s."
	msgExpenseSaved     = "Expense saved successfully"
	msgReportExported   = "Report exported successfully as '%s'"
	msgReportPublished  = "Report published to %s"
	msgStoreInitialized = "Expense file ready: %s"
)

func rule(n int) string {
	return SubtleStyle.Render(strings.Repeat("-", n))
}

// RenderExpenses prints every expense as a table.
func RenderExpenses(w io.Writer, list []core.Expense) {
	if len(list) == 0 {
		fmt.Fprintln(w, InfoStyle.Render(MsgNoExpenses))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("--- Recent Expenses ---"))
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{e.Date, e.Category.String(), core.FormatAmount(e.Amount), e.Note})
	}
	renderTable(w, []string{"Date", "Category", "Amount", "Note"}, rows)
}

// renderTable aligns plain cells first and styles the header line after,
// so escape codes never count toward column widths.
func renderTable(w io.Writer, header []string, rows [][]string) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	lines := strings.SplitAfter(buf.String(), "\n")
	fmt.Fprintln(w, TableHeaderStyle.Render(strings.TrimRight(lines[0], "\n")))
	for _, line := range lines[1:] {
		io.WriteString(w, line)
	}
}

// RenderCategoryTotals prints the all-time category summary.
func RenderCategoryTotals(w io.Writer, totals core.CategoryTotals) {
	if totals.Empty() {
		fmt.Fprintln(w, InfoStyle.Render(MsgNoExpenses))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("--- Category Summary ---"))
	fmt.Fprintln(w, rule(30))
	renderTotals(w, totals)
	fmt.Fprintln(w, rule(30))
}

// RenderMonthOverview prints one month's category totals and their sum.
func RenderMonthOverview(w io.Writer, m core.MonthOverview) {
	if m.Totals.Empty() {
		fmt.Fprintln(w, InfoStyle.Render(fmt.Sprintf(msgNoMonthFormat, m.Month)))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("--- Monthly Summary: %s ---", m.Month)))
	fmt.Fprintln(w, rule(35))
	renderTotals(w, m.Totals)
	fmt.Fprintln(w, rule(35))
	fmt.Fprintf(w, "%s → %s\n", BoldStyle.Render("Total spent"), core.FormatAmount(m.Total()))
}

func renderTotals(w io.Writer, totals core.CategoryTotals) {
	for _, e := range totals.Entries() {
		fmt.Fprintf(w, "%-12s → %s\n", e.Name, core.FormatAmount(e.Amount))
	}
}

// RenderHighest prints the highest expense alert block.
func RenderHighest(w io.Writer, e core.Expense, found bool) {
	if !found {
		fmt.Fprintln(w, InfoStyle.Render(MsgNoExpenses))
		return
	}

	item := e.Note
	if item == "" {
		item = e.Category.String()
	}
	fmt.Fprintln(w, WarningStyle.Render("Highest Expense Alert"))
	fmt.Fprintln(w, rule(35))
	fmt.Fprintf(w, "Item     : %s\n", item)
	fmt.Fprintf(w, "Category : %s\n", e.Category)
	fmt.Fprintf(w, "Amount   : %s\n", core.FormatAmount(e.Amount))
	fmt.Fprintf(w, "Date     : %s\n", e.Date)
	fmt.Fprintln(w, rule(35))
}

// RenderCategories prints the closed category list with menu numbers.
func RenderCategories(w io.Writer) {
	for i, c := range core.Categories {
		fmt.Fprintf(w, "%d. %s\n", i+1, c)
	}
}

// RenderSaved confirms a recorded expense.
func RenderSaved(w io.Writer, e core.Expense) {
	fmt.Fprintln(w, SuccessStyle.Render(msgExpenseSaved))
	fmt.Fprintf(w, "%s  %s  %s\n", e.Date, e.Category, core.FormatAmount(e.Amount))
}

// RenderExported confirms a written report file.
func RenderExported(w io.Writer, path string) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf(msgReportExported, path)))
}

// RenderPublished confirms a report sent to Google Sheets.
func RenderPublished(w io.Writer, ref string) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf(msgReportPublished, ref)))
}

// RenderInitialized confirms the store is ready.
func RenderInitialized(w io.Writer, location string) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf(msgStoreInitialized, location)))
}
