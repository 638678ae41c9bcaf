package export

import (
	"fmt"
	"strings"
	"time"

	"outgo/internal/core"
)

// Layout constants for the paginated text report. The document format
// only promises section order (summary, breakdown, transaction table)
// and pagination, not exact positions.
const (
	reportWidth    = 78
	reportPageRows = 56

	// Descriptions longer than descTruncateOver runes are cut to
	// descKeepRunes plus an ellipsis; anything at or under the threshold
	// is printed whole.
	descTruncateOver = 35
	descKeepRunes    = 32

	colDate     = 14
	colCategory = 16
	colAmount   = 12
)

// reportSerializer renders a printable, paginated plain-text report:
// title, generation timestamp, summary block, category breakdown and a
// transaction table whose header repeats after each page break.
type reportSerializer struct{}

func (reportSerializer) Extension() string   { return "txt" }
func (reportSerializer) ContentType() string { return "text/plain; charset=utf-8" }

func (reportSerializer) Serialize(expenses []core.Expense, spec RenderSpec) ([]byte, error) {
	title := spec.Title
	if title == "" {
		title = "Expense Report"
	}

	w := &pageWriter{}
	w.line(center(title))
	if spec.Subtitle != "" {
		w.line(center(spec.Subtitle))
	}
	w.line(center("Generated on: " + time.Now().Format("Jan 2, 2006 3:04 PM")))
	w.blank()

	writeSummary(w, expenses)
	writeBreakdown(w, expenses)
	if !spec.CategoryOnly {
		writeTable(w, expenses)
	}

	w.blank()
	w.line(center("Generated by Outgo"))
	return []byte(w.String()), nil
}

func writeSummary(w *pageWriter, expenses []core.Expense) {
	w.line("Summary")
	w.line(strings.Repeat("-", len("Summary")))
	w.line(fmt.Sprintf("Total Expenses: %d", len(expenses)))
	w.line("Total Amount: " + FormatCurrency(core.TotalSpending(expenses)))
	if r := dateRange(expenses); r.Earliest != nil {
		w.line(fmt.Sprintf("Date Range: %s - %s", FormatDate(*r.Earliest), FormatDate(*r.Latest)))
	}
	w.blank()
}

func writeBreakdown(w *pageWriter, expenses []core.Expense) {
	breakdown := core.CategoryBreakdown(expenses)
	w.line("Category Breakdown")
	w.line(strings.Repeat("-", len("Category Breakdown")))
	for _, cs := range breakdown {
		if cs.Count == 0 {
			continue
		}
		w.line(fmt.Sprintf("  %-16s %12s  (%.1f%%)",
			cs.Category, FormatCurrency(cs.Amount), cs.Percentage))
	}
	w.blank()
}

func writeTable(w *pageWriter, expenses []core.Expense) {
	w.line("Expense Details")
	w.line(strings.Repeat("-", len("Expense Details")))
	w.tableHeader = tableHeaderLines()
	defer func() { w.tableHeader = nil }()

	for _, l := range w.tableHeader {
		w.line(l)
	}
	for i, e := range expenses {
		// The gutter marker alternates per row, the text stand-in for
		// the reference report's alternating row shading.
		gutter := " "
		if i%2 == 1 {
			gutter = ":"
		}
		w.line(fmt.Sprintf("%s %-*s%-*s%*s  %s",
			gutter,
			colDate, FormatDate(e.Date),
			colCategory, e.Category,
			colAmount, "$"+e.Amount.String(),
			truncate(e.Description)))
	}
}

func tableHeaderLines() []string {
	header := fmt.Sprintf("  %-*s%-*s%*s  %s",
		colDate, "Date", colCategory, "Category", colAmount, "Amount", "Description")
	return []string{header, "  " + strings.Repeat("=", reportWidth-2)}
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= descTruncateOver {
		return s
	}
	return string(runes[:descKeepRunes]) + "..."
}

func center(s string) string {
	if len(s) >= reportWidth {
		return s
	}
	return strings.Repeat(" ", (reportWidth-len(s))/2) + s
}

// pageWriter tracks the vertical cursor and inserts a form-feed page
// break when a page fills up, repeating the table header when set.
type pageWriter struct {
	b           strings.Builder
	row         int
	tableHeader []string
}

func (w *pageWriter) line(s string) {
	if w.row >= reportPageRows {
		w.b.WriteString("\f\n")
		w.row = 1
		for _, h := range w.tableHeader {
			w.b.WriteString(h)
			w.b.WriteByte('\n')
			w.row++
		}
	}
	w.b.WriteString(s)
	w.b.WriteByte('\n')
	w.row++
}

func (w *pageWriter) blank() { w.line("") }

func (w *pageWriter) String() string { return w.b.String() }
