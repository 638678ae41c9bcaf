package export

import (
	"fmt"
	"strings"

	"outgo/internal/core"
)

// csvSerializer emits comma-separated rows with every field double-quoted
// and amounts formatted to two decimals. The header row is unquoted.
type csvSerializer struct{}

func (csvSerializer) Extension() string   { return "csv" }
func (csvSerializer) ContentType() string { return "text/csv; charset=utf-8" }

func (csvSerializer) Serialize(expenses []core.Expense, spec RenderSpec) ([]byte, error) {
	headers := csvHeaders(spec.Columns)

	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))

	for _, e := range expenses {
		writeCSVRow(&b, csvFields(e, spec.Columns))
	}

	if spec.IncludeTotals {
		total := core.TotalSpending(expenses)
		writeCSVRow(&b, make([]string, len(headers)))
		writeCSVRow(&b, totalsRow(headers, total, len(expenses)))
	}

	return []byte(b.String()), nil
}

func csvHeaders(cols ColumnSet) []string {
	switch cols {
	case ColumnsExtended:
		return []string{"Date", "Category", "Amount", "Description", "Created At", "Updated At"}
	case ColumnsMinimal:
		return []string{"Date", "Category", "Amount"}
	default:
		return []string{"Date", "Category", "Amount", "Description"}
	}
}

func csvFields(e core.Expense, cols ColumnSet) []string {
	base := []string{FormatDate(e.Date), string(e.Category), e.Amount.String()}
	switch cols {
	case ColumnsMinimal:
		return base
	case ColumnsExtended:
		return append(base,
			e.Description,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.UpdatedAt.Format("2006-01-02 15:04:05"))
	default:
		return append(base, e.Description)
	}
}

// totalsRow builds the trailing summary row: TOTAL in the first column,
// the grand total in the Amount column, the record count in Description.
func totalsRow(headers []string, total core.Money, count int) []string {
	row := make([]string, len(headers))
	row[0] = "TOTAL"
	for i, h := range headers {
		switch h {
		case "Amount":
			row[i] = total.String()
		case "Description":
			row[i] = fmt.Sprintf("%d expenses", count)
		}
	}
	return row
}

func writeCSVRow(b *strings.Builder, fields []string) {
	b.WriteByte('\n')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}
