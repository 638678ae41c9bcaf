package export

import (
	"encoding/json"
	"time"

	"outgo/internal/core"
)

type jsonSerializer struct{}

func (jsonSerializer) Extension() string   { return "json" }
func (jsonSerializer) ContentType() string { return "application/json; charset=utf-8" }

type (
	jsonDocument struct {
		Metadata jsonMetadata `json:"metadata"`
		Expenses []jsonRecord `json:"expenses"`
	}

	jsonMetadata struct {
		ExportDate        time.Time                          `json:"exportDate"`
		TotalExpenses     int                                `json:"totalExpenses"`
		TotalAmount       core.Money                         `json:"totalAmount"`
		DateRange         jsonDateRange                      `json:"dateRange"`
		CategoryBreakdown map[core.Category]jsonCategoryStat `json:"categoryBreakdown"`
	}

	jsonDateRange struct {
		Earliest *core.Date `json:"earliest"`
		Latest   *core.Date `json:"latest"`
	}

	jsonCategoryStat struct {
		Count int        `json:"count"`
		Total core.Money `json:"total"`
	}

	// jsonRecord augments the stored expense with display strings.
	jsonRecord struct {
		core.Expense
		FormattedAmount string `json:"formattedAmount"`
		FormattedDate   string `json:"formattedDate"`
	}
)

func (jsonSerializer) Serialize(expenses []core.Expense, _ RenderSpec) ([]byte, error) {
	doc := jsonDocument{
		Metadata: jsonMetadata{
			ExportDate:        time.Now(),
			TotalExpenses:     len(expenses),
			TotalAmount:       core.TotalSpending(expenses),
			DateRange:         dateRange(expenses),
			CategoryBreakdown: breakdownMap(expenses),
		},
		Expenses: make([]jsonRecord, 0, len(expenses)),
	}

	for _, e := range expenses {
		doc.Expenses = append(doc.Expenses, jsonRecord{
			Expense:         e,
			FormattedAmount: FormatCurrency(e.Amount),
			FormattedDate:   FormatDate(e.Date),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// dateRange finds the earliest and latest expense dates; both are null
// for an empty set.
func dateRange(expenses []core.Expense) jsonDateRange {
	if len(expenses) == 0 {
		return jsonDateRange{}
	}
	earliest, latest := expenses[0].Date, expenses[0].Date
	for _, e := range expenses[1:] {
		if e.Date.Before(earliest.Time) {
			earliest = e.Date
		}
		if e.Date.After(latest.Time) {
			latest = e.Date
		}
	}
	return jsonDateRange{Earliest: &earliest, Latest: &latest}
}

// breakdownMap counts and sums per category, only for categories present.
func breakdownMap(expenses []core.Expense) map[core.Category]jsonCategoryStat {
	out := make(map[core.Category]jsonCategoryStat)
	for _, e := range expenses {
		stat := out[e.Category]
		stat.Count++
		stat.Total.Cents += e.Amount.Cents
		out[e.Category] = stat
	}
	return out
}
