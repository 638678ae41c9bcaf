package core

import (
	"sort"
	"time"
)

// CategorySpending is the per-category aggregate over a set of expenses.
type CategorySpending struct {
	Category   Category `json:"category"`
	Amount     Money    `json:"amount"`
	Percentage float64  `json:"percentage"`
	Count      int      `json:"count"`
}

// TotalSpending sums the amounts of all expenses. Zero for empty input.
func TotalSpending(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total.Cents += e.Amount.Cents
	}
	return total
}

// MonthlySpending sums the expenses dated within the current calendar
// month. The wall clock is read at call time on purpose: this backs the
// dashboard's "this month" figure.
func MonthlySpending(expenses []Expense) Money {
	now := time.Now()
	var total Money
	for _, e := range expenses {
		if e.Date.Year() == now.Year() && e.Date.Month() == now.Month() {
			total.Cents += e.Amount.Cents
		}
	}
	return total
}

// CategoryBreakdown aggregates amount, share and count per category. The
// result always has one entry per category, including zero-amount ones,
// sorted descending by amount; ties keep the canonical category order.
func CategoryBreakdown(expenses []Expense) []CategorySpending {
	total := TotalSpending(expenses)

	byCategory := make(map[Category]*CategorySpending, len(categories))
	out := make([]CategorySpending, len(categories))
	for i, c := range categories {
		out[i] = CategorySpending{Category: c}
		byCategory[c] = &out[i]
	}
	for _, e := range expenses {
		if cs, ok := byCategory[e.Category]; ok {
			cs.Amount.Cents += e.Amount.Cents
			cs.Count++
		}
	}
	if total.Cents > 0 {
		for i := range out {
			out[i].Percentage = float64(out[i].Amount.Cents) / float64(total.Cents) * 100
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}
