package core

import (
	"strings"
	"time"
)

// FilterState is the interactive filter over the expense list. Both date
// bounds must be set for the range to apply; a partial range disables
// date filtering entirely. Category uses CategoryAll as the wildcard.
type FilterState struct {
	From     *time.Time
	To       *time.Time
	Category string
	Query    string
}

// Matches reports whether the expense passes every active filter.
func (f FilterState) Matches(e Expense) bool {
	if f.From != nil && f.To != nil {
		d := e.Date.Time
		if d.Before(*f.From) || d.After(*f.To) {
			return false
		}
	}

	if f.Category != "" && f.Category != CategoryAll && string(e.Category) != f.Category {
		return false
	}

	if f.Query != "" {
		q := strings.ToLower(f.Query)
		matched := strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(string(e.Category)), q) ||
			strings.Contains(e.Amount.String(), q)
		if !matched {
			return false
		}
	}

	return true
}

// Filter returns the expenses matching the filter state, preserving order.
func Filter(expenses []Expense, f FilterState) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
