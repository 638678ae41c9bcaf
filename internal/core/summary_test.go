package core

import (
	"testing"
	"time"
)

func thisMonth(day int) Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), day)
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	got := CategoryBreakdown(nil)
	if len(got) != 6 {
		t.Fatalf("got %d entries, want 6", len(got))
	}
	want := Categories()
	for i, cs := range got {
		if cs.Category != want[i] {
			t.Errorf("position %d: got %s, want %s", i, cs.Category, want[i])
		}
		if cs.Amount.Cents != 0 || cs.Percentage != 0 || cs.Count != 0 {
			t.Errorf("%s: expected zero entry, got %+v", cs.Category, cs)
		}
	}
}

func TestBreakdownConservation(t *testing.T) {
	expenses := []Expense{
		{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 999}, Category: Food},
		{Date: NewDate(2024, 1, 2), Amount: Money{Cents: 1}, Category: Bills},
		{Date: NewDate(2024, 2, 3), Amount: Money{Cents: 2500}, Category: Other},
		{Date: NewDate(2024, 2, 4), Amount: Money{Cents: 2500}, Category: Food},
	}
	var sum int64
	for _, cs := range CategoryBreakdown(expenses) {
		sum += cs.Amount.Cents
	}
	if total := TotalSpending(expenses); sum != total.Cents {
		t.Fatalf("breakdown sums to %d, total is %d", sum, total.Cents)
	}
}

func TestDashboardScenario(t *testing.T) {
	expenses := []Expense{
		{Date: thisMonth(1), Amount: Money{Cents: 1000}, Category: Food, Description: "groceries"},
		{Date: thisMonth(2), Amount: Money{Cents: 2000}, Category: Bills, Description: "electricity"},
		{Date: thisMonth(3), Amount: Money{Cents: 500}, Category: Food, Description: "snacks"},
	}

	if total := TotalSpending(expenses); total.Cents != 3500 {
		t.Fatalf("total: got %d cents, want 3500", total.Cents)
	}
	if monthly := MonthlySpending(expenses); monthly.Cents != 3500 {
		t.Fatalf("monthly: got %d cents, want 3500", monthly.Cents)
	}

	breakdown := CategoryBreakdown(expenses)
	top := breakdown[0]
	if top.Category != Bills || top.Amount.Cents != 2000 {
		t.Fatalf("top entry: got %+v", top)
	}
	second := breakdown[1]
	if second.Category != Food || second.Amount.Cents != 1500 || second.Count != 2 {
		t.Fatalf("food entry: got %+v", second)
	}
	wantPct := 1500.0 / 3500.0 * 100
	if diff := second.Percentage - wantPct; diff > 0.001 || diff < -0.001 {
		t.Fatalf("food percentage: got %f, want %f", second.Percentage, wantPct)
	}
}

func TestMonthlySpendingExcludesOtherMonths(t *testing.T) {
	lastYear := time.Now().AddDate(-1, 0, 0)
	expenses := []Expense{
		{Date: thisMonth(5), Amount: Money{Cents: 700}, Category: Food},
		{Date: NewDate(lastYear.Year(), int(lastYear.Month()), 5), Amount: Money{Cents: 9999}, Category: Food},
	}
	if monthly := MonthlySpending(expenses); monthly.Cents != 700 {
		t.Fatalf("got %d cents, want 700", monthly.Cents)
	}
}

func TestBreakdownTieKeepsCanonicalOrder(t *testing.T) {
	expenses := []Expense{
		{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 100}, Category: Other},
		{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 100}, Category: Shopping},
	}
	breakdown := CategoryBreakdown(expenses)
	if breakdown[0].Category != Shopping || breakdown[1].Category != Other {
		t.Fatalf("tie order broken: %s before %s", breakdown[0].Category, breakdown[1].Category)
	}
}
