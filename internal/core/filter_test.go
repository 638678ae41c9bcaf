package core

import (
	"testing"
	"time"
)

func sampleExpenses() []Expense {
	return []Expense{
		{ID: "1", Date: NewDate(2024, 1, 1), Amount: Money{Cents: 1050}, Category: Food, Description: "bakery run"},
		{ID: "2", Date: NewDate(2024, 2, 15), Amount: Money{Cents: 8000}, Category: Bills, Description: "internet bill"},
		{ID: "3", Date: NewDate(2024, 3, 10), Amount: Money{Cents: 2599}, Category: Shopping, Description: "headphones"},
	}
}

func TestFilterDateRangeNeedsBothBounds(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	partial := FilterState{From: &from, Category: CategoryAll}
	if got := Filter(sampleExpenses(), partial); len(got) != 3 {
		t.Fatalf("partial range should not filter, got %d", len(got))
	}

	to := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	full := FilterState{From: &from, To: &to, Category: CategoryAll}
	got := Filter(sampleExpenses(), full)
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("got %v", got)
	}
}

func TestFilterCategory(t *testing.T) {
	got := Filter(sampleExpenses(), FilterState{Category: "Bills"})
	if len(got) != 1 || got[0].Category != Bills {
		t.Fatalf("got %v", got)
	}
	if got := Filter(sampleExpenses(), FilterState{Category: CategoryAll}); len(got) != 3 {
		t.Fatalf("wildcard should match all, got %d", len(got))
	}
}

func TestFilterQuery(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"BAKERY", []string{"1"}},   // description, case-insensitive
		{"bills", []string{"2"}},    // category name
		{"25.99", []string{"3"}},    // amount string
		{"nothing here", nil},
		{"", []string{"1", "2", "3"}},
	}
	for _, tc := range cases {
		got := Filter(sampleExpenses(), FilterState{Category: CategoryAll, Query: tc.query})
		if len(got) != len(tc.want) {
			t.Errorf("query %q: got %d matches, want %d", tc.query, len(got), len(tc.want))
			continue
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Errorf("query %q: got id %s, want %s", tc.query, got[i].ID, id)
			}
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	f := FilterState{From: &from, To: &to, Category: CategoryAll, Query: "b"}

	once := Filter(sampleExpenses(), f)
	twice := Filter(once, f)
	if len(once) != len(twice) {
		t.Fatalf("not idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("order changed at %d", i)
		}
	}
}
