package core

import (
	"encoding/json"
	"testing"
)

func TestDraftValidate(t *testing.T) {
	good := Draft{
		Date:        NewDate(2024, 3, 10),
		Amount:      Money{Cents: 1250},
		Category:    Food,
		Description: "lunch",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		d    Draft
		want error
	}{
		{"zero date", Draft{Amount: Money{Cents: 100}, Category: Food, Description: "abc"}, ErrZeroDate},
		{"zero amount", Draft{Date: NewDate(2024, 1, 1), Category: Food, Description: "abc"}, ErrInvalidAmount},
		{"negative amount", Draft{Date: NewDate(2024, 1, 1), Amount: Money{Cents: -5}, Category: Food, Description: "abc"}, ErrInvalidAmount},
		{"bad category", Draft{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 100}, Category: "Groceries", Description: "abc"}, ErrInvalidCategory},
		{"short description", Draft{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 100}, Category: Food, Description: "ab"}, ErrShortDescription},
		{"whitespace description", Draft{Date: NewDate(2024, 1, 1), Amount: Money{Cents: 100}, Category: Food, Description: "  a  "}, ErrShortDescription},
	}
	for _, tc := range cases {
		if err := tc.d.Validate(); err != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCategoriesOrder(t *testing.T) {
	want := []Category{Food, Transportation, Entertainment, Shopping, Bills, Other}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 2, 15)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-02-15"` {
		t.Fatalf("got %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}
