package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Entertainment  Category = "Entertainment"
	Shopping       Category = "Shopping"
	Bills          Category = "Bills"
	Other          Category = "Other"
)

// CategoryAll is the filter wildcard that matches every category.
const CategoryAll = "All"

const (
	Daily     Frequency = "daily"
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

const dateLayout = "2006-01-02"

type (
	Category string

	// Frequency is a recurrence interval for scheduled exports.
	Frequency string

	Date struct {
		time.Time
	}

	// Expense is a single recorded transaction. ID and the two timestamps
	// are assigned by the store; everything else comes from the caller.
	Expense struct {
		ID          string    `json:"id"`
		Date        Date      `json:"date"`
		Amount      Money     `json:"amount"`
		Category    Category  `json:"category"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"createdAt"`
		UpdatedAt   time.Time `json:"updatedAt"`
	}

	// Draft is the caller-supplied part of an expense.
	Draft struct {
		Date        Date
		Amount      Money
		Category    Category
		Description string
	}
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidCategory  = errors.New("unknown category")
	ErrShortDescription = errors.New("description must be at least 3 characters")
	ErrZeroDate         = errors.New("date is required")
)

// categories holds the fixed enumeration in its canonical order. Breakdown
// output and tie-breaking both depend on this order.
var categories = []Category{Food, Transportation, Entertainment, Shopping, Bills, Other}

// Categories returns the fixed category enumeration in canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO 8601 calendar date (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}

func (d Draft) Validate() error {
	if d.Date.IsZero() {
		return ErrZeroDate
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if !d.Category.Valid() {
		return ErrInvalidCategory
	}
	if len(strings.TrimSpace(d.Description)) < 3 {
		return ErrShortDescription
	}
	return nil
}
