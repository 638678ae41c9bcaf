// Package export turns a filtered expense list into a downloadable
// payload. An export runs in three stages: filter (export-specific date
// and category narrowing), serialize (format registry) and name.
// Delivery of the payload is a separate boundary (internal/delivery).
package export

import (
	"errors"
	"fmt"
	"time"

	"outgo/internal/core"
)

// ErrUnsupportedFormat is a configuration error: it is raised before any
// filtering or serialization work starts.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Options configures one export invocation.
type Options struct {
	Format   Format
	Filename string // stem without extension; empty means expenses_<date>

	// Date range, inclusive. Both bounds must be set to take effect;
	// From is clamped to the start of its day and To to the end.
	From *time.Time
	To   *time.Time

	// Categories restricts the export to an explicit subset. An empty
	// subset or IncludeAllCategories disables the restriction.
	Categories           []core.Category
	IncludeAllCategories bool

	Spec RenderSpec
}

// Result is the outcome of an export run: the payload plus the metadata
// bookkeeping needs (filtered record count and total).
type Result struct {
	Payload     []byte
	Filename    string
	ContentType string
	RecordCount int
	TotalAmount core.Money
}

// Run executes the export pipeline over a snapshot of the expense list.
// An empty filtered set is not an error; callers decide whether to block.
func Run(expenses []core.Expense, opts Options) (Result, error) {
	ser, err := serializerFor(opts.Format)
	if err != nil {
		return Result{}, err
	}

	filtered := filterForExport(expenses, opts)

	payload, err := ser.Serialize(filtered, opts.Spec)
	if err != nil {
		return Result{}, fmt.Errorf("serialize %s export: %w", opts.Format, err)
	}

	return Result{
		Payload:     payload,
		Filename:    buildFilename(opts.Filename, ser.Extension()),
		ContentType: ser.ContentType(),
		RecordCount: len(filtered),
		TotalAmount: core.TotalSpending(filtered),
	}, nil
}

// filterForExport narrows the snapshot by date range and category subset.
// This is intentionally separate from core.FilterState: export filtering
// clamps the range to full-day boundaries, interactive filtering does not.
func filterForExport(expenses []core.Expense, opts Options) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))

	var from, to time.Time
	rangeSet := opts.From != nil && opts.To != nil
	if rangeSet {
		f, t := *opts.From, *opts.To
		from = time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, f.Location())
		to = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
	}

	restrict := !opts.IncludeAllCategories && len(opts.Categories) > 0
	allowed := make(map[core.Category]bool, len(opts.Categories))
	for _, c := range opts.Categories {
		allowed[c] = true
	}

	for _, e := range expenses {
		if rangeSet {
			d := e.Date.Time
			if d.Before(from) || d.After(to) {
				continue
			}
		}
		if restrict && !allowed[e.Category] {
			continue
		}
		out = append(out, e)
	}
	return out
}

func buildFilename(stem, ext string) string {
	if stem == "" {
		stem = "expenses_" + time.Now().Format("2006-01-02")
	}
	return stem + "." + ext
}
