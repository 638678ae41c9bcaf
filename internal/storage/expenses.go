package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"outgo/internal/core"
)

// ExpenseStore persists the expense collection. Persistence failures are
// logged and swallowed: callers observe a best-effort no-op instead of an
// error. That mirrors the product's local-storage heritage and is recorded
// as an accepted risk in DESIGN.md.
type ExpenseStore struct {
	kv KV
}

// ExpensePatch carries the fields an update may replace. Nil fields are
// left untouched; ID and CreatedAt can never change.
type ExpensePatch struct {
	Date        *core.Date
	Amount      *core.Money
	Category    *core.Category
	Description *string
}

func NewExpenseStore(kv KV) *ExpenseStore {
	return &ExpenseStore{kv: kv}
}

// List returns all persisted expenses in storage order. Callers sort.
func (s *ExpenseStore) List(ctx context.Context) []core.Expense {
	return s.load(ctx)
}

// Add assigns an id and timestamps to the draft, appends it and persists
// the collection. Validation is the caller's responsibility.
func (s *ExpenseStore) Add(ctx context.Context, d core.Draft) core.Expense {
	now := time.Now()
	expense := core.Expense{
		ID:          newID(),
		Date:        d.Date,
		Amount:      d.Amount,
		Category:    d.Category,
		Description: d.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	expenses := append(s.load(ctx), expense)
	s.persist(ctx, expenses)

	slog.InfoContext(ctx, "Expense saved",
		"id", expense.ID,
		"category", expense.Category,
		"amount_cents", expense.Amount.Cents)

	return expense
}

// Update merges the patch onto the stored record, refreshing UpdatedAt.
// Returns nil when the id is absent.
func (s *ExpenseStore) Update(ctx context.Context, id string, patch ExpensePatch) *core.Expense {
	expenses := s.load(ctx)
	for i := range expenses {
		if expenses[i].ID != id {
			continue
		}
		e := &expenses[i]
		if patch.Date != nil {
			e.Date = *patch.Date
		}
		if patch.Amount != nil {
			e.Amount = *patch.Amount
		}
		if patch.Category != nil {
			e.Category = *patch.Category
		}
		if patch.Description != nil {
			e.Description = *patch.Description
		}
		e.UpdatedAt = time.Now()

		s.persist(ctx, expenses)
		updated := *e
		return &updated
	}
	return nil
}

// Delete removes the record and reports whether anything was removed.
func (s *ExpenseStore) Delete(ctx context.Context, id string) bool {
	expenses := s.load(ctx)
	for i := range expenses {
		if expenses[i].ID == id {
			expenses = append(expenses[:i], expenses[i+1:]...)
			s.persist(ctx, expenses)
			slog.InfoContext(ctx, "Expense deleted", "id", id)
			return true
		}
	}
	return false
}

func (s *ExpenseStore) load(ctx context.Context) []core.Expense {
	data, ok, err := s.kv.Get(ctx, expensesKey)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load expenses", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var expenses []core.Expense
	if err := json.Unmarshal(data, &expenses); err != nil {
		slog.ErrorContext(ctx, "Failed to decode expenses", "error", err)
		return nil
	}
	return expenses
}

func (s *ExpenseStore) persist(ctx context.Context, expenses []core.Expense) {
	data, err := json.Marshal(expenses)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode expenses", "error", err)
		return
	}
	if err := s.kv.Set(ctx, expensesKey, data); err != nil {
		slog.ErrorContext(ctx, "Failed to persist expenses",
			"error", err,
			"count", len(expenses))
	}
}
