package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"outgo/internal/core"
	"outgo/internal/delivery"
	"outgo/internal/storage"
)

func newScheduleFixture(t *testing.T) (*ScheduleService, *Runner, *storage.ExpenseStore, *storage.BookkeepingStore) {
	t.Helper()
	kv := storage.NewMemoryKV()
	expenses := storage.NewExpenseStore(kv)
	books := storage.NewBookkeepingStore(kv)
	exports := NewExportService(expenses, books, &delivery.MemoryDeliverer{}, nil)
	schedules := NewScheduleService(books)
	runner := NewRunner(exports, schedules, books, DefaultRunnerConfig())
	return schedules, runner, expenses, books
}

func TestScheduleCreateValidates(t *testing.T) {
	schedules, _, _, _ := newScheduleFixture(t)
	ctx := context.Background()

	_, err := schedules.Create(ctx, ScheduleDraft{Name: "x", Template: "nope", Frequency: core.Weekly})
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}

	_, err = schedules.Create(ctx, ScheduleDraft{Name: "x", Template: "tax-report", Frequency: "hourly"})
	if err == nil {
		t.Error("expected frequency validation error")
	}
}

func TestScheduleLifecycle(t *testing.T) {
	schedules, _, _, _ := newScheduleFixture(t)
	ctx := context.Background()

	created, err := schedules.Create(ctx, ScheduleDraft{
		Name:        "Monthly taxes",
		Template:    "tax-report",
		Frequency:   core.Monthly,
		Destination: storage.ProviderEmail,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(created.ID, "schedule-") {
		t.Errorf("id = %q, want schedule- prefix", created.ID)
	}
	if !created.Enabled {
		t.Error("new schedules should start enabled")
	}
	if created.NextRun.Before(time.Now()) {
		t.Error("first run should be in the future")
	}

	toggled := schedules.Toggle(ctx, created.ID)
	if toggled == nil || toggled.Enabled {
		t.Fatalf("toggle should disable, got %+v", toggled)
	}

	if schedules.Toggle(ctx, "schedule-missing") != nil {
		t.Error("toggling a missing schedule should return nil")
	}

	if !schedules.Delete(ctx, created.ID) {
		t.Error("delete should report true for an existing schedule")
	}
	if schedules.Delete(ctx, created.ID) {
		t.Error("second delete should report false")
	}
	if got := schedules.List(ctx); len(got) != 0 {
		t.Errorf("list after delete = %+v", got)
	}
}

func TestIntegrationPassthrough(t *testing.T) {
	schedules, _, _, _ := newScheduleFixture(t)
	ctx := context.Background()

	integrations := schedules.Integrations(ctx)
	if len(integrations) != 5 {
		t.Fatalf("expected 5 seeded integrations, got %d", len(integrations))
	}

	email := schedules.ToggleIntegration(ctx, storage.ProviderEmail)
	if email == nil || !email.Connected {
		t.Error("email must stay connected")
	}
}

func TestRunnerProcessDue(t *testing.T) {
	schedules, runner, expenses, books := newScheduleFixture(t)
	ctx := context.Background()

	d, _ := core.ParseDate("2024-01-15")
	expenses.Add(ctx, core.Draft{Date: d, Amount: core.Money{Cents: 1000}, Category: core.Food, Description: "lunch"})

	created, err := schedules.Create(ctx, ScheduleDraft{
		Name:      "weekly run",
		Template:  "minimal-csv",
		Frequency: core.Weekly,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Not due yet.
	if ran := runner.ProcessDue(ctx, time.Now()); ran != 0 {
		t.Errorf("nothing should be due, ran %d", ran)
	}

	now := created.NextRun.Add(time.Minute)
	if ran := runner.ProcessDue(ctx, now); ran != 1 {
		t.Fatalf("expected one run, got %d", ran)
	}

	after := schedules.List(ctx)[0]
	if after.LastRun == nil || !after.LastRun.Equal(now) {
		t.Errorf("LastRun = %v, want %v", after.LastRun, now)
	}
	if want := now.AddDate(0, 0, 7); !after.NextRun.Equal(want) {
		t.Errorf("NextRun = %v, want %v", after.NextRun, want)
	}

	history := books.History(ctx)
	if len(history) != 1 || history[0].Template != "minimal-csv" {
		t.Errorf("scheduled run should be in history: %+v", history)
	}

	// Disabled schedules are skipped.
	schedules.Toggle(ctx, created.ID)
	if ran := runner.ProcessDue(ctx, now.AddDate(0, 1, 0)); ran != 0 {
		t.Errorf("disabled schedule ran %d times", ran)
	}
}

func TestRunnerStartStop(t *testing.T) {
	_, runner, _, _ := newScheduleFixture(t)
	ctx := context.Background()

	if err := runner.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := runner.Start(ctx); err == nil {
		t.Error("second start should fail")
	}

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := runner.Stop(stopCtx); err != nil {
		t.Fatal(err)
	}
	if err := runner.Stop(stopCtx); err != nil {
		t.Errorf("stop after stop should be a no-op, got %v", err)
	}
}
