package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"outgo/internal/core"
)

func TestHistoryNewestFirstAndCapped(t *testing.T) {
	store := NewBookkeepingStore(NewMemoryKV())
	ctx := context.Background()

	for i := 0; i < historyLimit+10; i++ {
		store.AppendHistory(ctx, HistoryItem{
			Template:    fmt.Sprintf("tpl-%d", i),
			Format:      "csv",
			Timestamp:   time.Now(),
			RecordCount: i,
			Status:      StatusCompleted,
		})
	}

	items := store.History(ctx)
	if len(items) != historyLimit {
		t.Fatalf("got %d items, want %d", len(items), historyLimit)
	}
	if items[0].Template != fmt.Sprintf("tpl-%d", historyLimit+9) {
		t.Fatalf("newest entry not first: %s", items[0].Template)
	}
	if items[0].ID == "" {
		t.Fatal("expected assigned id")
	}

	store.ClearHistory(ctx)
	if got := store.History(ctx); len(got) != 0 {
		t.Fatalf("history not cleared: %d", len(got))
	}
}

func TestIntegrationsSeededWithDefaults(t *testing.T) {
	store := NewBookkeepingStore(NewMemoryKV())
	integrations := store.Integrations(context.Background())
	if len(integrations) != 5 {
		t.Fatalf("got %d integrations, want 5", len(integrations))
	}
	byProvider := map[Provider]Integration{}
	for _, in := range integrations {
		byProvider[in.Provider] = in
	}
	if !byProvider[ProviderEmail].Connected {
		t.Fatal("email should be connected by default")
	}
	if byProvider[ProviderDropbox].Connected {
		t.Fatal("dropbox should start disconnected")
	}
}

func TestToggleIntegration(t *testing.T) {
	store := NewBookkeepingStore(NewMemoryKV())
	ctx := context.Background()

	on := store.ToggleIntegration(ctx, ProviderDropbox)
	if on == nil || !on.Connected || on.LastSync == nil {
		t.Fatalf("toggle on: %+v", on)
	}
	if !store.Connected(ctx, ProviderDropbox) {
		t.Fatal("Connected should report true after toggle")
	}

	off := store.ToggleIntegration(ctx, ProviderDropbox)
	if off == nil || off.Connected || off.LastSync != nil {
		t.Fatalf("toggle off: %+v", off)
	}

	email := store.ToggleIntegration(ctx, ProviderEmail)
	if email == nil || !email.Connected {
		t.Fatalf("email must stay connected: %+v", email)
	}

	if got := store.ToggleIntegration(ctx, Provider("nope")); got != nil {
		t.Fatalf("unknown provider should return nil, got %+v", got)
	}
}

func TestScheduleLifecycle(t *testing.T) {
	store := NewBookkeepingStore(NewMemoryKV())
	ctx := context.Background()

	created := store.AddSchedule(ctx, Schedule{
		Name:        "monthly taxes",
		Template:    "tax-report",
		Frequency:   core.Monthly,
		Destination: ProviderEmail,
		Enabled:     true,
		NextRun:     time.Now().AddDate(0, 1, 0),
	})
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("missing id or createdAt: %+v", created)
	}

	toggled := store.ToggleSchedule(ctx, created.ID)
	if toggled == nil || toggled.Enabled {
		t.Fatalf("expected disabled schedule, got %+v", toggled)
	}

	ranAt := time.Now()
	next := ranAt.AddDate(0, 1, 0)
	marked := store.MarkScheduleRun(ctx, created.ID, ranAt, next)
	if marked == nil || marked.LastRun == nil || !marked.NextRun.Equal(next) {
		t.Fatalf("mark run: %+v", marked)
	}

	if !store.DeleteSchedule(ctx, created.ID) {
		t.Fatal("delete reported false")
	}
	if store.DeleteSchedule(ctx, created.ID) {
		t.Fatal("second delete reported true")
	}
	if got := store.Schedules(ctx); len(got) != 0 {
		t.Fatalf("expected no schedules, got %d", len(got))
	}
}
