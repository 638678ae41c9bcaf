package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"outgo/internal/core"
	"outgo/internal/storage"
)

// ScheduleService manages recurring export definitions and the mock cloud
// integration state backing their destinations.
type ScheduleService struct {
	books *storage.BookkeepingStore
}

func NewScheduleService(books *storage.BookkeepingStore) *ScheduleService {
	return &ScheduleService{books: books}
}

// ScheduleDraft is the caller-supplied part of a schedule.
type ScheduleDraft struct {
	Name        string           `json:"name"`
	Template    string           `json:"template"`
	Frequency   core.Frequency   `json:"frequency"`
	Destination storage.Provider `json:"destination"`
}

// Create validates the draft, computes the first run time from now and
// persists the schedule enabled.
func (s *ScheduleService) Create(ctx context.Context, draft ScheduleDraft) (storage.Schedule, error) {
	if _, err := TemplateByID(draft.Template); err != nil {
		return storage.Schedule{}, fmt.Errorf("schedule template %q: %w", draft.Template, err)
	}
	if !draft.Frequency.Valid() {
		return storage.Schedule{}, fmt.Errorf("invalid schedule frequency %q", draft.Frequency)
	}

	next, _ := NextRun(draft.Frequency, time.Now())
	schedule := s.books.AddSchedule(ctx, storage.Schedule{
		Name:        draft.Name,
		Template:    draft.Template,
		Frequency:   draft.Frequency,
		Destination: draft.Destination,
		Enabled:     true,
		NextRun:     next,
	})

	slog.InfoContext(ctx, "schedule created",
		"component", "schedule_service",
		"id", schedule.ID,
		"template", schedule.Template,
		"frequency", schedule.Frequency)

	return schedule, nil
}

func (s *ScheduleService) List(ctx context.Context) []storage.Schedule {
	return s.books.Schedules(ctx)
}

// Toggle flips the enabled flag; nil when the id is absent.
func (s *ScheduleService) Toggle(ctx context.Context, id string) *storage.Schedule {
	return s.books.ToggleSchedule(ctx, id)
}

// Delete removes the schedule and reports whether it existed.
func (s *ScheduleService) Delete(ctx context.Context, id string) bool {
	return s.books.DeleteSchedule(ctx, id)
}

func (s *ScheduleService) Integrations(ctx context.Context) []storage.Integration {
	return s.books.Integrations(ctx)
}

// ToggleIntegration flips a provider's mock connection state; nil for an
// unknown provider. Email stays connected.
func (s *ScheduleService) ToggleIntegration(ctx context.Context, provider storage.Provider) *storage.Integration {
	return s.books.ToggleIntegration(ctx, provider)
}
