package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"outgo/internal/storage"
)

// RunnerConfig holds configuration for the schedule runner.
type RunnerConfig struct {
	// PollInterval is how often due schedules are checked (default: 1m)
	PollInterval time.Duration
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{PollInterval: time.Minute}
}

// Runner executes due scheduled exports in the background. Deploying it
// is optional; without it, NextRun on schedules stays informational.
type Runner struct {
	exports   *ExportService
	schedules *ScheduleService
	books     *storage.BookkeepingStore
	config    RunnerConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewRunner(
	exports *ExportService,
	schedules *ScheduleService,
	books *storage.BookkeepingStore,
	config RunnerConfig,
) *Runner {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultRunnerConfig().PollInterval
	}
	return &Runner{
		exports:   exports,
		schedules: schedules,
		books:     books,
		config:    config,
	}
}

// Start begins the polling loop. Returns an error if already running.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("schedule runner is already running")
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	r.mu.Unlock()

	go r.runLoop(ctx)

	slog.InfoContext(ctx, "schedule runner started",
		"component", "runner",
		"poll_interval", r.config.PollInterval)
	return nil
}

// Stop signals the loop to exit and waits for it to drain.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	close(r.stopCh)
	doneCh := r.doneCh
	r.running = false
	r.mu.Unlock()

	select {
	case <-doneCh:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("schedule runner stop: %w", ctx.Err())
	}
}

func (r *Runner) runLoop(ctx context.Context) {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.ProcessDue(ctx, time.Now())
		}
	}
}

// ProcessDue runs every enabled schedule whose next-run time has passed
// and advances it by one interval. Failures are logged; the schedule
// still advances so a broken destination cannot wedge the loop.
func (r *Runner) ProcessDue(ctx context.Context, now time.Time) int {
	ran := 0
	for _, schedule := range r.schedules.List(ctx) {
		if !schedule.Enabled || schedule.NextRun.After(now) {
			continue
		}

		_, _, err := r.exports.ExportByTemplate(ctx, TemplateExportRequest{
			TemplateID:  schedule.Template,
			Destination: schedule.Destination,
		})
		if err != nil {
			slog.ErrorContext(ctx, "scheduled export failed",
				"component", "runner",
				"schedule_id", schedule.ID,
				"template", schedule.Template,
				"error", err)
		} else {
			ran++
		}

		next, ok := NextRun(schedule.Frequency, now)
		if !ok {
			slog.ErrorContext(ctx, "schedule has unknown frequency, disabling advance",
				"component", "runner",
				"schedule_id", schedule.ID,
				"frequency", schedule.Frequency)
			continue
		}
		r.books.MarkScheduleRun(ctx, schedule.ID, now, next)
	}
	return ran
}
