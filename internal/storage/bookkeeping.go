package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"outgo/internal/core"
)

// historyLimit caps the export history at the 50 most recent entries.
const historyLimit = 50

type ExportStatus string

const (
	StatusCompleted ExportStatus = "completed"
	StatusPending   ExportStatus = "pending"
	StatusFailed    ExportStatus = "failed"
)

type Provider string

const (
	ProviderGoogleSheets Provider = "google-sheets"
	ProviderGoogleDrive  Provider = "google-drive"
	ProviderDropbox      Provider = "dropbox"
	ProviderOneDrive     Provider = "onedrive"
	ProviderEmail        Provider = "email"
)

type (
	// HistoryItem is one entry in the append-only export log.
	HistoryItem struct {
		ID          string       `json:"id"`
		Template    string       `json:"template"`
		Format      string       `json:"format"`
		Timestamp   time.Time    `json:"timestamp"`
		RecordCount int          `json:"recordCount"`
		TotalAmount core.Money   `json:"totalAmount"`
		Destination Provider     `json:"destination,omitempty"`
		ShareLink   string       `json:"shareLink,omitempty"`
		Status      ExportStatus `json:"status"`
	}

	// Schedule is a recurring export definition. NextRun is informational
	// unless the export-runner worker is deployed.
	Schedule struct {
		ID          string         `json:"id"`
		Name        string         `json:"name"`
		Template    string         `json:"template"`
		Frequency   core.Frequency `json:"frequency"`
		Destination Provider       `json:"destination"`
		Enabled     bool           `json:"enabled"`
		NextRun     time.Time      `json:"nextRun"`
		LastRun     *time.Time     `json:"lastRun,omitempty"`
		CreatedAt   time.Time      `json:"createdAt"`
	}

	// Integration is the mock connection state for a cloud destination.
	Integration struct {
		Provider    Provider   `json:"provider"`
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Connected   bool       `json:"connected"`
		LastSync    *time.Time `json:"lastSync,omitempty"`
	}
)

// defaultIntegrations seeds the integration collection on first read.
// Email is always connected and cannot be toggled off.
func defaultIntegrations() []Integration {
	return []Integration{
		{Provider: ProviderGoogleSheets, Name: "Google Sheets", Description: "Sync expenses to Google Sheets in real-time"},
		{Provider: ProviderGoogleDrive, Name: "Google Drive", Description: "Auto-save exports to Google Drive"},
		{Provider: ProviderDropbox, Name: "Dropbox", Description: "Backup expenses to Dropbox automatically"},
		{Provider: ProviderOneDrive, Name: "OneDrive", Description: "Store exports in Microsoft OneDrive"},
		{Provider: ProviderEmail, Name: "Email", Description: "Send exports directly to your email", Connected: true},
	}
}

// BookkeepingStore persists export history, scheduled exports and cloud
// integration state. Same best-effort write policy as ExpenseStore.
type BookkeepingStore struct {
	kv KV
}

func NewBookkeepingStore(kv KV) *BookkeepingStore {
	return &BookkeepingStore{kv: kv}
}

// History returns the export log, newest first.
func (s *BookkeepingStore) History(ctx context.Context) []HistoryItem {
	var items []HistoryItem
	s.loadInto(ctx, historyKey, &items)
	return items
}

// AppendHistory assigns an id, prepends the item and trims the log to the
// most recent entries.
func (s *BookkeepingStore) AppendHistory(ctx context.Context, item HistoryItem) HistoryItem {
	item.ID = "export-" + newID()
	items := append([]HistoryItem{item}, s.History(ctx)...)
	if len(items) > historyLimit {
		items = items[:historyLimit]
	}
	s.persist(ctx, historyKey, items)
	return item
}

func (s *BookkeepingStore) ClearHistory(ctx context.Context) {
	if err := s.kv.Delete(ctx, historyKey); err != nil {
		slog.ErrorContext(ctx, "Failed to clear export history", "error", err)
	}
}

func (s *BookkeepingStore) Schedules(ctx context.Context) []Schedule {
	var schedules []Schedule
	s.loadInto(ctx, schedulesKey, &schedules)
	return schedules
}

// AddSchedule assigns id and creation time; NextRun is computed by the
// caller from the frequency.
func (s *BookkeepingStore) AddSchedule(ctx context.Context, schedule Schedule) Schedule {
	schedule.ID = "schedule-" + newID()
	schedule.CreatedAt = time.Now()
	schedules := append(s.Schedules(ctx), schedule)
	s.persist(ctx, schedulesKey, schedules)
	return schedule
}

func (s *BookkeepingStore) DeleteSchedule(ctx context.Context, id string) bool {
	schedules := s.Schedules(ctx)
	for i := range schedules {
		if schedules[i].ID == id {
			schedules = append(schedules[:i], schedules[i+1:]...)
			s.persist(ctx, schedulesKey, schedules)
			return true
		}
	}
	return false
}

// ToggleSchedule flips the enabled flag. Returns nil when the id is absent.
func (s *BookkeepingStore) ToggleSchedule(ctx context.Context, id string) *Schedule {
	schedules := s.Schedules(ctx)
	for i := range schedules {
		if schedules[i].ID == id {
			schedules[i].Enabled = !schedules[i].Enabled
			s.persist(ctx, schedulesKey, schedules)
			toggled := schedules[i]
			return &toggled
		}
	}
	return nil
}

// MarkScheduleRun records an execution and advances the next-run time.
func (s *BookkeepingStore) MarkScheduleRun(ctx context.Context, id string, ranAt, next time.Time) *Schedule {
	schedules := s.Schedules(ctx)
	for i := range schedules {
		if schedules[i].ID == id {
			ran := ranAt
			schedules[i].LastRun = &ran
			schedules[i].NextRun = next
			s.persist(ctx, schedulesKey, schedules)
			updated := schedules[i]
			return &updated
		}
	}
	return nil
}

// Integrations returns the cloud integration records, seeding the fixed
// defaults on first access.
func (s *BookkeepingStore) Integrations(ctx context.Context) []Integration {
	var integrations []Integration
	if !s.loadInto(ctx, integrationsKey, &integrations) || len(integrations) == 0 {
		return defaultIntegrations()
	}
	return integrations
}

// ToggleIntegration flips the connected flag and sets or clears the last
// sync time. The email provider is exempt and stays connected.
func (s *BookkeepingStore) ToggleIntegration(ctx context.Context, provider Provider) *Integration {
	integrations := s.Integrations(ctx)
	for i := range integrations {
		if integrations[i].Provider != provider {
			continue
		}
		if provider == ProviderEmail {
			current := integrations[i]
			return &current
		}
		integrations[i].Connected = !integrations[i].Connected
		if integrations[i].Connected {
			now := time.Now()
			integrations[i].LastSync = &now
		} else {
			integrations[i].LastSync = nil
		}
		s.persist(ctx, integrationsKey, integrations)
		toggled := integrations[i]
		return &toggled
	}
	return nil
}

// Connected reports whether the given provider is currently connected.
func (s *BookkeepingStore) Connected(ctx context.Context, provider Provider) bool {
	for _, in := range s.Integrations(ctx) {
		if in.Provider == provider {
			return in.Connected
		}
	}
	return false
}

// loadInto decodes the collection under key; false means absent or broken.
func (s *BookkeepingStore) loadInto(ctx context.Context, key string, dst any) bool {
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load collection", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.ErrorContext(ctx, "Failed to decode collection", "key", key, "error", err)
		return false
	}
	return true
}

func (s *BookkeepingStore) persist(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode collection", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		slog.ErrorContext(ctx, "Failed to persist collection", "key", key, "error", err)
	}
}
