// Package services orchestrates exports on top of the stores, the export
// engine and the delivery boundary.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"outgo/internal/amqp"
	"outgo/internal/core"
	"outgo/internal/delivery"
	"outgo/internal/export"
	"outgo/internal/storage"
)

// ErrNoExpenses is returned by advanced exports whose filters match
// nothing. Quick exports produce an empty document instead.
var ErrNoExpenses = errors.New("no expenses match the export filters")

// ExportService runs exports end to end: snapshot, filter, serialize,
// deliver, record. Events is optional; a nil client publishes nothing.
type ExportService struct {
	expenses  *storage.ExpenseStore
	books     *storage.BookkeepingStore
	deliverer delivery.Deliverer
	events    *amqp.Client
}

func NewExportService(
	expenses *storage.ExpenseStore,
	books *storage.BookkeepingStore,
	deliverer delivery.Deliverer,
	events *amqp.Client,
) *ExportService {
	return &ExportService{
		expenses:  expenses,
		books:     books,
		deliverer: deliverer,
		events:    events,
	}
}

// TemplateExportRequest selects a template run's filters and destination.
type TemplateExportRequest struct {
	TemplateID  string
	Filename    string
	From        *time.Time
	To          *time.Time
	Categories  []core.Category
	Destination storage.Provider
}

// QuickExport serializes the entire expense list with default settings.
// An empty list yields a valid, empty document.
func (s *ExportService) QuickExport(ctx context.Context, format export.Format) (export.Result, error) {
	res, err := export.Run(s.expenses.List(ctx), export.Options{Format: format})
	if err != nil {
		return export.Result{}, err
	}

	slog.InfoContext(ctx, "quick export complete",
		"component", "export_service",
		"format", format,
		"records", res.RecordCount)
	return res, nil
}

// AdvancedExport runs a caller-configured export. Unlike QuickExport it
// refuses to produce an empty document.
func (s *ExportService) AdvancedExport(ctx context.Context, opts export.Options) (export.Result, error) {
	res, err := export.Run(s.expenses.List(ctx), opts)
	if err != nil {
		return export.Result{}, err
	}
	if res.RecordCount == 0 {
		return export.Result{}, ErrNoExpenses
	}

	slog.InfoContext(ctx, "advanced export complete",
		"component", "export_service",
		"format", opts.Format,
		"records", res.RecordCount)
	return res, nil
}

// ExportByTemplate runs a catalog template, delivers the payload and
// records the run in the export history. A delivery failure is recorded
// as a failed history entry and returned.
func (s *ExportService) ExportByTemplate(ctx context.Context, req TemplateExportRequest) (storage.HistoryItem, export.Result, error) {
	tpl, err := TemplateByID(req.TemplateID)
	if err != nil {
		return storage.HistoryItem{}, export.Result{}, fmt.Errorf("template %q: %w", req.TemplateID, err)
	}

	res, err := export.Run(s.expenses.List(ctx), export.Options{
		Format:     tpl.Format,
		Filename:   req.Filename,
		From:       req.From,
		To:         req.To,
		Categories: req.Categories,
		Spec:       tpl.Spec,
	})
	if err != nil {
		return storage.HistoryItem{}, export.Result{}, err
	}

	item := storage.HistoryItem{
		Template:    tpl.ID,
		Format:      string(tpl.Format),
		Timestamp:   time.Now(),
		RecordCount: res.RecordCount,
		TotalAmount: res.TotalAmount,
		Destination: req.Destination,
		Status:      storage.StatusCompleted,
	}

	location, err := s.deliverer.Deliver(ctx, res.Payload, res.Filename, res.ContentType)
	if err != nil {
		item.Status = storage.StatusFailed
		item = s.books.AppendHistory(ctx, item)
		slog.ErrorContext(ctx, "template export delivery failed",
			"component", "export_service",
			"template", tpl.ID,
			"error", err)
		return item, export.Result{}, fmt.Errorf("deliver %s export: %w", tpl.ID, err)
	}

	if link := s.shareLink(ctx, req.Destination, res.Filename); link != "" {
		item.ShareLink = link
	}
	item = s.books.AppendHistory(ctx, item)

	if err := s.events.PublishExportCompleted(ctx, &amqp.ExportCompletedMessage{
		ExportID:    item.ID,
		TemplateID:  tpl.ID,
		Format:      string(tpl.Format),
		Filename:    res.Filename,
		RecordCount: res.RecordCount,
		Location:    location,
		Timestamp:   item.Timestamp,
	}); err != nil {
		// The export itself succeeded; the event is advisory.
		slog.ErrorContext(ctx, "failed to publish export event",
			"component", "export_service",
			"export_id", item.ID,
			"error", err)
	}

	slog.InfoContext(ctx, "template export complete",
		"component", "export_service",
		"template", tpl.ID,
		"export_id", item.ID,
		"records", res.RecordCount,
		"location", location)

	return item, res, nil
}

// History returns the export log, newest first.
func (s *ExportService) History(ctx context.Context) []storage.HistoryItem {
	return s.books.History(ctx)
}

func (s *ExportService) ClearHistory(ctx context.Context) {
	s.books.ClearHistory(ctx)
}

// shareLink fabricates a share URL for connected cloud destinations. Real
// provider uploads sit behind the delivery boundary; the link mirrors
// what the destination would hand back.
func (s *ExportService) shareLink(ctx context.Context, dest storage.Provider, filename string) string {
	switch dest {
	case storage.ProviderGoogleSheets, storage.ProviderGoogleDrive,
		storage.ProviderDropbox, storage.ProviderOneDrive:
		if !s.books.Connected(ctx, dest) {
			return ""
		}
		return fmt.Sprintf("https://share.example.com/%s/%s", dest, filename)
	default:
		return ""
	}
}
