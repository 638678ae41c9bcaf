package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"outgo/internal/core"
	"outgo/internal/export"
	"outgo/internal/services"
	"outgo/internal/storage"
)

type advancedExportRequest struct {
	Format               export.Format   `json:"format"`
	Filename             string          `json:"filename"`
	From                 string          `json:"from"`
	To                   string          `json:"to"`
	Categories           []core.Category `json:"categories"`
	IncludeAllCategories bool            `json:"includeAllCategories"`

	// CSV defaults to the full variant (all columns plus the TOTAL row);
	// these override it when present.
	IncludeTotals   *bool `json:"includeTotals"`
	ExtendedColumns *bool `json:"extendedColumns"`
}

// renderSpec resolves the advanced-export content variant. The advanced
// CSV is the six-column totals variant by default, which is what sets it
// apart from the quick export.
func (req advancedExportRequest) renderSpec() export.RenderSpec {
	var spec export.RenderSpec
	if req.Format == export.FormatCSV {
		spec.Columns = export.ColumnsExtended
		spec.IncludeTotals = true
	}
	if req.ExtendedColumns != nil {
		spec.Columns = export.ColumnsBasic
		if *req.ExtendedColumns {
			spec.Columns = export.ColumnsExtended
		}
	}
	if req.IncludeTotals != nil {
		spec.IncludeTotals = *req.IncludeTotals
	}
	return spec
}

type templateExportRequest struct {
	TemplateID  string           `json:"templateId"`
	Filename    string           `json:"filename"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Categories  []core.Category  `json:"categories"`
	Destination storage.Provider `json:"destination"`
}

// handleQuickExport serializes the full list in the requested format and
// streams it back as a download.
func (s *Server) handleQuickExport(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}

	res, err := s.exports.QuickExport(r.Context(), format)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	writeDownload(w, res)
}

func (s *Server) handleAdvancedExport(w http.ResponseWriter, r *http.Request) {
	var req advancedExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.exports.AdvancedExport(r.Context(), export.Options{
		Format:               req.Format,
		Filename:             req.Filename,
		From:                 from,
		To:                   to,
		Categories:           req.Categories,
		IncludeAllCategories: req.IncludeAllCategories,
		Spec:                 req.renderSpec(),
	})
	if err != nil {
		switch {
		case errors.Is(err, export.ErrUnsupportedFormat):
			s.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNoExpenses):
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.respondError(w, http.StatusInternalServerError, "export failed")
		}
		return
	}

	writeDownload(w, res)
}

// handleTemplateExport runs a catalog template and returns the history
// entry; the payload goes to the configured destination, not the caller.
func (s *Server) handleTemplateExport(w http.ResponseWriter, r *http.Request) {
	var req templateExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, _, err := s.exports.ExportByTemplate(r.Context(), services.TemplateExportRequest{
		TemplateID:  req.TemplateID,
		Filename:    req.Filename,
		From:        from,
		To:          to,
		Categories:  req.Categories,
		Destination: req.Destination,
	})
	if err != nil {
		if errors.Is(err, services.ErrUnknownTemplate) {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		// Failed deliveries still produce a history entry.
		s.respondJSON(w, http.StatusBadGateway, item)
		return
	}

	s.respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, services.Templates())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := s.exports.History(r.Context())
	if history == nil {
		history = []storage.HistoryItem{}
	}
	s.respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.exports.ClearHistory(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules := s.schedules.List(r.Context())
	if schedules == nil {
		schedules = []storage.Schedule{}
	}
	s.respondJSON(w, http.StatusOK, schedules)
}

func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var draft services.ScheduleDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schedule, err := s.schedules.Create(r.Context(), draft)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTemplate) {
			s.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.respondJSON(w, http.StatusCreated, schedule)
}

func (s *Server) handleToggleSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	schedule := s.schedules.Toggle(r.Context(), id)
	if schedule == nil {
		s.respondError(w, http.StatusNotFound, "schedule not found")
		return
	}
	s.respondJSON(w, http.StatusOK, schedule)
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.schedules.Delete(r.Context(), id) {
		s.respondError(w, http.StatusNotFound, "schedule not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIntegrations(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.schedules.Integrations(r.Context()))
}

func (s *Server) handleToggleIntegration(w http.ResponseWriter, r *http.Request) {
	provider := storage.Provider(mux.Vars(r)["provider"])
	integration := s.schedules.ToggleIntegration(r.Context(), provider)
	if integration == nil {
		s.respondError(w, http.StatusNotFound, "integration not found")
		return
	}
	s.respondJSON(w, http.StatusOK, integration)
}

func parseRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		d, err := core.ParseDate(fromStr)
		if err != nil {
			return nil, nil, errors.New("invalid 'from' date, expected YYYY-MM-DD")
		}
		t := d.Time
		from = &t
	}
	if toStr != "" {
		d, err := core.ParseDate(toStr)
		if err != nil {
			return nil, nil, errors.New("invalid 'to' date, expected YYYY-MM-DD")
		}
		t := d.Time
		to = &t
	}
	return from, to, nil
}

func writeDownload(w http.ResponseWriter, res export.Result) {
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Payload)
}
