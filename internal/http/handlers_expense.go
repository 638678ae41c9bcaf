package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"outgo/internal/core"
	"outgo/internal/storage"
)

type expenseRequest struct {
	Date        core.Date     `json:"date"`
	Amount      core.Money    `json:"amount"`
	Category    core.Category `json:"category"`
	Description string        `json:"description"`
}

type expensePatchRequest struct {
	Date        *core.Date     `json:"date"`
	Amount      *core.Money    `json:"amount"`
	Category    *core.Category `json:"category"`
	Description *string        `json:"description"`
}

// handleListExpenses returns the expense list, optionally narrowed by the
// interactive filter parameters (from, to, category, q).
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := s.expenses.List(r.Context())

	filter, err := filterFromQuery(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	expenses = core.Filter(expenses, filter)

	s.respondJSON(w, http.StatusOK, expenses)
}

func filterFromQuery(r *http.Request) (core.FilterState, error) {
	q := r.URL.Query()
	filter := core.FilterState{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}
	if filter.Category == "" {
		filter.Category = core.CategoryAll
	}

	if v := q.Get("from"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.FilterState{}, errors.New("invalid 'from' date, expected YYYY-MM-DD")
		}
		t := d.Time
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.FilterState{}, errors.New("invalid 'to' date, expected YYYY-MM-DD")
		}
		t := d.Time
		filter.To = &t
	}
	return filter, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := core.Draft{
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := draft.Validate(); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	expense := s.expenses.Add(r.Context(), draft)
	s.dashCache.Purge()
	s.respondJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req expensePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validatePatch(req); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated := s.expenses.Update(r.Context(), id, storage.ExpensePatch{
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	})
	if updated == nil {
		s.respondError(w, http.StatusNotFound, "expense not found")
		return
	}

	s.dashCache.Purge()
	s.respondJSON(w, http.StatusOK, updated)
}

// validatePatch enforces the same field rules as creation on every field
// the patch touches, so an update cannot smuggle in an invalid value.
func validatePatch(req expensePatchRequest) error {
	if req.Date != nil && req.Date.IsZero() {
		return core.ErrZeroDate
	}
	if req.Amount != nil {
		if err := req.Amount.Validate(); err != nil {
			return err
		}
	}
	if req.Category != nil && !req.Category.Valid() {
		return core.ErrInvalidCategory
	}
	if req.Description != nil && len(strings.TrimSpace(*req.Description)) < 3 {
		return core.ErrShortDescription
	}
	return nil
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.expenses.Delete(r.Context(), id) {
		s.respondError(w, http.StatusNotFound, "expense not found")
		return
	}
	s.dashCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, core.Categories())
}
