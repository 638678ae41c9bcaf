package http

import (
	"net/http"

	"outgo/internal/core"
)

type dashboardResponse struct {
	TotalSpending   core.Money              `json:"totalSpending"`
	MonthlySpending core.Money              `json:"monthlySpending"`
	ExpenseCount    int                     `json:"expenseCount"`
	Breakdown       []core.CategorySpending `json:"breakdown"`
}

const dashCacheKey = "dashboard"

// handleDashboard returns the spending summary. Cached briefly; any
// expense mutation purges the cache.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.dashCache.Get(dashCacheKey); ok {
		s.respondJSON(w, http.StatusOK, cached)
		return
	}

	expenses := s.expenses.List(r.Context())
	resp := dashboardResponse{
		TotalSpending:   core.TotalSpending(expenses),
		MonthlySpending: core.MonthlySpending(expenses),
		ExpenseCount:    len(expenses),
		Breakdown:       core.CategoryBreakdown(expenses),
	}

	s.dashCache.Set(dashCacheKey, resp)
	s.respondJSON(w, http.StatusOK, resp)
}
