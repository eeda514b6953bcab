package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
)

// maxDashboardBills caps how many upcoming bills the dashboard shows.
const maxDashboardBills = 5

// DashboardView is the aggregated home-screen payload. It is cached
// per user and invalidated on every write that feeds into it.
type DashboardView struct {
	Summary       core.Summary             `json:"summary"`
	Budgets       core.OverallBudgetStatus `json:"budgets"`
	UpcomingBills []core.Bill              `json:"upcomingBills"`
	TotalSavings  core.Money               `json:"totalSavings"`
	SavingsCount  int                      `json:"savingsCount"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if view, ok := s.dashboardCache.Get(dashboardKey(uid)); ok {
		respondJSON(w, http.StatusOK, view)
		return
	}

	view, err := s.buildDashboard(r, uid)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.dashboardCache.Set(dashboardKey(uid), view)
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) buildDashboard(r *http.Request, uid int64) (DashboardView, error) {
	ctx := r.Context()
	now := time.Now()
	today := core.Today()

	summary, err := s.transactions.Summary(ctx, uid, core.TransactionFilter{})
	if err != nil {
		return DashboardView{}, err
	}
	overall, err := s.budgets.Overall(ctx, uid, now)
	if err != nil {
		return DashboardView{}, err
	}
	upcoming, err := s.bills.Upcoming(ctx, uid, today)
	if err != nil {
		return DashboardView{}, err
	}
	if len(upcoming) > maxDashboardBills {
		upcoming = upcoming[:maxDashboardBills]
	}
	accounts, err := s.savings.List(ctx, uid)
	if err != nil {
		return DashboardView{}, err
	}
	totalSavings := core.ZeroMoney
	for _, acc := range accounts {
		totalSavings = totalSavings.Add(acc.Balance)
	}

	return DashboardView{
		Summary:       summary,
		Budgets:       overall,
		UpcomingBills: upcoming,
		TotalSavings:  totalSavings,
		SavingsCount:  len(accounts),
	}, nil
}
