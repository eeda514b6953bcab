// Package http exposes the JSON API: authentication, transactions,
// budgets, bills, savings and the aggregated dashboard.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

// Server wires the services to their routes and owns the per-request
// middleware chain, the rate limiter and the dashboard cache.
type Server struct {
	http.Server

	authSvc      *auth.Service
	transactions *services.TransactionService
	budgets      *services.BudgetService
	bills        *services.BillService
	savings      *services.SavingService

	limiter        *ratelimit.Limiter
	dashboardCache *cache.Cache[DashboardView]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, authSvc *auth.Service, transactions *services.TransactionService, budgets *services.BudgetService, bills *services.BillService, savings *services.SavingService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		authSvc:          authSvc,
		transactions:     transactions,
		budgets:          budgets,
		bills:            bills,
		savings:          savings,
		limiter:          ratelimit.New(ratelimit.DefaultConfig()),
		dashboardCache:   cache.New[DashboardView](100, time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.cacheCleanupLoop()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	api := http.NewServeMux()
	api.HandleFunc("POST /api/auth/logout", s.handleLogout)

	api.HandleFunc("GET /api/transactions", s.handleListTransactions)
	api.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	api.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	api.HandleFunc("GET /api/transactions/summary", s.handleTransactionSummary)

	api.HandleFunc("GET /api/budgets", s.handleListBudgets)
	api.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	api.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	api.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	api.HandleFunc("GET /api/budgets/status", s.handleBudgetStatus)
	api.HandleFunc("GET /api/budgets/overall", s.handleBudgetOverall)

	api.HandleFunc("GET /api/bills", s.handleListBills)
	api.HandleFunc("POST /api/bills", s.handleCreateBill)
	api.HandleFunc("GET /api/bills/upcoming", s.handleUpcomingBills)
	api.HandleFunc("GET /api/bills/{id}", s.handleGetBill)
	api.HandleFunc("PUT /api/bills/{id}", s.handleUpdateBill)
	api.HandleFunc("DELETE /api/bills/{id}", s.handleDeleteBill)
	api.HandleFunc("POST /api/bills/{id}/pay", s.handlePayBill)
	api.HandleFunc("POST /api/bills/{id}/unpay", s.handleUnpayBill)

	api.HandleFunc("GET /api/savings", s.handleListSavings)
	api.HandleFunc("POST /api/savings", s.handleCreateSaving)
	api.HandleFunc("POST /api/savings/transfer", s.handleTransfer)
	api.HandleFunc("GET /api/savings/{id}", s.handleGetSaving)
	api.HandleFunc("PUT /api/savings/{id}", s.handleUpdateSaving)
	api.HandleFunc("DELETE /api/savings/{id}", s.handleDeleteSaving)
	api.HandleFunc("POST /api/savings/{id}/deposit", s.handleDeposit)
	api.HandleFunc("POST /api/savings/{id}/withdraw", s.handleWithdraw)
	api.HandleFunc("GET /api/savings/{id}/transactions", s.handleSavingTransactions)
	api.HandleFunc("GET /api/savings/{id}/projection", s.handleProjection)

	api.HandleFunc("GET /api/dashboard", s.handleDashboard)

	mux.Handle("/api/", authSvc.Middleware(api))

	s.Server.Handler = trace.Middleware(s.withRateLimit(mux))
	return s
}

// withRateLimit throttles mutating requests per client. Reads stay
// unthrottled.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			clientIP := trace.ClientIP(r)
			if !s.limiter.Allow(clientIP) {
				slog.WarnContext(r.Context(), "Rate limit exceeded",
					"client_ip", clientIP,
					"method", r.Method,
					"path", r.URL.Path)
				w.Header().Set("Retry-After", "60")
				respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) cacheCleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.dashboardCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Dashboard cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

func dashboardKey(userID int64) string {
	return "dashboard:" + strconv.FormatInt(userID, 10)
}

// invalidateDashboard drops the cached dashboard after any write that
// feeds into it.
func (s *Server) invalidateDashboard(userID int64) {
	s.dashboardCache.Delete(dashboardKey(userID))
}

// Shutdown stops the cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
