package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// BudgetService evaluates budgets against transactions recorded in the
// same period. Spent figures are always computed server-side from the
// transaction history, never stored on the budget row.
type BudgetService struct {
	budgets      storage.BudgetStore
	transactions storage.TransactionStore
}

func NewBudgetService(budgets storage.BudgetStore, transactions storage.TransactionStore) *BudgetService {
	return &BudgetService{budgets: budgets, transactions: transactions}
}

// BudgetStatusView is one budget with its computed evaluation.
type BudgetStatusView struct {
	core.Budget
	Spent      core.Money      `json:"spent"`
	Remaining  core.Money      `json:"remaining"`
	Percentage float64         `json:"percentage"`
	Tier       core.BudgetTier `json:"tier"`
}

func (s *BudgetService) Create(ctx context.Context, userID int64, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	return s.budgets.CreateBudget(ctx, userID, b)
}

func (s *BudgetService) List(ctx context.Context, userID int64) ([]core.Budget, error) {
	return s.budgets.ListBudgets(ctx, userID)
}

func (s *BudgetService) Update(ctx context.Context, userID int64, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	return s.budgets.UpdateBudget(ctx, userID, b)
}

func (s *BudgetService) Delete(ctx context.Context, userID, id int64) error {
	return s.budgets.DeleteBudget(ctx, userID, id)
}

// Status evaluates every budget over its current period window.
func (s *BudgetService) Status(ctx context.Context, userID int64, now time.Time) ([]BudgetStatusView, error) {
	budgets, err := s.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	transactions, err := s.transactions.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	views := make([]BudgetStatusView, 0, len(budgets))
	for _, b := range budgets {
		from, to := core.BudgetWindow(b.Period, now)
		spent, _ := core.SumTransactions(transactions, core.TransactionFilter{
			Type:     core.Expense,
			Category: b.Category,
			From:     from,
			To:       to,
		})
		status := core.EvaluateBudget(b.Limit, spent)
		views = append(views, BudgetStatusView{
			Budget:     b,
			Spent:      status.Spent,
			Remaining:  status.Remaining,
			Percentage: status.Percentage.InexactFloat64(),
			Tier:       status.Tier,
		})
	}
	return views, nil
}

// Overall aggregates all budgets into a single figure. Each budget's
// spend is taken over its own period window.
func (s *BudgetService) Overall(ctx context.Context, userID int64, now time.Time) (core.OverallBudgetStatus, error) {
	budgets, err := s.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return core.OverallBudgetStatus{}, fmt.Errorf("list budgets: %w", err)
	}
	transactions, err := s.transactions.ListTransactions(ctx, userID)
	if err != nil {
		return core.OverallBudgetStatus{}, fmt.Errorf("list transactions: %w", err)
	}

	spentByCategory := make(map[string]core.Money, len(budgets))
	for _, b := range budgets {
		from, to := core.BudgetWindow(b.Period, now)
		spent, _ := core.SumTransactions(transactions, core.TransactionFilter{
			Type:     core.Expense,
			Category: b.Category,
			From:     from,
			To:       to,
		})
		spentByCategory[b.Category] = spent
	}
	return core.EvaluateOverallBudgets(budgets, spentByCategory), nil
}
