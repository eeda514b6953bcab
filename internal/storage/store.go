// Package storage defines the persistence ports and their sqlite,
// postgres and in-memory implementations. All monetary amounts are
// persisted as decimal strings so no precision is lost crossing the
// database boundary.
package storage

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/core"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// User is a registered account holder.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// PendingExport identifies a transaction waiting to be mirrored to the
// external sheet.
type PendingExport struct {
	TransactionID int64
	CreatedAt     time.Time
}

// Ports for the persistence layer, split per domain. Store composes
// them; services depend only on the slices they need.
type (
	UserStore interface {
		CreateUser(ctx context.Context, email, name, passwordHash string) (User, error)
		UserByEmail(ctx context.Context, email string) (User, error)
		CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error
		SessionUser(ctx context.Context, token string, now time.Time) (User, error)
		DeleteSession(ctx context.Context, token string) error
	}

	TransactionStore interface {
		CreateTransaction(ctx context.Context, userID int64, t core.Transaction) (core.Transaction, error)
		ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error)
		DeleteTransaction(ctx context.Context, userID, id int64) error
	}

	BillStore interface {
		CreateBill(ctx context.Context, userID int64, b core.Bill) (core.Bill, error)
		ListBills(ctx context.Context, userID int64) ([]core.Bill, error)
		GetBill(ctx context.Context, userID, id int64) (core.Bill, error)
		UpdateBill(ctx context.Context, userID int64, b core.Bill) (core.Bill, error)
		DeleteBill(ctx context.Context, userID, id int64) error
		// ListRecurringPaidBills returns recurring bills in stored
		// status paid across all users, for the roll worker.
		ListRecurringPaidBills(ctx context.Context) ([]core.Bill, error)
		// RollBill advances a recurring bill to its next cycle:
		// new due date, status pending, paid date cleared.
		RollBill(ctx context.Context, id int64, nextDue core.Date) error
	}

	BudgetStore interface {
		CreateBudget(ctx context.Context, userID int64, b core.Budget) (core.Budget, error)
		ListBudgets(ctx context.Context, userID int64) ([]core.Budget, error)
		UpdateBudget(ctx context.Context, userID int64, b core.Budget) (core.Budget, error)
		DeleteBudget(ctx context.Context, userID, id int64) error
	}

	SavingStore interface {
		CreateSaving(ctx context.Context, userID int64, s core.SavingsAccount) (core.SavingsAccount, error)
		ListSavings(ctx context.Context, userID int64) ([]core.SavingsAccount, error)
		GetSaving(ctx context.Context, userID, id int64) (core.SavingsAccount, error)
		UpdateSaving(ctx context.Context, userID int64, s core.SavingsAccount) (core.SavingsAccount, error)
		DeleteSaving(ctx context.Context, userID, id int64) error
		ListSavingTransactions(ctx context.Context, userID, savingID int64) ([]core.SavingTransaction, error)
		// ApplySavingTransaction adjusts the account balance by delta
		// and records the saving transaction as one atomic unit.
		// A withdrawal that would overdraw fails with
		// ErrInsufficientFunds and leaves both untouched.
		ApplySavingTransaction(ctx context.Context, userID, savingID int64, delta core.Money, t core.SavingTransaction) (core.SavingsAccount, error)
	}

	ExportOutbox interface {
		PendingExports(ctx context.Context, limit int) ([]PendingExport, error)
		ExportTransaction(ctx context.Context, transactionID int64) (core.Transaction, error)
		MarkExported(ctx context.Context, transactionID int64) error
		MarkExportError(ctx context.Context, transactionID int64) error
	}

	Store interface {
		UserStore
		TransactionStore
		BillStore
		BudgetStore
		SavingStore
		ExportOutbox
		Close() error
	}
)
