package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func newSavingFixture(t *testing.T) (*SavingService, int64) {
	t.Helper()
	store := storage.NewMemoryStore()
	u, err := store.CreateUser(context.Background(), "test@example.com", "Test", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewSavingService(store), u.ID
}

func mustAccount(t *testing.T, svc *SavingService, userID int64, name, balance string, rate *core.Money) core.SavingsAccount {
	t.Helper()
	acc, err := svc.Create(context.Background(), userID, core.SavingsAccount{
		Name:         name,
		AccountType:  "savings",
		Balance:      core.MustMoney(balance),
		InterestRate: rate,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return acc
}

func TestDepositAndWithdraw(t *testing.T) {
	svc, userID := newSavingFixture(t)
	ctx := context.Background()
	acc := mustAccount(t, svc, userID, "Fund", "100", nil)

	acc, err := svc.Deposit(ctx, userID, acc.ID, core.MustMoney("50"), "bonus")
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if acc.Balance.Cmp(core.MustMoney("150")) != 0 {
		t.Fatalf("balance = %s, want 150", acc.Balance)
	}

	acc, err = svc.Withdraw(ctx, userID, acc.ID, core.MustMoney("150"), "all of it")
	if err != nil {
		t.Fatalf("withdraw to zero: %v", err)
	}
	if !acc.Balance.IsZero() {
		t.Fatalf("balance = %s, want 0", acc.Balance)
	}

	if _, err := svc.Withdraw(ctx, userID, acc.ID, core.MustMoney("0.01"), ""); !errors.Is(err, storage.ErrInsufficientFunds) {
		t.Fatalf("overdraw error = %v, want ErrInsufficientFunds", err)
	}

	if _, err := svc.Deposit(ctx, userID, acc.ID, core.MustMoney("0"), ""); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("zero deposit error = %v, want ErrInvalidAmount", err)
	}

	history, err := svc.Transactions(ctx, userID, acc.ID)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	// Newest first
	if history[0].Type != core.SavingWithdrawal || history[1].Type != core.SavingDeposit {
		t.Fatalf("history = %+v", history)
	}
}

func TestTransfer(t *testing.T) {
	svc, userID := newSavingFixture(t)
	ctx := context.Background()
	from := mustAccount(t, svc, userID, "Checking", "200", nil)
	to := mustAccount(t, svc, userID, "Vacation", "10", nil)

	if err := svc.Transfer(ctx, userID, from.ID, to.ID, core.MustMoney("75"), "holiday"); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	fromAcc, err := svc.Get(ctx, userID, from.ID)
	if err != nil {
		t.Fatalf("get source: %v", err)
	}
	toAcc, err := svc.Get(ctx, userID, to.ID)
	if err != nil {
		t.Fatalf("get destination: %v", err)
	}
	if fromAcc.Balance.Cmp(core.MustMoney("125")) != 0 {
		t.Fatalf("source balance = %s, want 125", fromAcc.Balance)
	}
	if toAcc.Balance.Cmp(core.MustMoney("85")) != 0 {
		t.Fatalf("destination balance = %s, want 85", toAcc.Balance)
	}

	history, err := svc.Transactions(ctx, userID, from.ID)
	if err != nil {
		t.Fatalf("source history: %v", err)
	}
	if len(history) != 1 || history[0].Type != core.SavingTransferOut {
		t.Fatalf("source history = %+v", history)
	}

	// Overdraw fails without touching either side
	if err := svc.Transfer(ctx, userID, from.ID, to.ID, core.MustMoney("1000"), ""); !errors.Is(err, storage.ErrInsufficientFunds) {
		t.Fatalf("overdraw transfer error = %v, want ErrInsufficientFunds", err)
	}
	fromAcc, _ = svc.Get(ctx, userID, from.ID)
	if fromAcc.Balance.Cmp(core.MustMoney("125")) != 0 {
		t.Fatalf("source balance after failed transfer = %s, want 125", fromAcc.Balance)
	}

	// Unknown destination fails before the source is debited
	if err := svc.Transfer(ctx, userID, from.ID, 9999, core.MustMoney("10"), ""); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown destination error = %v, want ErrNotFound", err)
	}

	if err := svc.Transfer(ctx, userID, from.ID, from.ID, core.MustMoney("10"), ""); err == nil {
		t.Fatal("same-account transfer accepted")
	}
}

func TestProjection(t *testing.T) {
	svc, userID := newSavingFixture(t)
	ctx := context.Background()
	rate := core.MustMoney("12")
	acc := mustAccount(t, svc, userID, "Fund", "1000", &rate)
	from := core.NewDate(2025, 11, 15)

	entries, err := svc.Projection(ctx, userID, acc.ID, 2, from)
	if err != nil {
		t.Fatalf("projection: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Interest.Cmp(core.MustMoney("10.00")) != 0 {
		t.Fatalf("first interest = %s, want 10.00", entries[0].Interest)
	}
	if entries[1].Balance.Cmp(core.MustMoney("1020.10")) != 0 {
		t.Fatalf("second balance = %s, want 1020.10", entries[1].Balance)
	}
	if entries[0].Month != "DECEMBER 2025" || entries[1].Month != "JANUARY 2026" {
		t.Fatalf("labels = %q, %q", entries[0].Month, entries[1].Month)
	}

	if _, err := svc.Projection(ctx, userID, acc.ID, 0, from); !errors.Is(err, core.ErrInvalidHorizon) {
		t.Fatalf("zero horizon error = %v, want ErrInvalidHorizon", err)
	}
	if _, err := svc.Projection(ctx, userID, acc.ID, 601, from); !errors.Is(err, core.ErrInvalidHorizon) {
		t.Fatalf("oversized horizon error = %v, want ErrInvalidHorizon", err)
	}
	if _, err := svc.Projection(ctx, userID, 9999, 12, from); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown account error = %v, want ErrNotFound", err)
	}
}
