package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func newTransactionFixture(t *testing.T) (*TransactionService, int64) {
	t.Helper()
	store := storage.NewMemoryStore()
	u, err := store.CreateUser(context.Background(), "test@example.com", "Test", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewTransactionService(store, nil), u.ID
}

func TestCreateTransactionValidates(t *testing.T) {
	svc, userID := newTransactionFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, userID, core.Transaction{
		Amount:   core.MustMoney("-5"),
		Type:     core.Expense,
		Category: "misc",
		Date:     core.NewDate(2025, 3, 1),
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("negative amount error = %v, want ErrInvalidAmount", err)
	}

	_, err = svc.Create(ctx, userID, core.Transaction{
		Amount:   core.MustMoney("5"),
		Type:     "loan",
		Category: "misc",
		Date:     core.NewDate(2025, 3, 1),
	})
	if !errors.Is(err, core.ErrInvalidType) {
		t.Fatalf("bad type error = %v, want ErrInvalidType", err)
	}

	created, err := svc.Create(ctx, userID, core.Transaction{
		Amount:   core.MustMoney("5"),
		Type:     core.Expense,
		Category: "misc",
		Date:     core.NewDate(2025, 3, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("id not assigned")
	}
}

func TestListTransactionsFilters(t *testing.T) {
	svc, userID := newTransactionFixture(t)
	ctx := context.Background()

	seed := []core.Transaction{
		{Amount: core.MustMoney("30"), Type: core.Expense, Category: "groceries", Date: core.NewDate(2025, 3, 5)},
		{Amount: core.MustMoney("20"), Type: core.Expense, Category: "transport", Date: core.NewDate(2025, 3, 10)},
		{Amount: core.MustMoney("1500"), Type: core.Income, Category: "salary", Date: core.NewDate(2025, 3, 25)},
		{Amount: core.MustMoney("15"), Type: core.Expense, Category: "groceries", Date: core.NewDate(2025, 4, 2)},
	}
	for _, tx := range seed {
		if _, err := svc.Create(ctx, userID, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := svc.List(ctx, userID, core.TransactionFilter{Category: "groceries"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("groceries count = %d, want 2", len(got))
	}

	got, err = svc.List(ctx, userID, core.TransactionFilter{
		From: core.NewDate(2025, 3, 1),
		To:   core.NewDate(2025, 3, 31),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("march count = %d, want 3", len(got))
	}

	summary, err := svc.Summary(ctx, userID, core.TransactionFilter{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Balance.Cmp(core.MustMoney("1435")) != 0 {
		t.Fatalf("balance = %s, want 1435", summary.Balance)
	}
	if summary.IncomeCount != 1 || summary.ExpenseCount != 3 {
		t.Fatalf("counts = %d income / %d expense", summary.IncomeCount, summary.ExpenseCount)
	}
}

func TestDeleteTransaction(t *testing.T) {
	svc, userID := newTransactionFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, core.Transaction{
		Amount:   core.MustMoney("5"),
		Type:     core.Expense,
		Category: "misc",
		Date:     core.NewDate(2025, 3, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, userID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, userID, created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("double delete error = %v, want ErrNotFound", err)
	}
}
