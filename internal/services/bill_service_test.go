package services

import (
	"context"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

func newBillFixture(t *testing.T) (*BillService, int64) {
	t.Helper()
	store := storage.NewMemoryStore()
	u, err := store.CreateUser(context.Background(), "test@example.com", "Test", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewBillService(store), u.ID
}

func TestBillPayAndUnpay(t *testing.T) {
	svc, userID := newBillFixture(t)
	ctx := context.Background()
	today := core.NewDate(2025, 3, 20)

	b, err := svc.Create(ctx, userID, core.Bill{
		Name:     "Electricity",
		Amount:   core.MustMoney("80"),
		DueDate:  core.NewDate(2025, 3, 25),
		Category: "utilities",
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	if b.Status != core.BillPending {
		t.Fatalf("default status = %s, want pending", b.Status)
	}

	paid, err := svc.Pay(ctx, userID, b.ID, today)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if paid.Status != core.BillPaid || paid.PaidDate == nil || !paid.PaidDate.Equal(today) {
		t.Fatalf("after pay = %+v", paid)
	}

	// Re-paying re-sets the paid date
	later := core.NewDate(2025, 3, 22)
	paid, err = svc.Pay(ctx, userID, b.ID, later)
	if err != nil {
		t.Fatalf("re-pay: %v", err)
	}
	if !paid.PaidDate.Equal(later) {
		t.Fatalf("re-pay paid date = %s, want %s", paid.PaidDate, later)
	}

	unpaid, err := svc.Unpay(ctx, userID, b.ID)
	if err != nil {
		t.Fatalf("unpay: %v", err)
	}
	if unpaid.Status != core.BillPending || unpaid.PaidDate != nil {
		t.Fatalf("after unpay = %+v", unpaid)
	}
}

func TestBillListDerivesOverdue(t *testing.T) {
	svc, userID := newBillFixture(t)
	ctx := context.Background()
	today := core.NewDate(2025, 3, 20)

	if _, err := svc.Create(ctx, userID, core.Bill{
		Name:     "Rent",
		Amount:   core.MustMoney("900"),
		DueDate:  core.NewDate(2025, 3, 1),
		Category: "housing",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, userID, core.Bill{
		Name:     "Internet",
		Amount:   core.MustMoney("30"),
		DueDate:  core.NewDate(2025, 3, 28),
		Category: "utilities",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	bills, err := svc.List(ctx, userID, today)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bills) != 2 {
		t.Fatalf("got %d bills, want 2", len(bills))
	}
	if bills[0].Status != core.BillOverdue {
		t.Fatalf("past-due bill status = %s, want overdue", bills[0].Status)
	}
	if bills[1].Status != core.BillPending {
		t.Fatalf("future bill status = %s, want pending", bills[1].Status)
	}

	upcoming, err := svc.Upcoming(ctx, userID, today)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 2 || !upcoming[0].DueDate.Before(upcoming[1].DueDate) {
		t.Fatalf("upcoming order = %+v", upcoming)
	}
}

func TestRollRecurring(t *testing.T) {
	svc, userID := newBillFixture(t)
	ctx := context.Background()

	recurring, err := svc.Create(ctx, userID, core.Bill{
		Name:      "Gym",
		Amount:    core.MustMoney("25"),
		DueDate:   core.NewDate(2025, 1, 10),
		Recurring: true,
		Frequency: core.FrequencyMonthly,
		Category:  "health",
	})
	if err != nil {
		t.Fatalf("create recurring: %v", err)
	}
	oneOff, err := svc.Create(ctx, userID, core.Bill{
		Name:     "Car repair",
		Amount:   core.MustMoney("300"),
		DueDate:  core.NewDate(2025, 1, 12),
		Category: "transport",
	})
	if err != nil {
		t.Fatalf("create one-off: %v", err)
	}

	payDay := core.NewDate(2025, 1, 10)
	if _, err := svc.Pay(ctx, userID, recurring.ID, payDay); err != nil {
		t.Fatalf("pay recurring: %v", err)
	}
	if _, err := svc.Pay(ctx, userID, oneOff.ID, payDay); err != nil {
		t.Fatalf("pay one-off: %v", err)
	}

	// Two cycles later: the roll catches up past the missed month
	today := core.NewDate(2025, 3, 15)
	rolled, err := svc.RollRecurring(ctx, today)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if rolled != 1 {
		t.Fatalf("rolled = %d, want 1", rolled)
	}

	got, err := svc.Get(ctx, userID, recurring.ID, today)
	if err != nil {
		t.Fatalf("get recurring: %v", err)
	}
	if !got.DueDate.Equal(core.NewDate(2025, 4, 10)) {
		t.Fatalf("next due = %s, want 2025-04-10", got.DueDate)
	}
	if got.Status != core.BillPending || got.PaidDate != nil {
		t.Fatalf("rolled bill = %+v", got)
	}

	// One-off bill stays paid
	got, err = svc.Get(ctx, userID, oneOff.ID, today)
	if err != nil {
		t.Fatalf("get one-off: %v", err)
	}
	if got.Status != core.BillPaid {
		t.Fatalf("one-off status = %s, want paid", got.Status)
	}

	// A second roll on the same day changes nothing
	rolled, err = svc.RollRecurring(ctx, today)
	if err != nil {
		t.Fatalf("second roll: %v", err)
	}
	if rolled != 0 {
		t.Fatalf("second roll = %d, want 0", rolled)
	}
}
