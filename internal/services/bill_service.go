package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// BillService owns bills. Stored status only flips between pending and
// paid; the overdue state is derived at read time so a bill never has
// to be touched just because a day passed.
type BillService struct {
	bills storage.BillStore
}

func NewBillService(bills storage.BillStore) *BillService {
	return &BillService{bills: bills}
}

func (s *BillService) Create(ctx context.Context, userID int64, b core.Bill) (core.Bill, error) {
	if b.Status == "" {
		b.Status = core.BillPending
	}
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	return s.bills.CreateBill(ctx, userID, b)
}

// List returns all bills with their effective status as of today.
func (s *BillService) List(ctx context.Context, userID int64, today core.Date) ([]core.Bill, error) {
	bills, err := s.bills.ListBills(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		bills[i].Status = core.EffectiveStatus(bills[i], today)
	}
	return bills, nil
}

func (s *BillService) Get(ctx context.Context, userID, id int64, today core.Date) (core.Bill, error) {
	b, err := s.bills.GetBill(ctx, userID, id)
	if err != nil {
		return core.Bill{}, err
	}
	b.Status = core.EffectiveStatus(b, today)
	return b, nil
}

func (s *BillService) Update(ctx context.Context, userID int64, b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	return s.bills.UpdateBill(ctx, userID, b)
}

func (s *BillService) Delete(ctx context.Context, userID, id int64) error {
	return s.bills.DeleteBill(ctx, userID, id)
}

// Upcoming returns unpaid bills sorted by due date.
func (s *BillService) Upcoming(ctx context.Context, userID int64, today core.Date) ([]core.Bill, error) {
	bills, err := s.bills.ListBills(ctx, userID)
	if err != nil {
		return nil, err
	}
	upcoming := core.UpcomingBills(bills, today)
	for i := range upcoming {
		upcoming[i].Status = core.EffectiveStatus(upcoming[i], today)
	}
	return upcoming, nil
}

// Pay marks the bill paid as of today. Paying an already-paid bill
// re-sets the paid date.
func (s *BillService) Pay(ctx context.Context, userID, id int64, today core.Date) (core.Bill, error) {
	b, err := s.bills.GetBill(ctx, userID, id)
	if err != nil {
		return core.Bill{}, err
	}
	paid, err := s.bills.UpdateBill(ctx, userID, core.PayBill(b, today))
	if err != nil {
		return core.Bill{}, err
	}
	slog.InfoContext(ctx, "Bill paid", "id", id, "paid_date", today.String())
	return paid, nil
}

// Unpay reverts a bill to pending and clears its paid date.
func (s *BillService) Unpay(ctx context.Context, userID, id int64) (core.Bill, error) {
	b, err := s.bills.GetBill(ctx, userID, id)
	if err != nil {
		return core.Bill{}, err
	}
	unpaid, err := s.bills.UpdateBill(ctx, userID, core.UnpayBill(b))
	if err != nil {
		return core.Bill{}, err
	}
	slog.InfoContext(ctx, "Bill payment reverted", "id", id)
	return unpaid, nil
}

// RollRecurring advances paid recurring bills whose cycle has lapsed to
// their next due date and resets them to pending. Returns how many were
// rolled.
func (s *BillService) RollRecurring(ctx context.Context, today core.Date) (int, error) {
	bills, err := s.bills.ListRecurringPaidBills(ctx)
	if err != nil {
		return 0, fmt.Errorf("list recurring paid bills: %w", err)
	}

	rolled := 0
	for _, b := range bills {
		if b.DueDate.After(today) {
			continue
		}
		nextDue := core.NextDueDate(b.DueDate, b.Frequency)
		// Skip forward past any cycles missed while the worker was down
		for !nextDue.After(today) {
			nextDue = core.NextDueDate(nextDue, b.Frequency)
		}
		if err := s.bills.RollBill(ctx, b.ID, nextDue); err != nil {
			slog.ErrorContext(ctx, "Failed to roll recurring bill",
				"id", b.ID, "error", err)
			continue
		}
		slog.InfoContext(ctx, "Recurring bill rolled",
			"id", b.ID,
			"next_due", nextDue.String())
		rolled++
	}
	return rolled, nil
}
