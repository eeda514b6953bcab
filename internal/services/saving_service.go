package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// Projection horizon bounds, in months.
const (
	minProjectionMonths = 1
	maxProjectionMonths = 600
)

// SavingService owns savings accounts, their movement history and the
// interest projection.
type SavingService struct {
	savings storage.SavingStore
}

func NewSavingService(savings storage.SavingStore) *SavingService {
	return &SavingService{savings: savings}
}

func (s *SavingService) Create(ctx context.Context, userID int64, acc core.SavingsAccount) (core.SavingsAccount, error) {
	if err := acc.Validate(); err != nil {
		return core.SavingsAccount{}, err
	}
	if acc.Balance.IsNegative() {
		return core.SavingsAccount{}, core.ErrInvalidAmount
	}
	return s.savings.CreateSaving(ctx, userID, acc)
}

func (s *SavingService) List(ctx context.Context, userID int64) ([]core.SavingsAccount, error) {
	return s.savings.ListSavings(ctx, userID)
}

func (s *SavingService) Get(ctx context.Context, userID, id int64) (core.SavingsAccount, error) {
	return s.savings.GetSaving(ctx, userID, id)
}

func (s *SavingService) Update(ctx context.Context, userID int64, acc core.SavingsAccount) (core.SavingsAccount, error) {
	if err := acc.Validate(); err != nil {
		return core.SavingsAccount{}, err
	}
	return s.savings.UpdateSaving(ctx, userID, acc)
}

func (s *SavingService) Delete(ctx context.Context, userID, id int64) error {
	return s.savings.DeleteSaving(ctx, userID, id)
}

func (s *SavingService) Transactions(ctx context.Context, userID, id int64) ([]core.SavingTransaction, error) {
	return s.savings.ListSavingTransactions(ctx, userID, id)
}

// Deposit adds funds to the account.
func (s *SavingService) Deposit(ctx context.Context, userID, id int64, amount core.Money, description string) (core.SavingsAccount, error) {
	if !amount.IsPositive() {
		return core.SavingsAccount{}, core.ErrInvalidAmount
	}
	return s.savings.ApplySavingTransaction(ctx, userID, id, amount, core.SavingTransaction{
		Type:        core.SavingDeposit,
		Amount:      amount,
		Description: description,
	})
}

// Withdraw removes funds. Overdrawing fails with
// storage.ErrInsufficientFunds and changes nothing.
func (s *SavingService) Withdraw(ctx context.Context, userID, id int64, amount core.Money, description string) (core.SavingsAccount, error) {
	if !amount.IsPositive() {
		return core.SavingsAccount{}, core.ErrInvalidAmount
	}
	return s.savings.ApplySavingTransaction(ctx, userID, id, amount.Neg(), core.SavingTransaction{
		Type:        core.SavingWithdrawal,
		Amount:      amount,
		Description: description,
	})
}

// Transfer moves funds between two of the user's accounts. The
// withdrawal side runs first; if crediting the destination fails the
// source is compensated so no money disappears.
func (s *SavingService) Transfer(ctx context.Context, userID, fromID, toID int64, amount core.Money, description string) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}
	if fromID == toID {
		return fmt.Errorf("cannot transfer to the same account")
	}
	// Destination must exist before debiting the source
	if _, err := s.savings.GetSaving(ctx, userID, toID); err != nil {
		return err
	}

	if _, err := s.savings.ApplySavingTransaction(ctx, userID, fromID, amount.Neg(), core.SavingTransaction{
		Type:        core.SavingTransferOut,
		Amount:      amount,
		Description: description,
	}); err != nil {
		return err
	}

	if _, err := s.savings.ApplySavingTransaction(ctx, userID, toID, amount, core.SavingTransaction{
		Type:        core.SavingTransferIn,
		Amount:      amount,
		Description: description,
	}); err != nil {
		if _, compErr := s.savings.ApplySavingTransaction(ctx, userID, fromID, amount, core.SavingTransaction{
			Type:        core.SavingTransferIn,
			Amount:      amount,
			Description: "transfer reversal",
		}); compErr != nil {
			slog.ErrorContext(ctx, "Failed to compensate aborted transfer",
				"from", fromID, "to", toID, "error", compErr)
		}
		return fmt.Errorf("credit destination account: %w", err)
	}

	slog.InfoContext(ctx, "Transfer completed",
		"from", fromID,
		"to", toID,
		"amount", amount.String())
	return nil
}

// Projection computes the month-by-month interest projection for the
// account, anchored at from.
func (s *SavingService) Projection(ctx context.Context, userID, id int64, months int, from core.Date) ([]core.ProjectionEntry, error) {
	if months < minProjectionMonths || months > maxProjectionMonths {
		return nil, core.ErrInvalidHorizon
	}
	acc, err := s.savings.GetSaving(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return core.ProjectInterest(acc.Balance, acc.InterestRate, months, from), nil
}
