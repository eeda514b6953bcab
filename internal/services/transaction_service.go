// Package services orchestrates the domain calculations over storage
// and the sync queue.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// TransactionService owns income and expense records. Writes land in
// storage first; the sheet sync is queued asynchronously and never
// fails the request.
type TransactionService struct {
	store      storage.TransactionStore
	amqpClient *amqp.Client
}

func NewTransactionService(store storage.TransactionStore, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{store: store, amqpClient: amqpClient}
}

func (s *TransactionService) Create(ctx context.Context, userID int64, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	created, err := s.store.CreateTransaction(ctx, userID, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishSyncMessage(ctx, created.ID); err != nil {
		// Transaction is saved; the periodic pending scan will pick it up
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", created.ID, "error", err)
	}

	return created, nil
}

// List returns the user's transactions matching the filter, newest
// first.
func (s *TransactionService) List(ctx context.Context, userID int64, filter core.TransactionFilter) ([]core.Transaction, error) {
	all, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]core.Transaction, 0, len(all))
	for _, t := range all {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Summary aggregates income, expenses and balance over the matching
// transactions.
func (s *TransactionService) Summary(ctx context.Context, userID int64, filter core.TransactionFilter) (core.Summary, error) {
	matching, err := s.List(ctx, userID, filter)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(matching), nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

func (s *TransactionService) publishSyncMessage(ctx context.Context, id int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishTransactionSync(ctx, id)
}
