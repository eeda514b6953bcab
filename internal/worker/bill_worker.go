package worker

import (
	"context"
	"log/slog"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

// BillWorker periodically rolls paid recurring bills over to their next
// cycle.
type BillWorker struct {
	bills    *services.BillService
	interval time.Duration
}

func NewBillWorker(bills *services.BillService, interval time.Duration) *BillWorker {
	return &BillWorker{bills: bills, interval: interval}
}

// Run rolls once immediately, then on every tick until the context is
// cancelled.
func (w *BillWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.rollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Bill worker stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			w.rollOnce(ctx)
		}
	}
}

func (w *BillWorker) rollOnce(ctx context.Context) {
	rolled, err := w.bills.RollRecurring(ctx, core.Today())
	if err != nil {
		slog.ErrorContext(ctx, "Recurring bill roll failed", "error", err)
		return
	}
	if rolled > 0 {
		slog.InfoContext(ctx, "Recurring bills rolled", "count", rolled)
	}
}
