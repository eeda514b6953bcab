// Package worker hosts the background processes: the sheet sync worker
// and the recurring bill roller.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/export"
	"fintrack/internal/storage"
)

// SyncWorker mirrors transactions from the database to the export
// sheet. AMQP messages drive the normal path; a periodic pending scan
// recovers anything a lost message left behind.
type SyncWorker struct {
	store     storage.ExportOutbox
	exporter  export.Exporter
	batchSize int
}

func NewSyncWorker(store storage.ExportOutbox, exporter export.Exporter, batchSize int) *SyncWorker {
	return &SyncWorker{
		store:     store,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes one transaction sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)
	return w.exportTransaction(ctx, msg.ID)
}

// ProcessPending exports transactions still marked pending. This is the
// backup path for lost AMQP messages.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.PendingExports(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending exports: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.exportTransaction(ctx, p.TransactionID); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction",
				"id", p.TransactionID, "error", err)
		}
	}
	return nil
}

// StartupSyncCheck drains a larger pending backlog once at worker
// startup, recovering from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.store.PendingExports(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending exports for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending exports on startup", "count", len(pending))

	synced, failed := 0, 0
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.exportTransaction(ctx, p.TransactionID); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction during startup",
				"id", p.TransactionID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *SyncWorker) exportTransaction(ctx context.Context, id int64) error {
	t, err := w.store.ExportTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("get transaction %d: %w", id, err)
	}

	ref, err := w.exporter.AppendTransaction(ctx, t)
	if err != nil {
		if markErr := w.store.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to export: %w", err)
	}

	if err := w.store.MarkExported(ctx, id); err != nil {
		// The export itself succeeded
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Transaction exported", "id", id, "row", ref)
	return nil
}
