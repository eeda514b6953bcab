package worker

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/storage"
)

func seedTransaction(t *testing.T, store *storage.MemoryStore) core.Transaction {
	t.Helper()
	ctx := context.Background()
	u, err := store.CreateUser(ctx, "worker@example.com", "Worker", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	tx, err := store.CreateTransaction(ctx, u.ID, core.Transaction{
		Amount:   core.MustMoney("12.50"),
		Type:     core.Expense,
		Category: "misc",
		Date:     core.NewDate(2025, 6, 1),
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return tx
}

func TestHandleSyncMessageExports(t *testing.T) {
	store := storage.NewMemoryStore()
	exporter := export.NewMemoryExporter()
	w := NewSyncWorker(store, exporter, 10)
	ctx := context.Background()

	tx := seedTransaction(t, store)

	if err := w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(tx.ID)); err != nil {
		t.Fatalf("handle sync message: %v", err)
	}

	exported := exporter.Exported()
	if len(exported) != 1 || exported[0].ID != tx.ID {
		t.Fatalf("exported = %+v", exported)
	}

	// Export is marked synced: nothing left pending
	pending, err := store.PendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("pending exports: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after sync = %d, want 0", len(pending))
	}
}

func TestHandleSyncMessageUnknownID(t *testing.T) {
	store := storage.NewMemoryStore()
	w := NewSyncWorker(store, export.NewMemoryExporter(), 10)

	err := w.HandleSyncMessage(context.Background(), amqp.NewTransactionSyncMessage(404))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestExportFailureMarksError(t *testing.T) {
	store := storage.NewMemoryStore()
	exporter := export.NewMemoryExporter()
	w := NewSyncWorker(store, exporter, 10)
	ctx := context.Background()

	tx := seedTransaction(t, store)
	exporter.FailNext = errors.New("sheet unavailable")

	if err := w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(tx.ID)); err == nil {
		t.Fatal("expected export error")
	}

	// Marked as error, so the pending scan skips it
	pending, err := store.PendingExports(ctx, 10)
	if err != nil {
		t.Fatalf("pending exports: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after failure = %d, want 0", len(pending))
	}
}

func TestProcessPendingDrainsBacklog(t *testing.T) {
	store := storage.NewMemoryStore()
	exporter := export.NewMemoryExporter()
	w := NewSyncWorker(store, exporter, 10)
	ctx := context.Background()

	u, err := store.CreateUser(ctx, "backlog@example.com", "Backlog", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := store.CreateTransaction(ctx, u.ID, core.Transaction{
			Amount:   core.MustMoney("10"),
			Type:     core.Expense,
			Category: "misc",
			Date:     core.NewDate(2025, 6, 1+i),
		}); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if got := len(exporter.Exported()); got != 3 {
		t.Fatalf("exported = %d, want 3", got)
	}

	// Second run finds nothing
	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("second process pending: %v", err)
	}
	if got := len(exporter.Exported()); got != 3 {
		t.Fatalf("exported after second run = %d, want 3", got)
	}
}
