package export

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/core"
)

// MemoryExporter collects exported transactions in memory. It backs
// tests and deployments without a configured spreadsheet.
type MemoryExporter struct {
	mu    sync.Mutex
	items []core.Transaction

	// FailNext makes the next append fail, for retry tests.
	FailNext error
}

var _ Exporter = (*MemoryExporter)(nil)

func NewMemoryExporter() *MemoryExporter {
	return &MemoryExporter{}
}

func (m *MemoryExporter) AppendTransaction(_ context.Context, t core.Transaction) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return "", err
	}
	m.items = append(m.items, t)
	return fmt.Sprintf("mem:%d", len(m.items)), nil
}

// Exported returns a copy of everything appended so far.
func (m *MemoryExporter) Exported() []core.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Transaction(nil), m.items...)
}
