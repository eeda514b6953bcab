// Package export mirrors transactions to an external spreadsheet.
package export

import (
	"context"

	"fintrack/internal/core"
)

// Exporter is the outbound port the sync worker writes through.
type Exporter interface {
	// AppendTransaction adds one transaction row to the export target
	// and returns a reference to the written row.
	AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)
}
