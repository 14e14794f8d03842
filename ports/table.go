package ports

import (
	"context"

	"divindex/domain/abundance"
)

// TableProvider supplies the abundance table for a run.
type TableProvider interface {
	// ReadTable parses the source into sites by species. Cells that cannot be
	// read as counts are recorded in Table.Skipped, never returned as errors.
	ReadTable(ctx context.Context) (*abundance.Table, error)

	// Source names the input, for logs and reports.
	Source() string
}
