// Package ports defines the boundaries between the core and its
// collaborators: the tabular persistence backend, the text-generation
// service, and the repositories built on top of the tabular store.
package ports

import "context"

// Row is one ordered row of cells in a sheet.
type Row []string

// TabularStore is the persistence collaborator: a spreadsheet-like backend
// addressed by sheet name and row/column position. Row 0 is the header; data
// rows are read top to bottom in insertion order. The store offers no
// cross-row transactions; callers serialize conflicting writers themselves.
type TabularStore interface {
	// Read returns every row of the sheet, header included, in order.
	Read(ctx context.Context, sheet string) ([]Row, error)

	// Append adds rows at the end of the sheet, preserving their order.
	Append(ctx context.Context, sheet string, rows []Row) error

	// WriteCell overwrites a single cell. Row indices match what Read
	// returned (0 is the header row); col is zero-based.
	WriteCell(ctx context.Context, sheet string, row, col int, value string) error

	// DeleteRows removes the given data rows, best effort. Used only by the
	// retention cleanup; indices match the most recent Read.
	DeleteRows(ctx context.Context, sheet string, rows []int) error
}
