package sheetrepo

import (
	"context"

	"dispatch/internal/core/ports"
)

// sheetHeaders maps every sheet to its header row. Repositories treat row 0
// as the header, so each sheet must carry one before its first data row.
var sheetHeaders = map[string]ports.Row{
	StockSheet:      {"name", "price", "location", "unit", "stock"},
	OrdersSheet:     {"no.", "timestamp", "customer", "product", "quantity", "note", "deliveryPerson", "payment", "amount"},
	PositionsSheet:  {"vehicleId", "timestamp", "lat", "lng", "speed", "heading", "driver", "status"},
	DeliveriesSheet: {"order", "vehicle", "customer", "assignedAt", "status", "lat", "lng", "distanceKm", "completedAt"},
	CustomersSheet:  {"name", "phone", "address", "lat", "lng"},
	InboxSheet:      {"id", "userId", "receivedAt", "text"},
}

// EnsureHeaders appends the header row to every sheet that is still empty.
// Runs at startup so a fresh store never swallows its first data row as a
// header; sheets that already have rows are left untouched.
func EnsureHeaders(ctx context.Context, store ports.TabularStore) error {
	for sheet, header := range sheetHeaders {
		rows, err := store.Read(ctx, sheet)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			continue
		}
		if err := store.Append(ctx, sheet, []ports.Row{header}); err != nil {
			return err
		}
	}
	return nil
}
