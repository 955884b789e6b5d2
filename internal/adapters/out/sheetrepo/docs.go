// Package sheetrepo implements the core repositories on top of a
// TabularStore. Each repository owns one sheet and its column layout; row
// indices handed to domain objects match what the store's Read returned,
// with row 0 being the header.
package sheetrepo

import (
	"strconv"
	"time"

	"dispatch/internal/core/ports"
)

// Sheet names, one per repository.
const (
	StockSheet      = "Stock"
	OrdersSheet     = "Orders"
	PositionsSheet  = "GPS"
	DeliveriesSheet = "Deliveries"
	CustomersSheet  = "Customers"
	InboxSheet      = "Inbox"
)

const timeLayout = time.RFC3339

func cell(row ports.Row, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func parseFloatCell(row ports.Row, col int) float64 {
	f, err := strconv.ParseFloat(cell(row, col), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntCell(row ports.Row, col int) int {
	n, err := strconv.Atoi(cell(row, col))
	if err != nil {
		return 0
	}
	return n
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
