package sheetrepo

import (
	"context"
	"strconv"

	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Stock sheet columns.
const (
	stockColName     = 0
	stockColPrice    = 1
	stockColLocation = 2
	stockColUnit     = 3
	stockColQuantity = 4
)

// SheetStockRepository reads the catalog from the Stock sheet and writes
// quantities back cell by cell.
type SheetStockRepository struct {
	store ports.TabularStore
}

// NewSheetStockRepository creates a stock repository over a tabular store.
func NewSheetStockRepository(store ports.TabularStore) (*SheetStockRepository, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	return &SheetStockRepository{store: store}, nil
}

// LoadAll returns the catalog in sheet order. Rows without a product name are
// skipped; malformed numbers read as zero.
func (r *SheetStockRepository) LoadAll(ctx context.Context) ([]stock.Item, error) {
	rows, err := r.store.Read(ctx, StockSheet)
	if err != nil {
		return nil, err
	}

	items := make([]stock.Item, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		name := cell(rows[i], stockColName)
		if name == "" {
			continue
		}

		item, err := stock.NewItem(
			name,
			cell(rows[i], stockColUnit),
			parseFloatCell(rows[i], stockColPrice),
			parseIntCell(rows[i], stockColQuantity),
			i,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteQuantity overwrites the quantity cell of the item's backing row.
func (r *SheetStockRepository) WriteQuantity(ctx context.Context, item stock.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return r.store.WriteCell(ctx, StockSheet, item.Row(), stockColQuantity, strconv.Itoa(item.Quantity()))
}
