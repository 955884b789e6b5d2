package caches

import (
	"context"
	"sync"

	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// StockCache keeps an ordered snapshot of the stock catalog. Order matters:
// the interpretation prompt refers to items by their index in this slice, so
// the snapshot must stay stable between building a prompt and mapping the
// generator's answer back to items. Mutating use cases invalidate the cache
// after writing quantities.
type StockCache struct {
	stocks ports.StockRepository

	mu     sync.Mutex
	items  []stock.Item
	loaded bool
}

// NewStockCache creates a catalog cache over the given stock repository.
func NewStockCache(stocks ports.StockRepository) (*StockCache, error) {
	if stocks == nil {
		return nil, errs.NewValueIsRequiredError("stocks")
	}
	return &StockCache{stocks: stocks}, nil
}

// Get returns the catalog snapshot in catalog order, loading it on first use.
// The returned slice is a copy; callers may not mutate cached state through
// it.
func (c *StockCache) Get(ctx context.Context) ([]stock.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		items, err := c.stocks.LoadAll(ctx)
		if err != nil {
			return nil, err
		}
		c.items = items
		c.loaded = true
	}

	snapshot := make([]stock.Item, len(c.items))
	copy(snapshot, c.items)
	return snapshot, nil
}

// Invalidate drops the snapshot; the next Get reloads the catalog.
func (c *StockCache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.items = nil
	c.mu.Unlock()
}
