package commands

import (
	"context"
	"strings"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/keylock"
)

// CancelResult reports a canceled order.
type CancelResult struct {
	OrderNo       int
	Customer      string
	RowsRemoved   int
	RestoredItems []string
}

// CancelOrderCommandHandler cancels an order: its quantities go back to stock
// and its rows are removed. Stock restoration runs under the same per-item
// locks order creation uses, and row removal holds the order sequencing lock
// so a concurrent commit cannot count the sheet mid-delete.
type CancelOrderCommandHandler struct {
	stocks     ports.StockRepository
	orders     ports.OrderRepository
	stockCache *caches.StockCache
	locks      *keylock.KeyedMutex
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(stocks ports.StockRepository, orders ports.OrderRepository,
	stockCache *caches.StockCache, locks *keylock.KeyedMutex,
) (CancelOrderCommandHandler, error) {
	if stocks == nil {
		return CancelOrderCommandHandler{}, errs.NewValueIsRequiredError("stocks")
	}
	if orders == nil {
		return CancelOrderCommandHandler{}, errs.NewValueIsRequiredError("orders")
	}
	if stockCache == nil {
		return CancelOrderCommandHandler{}, errs.NewValueIsRequiredError("stockCache")
	}
	if locks == nil {
		return CancelOrderCommandHandler{}, errs.NewValueIsRequiredError("locks")
	}

	return CancelOrderCommandHandler{
		stocks:     stocks,
		orders:     orders,
		stockCache: stockCache,
		locks:      locks,
	}, nil
}

// Handle processes the cancellation. Order rows carry product names without
// units, so restoration matches catalog items by normalized name; a product
// no longer in the catalog is skipped rather than failing the cancellation.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (CancelResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelResult{}, err
	}

	orderNo := cmd.OrderNo()
	if orderNo == 0 {
		last, err := h.orders.LastOrderNumber(ctx)
		if err != nil {
			return CancelResult{}, err
		}
		if last == 0 {
			return CancelResult{}, errs.NewObjectNotFoundError("order", "latest")
		}
		orderNo = last
	}

	lines, err := h.orders.GetByNumber(ctx, orderNo)
	if err != nil {
		return CancelResult{}, err
	}
	if len(lines) == 0 {
		return CancelResult{}, errs.NewObjectNotFoundError("order", orderNo)
	}

	// Resolve the affected catalog keys first, then redo the read under the
	// same locks order creation takes.
	catalog, err := h.stocks.LoadAll(ctx)
	if err != nil {
		return CancelResult{}, err
	}
	keys := make([]string, 0, len(lines)+1)
	keys = append(keys, orderSequenceKey)
	for _, line := range lines {
		for _, item := range catalog {
			if itemNameMatches(item, line.Product) {
				keys = append(keys, item.Key())
				break
			}
		}
	}
	unlock := h.locks.LockAll(keys)
	defer unlock()

	catalog, err = h.stocks.LoadAll(ctx)
	if err != nil {
		return CancelResult{}, err
	}
	byName := make(map[string]stock.Item, len(catalog))
	for _, item := range catalog {
		byName[strings.ToLower(strings.TrimSpace(item.Name()))] = item
	}

	result := CancelResult{OrderNo: orderNo, Customer: lines[0].Customer}
	for _, line := range lines {
		item, ok := byName[strings.ToLower(strings.TrimSpace(line.Product))]
		if !ok {
			continue
		}
		restocked, err := item.Restock(line.Quantity)
		if err != nil {
			return CancelResult{}, err
		}
		if err := h.stocks.WriteQuantity(ctx, restocked); err != nil {
			return CancelResult{}, err
		}
		byName[strings.ToLower(strings.TrimSpace(item.Name()))] = restocked
		result.RestoredItems = append(result.RestoredItems, item.Name())
	}

	removed, err := h.orders.DeleteOrder(ctx, orderNo)
	if err != nil {
		return CancelResult{}, err
	}
	result.RowsRemoved = removed

	h.stockCache.Invalidate()

	return result, nil
}

func itemNameMatches(item stock.Item, product string) bool {
	return strings.ToLower(strings.TrimSpace(item.Name())) == strings.ToLower(strings.TrimSpace(product))
}
