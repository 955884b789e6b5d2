package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/keylock"
)

// ReceiptLine reports one committed order line and the stock it left behind.
type ReceiptLine struct {
	Product   string
	Unit      string
	Quantity  int
	UnitPrice float64
	LineTotal float64
	NewStock  int
	Warning   stock.Warning
}

// OrderReceipt reports a committed order.
type OrderReceipt struct {
	OrderNo     int
	Customer    string
	TotalAmount float64
	Lines       []ReceiptLine
}

// orderSequenceKey serializes order numbering across commits. Stock item
// keys always contain "|", so the key cannot collide with one.
const orderSequenceKey = "orders"

// CreateOrderCommandHandler records orders against live stock. The
// read-validate-write sequence runs under per-item locks so two orders
// draining the same item cannot both pass validation; items are always
// locked in sorted key order. Every commit additionally holds the order
// sequencing lock, so concurrent orders over disjoint items still get
// distinct numbers. Order rows are appended before stock is deducted.
type CreateOrderCommandHandler struct {
	stocks     ports.StockRepository
	orders     ports.OrderRepository
	stockCache *caches.StockCache
	locks      *keylock.KeyedMutex
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(stocks ports.StockRepository, orders ports.OrderRepository,
	stockCache *caches.StockCache, locks *keylock.KeyedMutex,
) (CreateOrderCommandHandler, error) {
	if stocks == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("stocks")
	}
	if orders == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("orders")
	}
	if stockCache == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("stockCache")
	}
	if locks == nil {
		return CreateOrderCommandHandler{}, errs.NewValueIsRequiredError("locks")
	}

	return CreateOrderCommandHandler{
		stocks:     stocks,
		orders:     orders,
		stockCache: stockCache,
		locks:      locks,
	}, nil
}

// Handle processes the order creation command: validate every line against a
// fresh stock read, commit all of them or none.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderReceipt, error) {
	if err := cmd.Validate(); err != nil {
		return OrderReceipt{}, err
	}

	keys := make([]string, 0, len(cmd.Lines())+1)
	keys = append(keys, orderSequenceKey)
	for _, line := range cmd.Lines() {
		keys = append(keys, line.Key())
	}
	unlock := h.locks.LockAll(keys)
	defer unlock()

	catalog, err := h.stocks.LoadAll(ctx)
	if err != nil {
		return OrderReceipt{}, err
	}

	byKey := make(map[string]stock.Item, len(catalog))
	for _, item := range catalog {
		byKey[item.Key()] = item
	}

	// Validate every line before touching anything. Lines naming the same
	// item draw from a shared pool, so each one is checked against what the
	// earlier lines left.
	var validationErrs []error
	requested := make(map[string]int, len(cmd.Lines()))
	picked := make([]stock.Item, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		item, ok := byKey[line.Key()]
		if !ok {
			validationErrs = append(validationErrs, errs.NewObjectNotFoundError("item", line.Name()))
			continue
		}
		if !item.CanFulfill(requested[line.Key()] + line.Quantity()) {
			validationErrs = append(validationErrs,
				errs.NewInsufficientStockError(item.Name(), item.Quantity()-requested[line.Key()], line.Quantity()))
			continue
		}
		requested[line.Key()] += line.Quantity()
		picked = append(picked, item)
	}
	if err := errors.Join(validationErrs...); err != nil {
		return OrderReceipt{}, err
	}

	count, err := h.orders.Count(ctx)
	if err != nil {
		return OrderReceipt{}, err
	}
	orderNo := count + 1

	lines := make([]order.Line, 0, len(cmd.Lines()))
	for i, line := range cmd.Lines() {
		orderLine, err := order.NewLine(picked[i], line.Quantity())
		if err != nil {
			return OrderReceipt{}, err
		}
		lines = append(lines, orderLine)
	}

	aggregate, err := order.NewOrder(orderNo, time.Now(), cmd.Customer(), lines,
		cmd.PaymentStatus(), cmd.DeliveryPerson())
	if err != nil {
		return OrderReceipt{}, err
	}

	if err := h.orders.AppendOrder(ctx, aggregate); err != nil {
		return OrderReceipt{}, err
	}

	receipt := OrderReceipt{
		OrderNo:  orderNo,
		Customer: cmd.Customer(),
		Lines:    make([]ReceiptLine, 0, len(lines)),
	}
	// Deduction tracks the running remainder per item, so repeated lines of
	// one item stack instead of overwriting each other.
	remaining := make(map[string]stock.Item, len(picked))
	for i, line := range cmd.Lines() {
		current, ok := remaining[line.Key()]
		if !ok {
			current = picked[i]
		}
		deducted, err := current.Deduct(line.Quantity())
		if err != nil {
			return OrderReceipt{}, err
		}
		remaining[line.Key()] = deducted
		if err := h.stocks.WriteQuantity(ctx, deducted); err != nil {
			return OrderReceipt{}, err
		}

		lineTotal := picked[i].Price() * float64(line.Quantity())
		receipt.TotalAmount += lineTotal
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Product:   picked[i].Name(),
			Unit:      picked[i].Unit(),
			Quantity:  line.Quantity(),
			UnitPrice: picked[i].Price(),
			LineTotal: lineTotal,
			NewStock:  deducted.Quantity(),
			Warning:   stock.WarningForRemaining(deducted.Quantity()),
		})
	}

	h.stockCache.Invalidate()

	return receipt, nil
}
