package sheetrepo

import (
	"context"
	"fmt"
	"strconv"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Orders sheet columns. An order spans one row per line, all sharing the
// order number.
const (
	orderColNumber         = 0
	orderColTimestamp      = 1
	orderColCustomer       = 2
	orderColProduct        = 3
	orderColQuantity       = 4
	orderColNote           = 5
	orderColDeliveryPerson = 6
	orderColPayment        = 7
	orderColAmount         = 8
)

// SheetOrderRepository persists orders as rows of the Orders sheet.
type SheetOrderRepository struct {
	store ports.TabularStore
}

// NewSheetOrderRepository creates an order repository over a tabular store.
func NewSheetOrderRepository(store ports.TabularStore) (*SheetOrderRepository, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	return &SheetOrderRepository{store: store}, nil
}

// Count returns the number of distinct order numbers.
func (r *SheetOrderRepository) Count(ctx context.Context) (int, error) {
	rows, err := r.store.Read(ctx, OrdersSheet)
	if err != nil {
		return 0, err
	}

	seen := make(map[int]struct{})
	for i := 1; i < len(rows); i++ {
		if no := parseIntCell(rows[i], orderColNumber); no > 0 {
			seen[no] = struct{}{}
		}
	}
	return len(seen), nil
}

// LastOrderNumber returns the order number of the bottom row, zero when the
// sheet holds no orders.
func (r *SheetOrderRepository) LastOrderNumber(ctx context.Context) (int, error) {
	rows, err := r.store.Read(ctx, OrdersSheet)
	if err != nil {
		return 0, err
	}
	if len(rows) <= 1 {
		return 0, nil
	}
	return parseIntCell(rows[len(rows)-1], orderColNumber), nil
}

// AppendOrder adds one row per order line.
func (r *SheetOrderRepository) AppendOrder(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rows := make([]ports.Row, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		rows = append(rows, ports.Row{
			strconv.Itoa(aggregate.Number()),
			aggregate.Timestamp().Format(timeLayout),
			aggregate.Customer(),
			line.Item().Name(),
			strconv.Itoa(line.Quantity()),
			"",
			aggregate.DeliveryPerson(),
			aggregate.PaymentStatus().String(),
			formatFloat(line.Total()),
		})
	}
	return r.store.Append(ctx, OrdersSheet, rows)
}

// GetByNumber returns every persisted line of the order, in sheet order. An
// unknown order yields an empty slice, not an error.
func (r *SheetOrderRepository) GetByNumber(ctx context.Context, orderNo int) ([]ports.OrderLine, error) {
	rows, err := r.store.Read(ctx, OrdersSheet)
	if err != nil {
		return nil, err
	}

	var lines []ports.OrderLine
	for i := 1; i < len(rows); i++ {
		if parseIntCell(rows[i], orderColNumber) != orderNo {
			continue
		}
		lines = append(lines, r.toOrderLine(rows[i]))
	}
	return lines, nil
}

// UpdatePaymentStatus overwrites the payment cell of every row of the order
// and reports the order's customer and total.
func (r *SheetOrderRepository) UpdatePaymentStatus(ctx context.Context, orderNo int,
	status order.PaymentStatus,
) (ports.PaymentUpdate, error) {
	if err := status.Validate(); err != nil {
		return ports.PaymentUpdate{}, err
	}

	rows, err := r.store.Read(ctx, OrdersSheet)
	if err != nil {
		return ports.PaymentUpdate{}, err
	}

	update := ports.PaymentUpdate{OrderNo: orderNo}
	var matched []int
	for i := 1; i < len(rows); i++ {
		if parseIntCell(rows[i], orderColNumber) != orderNo {
			continue
		}
		matched = append(matched, i)
		update.Customer = cell(rows[i], orderColCustomer)
		update.TotalAmount += parseFloatCell(rows[i], orderColAmount)
	}
	if len(matched) == 0 {
		return ports.PaymentUpdate{}, errs.NewObjectNotFoundError(fmt.Sprintf("order %d", orderNo), orderNo)
	}

	for _, row := range matched {
		if err := r.store.WriteCell(ctx, OrdersSheet, row, orderColPayment, status.String()); err != nil {
			return ports.PaymentUpdate{}, err
		}
	}
	return update, nil
}

// DeleteOrder removes every row of the order, returning how many were
// removed.
func (r *SheetOrderRepository) DeleteOrder(ctx context.Context, orderNo int) (int, error) {
	rows, err := r.store.Read(ctx, OrdersSheet)
	if err != nil {
		return 0, err
	}

	var matched []int
	for i := 1; i < len(rows); i++ {
		if parseIntCell(rows[i], orderColNumber) == orderNo {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}

	if err := r.store.DeleteRows(ctx, OrdersSheet, matched); err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (r *SheetOrderRepository) toOrderLine(row ports.Row) ports.OrderLine {
	status, err := order.PaymentStatusFromString(cell(row, orderColPayment))
	if err != nil {
		status = order.Unpaid
	}

	return ports.OrderLine{
		OrderNo:        parseIntCell(row, orderColNumber),
		Customer:       cell(row, orderColCustomer),
		Product:        cell(row, orderColProduct),
		Quantity:       parseIntCell(row, orderColQuantity),
		Amount:         parseFloatCell(row, orderColAmount),
		PaymentStatus:  status,
		DeliveryPerson: cell(row, orderColDeliveryPerson),
	}
}
