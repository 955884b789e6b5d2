package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/inbox"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/core/domain/model/vehicle"
)

// StockRepository reads and mutates the stock catalog.
//
// LoadAll returns items in catalog order; each Item remembers the backing
// row it was read from so WriteQuantity can target a single cell instead of
// rewriting the table.
type StockRepository interface {
	LoadAll(ctx context.Context) ([]stock.Item, error)
	WriteQuantity(ctx context.Context, item stock.Item) error
}

// OrderLine is one persisted order row. An order with several lines spans
// several rows sharing one order number.
type OrderLine struct {
	OrderNo        int
	Customer       string
	Product        string
	Quantity       int
	Amount         float64
	PaymentStatus  order.PaymentStatus
	DeliveryPerson string
}

// PaymentUpdate reports the outcome of settling an order's payment.
type PaymentUpdate struct {
	OrderNo     int
	Customer    string
	TotalAmount float64
}

// OrderRepository persists orders. Count reports distinct order numbers, not
// rows; LastOrderNumber returns zero when no orders exist.
type OrderRepository interface {
	Count(ctx context.Context) (int, error)
	LastOrderNumber(ctx context.Context) (int, error)
	AppendOrder(ctx context.Context, aggregate *order.Order) error
	GetByNumber(ctx context.Context, orderNo int) ([]OrderLine, error)
	UpdatePaymentStatus(ctx context.Context, orderNo int, status order.PaymentStatus) (PaymentUpdate, error)
	DeleteOrder(ctx context.Context, orderNo int) (int, error)
}

// PositionRepository is the append-only log of vehicle position
// observations.
type PositionRepository interface {
	LoadAll(ctx context.Context) ([]vehicle.Vehicle, error)
	Append(ctx context.Context, observation vehicle.Vehicle) error
	CleanupBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// AssignmentRepository persists delivery assignments keyed by order number.
type AssignmentRepository interface {
	Add(ctx context.Context, aggregate *delivery.Assignment) error
	GetByOrderNo(ctx context.Context, orderNo int) (*delivery.Assignment, error)
	Update(ctx context.Context, aggregate *delivery.Assignment) error
	GetActive(ctx context.Context) ([]*delivery.Assignment, error)
}

// CustomerRepository reads the customer directory.
type CustomerRepository interface {
	LoadAll(ctx context.Context) ([]customer.Customer, error)
}

// InboxRepository records every incoming free-text message before it is
// interpreted.
type InboxRepository interface {
	Append(ctx context.Context, message inbox.Message) error
}
