// Package order models committed customer orders: the aggregate the stock
// ledger produces, identified by a monotonically assigned sequence number.
// An order is immutable after commit except for its payment status and
// delivery-person label; orders are never deleted.
package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Line is one ordered position: a product reference, a positive quantity, and
// the unit price copied from the catalog at commit time.
type Line struct { //nolint:recvcheck //using for validation
	item     stock.Item
	quantity int

	guard guard.ConstructorGuard
}

// NewLine creates an order line for the given catalog item and quantity.
func NewLine(item stock.Item, quantity int) (Line, error) {
	if err := item.Validate(); err != nil {
		return Line{}, err
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidError(fmt.Sprintf("line quantity %d must be positive", quantity))
	}

	return Line{
		item:     item,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Line was created through NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(errors.New("Line must be created via NewLine constructor"))
}

// Item returns the catalog item the line refers to, as it was at commit time.
func (l Line) Item() stock.Item {
	return l.item
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the unit price copied at commit time.
func (l Line) UnitPrice() float64 {
	return l.item.Price()
}

// Total returns quantity times unit price.
func (l Line) Total() float64 {
	return float64(l.quantity) * l.item.Price()
}

// Order is a committed customer purchase: one or more lines sharing a
// sequential order number. Only the transaction coordinator creates orders.
type Order struct {
	number         int
	timestamp      time.Time
	customer       string
	lines          []Line
	paymentStatus  PaymentStatus
	deliveryPerson string

	isConstructed bool
}

// NewOrder creates an order at commit time. The number must be positive
// (numbers are assigned as prior order count + 1), customer must be non-empty,
// and there must be at least one line.
func NewOrder(number int, timestamp time.Time, customer string, lines []Line,
	paymentStatus PaymentStatus, deliveryPerson string,
) (*Order, error) {
	if number <= 0 {
		return nil, errs.NewValueIsInvalidError(fmt.Sprintf("order number %d must be positive", number))
	}
	if customer == "" {
		return nil, errs.NewValueIsRequiredError("customer")
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}
	if err := paymentStatus.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		number:         number,
		timestamp:      timestamp,
		customer:       customer,
		lines:          lines,
		paymentStatus:  paymentStatus,
		deliveryPerson: deliveryPerson,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Order was created through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// Number returns the sequential order number.
func (o *Order) Number() int {
	return o.number
}

// Timestamp returns the commit timestamp.
func (o *Order) Timestamp() time.Time {
	return o.timestamp
}

// Customer returns the customer name.
func (o *Order) Customer() string {
	return o.customer
}

// Lines returns the ordered list of lines.
func (o *Order) Lines() []Line {
	return o.lines
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// DeliveryPerson returns the optional delivery-person label.
func (o *Order) DeliveryPerson() string {
	return o.deliveryPerson
}

// Total returns the sum of line totals.
func (o *Order) Total() float64 {
	var total float64
	for _, line := range o.lines {
		total += line.Total()
	}
	return total
}

// MarkPayment overwrites the payment status. This and the delivery-person
// label are the only mutable parts of a committed order.
func (o *Order) MarkPayment(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}

// SetDeliveryPerson overwrites the delivery-person label.
func (o *Order) SetDeliveryPerson(name string) {
	o.deliveryPerson = name
}
