package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// LineRequest asks for a quantity of one catalog item, identified by its
// normalized name and unit.
type LineRequest struct {
	name     string
	unit     string
	quantity int
}

// NewLineRequest creates a line request. Name must be non-empty and quantity
// positive.
func NewLineRequest(name, unit string, quantity int) (LineRequest, error) {
	if name == "" {
		return LineRequest{}, errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return LineRequest{}, errs.NewValueIsInvalidError("quantity must be greater than 0")
	}

	return LineRequest{name: name, unit: unit, quantity: quantity}, nil
}

// Name returns the requested item name.
func (l LineRequest) Name() string {
	return l.name
}

// Unit returns the requested item unit.
func (l LineRequest) Unit() string {
	return l.unit
}

// Quantity returns the requested quantity.
func (l LineRequest) Quantity() int {
	return l.quantity
}

// Key returns the normalized catalog key for the request.
func (l LineRequest) Key() string {
	return stock.NormalizeKey(l.name, l.unit)
}

// CreateOrderCommand represents a request to record a customer order and
// deduct the sold quantities from stock, all lines or none.
//
// Example:
//
//	line, _ := NewLineRequest("ice", "bag", 5)
//	cmd, err := NewCreateOrderCommand("Somchai Shop", []LineRequest{line},
//	    order.Unpaid, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	receipt, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customer       string
	lines          []LineRequest
	paymentStatus  order.PaymentStatus
	deliveryPerson string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to record a new order. Validates
// that the customer name is present and at least one line is requested.
func NewCreateOrderCommand(customer string, lines []LineRequest,
	paymentStatus order.PaymentStatus, deliveryPerson string,
) (CreateOrderCommand, error) {
	if customer == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("customer")
	}
	if len(lines) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("lines")
	}
	if err := paymentStatus.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		customer:       customer,
		lines:          lines,
		paymentStatus:  paymentStatus,
		deliveryPerson: deliveryPerson,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Customer returns the ordering customer's name.
func (c CreateOrderCommand) Customer() string {
	return c.customer
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []LineRequest {
	return c.lines
}

// PaymentStatus returns the payment status to record the order with.
func (c CreateOrderCommand) PaymentStatus() order.PaymentStatus {
	return c.paymentStatus
}

// DeliveryPerson returns the courier named in the order, if any.
func (c CreateOrderCommand) DeliveryPerson() string {
	return c.deliveryPerson
}
