package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order and return its
// quantities to stock. OrderNo zero means the most recent order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderNo int

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation command.
func NewCancelOrderCommand(orderNo int) (CancelOrderCommand, error) {
	if orderNo < 0 {
		return CancelOrderCommand{}, errs.NewValueIsInvalidError("orderNo cannot be negative")
	}

	return CancelOrderCommand{orderNo: orderNo, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderNo returns the targeted order number, zero for the latest order.
func (c CancelOrderCommand) OrderNo() int {
	return c.orderNo
}
