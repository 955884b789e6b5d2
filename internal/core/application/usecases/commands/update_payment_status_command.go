package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdatePaymentStatusCommandIsNotConstructed = errors.New(
	"UpdatePaymentStatusCommand must be created via NewUpdatePaymentStatusCommand constructor",
)

// UpdatePaymentStatusCommand represents a request to settle or reopen payment
// for an existing order. OrderNo zero means the most recent order.
type UpdatePaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderNo int
	status  order.PaymentStatus

	guard guard.ConstructorGuard
}

// NewUpdatePaymentStatusCommand creates a payment update command.
func NewUpdatePaymentStatusCommand(orderNo int, status order.PaymentStatus,
) (UpdatePaymentStatusCommand, error) {
	if orderNo < 0 {
		return UpdatePaymentStatusCommand{}, errs.NewValueIsInvalidError("orderNo cannot be negative")
	}
	if err := status.Validate(); err != nil {
		return UpdatePaymentStatusCommand{}, err
	}

	return UpdatePaymentStatusCommand{
		orderNo: orderNo,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentStatusCommandIsNotConstructed)
}

// OrderNo returns the targeted order number, zero for the latest order.
func (c UpdatePaymentStatusCommand) OrderNo() int {
	return c.orderNo
}

// Status returns the payment status to record.
func (c UpdatePaymentStatusCommand) Status() order.PaymentStatus {
	return c.status
}
