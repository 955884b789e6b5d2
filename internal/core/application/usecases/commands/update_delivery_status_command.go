package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a request to advance a delivery
// along assigned, delivering, completed.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderNo int
	status  delivery.Status

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a status update command.
func NewUpdateDeliveryStatusCommand(orderNo int, status delivery.Status,
) (UpdateDeliveryStatusCommand, error) {
	if orderNo <= 0 {
		return UpdateDeliveryStatusCommand{}, errs.NewValueIsInvalidError("orderNo must be greater than 0")
	}
	if err := status.Validate(); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return UpdateDeliveryStatusCommand{
		orderNo: orderNo,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// OrderNo returns the delivery's order number.
func (c UpdateDeliveryStatusCommand) OrderNo() int {
	return c.orderNo
}

// Status returns the status to advance to.
func (c UpdateDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}
