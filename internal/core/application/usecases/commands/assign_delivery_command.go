package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand represents a request to dispatch the nearest idle
// vehicle to deliver an order.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderNo     int
	destination geo.Point
	customer    string

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand creates a dispatch command. Order number must be
// positive and the destination a constructed point.
func NewAssignDeliveryCommand(orderNo int, destination geo.Point, customer string,
) (AssignDeliveryCommand, error) {
	if orderNo <= 0 {
		return AssignDeliveryCommand{}, errs.NewValueIsInvalidError("orderNo must be greater than 0")
	}
	if err := destination.Validate(); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return AssignDeliveryCommand{
		orderNo:     orderNo,
		destination: destination,
		customer:    customer,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

// OrderNo returns the order to deliver.
func (c AssignDeliveryCommand) OrderNo() int {
	return c.orderNo
}

// Destination returns the delivery destination.
func (c AssignDeliveryCommand) Destination() geo.Point {
	return c.destination
}

// Customer returns the receiving customer's name.
func (c AssignDeliveryCommand) Customer() string {
	return c.customer
}
