package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateVehicleStatusCommandIsNotConstructed = errors.New(
	"UpdateVehicleStatusCommand must be created via NewUpdateVehicleStatusCommand constructor",
)

// UpdateVehicleStatusCommand represents a request to relabel a vehicle's
// status without moving it.
type UpdateVehicleStatusCommand struct { //nolint:recvcheck //using for validation
	vehicleID string
	status    string

	guard guard.ConstructorGuard
}

// NewUpdateVehicleStatusCommand creates a vehicle status command.
func NewUpdateVehicleStatusCommand(vehicleID, status string) (UpdateVehicleStatusCommand, error) {
	if vehicleID == "" {
		return UpdateVehicleStatusCommand{}, errs.NewValueIsRequiredError("vehicleID")
	}
	if status == "" {
		return UpdateVehicleStatusCommand{}, errs.NewValueIsRequiredError("status")
	}

	return UpdateVehicleStatusCommand{
		vehicleID: vehicleID,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateVehicleStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateVehicleStatusCommandIsNotConstructed)
}

// VehicleID returns the targeted vehicle's identifier.
func (c UpdateVehicleStatusCommand) VehicleID() string {
	return c.vehicleID
}

// Status returns the status label to record.
func (c UpdateVehicleStatusCommand) Status() string {
	return c.status
}
