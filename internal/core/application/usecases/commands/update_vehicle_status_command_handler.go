package commands

import (
	"context"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"
)

// UpdateVehicleStatusCommandHandler relabels a vehicle's status by appending
// a fresh observation carrying the new label.
type UpdateVehicleStatusCommandHandler struct {
	vehicles *caches.VehicleCache
}

// NewUpdateVehicleStatusCommandHandler creates a handler for vehicle status
// updates.
func NewUpdateVehicleStatusCommandHandler(vehicles *caches.VehicleCache,
) (UpdateVehicleStatusCommandHandler, error) {
	if vehicles == nil {
		return UpdateVehicleStatusCommandHandler{}, errs.NewValueIsRequiredError("vehicles")
	}
	return UpdateVehicleStatusCommandHandler{vehicles: vehicles}, nil
}

// Handle processes the status update. A vehicle that never reported a
// position fails with an ObjectNotFoundError.
func (h *UpdateVehicleStatusCommandHandler) Handle(ctx context.Context,
	cmd UpdateVehicleStatusCommand,
) (vehicle.Vehicle, error) {
	if err := cmd.Validate(); err != nil {
		return vehicle.Vehicle{}, err
	}

	return h.vehicles.UpdateStatus(ctx, cmd.VehicleID(), cmd.Status())
}
