package commands

import (
	"context"
	"time"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler advances a delivery's status. Completing
// a delivery stamps the completion time and reports the vehicle idle again.
type UpdateDeliveryStatusCommandHandler struct {
	assignments ports.AssignmentRepository
	vehicles    *caches.VehicleCache
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for delivery status
// updates.
func NewUpdateDeliveryStatusCommandHandler(assignments ports.AssignmentRepository,
	vehicles *caches.VehicleCache,
) (UpdateDeliveryStatusCommandHandler, error) {
	if assignments == nil {
		return UpdateDeliveryStatusCommandHandler{}, errs.NewValueIsRequiredError("assignments")
	}
	if vehicles == nil {
		return UpdateDeliveryStatusCommandHandler{}, errs.NewValueIsRequiredError("vehicles")
	}

	return UpdateDeliveryStatusCommandHandler{assignments: assignments, vehicles: vehicles}, nil
}

// Handle processes the status update. Transitions only move forward; anything
// else fails with a conflict.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
) (*delivery.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	assignment, err := h.assignments.GetByOrderNo(ctx, cmd.OrderNo())
	if err != nil {
		return nil, err
	}

	if err := assignment.Transition(cmd.Status(), time.Now()); err != nil {
		return nil, err
	}

	if err := h.assignments.Update(ctx, assignment); err != nil {
		return nil, err
	}

	if cmd.Status() == delivery.Completed {
		// The vehicle may never have reported a position; completion still
		// stands in that case.
		if _, err := h.vehicles.UpdateStatus(ctx, assignment.VehicleID(), vehicle.DefaultStatus); err != nil &&
			!isNotFound(err) {
			return nil, err
		}
	}

	return assignment, nil
}
