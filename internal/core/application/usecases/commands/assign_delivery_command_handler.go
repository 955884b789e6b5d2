package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// DispatchResult reports a dispatched delivery.
type DispatchResult struct {
	OrderNo    int
	VehicleID  string
	Driver     string
	DistanceKm float64
	ETAMinutes int
}

// AssignDeliveryCommandHandler dispatches the nearest idle vehicle to an
// order's destination and records the assignment. An order with an active
// assignment cannot be dispatched again.
type AssignDeliveryCommandHandler struct {
	vehicles    *caches.VehicleCache
	assignments ports.AssignmentRepository
	selector    services.VehicleSelector
}

// NewAssignDeliveryCommandHandler creates a handler for delivery dispatch.
func NewAssignDeliveryCommandHandler(vehicles *caches.VehicleCache,
	assignments ports.AssignmentRepository, selector services.VehicleSelector,
) (AssignDeliveryCommandHandler, error) {
	if vehicles == nil {
		return AssignDeliveryCommandHandler{}, errs.NewValueIsRequiredError("vehicles")
	}
	if assignments == nil {
		return AssignDeliveryCommandHandler{}, errs.NewValueIsRequiredError("assignments")
	}

	return AssignDeliveryCommandHandler{
		vehicles:    vehicles,
		assignments: assignments,
		selector:    selector,
	}, nil
}

// Handle processes the dispatch command.
func (h *AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand,
) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	existing, err := h.assignments.GetByOrderNo(ctx, cmd.OrderNo())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return DispatchResult{}, err
	}
	if existing != nil && existing.Status().IsActive() {
		return DispatchResult{}, errs.NewConflictError("order already has an active delivery")
	}

	fleet, err := h.vehicles.GetAll(ctx)
	if err != nil {
		return DispatchResult{}, err
	}

	selection, err := h.selector.SelectNearest(cmd.Destination(), fleet)
	if err != nil {
		return DispatchResult{}, err
	}

	assignment, err := delivery.NewAssignment(cmd.OrderNo(), selection.Vehicle.ID(),
		cmd.Customer(), cmd.Destination(), selection.DistanceKm, time.Now())
	if err != nil {
		return DispatchResult{}, err
	}

	if err := h.assignments.Add(ctx, assignment); err != nil {
		return DispatchResult{}, err
	}

	return DispatchResult{
		OrderNo:    cmd.OrderNo(),
		VehicleID:  selection.Vehicle.ID(),
		Driver:     selection.Vehicle.Driver(),
		DistanceKm: selection.DistanceKm,
		ETAMinutes: services.EstimateETAMinutes(selection.DistanceKm),
	}, nil
}
