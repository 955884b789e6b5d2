package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GetDeliveryInfoQueryHandler joins an assignment with the assigned vehicle's
// latest observation.
type GetDeliveryInfoQueryHandler struct {
	assignments ports.AssignmentRepository
	vehicles    *caches.VehicleCache
}

// NewGetDeliveryInfoQueryHandler creates a handler for delivery tracking
// queries.
func NewGetDeliveryInfoQueryHandler(assignments ports.AssignmentRepository,
	vehicles *caches.VehicleCache,
) (GetDeliveryInfoQueryHandler, error) {
	if assignments == nil {
		return GetDeliveryInfoQueryHandler{}, errs.NewValueIsRequiredError("assignments")
	}
	if vehicles == nil {
		return GetDeliveryInfoQueryHandler{}, errs.NewValueIsRequiredError("vehicles")
	}

	return GetDeliveryInfoQueryHandler{assignments: assignments, vehicles: vehicles}, nil
}

// Handle executes the query.
func (h GetDeliveryInfoQueryHandler) Handle(ctx context.Context, query GetDeliveryInfoQuery,
) (DeliveryInfoResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryInfoResponse{}, err
	}

	assignment, err := h.assignments.GetByOrderNo(ctx, query.OrderNo())
	if err != nil {
		return DeliveryInfoResponse{}, err
	}

	return h.buildResponse(ctx, assignment)
}

func (h GetDeliveryInfoQueryHandler) buildResponse(ctx context.Context,
	assignment *delivery.Assignment,
) (DeliveryInfoResponse, error) {
	response := DeliveryInfoResponse{
		OrderNo:     assignment.OrderNo(),
		VehicleID:   assignment.VehicleID(),
		Customer:    assignment.Customer(),
		Status:      assignment.Status().String(),
		Destination: assignment.Destination(),
		AssignedAt:  assignment.AssignedAt(),
		DistanceKm:  assignment.DistanceKm(),
		CompletedAt: assignment.CompletedAt(),
	}

	v, err := h.vehicles.GetLatest(ctx, assignment.VehicleID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return response, nil
		}
		return DeliveryInfoResponse{}, err
	}

	vr := toVehicleResponse(v)
	response.Vehicle = &vr

	if assignment.Status().IsActive() {
		remaining, err := v.DistanceTo(assignment.Destination())
		if err != nil {
			return DeliveryInfoResponse{}, err
		}
		response.RemainingKm = remaining
		response.ETAMinutes = services.EstimateETAMinutes(remaining)
	}

	return response, nil
}
