package queries

import (
	"context"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GetActiveDeliveriesQueryHandler lists all deliveries still in flight with
// each vehicle's latest observation attached.
type GetActiveDeliveriesQueryHandler struct {
	assignments ports.AssignmentRepository
	vehicles    *caches.VehicleCache
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery
// queries.
func NewGetActiveDeliveriesQueryHandler(assignments ports.AssignmentRepository,
	vehicles *caches.VehicleCache,
) (GetActiveDeliveriesQueryHandler, error) {
	if assignments == nil {
		return GetActiveDeliveriesQueryHandler{}, errs.NewValueIsRequiredError("assignments")
	}
	if vehicles == nil {
		return GetActiveDeliveriesQueryHandler{}, errs.NewValueIsRequiredError("vehicles")
	}

	return GetActiveDeliveriesQueryHandler{assignments: assignments, vehicles: vehicles}, nil
}

// Handle executes the query.
func (h GetActiveDeliveriesQueryHandler) Handle(ctx context.Context, _ GetActiveDeliveriesQuery,
) ([]DeliveryInfoResponse, error) {
	assignments, err := h.assignments.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	joiner := GetDeliveryInfoQueryHandler{assignments: h.assignments, vehicles: h.vehicles}

	responses := make([]DeliveryInfoResponse, 0, len(assignments))
	for _, assignment := range assignments {
		response, err := joiner.buildResponse(ctx, assignment)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, nil
}
