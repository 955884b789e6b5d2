package queries

import (
	"context"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/pkg/errs"
)

// GetVehicleQueryHandler reads one vehicle from the vehicle cache.
type GetVehicleQueryHandler struct {
	vehicles *caches.VehicleCache
}

// NewGetVehicleQueryHandler creates a handler for single-vehicle queries.
func NewGetVehicleQueryHandler(vehicles *caches.VehicleCache) (GetVehicleQueryHandler, error) {
	if vehicles == nil {
		return GetVehicleQueryHandler{}, errs.NewValueIsRequiredError("vehicles")
	}
	return GetVehicleQueryHandler{vehicles: vehicles}, nil
}

// Handle executes the query. A vehicle that never reported a position fails
// with an ObjectNotFoundError.
func (h GetVehicleQueryHandler) Handle(ctx context.Context, query GetVehicleQuery,
) (VehicleResponse, error) {
	if err := query.Validate(); err != nil {
		return VehicleResponse{}, err
	}

	v, err := h.vehicles.GetLatest(ctx, query.VehicleID())
	if err != nil {
		return VehicleResponse{}, err
	}
	return toVehicleResponse(v), nil
}
