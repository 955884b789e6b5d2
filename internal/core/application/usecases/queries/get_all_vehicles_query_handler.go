package queries

import (
	"context"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"
)

// GetAllVehiclesQueryHandler reads the fleet snapshot from the vehicle cache.
type GetAllVehiclesQueryHandler struct {
	vehicles *caches.VehicleCache
}

// NewGetAllVehiclesQueryHandler creates a handler for fleet queries.
func NewGetAllVehiclesQueryHandler(vehicles *caches.VehicleCache) (GetAllVehiclesQueryHandler, error) {
	if vehicles == nil {
		return GetAllVehiclesQueryHandler{}, errs.NewValueIsRequiredError("vehicles")
	}
	return GetAllVehiclesQueryHandler{vehicles: vehicles}, nil
}

// Handle executes the query, returning vehicles sorted by identifier.
func (h GetAllVehiclesQueryHandler) Handle(ctx context.Context, query GetAllVehiclesQuery,
) ([]VehicleResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	fleet, err := h.vehicles.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]VehicleResponse, 0, len(fleet))
	for _, v := range fleet {
		responses = append(responses, toVehicleResponse(v))
	}
	return responses, nil
}

func toVehicleResponse(v vehicle.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:  v.ID(),
		Position:   v.Position(),
		SpeedKmh:   v.SpeedKmh(),
		HeadingDeg: v.HeadingDeg(),
		Driver:     v.Driver(),
		Status:     v.Status(),
		ObservedAt: v.ObservedAt(),
	}
}
