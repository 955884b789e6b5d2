package queries

import (
	"context"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/pkg/errs"
)

// GetVehiclesNearLocationQueryHandler runs proximity searches over the
// vehicle cache.
type GetVehiclesNearLocationQueryHandler struct {
	vehicles *caches.VehicleCache
}

// NewGetVehiclesNearLocationQueryHandler creates a handler for proximity
// queries.
func NewGetVehiclesNearLocationQueryHandler(vehicles *caches.VehicleCache,
) (GetVehiclesNearLocationQueryHandler, error) {
	if vehicles == nil {
		return GetVehiclesNearLocationQueryHandler{}, errs.NewValueIsRequiredError("vehicles")
	}
	return GetVehiclesNearLocationQueryHandler{vehicles: vehicles}, nil
}

// Handle executes the query, returning matches closest first.
func (h GetVehiclesNearLocationQueryHandler) Handle(ctx context.Context,
	query GetVehiclesNearLocationQuery,
) ([]NearbyVehicleResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	near, err := h.vehicles.NearLocation(ctx, query.Location(), query.RadiusKm())
	if err != nil {
		return nil, err
	}

	responses := make([]NearbyVehicleResponse, 0, len(near))
	for _, vd := range near {
		responses = append(responses, NearbyVehicleResponse{
			VehicleResponse: toVehicleResponse(vd.Vehicle),
			DistanceKm:      vd.DistanceKm,
		})
	}
	return responses, nil
}
