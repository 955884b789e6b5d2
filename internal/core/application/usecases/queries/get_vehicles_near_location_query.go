package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetVehiclesNearLocationQueryIsNotConstructed = errors.New(
	"GetVehiclesNearLocationQuery must be created via NewGetVehiclesNearLocationQuery constructor",
)

// GetVehiclesNearLocationQuery retrieves vehicles within a radius of a point,
// closest first.
type GetVehiclesNearLocationQuery struct { //nolint:recvcheck //using for validation
	location geo.Point
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewGetVehiclesNearLocationQuery creates a proximity query. Radius must be
// positive.
func NewGetVehiclesNearLocationQuery(location geo.Point, radiusKm float64,
) (GetVehiclesNearLocationQuery, error) {
	if err := location.Validate(); err != nil {
		return GetVehiclesNearLocationQuery{}, err
	}
	if radiusKm <= 0 {
		return GetVehiclesNearLocationQuery{}, errs.NewValueIsInvalidError("radiusKm must be greater than 0")
	}

	return GetVehiclesNearLocationQuery{
		location: location,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetVehiclesNearLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetVehiclesNearLocationQueryIsNotConstructed)
}

// Location returns the query point.
func (q GetVehiclesNearLocationQuery) Location() geo.Point {
	return q.location
}

// RadiusKm returns the search radius in kilometers.
func (q GetVehiclesNearLocationQuery) RadiusKm() float64 {
	return q.radiusKm
}

// NearbyVehicleResponse pairs a vehicle read model with its distance from the
// query point.
type NearbyVehicleResponse struct {
	VehicleResponse
	DistanceKm float64
}
