// Package queries contains the read operations: fleet state, proximity
// search, and delivery tracking. Queries return flat read models assembled
// from the vehicle cache and the assignment repository.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllVehiclesQueryIsNotConstructed = errors.New(
	"GetAllVehiclesQuery must be created via NewGetAllVehiclesQuery constructor",
)

// GetAllVehiclesQuery retrieves the latest known state of every vehicle.
type GetAllVehiclesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllVehiclesQuery creates a query for the whole fleet.
func NewGetAllVehiclesQuery() GetAllVehiclesQuery {
	return GetAllVehiclesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllVehiclesQueryIsNotConstructed)
}

// VehicleResponse is the fleet read model: one vehicle's latest observation.
type VehicleResponse struct {
	VehicleID  string
	Position   geo.Point
	SpeedKmh   float64
	HeadingDeg float64
	Driver     string
	Status     string
	ObservedAt time.Time
}
