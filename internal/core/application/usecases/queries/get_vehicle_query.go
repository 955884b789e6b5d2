package queries

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetVehicleQueryIsNotConstructed = errors.New(
	"GetVehicleQuery must be created via NewGetVehicleQuery constructor",
)

// GetVehicleQuery retrieves one vehicle's latest observation.
type GetVehicleQuery struct { //nolint:recvcheck //using for validation
	vehicleID string

	guard guard.ConstructorGuard
}

// NewGetVehicleQuery creates a query for a single vehicle.
func NewGetVehicleQuery(vehicleID string) (GetVehicleQuery, error) {
	if vehicleID == "" {
		return GetVehicleQuery{}, errs.NewValueIsRequiredError("vehicleID")
	}

	return GetVehicleQuery{vehicleID: vehicleID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetVehicleQuery) Validate() error {
	return q.guard.Validate(ErrGetVehicleQueryIsNotConstructed)
}

// VehicleID returns the queried vehicle's identifier.
func (q GetVehicleQuery) VehicleID() string {
	return q.vehicleID
}
