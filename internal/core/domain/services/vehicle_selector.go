package services

import (
	"math"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"
)

// ErrNoVehicleAvailable is returned when no vehicle in the fleet is idle.
// The transport layer attaches a human-readable suggestion when presenting it.
var ErrNoVehicleAvailable = errs.NewObjectNotFoundError("vehicle", "no idle vehicle available")

// NoVehicleSuggestion is the operator-facing hint accompanying
// ErrNoVehicleAvailable.
const NoVehicleSuggestion = "please wait for a vehicle to become idle or assign manually"

// Selection is the outcome of nearest-vehicle selection.
type Selection struct {
	Vehicle    vehicle.Vehicle
	DistanceKm float64
}

// VehicleSelector picks the vehicle for a new delivery: among vehicles whose
// last observed speed is below the idle threshold, the one closest (by
// great-circle distance) to the destination. Ties are broken by the
// first-encountered vehicle in input order.
type VehicleSelector struct {
	idleSpeedThresholdKmh float64
}

// NewVehicleSelector creates a selector with the given idle-speed threshold
// in km/h. A vehicle moving at or above the threshold is considered busy.
func NewVehicleSelector(idleSpeedThresholdKmh float64) VehicleSelector {
	return VehicleSelector{idleSpeedThresholdKmh: idleSpeedThresholdKmh}
}

// SelectNearest returns the nearest idle vehicle to destination.
// Fails with ErrNoVehicleAvailable when the idle set is empty.
func (s VehicleSelector) SelectNearest(destination geo.Point, vehicles []vehicle.Vehicle) (Selection, error) {
	if err := destination.Validate(); err != nil {
		return Selection{}, err
	}

	var (
		best        vehicle.Vehicle
		bestFound   bool
		minDistance = math.MaxFloat64
	)

	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return Selection{}, err
		}

		if !v.IsIdle(s.idleSpeedThresholdKmh) {
			continue
		}

		d, err := v.DistanceTo(destination)
		if err != nil {
			return Selection{}, err
		}

		if d < minDistance {
			minDistance = d
			best = v
			bestFound = true
		}
	}

	if !bestFound {
		return Selection{}, ErrNoVehicleAvailable
	}

	return Selection{Vehicle: best, DistanceKm: minDistance}, nil
}

// averageDeliverySpeedKmh is the fixed average-speed assumption behind ETA
// estimates. The source system used a flat 40 km/h regardless of live traffic
// or the vehicle's own speed; that policy is kept deliberately.
const averageDeliverySpeedKmh = 40.0

// EstimateETAMinutes converts an assignment distance into a rough ETA:
// ceil(distance / 40 km/h * 60) minutes.
func EstimateETAMinutes(distanceKm float64) int {
	return int(math.Ceil(distanceKm / averageDeliverySpeedKmh * 60))
}
