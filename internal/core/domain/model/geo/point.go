package geo

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the Haversine formula.
	EarthRadiusKm = 6371.0

	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// ErrPointIsNotConstructed is returned when attempting to use a Point that
// was not created through NewPoint.
var ErrPointIsNotConstructed = errs.NewValueIsRequiredError(
	"point must be created via NewPoint constructor")

// Point is a position on the Earth's surface expressed as latitude and
// longitude in decimal degrees. Point is an immutable value object; use
// NewPoint to create valid instances.
//
// Example:
//
//	warehouse, err := geo.NewPoint(13.7563, 100.5018)
//	if err != nil {
//	    // out-of-range coordinates
//	}
type Point struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewPoint creates a Point with the given coordinates in decimal degrees.
// Returns a validation error if either coordinate is out of range or not a
// finite number.
func NewPoint(lat, lng float64) (Point, error) {
	p := Point{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return Point{}, err
	}

	return p, nil
}

// Validate checks that the Point was created through NewPoint.
// The zero value fails with ErrPointIsNotConstructed.
func (p Point) Validate() error {
	return p.guard.Validate(ErrPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p Point) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in decimal degrees.
func (p Point) Lng() float64 {
	return p.lng
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("Point(%.6f,%.6f)", p.lat, p.lng)
}

// IsEqual compares two points coordinate-wise.
// Both points must be properly constructed.
func (p Point) IsEqual(other Point) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return p == other, nil
}

// DistanceTo returns the great-circle distance to other in kilometers,
// computed with the Haversine formula over a spherical Earth of radius
// EarthRadiusKm. Both points must be properly constructed.
func (p Point) DistanceTo(other Point) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return haversine(p.lat, p.lng, other.lat, other.lng), nil
}

// Distance is the raw Haversine great-circle distance in kilometers between
// two coordinate pairs in decimal degrees. Exposed for callers that work with
// already-validated coordinates coming straight out of the position log.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	return haversine(lat1, lng1, lat2, lng2)
}

func haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

func (p *Point) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < minLatitude || lat > maxLatitude {
		return errs.NewValueIsInvalidError(fmt.Sprintf("latitude %v is out of range [%v, %v]", lat, minLatitude, maxLatitude))
	}

	p.lat = lat
	return nil
}

func (p *Point) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < minLongitude || lng > maxLongitude {
		return errs.NewValueIsInvalidError(fmt.Sprintf("longitude %v is out of range [%v, %v]", lng, minLongitude, maxLongitude))
	}

	p.lng = lng
	return nil
}
