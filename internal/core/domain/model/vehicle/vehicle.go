// Package vehicle models delivery vehicles as seen through the GPS position
// log. A logical vehicle may have many historical observations; only the most
// recent one (by observation timestamp) is authoritative, and that is what a
// Vehicle value represents.
package vehicle

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultStatus is the status label used when an observation carries none.
const DefaultStatus = "idle"

// ErrVehicleIsNotConstructed is returned when a Vehicle was not created
// through NewVehicle.
var ErrVehicleIsNotConstructed = errs.NewValueIsRequiredError(
	"vehicle must be created via NewVehicle constructor")

// Vehicle is the latest known state of one delivery vehicle: its position,
// speed and heading at the observation time, plus driver and status labels.
type Vehicle struct { //nolint:recvcheck //using for validation
	id         string
	position   geo.Point
	speedKmh   float64
	headingDeg float64
	driver     string
	status     string
	observedAt time.Time

	guard guard.ConstructorGuard
}

// NewVehicle creates a vehicle observation. ID must be non-empty and the
// position must be a constructed point; speed must not be negative. A blank
// status defaults to DefaultStatus.
func NewVehicle(id string, position geo.Point, speedKmh, headingDeg float64,
	driver, status string, observedAt time.Time,
) (Vehicle, error) {
	if id == "" {
		return Vehicle{}, errs.NewValueIsRequiredError("vehicle id")
	}
	if err := position.Validate(); err != nil {
		return Vehicle{}, err
	}
	if speedKmh < 0 {
		return Vehicle{}, errs.NewValueIsInvalidError("speed cannot be negative")
	}
	if status == "" {
		status = DefaultStatus
	}

	return Vehicle{
		id:         id,
		position:   position,
		speedKmh:   speedKmh,
		headingDeg: headingDeg,
		driver:     driver,
		status:     status,
		observedAt: observedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Vehicle was created through NewVehicle.
func (v Vehicle) Validate() error {
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// ID returns the vehicle identifier.
func (v Vehicle) ID() string {
	return v.id
}

// Position returns the last observed position.
func (v Vehicle) Position() geo.Point {
	return v.position
}

// SpeedKmh returns the last observed speed in km/h.
func (v Vehicle) SpeedKmh() float64 {
	return v.speedKmh
}

// HeadingDeg returns the last observed heading in degrees.
func (v Vehicle) HeadingDeg() float64 {
	return v.headingDeg
}

// Driver returns the driver name label.
func (v Vehicle) Driver() string {
	return v.driver
}

// Status returns the status label.
func (v Vehicle) Status() string {
	return v.status
}

// ObservedAt returns the observation timestamp.
func (v Vehicle) ObservedAt() time.Time {
	return v.observedAt
}

// IsIdle reports whether the vehicle counts as available for a new
// assignment: its last observed speed is below the idle threshold.
func (v Vehicle) IsIdle(idleSpeedThresholdKmh float64) bool {
	return v.speedKmh < idleSpeedThresholdKmh
}

// IsNewerThan reports whether this observation is more recent than other.
func (v Vehicle) IsNewerThan(other Vehicle) bool {
	return v.observedAt.After(other.observedAt)
}

// DistanceTo returns the great-circle distance from the vehicle's last known
// position to the given point, in kilometers.
func (v Vehicle) DistanceTo(p geo.Point) (float64, error) {
	if err := errors.Join(v.Validate(), p.Validate()); err != nil {
		return 0, err
	}
	return v.position.DistanceTo(p)
}

// WithStatus returns a new observation of the vehicle carrying the new status
// label, stamped at observedAt. The stamp must move time forward so the new
// observation supersedes the one it was derived from on a log reload.
// History is not rewritten: re-recording the copy appends a new observation.
func (v Vehicle) WithStatus(status string, observedAt time.Time) (Vehicle, error) {
	if err := v.Validate(); err != nil {
		return Vehicle{}, err
	}
	if status == "" {
		return Vehicle{}, errs.NewValueIsRequiredError("status")
	}
	if observedAt.Before(v.observedAt) {
		return Vehicle{}, errs.NewValueIsInvalidError("observedAt cannot move backwards")
	}

	updated := v
	updated.status = status
	updated.observedAt = observedAt
	return updated, nil
}
