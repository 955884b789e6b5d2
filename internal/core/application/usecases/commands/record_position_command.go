package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRecordPositionCommandIsNotConstructed = errors.New(
	"RecordPositionCommand must be created via NewRecordPositionCommand constructor",
)

// RecordPositionCommand represents one GPS report from a vehicle tracker.
type RecordPositionCommand struct { //nolint:recvcheck //using for validation
	vehicleID  string
	position   geo.Point
	speedKmh   float64
	headingDeg float64
	driver     string
	status     string
	reportedAt time.Time

	guard guard.ConstructorGuard
}

// NewRecordPositionCommand creates a position report command. A zero
// reportedAt means the report carries no timestamp and the current time is
// used.
func NewRecordPositionCommand(vehicleID string, position geo.Point,
	speedKmh, headingDeg float64, driver, status string, reportedAt time.Time,
) (RecordPositionCommand, error) {
	if vehicleID == "" {
		return RecordPositionCommand{}, errs.NewValueIsRequiredError("vehicleID")
	}
	if err := position.Validate(); err != nil {
		return RecordPositionCommand{}, err
	}
	if speedKmh < 0 {
		return RecordPositionCommand{}, errs.NewValueIsInvalidError("speed cannot be negative")
	}
	if reportedAt.IsZero() {
		reportedAt = time.Now()
	}

	return RecordPositionCommand{
		vehicleID:  vehicleID,
		position:   position,
		speedKmh:   speedKmh,
		headingDeg: headingDeg,
		driver:     driver,
		status:     status,
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPositionCommand) Validate() error {
	return c.guard.Validate(ErrRecordPositionCommandIsNotConstructed)
}

// VehicleID returns the reporting vehicle's identifier.
func (c RecordPositionCommand) VehicleID() string {
	return c.vehicleID
}

// Position returns the reported position.
func (c RecordPositionCommand) Position() geo.Point {
	return c.position
}

// SpeedKmh returns the reported speed in km/h.
func (c RecordPositionCommand) SpeedKmh() float64 {
	return c.speedKmh
}

// HeadingDeg returns the reported heading in degrees.
func (c RecordPositionCommand) HeadingDeg() float64 {
	return c.headingDeg
}

// Driver returns the reported driver name, if any.
func (c RecordPositionCommand) Driver() string {
	return c.driver
}

// Status returns the reported status label, if any.
func (c RecordPositionCommand) Status() string {
	return c.status
}

// ReportedAt returns the observation timestamp.
func (c RecordPositionCommand) ReportedAt() time.Time {
	return c.reportedAt
}
