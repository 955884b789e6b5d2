// Package delivery models the binding between a committed order and the
// vehicle delivering it. There is at most one assignment per order; its
// status only moves forward (assigned -> delivering -> completed) and the
// completion timestamp is stamped exactly once.
package delivery

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment was not
// created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errs.NewValueIsRequiredError(
	"assignment must be created via NewAssignment constructor")

// Assignment binds an order to a vehicle for delivery.
type Assignment struct {
	orderNo     int
	vehicleID   string
	customer    string
	assignedAt  time.Time
	status      Status
	destination geo.Point
	distanceKm  float64
	completedAt *time.Time

	isConstructed bool
}

// NewAssignment creates a fresh assignment in Assigned status, recording the
// destination and the vehicle-to-destination distance at assignment time.
func NewAssignment(orderNo int, vehicleID, customer string, destination geo.Point,
	distanceKm float64, assignedAt time.Time,
) (*Assignment, error) {
	if orderNo <= 0 {
		return nil, errs.NewValueIsInvalidError(fmt.Sprintf("order number %d must be positive", orderNo))
	}
	if vehicleID == "" {
		return nil, errs.NewValueIsRequiredError("vehicle id")
	}
	if err := destination.Validate(); err != nil {
		return nil, err
	}
	if distanceKm < 0 {
		return nil, errs.NewValueIsInvalidError("distance cannot be negative")
	}

	return &Assignment{
		orderNo:       orderNo,
		vehicleID:     vehicleID,
		customer:      customer,
		assignedAt:    assignedAt,
		status:        Assigned,
		destination:   destination,
		distanceKm:    distanceKm,
		isConstructed: true,
	}, nil
}

// RestoreAssignment reconstructs an assignment from persistence, including
// its current status and completion timestamp.
func RestoreAssignment(orderNo int, vehicleID, customer string, destination geo.Point,
	distanceKm float64, assignedAt time.Time, status Status, completedAt *time.Time,
) (*Assignment, error) {
	a, err := NewAssignment(orderNo, vehicleID, customer, destination, distanceKm, assignedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	a.status = status
	a.completedAt = completedAt
	return a, nil
}

// Validate ensures the Assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// OrderNo returns the order number this assignment belongs to.
func (a *Assignment) OrderNo() int {
	return a.orderNo
}

// VehicleID returns the assigned vehicle.
func (a *Assignment) VehicleID() string {
	return a.vehicleID
}

// Customer returns the customer label.
func (a *Assignment) Customer() string {
	return a.customer
}

// AssignedAt returns the assignment timestamp.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// Status returns the current lifecycle state.
func (a *Assignment) Status() Status {
	return a.status
}

// Destination returns the delivery destination.
func (a *Assignment) Destination() geo.Point {
	return a.destination
}

// DistanceKm returns the vehicle-to-destination distance recorded at
// assignment time.
func (a *Assignment) DistanceKm() float64 {
	return a.distanceKm
}

// CompletedAt returns the completion timestamp, or nil while the delivery is
// still active. Once set it is never re-stamped.
func (a *Assignment) CompletedAt() *time.Time {
	return a.completedAt
}

// Transition moves the assignment to the next lifecycle state. Transitions
// only move forward; on the transition to Completed, the completion timestamp
// is stamped with now (exactly once).
func (a *Assignment) Transition(next Status, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if !a.status.CanTransitionTo(next) {
		return errs.NewConflictError(
			fmt.Sprintf("cannot transition delivery from %s to %s", a.status, next))
	}

	a.status = next
	if next == Completed && a.completedAt == nil {
		stamped := now
		a.completedAt = &stamped
	}
	return nil
}
