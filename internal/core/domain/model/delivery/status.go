package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery assignment.
//
// State transitions are monotonic with no reversals:
//
//	Assigned ──> Delivering ──> Completed
//
// Completed is final. Skipping Delivering (Assigned -> Completed) is allowed:
// the dispatcher treats "the driver just handed it over" as completion
// regardless of whether an in-transit update was ever recorded.
type Status int

const (
	// StatusUnknown is the zero value and is invalid.
	StatusUnknown Status = iota

	// Assigned means a vehicle has been bound to the order.
	Assigned

	// Delivering means the vehicle is in transit to the destination.
	Delivering

	// Completed means the delivery reached the customer. Final state.
	Completed
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Assigned:      "assigned",
		Delivering:    "delivering",
		Completed:     "completed",
	}
}

// StatusFromString parses "assigned", "delivering" or "completed".
func StatusFromString(s string) (Status, error) {
	switch s {
	case "assigned":
		return Assigned, nil
	case "delivering":
		return Delivering, nil
	case "completed":
		return Completed, nil
	default:
		return StatusUnknown, errs.NewValueIsInvalidError(fmt.Sprintf("%q is not a valid delivery status", s))
	}
}

// Validate checks the status is one of the three lifecycle states.
func (s Status) Validate() error {
	if s != Assigned && s != Delivering && s != Completed {
		return errs.NewValueIsInvalidError(fmt.Sprintf("%d is not a valid delivery status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether moving from s to next respects the
// monotonic lifecycle. Staying in place is not a transition and is rejected,
// as is any move backwards or out of Completed.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil {
		return false
	}
	return next > s
}

// IsActive reports whether the assignment still needs attention
// (assigned or delivering).
func (s Status) IsActive() bool {
	return s == Assigned || s == Delivering
}
