package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveryInfoQueryIsNotConstructed = errors.New(
	"GetDeliveryInfoQuery must be created via NewGetDeliveryInfoQuery constructor",
)

// GetDeliveryInfoQuery retrieves one order's delivery assignment together
// with the assigned vehicle's live position.
type GetDeliveryInfoQuery struct { //nolint:recvcheck //using for validation
	orderNo int

	guard guard.ConstructorGuard
}

// NewGetDeliveryInfoQuery creates a delivery tracking query.
func NewGetDeliveryInfoQuery(orderNo int) (GetDeliveryInfoQuery, error) {
	if orderNo <= 0 {
		return GetDeliveryInfoQuery{}, errs.NewValueIsInvalidError("orderNo must be greater than 0")
	}

	return GetDeliveryInfoQuery{orderNo: orderNo, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryInfoQueryIsNotConstructed)
}

// OrderNo returns the queried order number.
func (q GetDeliveryInfoQuery) OrderNo() int {
	return q.orderNo
}

// DeliveryInfoResponse is the delivery tracking read model. Vehicle is nil
// when the assigned vehicle has no position on record; RemainingKm and
// ETAMinutes are only meaningful when it is set and the delivery is active.
type DeliveryInfoResponse struct {
	OrderNo     int
	VehicleID   string
	Customer    string
	Status      string
	Destination geo.Point
	AssignedAt  time.Time
	DistanceKm  float64
	CompletedAt *time.Time
	Vehicle     *VehicleResponse
	RemainingKm float64
	ETAMinutes  int
}
