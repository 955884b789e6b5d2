package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrOptimizeRouteQueryIsNotConstructed = errors.New(
	"OptimizeRouteQuery must be created via NewOptimizeRouteQuery constructor",
)

// OptimizeRouteQuery requests a visiting order for a set of delivery stops
// starting from a given point.
type OptimizeRouteQuery struct { //nolint:recvcheck //using for validation
	start        geo.Point
	destinations []geo.Point

	guard guard.ConstructorGuard
}

// NewOptimizeRouteQuery creates a query for route planning.
func NewOptimizeRouteQuery(start geo.Point, destinations []geo.Point) (OptimizeRouteQuery, error) {
	if err := start.Validate(); err != nil {
		return OptimizeRouteQuery{}, errs.NewValueIsInvalidErrorWithCause("start", err)
	}
	if len(destinations) == 0 {
		return OptimizeRouteQuery{}, errs.NewValueIsRequiredError("destinations")
	}
	for _, destination := range destinations {
		if err := destination.Validate(); err != nil {
			return OptimizeRouteQuery{}, errs.NewValueIsInvalidErrorWithCause("destinations", err)
		}
	}

	return OptimizeRouteQuery{
		start:        start,
		destinations: destinations,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the query was built through the constructor.
func (q OptimizeRouteQuery) Validate() error {
	return q.guard.Validate(ErrOptimizeRouteQueryIsNotConstructed)
}

// Start returns the route's starting point.
func (q OptimizeRouteQuery) Start() geo.Point {
	return q.start
}

// Destinations returns the stops to visit.
func (q OptimizeRouteQuery) Destinations() []geo.Point {
	return q.destinations
}
