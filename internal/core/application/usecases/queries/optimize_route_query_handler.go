package queries

import (
	"context"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/services"
)

// RouteStopResponse is one leg of a planned route.
type RouteStopResponse struct {
	Point geo.Point
	LegKm float64
}

// OptimizedRouteResponse is the planned visiting order with a total distance
// and a driving time estimate.
type OptimizedRouteResponse struct {
	Stops      []RouteStopResponse
	TotalKm    float64
	ETAMinutes int
}

// OptimizeRouteQueryHandler plans delivery routes with a nearest-neighbour
// heuristic.
type OptimizeRouteQueryHandler struct {
	optimizer services.RouteOptimizer
}

// NewOptimizeRouteQueryHandler creates a handler for route planning queries.
func NewOptimizeRouteQueryHandler(optimizer services.RouteOptimizer) (OptimizeRouteQueryHandler, error) {
	return OptimizeRouteQueryHandler{optimizer: optimizer}, nil
}

// Handle executes the query.
func (h OptimizeRouteQueryHandler) Handle(_ context.Context, query OptimizeRouteQuery,
) (OptimizedRouteResponse, error) {
	if err := query.Validate(); err != nil {
		return OptimizedRouteResponse{}, err
	}

	stops, err := h.optimizer.OptimizeRoute(query.Start(), query.Destinations())
	if err != nil {
		return OptimizedRouteResponse{}, err
	}

	response := OptimizedRouteResponse{Stops: make([]RouteStopResponse, 0, len(stops))}
	for _, stop := range stops {
		response.Stops = append(response.Stops, RouteStopResponse{Point: stop.Point, LegKm: stop.LegKm})
		response.TotalKm += stop.LegKm
	}
	response.ETAMinutes = services.EstimateETAMinutes(response.TotalKm)

	return response, nil
}
