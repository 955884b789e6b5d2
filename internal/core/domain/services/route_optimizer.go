package services

import (
	"math"

	"dispatch/internal/core/domain/model/geo"
)

// DistanceFunc measures the distance between two points in kilometers.
// RouteOptimizer is parameterized over it so an alternative metric (road
// network distance, a better heuristic's lower bound) can be substituted
// without touching callers.
type DistanceFunc func(a, b geo.Point) float64

// HaversineDistance is the default DistanceFunc: great-circle distance.
func HaversineDistance(a, b geo.Point) float64 {
	return geo.Distance(a.Lat(), a.Lng(), b.Lat(), b.Lng())
}

// Stop is one visited destination in an optimized route, annotated with the
// distance traveled from the previous position.
type Stop struct {
	Point geo.Point
	LegKm float64
}

// RouteOptimizer sequences multi-stop deliveries with a greedy
// nearest-neighbor heuristic. The result is O(n^2) to compute and is NOT
// guaranteed optimal; it is an accepted heuristic, not a shortest-route
// guarantee.
type RouteOptimizer struct {
	distance DistanceFunc
}

// NewRouteOptimizer creates an optimizer using great-circle distance.
func NewRouteOptimizer() RouteOptimizer {
	return RouteOptimizer{distance: HaversineDistance}
}

// NewRouteOptimizerWithDistance creates an optimizer using a custom metric.
func NewRouteOptimizerWithDistance(distance DistanceFunc) RouteOptimizer {
	return RouteOptimizer{distance: distance}
}

// OptimizeRoute orders destinations by repeatedly visiting the nearest
// unvisited one, starting from start. Ties go to the first-encountered
// destination in input order. Zero destinations yield an empty route; a
// single destination is returned as-is with no leg distance computed.
func (o RouteOptimizer) OptimizeRoute(start geo.Point, destinations []geo.Point) ([]Stop, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	for _, d := range destinations {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}

	if len(destinations) == 0 {
		return []Stop{}, nil
	}
	if len(destinations) == 1 {
		return []Stop{{Point: destinations[0]}}, nil
	}

	route := make([]Stop, 0, len(destinations))
	unvisited := make([]geo.Point, len(destinations))
	copy(unvisited, destinations)
	current := start

	for len(unvisited) > 0 {
		nearestIdx := -1
		minDistance := math.MaxFloat64

		for idx, dest := range unvisited {
			if d := o.distance(current, dest); d < minDistance {
				minDistance = d
				nearestIdx = idx
			}
		}

		nearest := unvisited[nearestIdx]
		route = append(route, Stop{Point: nearest, LegKm: minDistance})
		unvisited = append(unvisited[:nearestIdx], unvisited[nearestIdx+1:]...)
		current = nearest
	}

	return route, nil
}

// RouteDistance sums consecutive pairwise distances along an ordered
// sequence of points.
func (o RouteOptimizer) RouteDistance(points []geo.Point) (float64, error) {
	for _, p := range points {
		if err := p.Validate(); err != nil {
			return 0, err
		}
	}

	var total float64
	for i := 0; i < len(points)-1; i++ {
		total += o.distance(points[i], points[i+1])
	}
	return total, nil
}
