package caches

import (
	"context"
	"sort"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// DefaultVehicleTTL is how long a cached vehicle snapshot stays fresh before
// the next read goes back to the position log.
const DefaultVehicleTTL = 30 * time.Second

// VehicleCache keeps the latest observation per vehicle on top of the
// append-only position log. Reads within the TTL window are served from
// memory; recording a new observation writes through to the log and updates
// the snapshot immediately, so a vehicle's own update is visible to the next
// read regardless of TTL.
type VehicleCache struct {
	positions ports.PositionRepository
	ttl       time.Duration

	mu       sync.Mutex
	latest   map[string]vehicle.Vehicle
	loadedAt time.Time
}

// NewVehicleCache creates a cache over the given position log. A zero or
// negative ttl disables caching: every read reloads the log.
func NewVehicleCache(positions ports.PositionRepository, ttl time.Duration) (*VehicleCache, error) {
	if positions == nil {
		return nil, errs.NewValueIsRequiredError("positions")
	}

	return &VehicleCache{
		positions: positions,
		ttl:       ttl,
		latest:    make(map[string]vehicle.Vehicle),
	}, nil
}

// GetAll returns the latest observation for every known vehicle, reloading
// the log when the snapshot is stale.
func (c *VehicleCache) GetAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refreshLocked(ctx); err != nil {
		return nil, err
	}

	all := make([]vehicle.Vehicle, 0, len(c.latest))
	for _, v := range c.latest {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })
	return all, nil
}

// GetLatest returns the latest observation for one vehicle, reloading the log
// when the snapshot is stale. Returns ObjectNotFoundError when the vehicle
// has never reported a position.
func (c *VehicleCache) GetLatest(ctx context.Context, vehicleID string) (vehicle.Vehicle, error) {
	if vehicleID == "" {
		return vehicle.Vehicle{}, errs.NewValueIsRequiredError("vehicleID")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.refreshLocked(ctx); err != nil {
		return vehicle.Vehicle{}, err
	}

	v, ok := c.latest[vehicleID]
	if !ok {
		return vehicle.Vehicle{}, errs.NewObjectNotFoundError("vehicleID", vehicleID)
	}
	return v, nil
}

// Record appends an observation to the position log and replaces the snapshot
// entry for that vehicle. The replacement is unconditional: a freshly recorded
// observation is the latest by definition, whatever timestamp it carries.
func (c *VehicleCache) Record(ctx context.Context, observation vehicle.Vehicle) error {
	if err := observation.Validate(); err != nil {
		return err
	}

	if err := c.positions.Append(ctx, observation); err != nil {
		return err
	}

	c.mu.Lock()
	c.latest[observation.ID()] = observation
	c.mu.Unlock()
	return nil
}

// UpdateStatus records a fresh observation for the vehicle carrying the new
// status label, stamped now. Position, speed and heading are carried over from
// the latest observation; history is appended, never rewritten.
func (c *VehicleCache) UpdateStatus(ctx context.Context, vehicleID, status string) (vehicle.Vehicle, error) {
	current, err := c.GetLatest(ctx, vehicleID)
	if err != nil {
		return vehicle.Vehicle{}, err
	}

	updated, err := current.WithStatus(status, time.Now())
	if err != nil {
		return vehicle.Vehicle{}, err
	}

	if err := c.Record(ctx, updated); err != nil {
		return vehicle.Vehicle{}, err
	}
	return updated, nil
}

// NearLocation returns vehicles whose latest position lies within radiusKm of
// the given point, closest first.
func (c *VehicleCache) NearLocation(ctx context.Context, location geo.Point, radiusKm float64,
) ([]VehicleDistance, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, errs.NewValueIsInvalidError("radiusKm")
	}

	all, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var near []VehicleDistance
	for _, v := range all {
		distance, err := v.DistanceTo(location)
		if err != nil {
			return nil, err
		}
		if distance <= radiusKm {
			near = append(near, VehicleDistance{Vehicle: v, DistanceKm: distance})
		}
	}
	sort.Slice(near, func(i, j int) bool { return near[i].DistanceKm < near[j].DistanceKm })
	return near, nil
}

// CleanupOld deletes observations older than the retention window and drops
// the snapshot so the next read rebuilds it from what survived. Returns the
// number of observations removed.
func (c *VehicleCache) CleanupOld(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, errs.NewValueIsInvalidError("retention")
	}

	removed, err := c.positions.CleanupBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.loadedAt = time.Time{}
	c.mu.Unlock()

	return removed, nil
}

// Invalidate drops the snapshot; the next read reloads the position log.
func (c *VehicleCache) Invalidate() {
	c.mu.Lock()
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}

// VehicleDistance pairs a vehicle with its distance from a query point.
type VehicleDistance struct {
	Vehicle    vehicle.Vehicle
	DistanceKm float64
}

// refreshLocked reloads the snapshot from the position log when it is older
// than the TTL. Caller must hold c.mu.
func (c *VehicleCache) refreshLocked(ctx context.Context) error {
	if !c.loadedAt.IsZero() && time.Since(c.loadedAt) < c.ttl {
		return nil
	}

	observations, err := c.positions.LoadAll(ctx)
	if err != nil {
		return err
	}

	latest := make(map[string]vehicle.Vehicle, len(observations))
	for _, obs := range observations {
		current, ok := latest[obs.ID()]
		if !ok || obs.IsNewerThan(current) {
			latest[obs.ID()] = obs
		}
	}

	c.latest = latest
	c.loadedAt = time.Now()
	return nil
}
