package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPositionRepository struct{ mock.Mock }

func (m *MockPositionRepository) LoadAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vehicle.Vehicle), args.Error(1)
}

func (m *MockPositionRepository) Append(ctx context.Context, observation vehicle.Vehicle) error {
	args := m.Called(ctx, observation)
	return args.Error(0)
}

func (m *MockPositionRepository) CleanupBefore(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, aggregate *delivery.Assignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetByOrderNo(ctx context.Context, orderNo int) (*delivery.Assignment, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, aggregate *delivery.Assignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetActive(ctx context.Context) ([]*delivery.Assignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Assignment), args.Error(1)
}

func mustPoint(t *testing.T, lat, lng float64) geo.Point {
	t.Helper()
	p, err := geo.NewPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func observation(t *testing.T, id string, lat, lng, speed float64, at time.Time) vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(id, mustPoint(t, lat, lng), speed, 0, "driver", "", at)
	require.NoError(t, err)
	return v
}

func mustAssignment(t *testing.T, orderNo int, vehicleID string, destination geo.Point,
	distanceKm float64,
) *delivery.Assignment {
	t.Helper()
	a, err := delivery.NewAssignment(orderNo, vehicleID, "Somchai Shop", destination, distanceKm, time.Now())
	require.NoError(t, err)
	return a
}

func newVehicleCache(t *testing.T, repo *MockPositionRepository) *caches.VehicleCache {
	t.Helper()
	cache, err := caches.NewVehicleCache(repo, time.Minute)
	require.NoError(t, err)
	return cache
}
