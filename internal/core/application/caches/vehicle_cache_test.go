package caches_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
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

func mustVehicle(t *testing.T, id string, lat, lng, speed float64, observedAt time.Time) vehicle.Vehicle {
	t.Helper()
	position, err := geo.NewPoint(lat, lng)
	require.NoError(t, err)
	v, err := vehicle.NewVehicle(id, position, speed, 0, "", "", observedAt)
	require.NoError(t, err)
	return v
}

func TestVehicleCache_GetAllKeepsLatestObservationPerVehicle(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	older := mustVehicle(t, "truck-1", 13.70, 100.50, 10, now.Add(-time.Minute))
	newer := mustVehicle(t, "truck-1", 13.75, 100.55, 20, now)
	other := mustVehicle(t, "truck-2", 13.80, 100.60, 0, now)

	repo := &MockPositionRepository{}
	repo.On("LoadAll", ctx).Return([]vehicle.Vehicle{older, newer, other}, nil).Once()

	cache, err := caches.NewVehicleCache(repo, time.Minute)
	require.NoError(t, err)

	all, err := cache.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "truck-1", all[0].ID())
	assert.InDelta(t, 20.0, all[0].SpeedKmh(), 0.001)
	assert.Equal(t, "truck-2", all[1].ID())

	repo.AssertExpectations(t)
}

func TestVehicleCache_GetLatestServesFromSnapshotWithinTTL(t *testing.T) {
	ctx := context.Background()
	v := mustVehicle(t, "truck-1", 13.70, 100.50, 10, time.Now())

	repo := &MockPositionRepository{}
	repo.On("LoadAll", ctx).Return([]vehicle.Vehicle{v}, nil).Once()

	cache, err := caches.NewVehicleCache(repo, time.Hour)
	require.NoError(t, err)

	for range 3 {
		got, err := cache.GetLatest(ctx, "truck-1")
		require.NoError(t, err)
		assert.Equal(t, "truck-1", got.ID())
	}

	repo.AssertExpectations(t)
}

func TestVehicleCache_ZeroTTLReloadsEveryRead(t *testing.T) {
	ctx := context.Background()
	v := mustVehicle(t, "truck-1", 13.70, 100.50, 10, time.Now())

	repo := &MockPositionRepository{}
	repo.On("LoadAll", ctx).Return([]vehicle.Vehicle{v}, nil).Twice()

	cache, err := caches.NewVehicleCache(repo, 0)
	require.NoError(t, err)

	_, err = cache.GetLatest(ctx, "truck-1")
	require.NoError(t, err)
	_, err = cache.GetLatest(ctx, "truck-1")
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestVehicleCache_GetLatestUnknownVehicleReturnsNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &MockPositionRepository{}
	repo.On("LoadAll", ctx).Return([]vehicle.Vehicle{}, nil).Once()

	cache, err := caches.NewVehicleCache(repo, time.Minute)
	require.NoError(t, err)

	_, err = cache.GetLatest(ctx, "ghost")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	repo.AssertExpectations(t)
}

func TestVehicleCache_RecordWritesThroughAndUpdatesSnapshot(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	initial := mustVehicle(t, "truck-1", 13.70, 100.50, 10, now.Add(-time.Minute))
	fresh := mustVehicle(t, "truck-1", 13.75, 100.55, 30, now)

	repo := &MockPositionRepository{}
	repo.On("LoadAll", ctx).Return([]vehicle.Vehicle{initial}, nil).Once()
	repo.On("Append", ctx, fresh).Return(nil).Once()

	cache, err := caches.NewVehicleCache(repo, time.Hour)
	require.NoError(t, err)

	_, err = cache.GetLatest(ctx, "truck-1")
	require.NoError(t, err)

	require.NoError(t, cache.Record(ctx, fresh))

	got, err := cache.GetLatest(ctx, "truck-1")
	require.NoError(t, err)
	assert.InDelta(t, 30.0, got.SpeedKmh(), 0.001)

	repo.AssertExpectations(t)
}

func TestVehicleCache_UpdateStatusAppendsNewObservation(t *testing.T) {
	ctx := context.Background()
	observed := time.Now()
	v := mustVehicle(t, "truck-1", 13.70, 100.50, 10, observed)

	repo := &MockPositionRepository{}
	repo.On("LoadAll", ctx).Return([]vehicle.Vehicle{v}, nil).Once()
	repo.On("Append", ctx, mock.MatchedBy(func(obs vehicle.Vehicle) bool {
		return obs.ID() == "truck-1" && obs.Status() == "delivering" &&
			obs.ObservedAt().After(observed)
	})).Return(nil).Once()

	cache, err := caches.NewVehicleCache(repo, time.Hour)
	require.NoError(t, err)

	updated, err := cache.UpdateStatus(ctx, "truck-1", "delivering")
	require.NoError(t, err)
	assert.Equal(t, "delivering", updated.Status())

	got, err := cache.GetLatest(ctx, "truck-1")
	require.NoError(t, err)
	assert.Equal(t, "delivering", got.Status())

	repo.AssertExpectations(t)
}

func TestVehicleCache_RecordReplacesSnapshotEntryUnconditionally(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	cached := mustVehicle(t, "truck-1", 13.70, 100.50, 10, now)
	position, err := geo.NewPoint(13.70, 100.50)
	require.NoError(t, err)
	sameStamp, err := vehicle.NewVehicle("truck-1", position, 10, 0, "", "delivering", now)
	require.NoError(t, err)

	repo := &MockPositionRepository{}
	repo.On("LoadAll", ctx).Return([]vehicle.Vehicle{cached}, nil).Once()
	repo.On("Append", ctx, sameStamp).Return(nil).Once()

	cache, err := caches.NewVehicleCache(repo, time.Hour)
	require.NoError(t, err)

	_, err = cache.GetLatest(ctx, "truck-1")
	require.NoError(t, err)

	require.NoError(t, cache.Record(ctx, sameStamp))

	got, err := cache.GetLatest(ctx, "truck-1")
	require.NoError(t, err)
	assert.Equal(t, "delivering", got.Status())

	repo.AssertExpectations(t)
}

func TestVehicleCache_NearLocationFiltersAndSortsByDistance(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	near := mustVehicle(t, "truck-near", 13.701, 100.501, 0, now)
	mid := mustVehicle(t, "truck-mid", 13.75, 100.55, 0, now)
	far := mustVehicle(t, "truck-far", 14.70, 101.50, 0, now)

	repo := &MockPositionRepository{}
	repo.On("LoadAll", ctx).Return([]vehicle.Vehicle{far, mid, near}, nil).Once()

	cache, err := caches.NewVehicleCache(repo, time.Minute)
	require.NoError(t, err)

	origin, err := geo.NewPoint(13.70, 100.50)
	require.NoError(t, err)

	result, err := cache.NearLocation(ctx, origin, 20)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "truck-near", result[0].Vehicle.ID())
	assert.Equal(t, "truck-mid", result[1].Vehicle.ID())
	assert.Less(t, result[0].DistanceKm, result[1].DistanceKm)

	repo.AssertExpectations(t)
}

func TestVehicleCache_CleanupOldInvalidatesSnapshot(t *testing.T) {
	ctx := context.Background()
	v := mustVehicle(t, "truck-1", 13.70, 100.50, 10, time.Now())

	repo := &MockPositionRepository{}
	repo.On("LoadAll", ctx).Return([]vehicle.Vehicle{v}, nil).Twice()
	repo.On("CleanupBefore", ctx, mock.AnythingOfType("time.Time")).Return(3, nil).Once()

	cache, err := caches.NewVehicleCache(repo, time.Hour)
	require.NoError(t, err)

	_, err = cache.GetAll(ctx)
	require.NoError(t, err)

	removed, err := cache.CleanupOld(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	_, err = cache.GetAll(ctx)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestNewVehicleCache_RequiresRepository(t *testing.T) {
	_, err := caches.NewVehicleCache(nil, time.Minute)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
