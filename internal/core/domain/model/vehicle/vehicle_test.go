package vehicle_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, lat, lng float64) geo.Point {
	t.Helper()
	p, err := geo.NewPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestNewVehicle(t *testing.T) {
	pos := mustPoint(t, 13.75, 100.5)
	now := time.Now()

	t.Run("valid", func(t *testing.T) {
		v, err := vehicle.NewVehicle("TRUCK-01", pos, 42.5, 180, "Somsak", "delivering", now)
		require.NoError(t, err)
		assert.Equal(t, "TRUCK-01", v.ID())
		assert.InDelta(t, 42.5, v.SpeedKmh(), 0)
		assert.InDelta(t, 180.0, v.HeadingDeg(), 0)
		assert.Equal(t, "Somsak", v.Driver())
		assert.Equal(t, "delivering", v.Status())
		assert.Equal(t, now, v.ObservedAt())
	})

	t.Run("blank status defaults to idle", func(t *testing.T) {
		v, err := vehicle.NewVehicle("TRUCK-01", pos, 0, 0, "", "", now)
		require.NoError(t, err)
		assert.Equal(t, vehicle.DefaultStatus, v.Status())
	})

	t.Run("empty id rejected", func(t *testing.T) {
		_, err := vehicle.NewVehicle("", pos, 0, 0, "", "idle", now)
		require.Error(t, err)
	})

	t.Run("unconstructed position rejected", func(t *testing.T) {
		_, err := vehicle.NewVehicle("TRUCK-01", geo.Point{}, 0, 0, "", "idle", now)
		require.Error(t, err)
	})

	t.Run("negative speed rejected", func(t *testing.T) {
		_, err := vehicle.NewVehicle("TRUCK-01", pos, -1, 0, "", "idle", now)
		require.Error(t, err)
	})
}

func TestVehicle_IsIdle(t *testing.T) {
	pos := mustPoint(t, 13.75, 100.5)

	tests := []struct {
		speed     float64
		threshold float64
		idle      bool
	}{
		{0, 5, true},
		{4.99, 5, true},
		{5, 5, false},
		{60, 5, false},
	}

	for _, tt := range tests {
		v, err := vehicle.NewVehicle("TRUCK-01", pos, tt.speed, 0, "", "idle", time.Now())
		require.NoError(t, err)
		assert.Equal(t, tt.idle, v.IsIdle(tt.threshold), "speed=%v threshold=%v", tt.speed, tt.threshold)
	}
}

func TestVehicle_IsNewerThan(t *testing.T) {
	pos := mustPoint(t, 13.75, 100.5)
	base := time.Now()

	older, _ := vehicle.NewVehicle("TRUCK-01", pos, 0, 0, "", "idle", base)
	newer, _ := vehicle.NewVehicle("TRUCK-01", pos, 0, 0, "", "idle", base.Add(time.Minute))

	assert.True(t, newer.IsNewerThan(older))
	assert.False(t, older.IsNewerThan(newer))
	assert.False(t, older.IsNewerThan(older))
}

func TestVehicle_DistanceTo(t *testing.T) {
	v, _ := vehicle.NewVehicle("TRUCK-01", mustPoint(t, 0, 0), 0, 0, "", "idle", time.Now())

	d, err := v.DistanceTo(mustPoint(t, 0, 1))
	require.NoError(t, err)
	assert.InDelta(t, 111.19, d, 0.1)

	_, err = v.DistanceTo(geo.Point{})
	require.Error(t, err)
}

func TestVehicle_WithStatus(t *testing.T) {
	observed := time.Now()
	v, _ := vehicle.NewVehicle("TRUCK-01", mustPoint(t, 13.75, 100.5), 3, 90, "Somsak", "idle", observed)

	stamped := observed.Add(time.Second)
	updated, err := v.WithStatus("delivering", stamped)
	require.NoError(t, err)
	assert.Equal(t, "delivering", updated.Status())
	assert.Equal(t, "idle", v.Status())
	assert.Equal(t, v.ID(), updated.ID())
	assert.InDelta(t, v.SpeedKmh(), updated.SpeedKmh(), 0)
	assert.True(t, stamped.Equal(updated.ObservedAt()))
	assert.True(t, updated.IsNewerThan(v))

	_, err = v.WithStatus("", stamped)
	require.Error(t, err)

	_, err = v.WithStatus("delivering", observed.Add(-time.Second))
	require.Error(t, err)

	var zero vehicle.Vehicle
	_, err = zero.WithStatus("idle", time.Now())
	require.Error(t, err)
}
