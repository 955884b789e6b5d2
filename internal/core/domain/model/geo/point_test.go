package geo_test

import (
	"testing"

	"dispatch/internal/core/domain/model/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid bangkok", 13.7563, 100.5018, false},
		{"valid equator", 0, 0, false},
		{"valid extremes", 90, 180, false},
		{"valid negative extremes", -90, -180, false},
		{"latitude too high", 90.001, 0, true},
		{"latitude too low", -90.001, 0, true},
		{"longitude too high", 0, 180.001, true},
		{"longitude too low", 0, -180.001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := geo.NewPoint(tt.lat, tt.lng)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.lat, p.Lat(), 0.0)
			assert.InDelta(t, tt.lng, p.Lng(), 0.0)
		})
	}
}

func TestPoint_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var p geo.Point
		require.Error(t, p.Validate())
	})

	t.Run("constructed point is valid", func(t *testing.T) {
		p, err := geo.NewPoint(1, 2)
		require.NoError(t, err)
		require.NoError(t, p.Validate())
	})
}

func TestPoint_IsEqual(t *testing.T) {
	a, _ := geo.NewPoint(13.7, 100.5)
	b, _ := geo.NewPoint(13.7, 100.5)
	c, _ := geo.NewPoint(13.8, 100.5)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = a.IsEqual(geo.Point{})
	require.Error(t, err)
}

func TestPoint_DistanceTo(t *testing.T) {
	t.Run("zero distance to itself", func(t *testing.T) {
		p, _ := geo.NewPoint(13.7563, 100.5018)
		d, err := p.DistanceTo(p)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		a, _ := geo.NewPoint(0, 0)
		b, _ := geo.NewPoint(1, 0)
		d, err := a.DistanceTo(b)
		require.NoError(t, err)
		assert.InDelta(t, 111.19, d, 0.1)
	})

	t.Run("bangkok to chiang mai", func(t *testing.T) {
		bkk, _ := geo.NewPoint(13.7563, 100.5018)
		cnx, _ := geo.NewPoint(18.7883, 98.9853)
		d, err := bkk.DistanceTo(cnx)
		require.NoError(t, err)
		// Known great-circle distance is roughly 586 km.
		assert.InDelta(t, 586, d, 5)
	})

	t.Run("symmetric", func(t *testing.T) {
		a, _ := geo.NewPoint(10, 20)
		b, _ := geo.NewPoint(-10, 40)
		d1, err := a.DistanceTo(b)
		require.NoError(t, err)
		d2, err := b.DistanceTo(a)
		require.NoError(t, err)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("unconstructed point fails", func(t *testing.T) {
		a, _ := geo.NewPoint(10, 20)
		_, err := a.DistanceTo(geo.Point{})
		require.Error(t, err)
	})
}

func TestDistance_MatchesPointDistance(t *testing.T) {
	a, _ := geo.NewPoint(13.75, 100.5)
	b, _ := geo.NewPoint(13.9, 100.6)

	viaPoint, err := a.DistanceTo(b)
	require.NoError(t, err)
	raw := geo.Distance(13.75, 100.5, 13.9, 100.6)
	assert.InDelta(t, viaPoint, raw, 1e-12)
}
