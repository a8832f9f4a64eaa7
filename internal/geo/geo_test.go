package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_SamePointIsZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
		{89.9, 179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"equator", 0, 0, 0, 1},
		{"cities", 40.7128, -74.0060, 51.5074, -0.1278},
		{"southern hemisphere", -33.8688, 151.2093, -36.8485, 174.7633},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d1 := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			d2 := DistanceKm(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			assert.InEpsilon(t, d1, d2, 1e-6)
		})
	}
}

func TestDistanceKm_KnownValues(t *testing.T) {
	// One degree of longitude on the equator is about 111.19 km.
	d := DistanceKm(0, 0, 0, 1)
	assert.InDelta(t, 111.19, d, 0.5)

	// New York to London, reference value ~5570 km.
	d = DistanceKm(40.7128, -74.0060, 51.5074, -0.1278)
	assert.InDelta(t, 5570, d, 10)
}

func TestDistanceKm_MatchesReferenceFormula(t *testing.T) {
	ref := func(lat1, lon1, lat2, lon2 float64) float64 {
		const r = 6371.0
		dLat := (lat2 - lat1) * math.Pi / 180
		dLon := (lon2 - lon1) * math.Pi / 180
		a := math.Sin(dLat/2)*math.Sin(dLat/2) +
			math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
				math.Sin(dLon/2)*math.Sin(dLon/2)
		return r * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	}

	coords := [][4]float64{
		{0, 0, 0, 1},
		{40.7128, -74.0060, 40.7130, -74.0055},
		{40.7128, -74.0060, 51.5074, -0.1278},
		{-90, 0, 90, 0},
	}
	for _, c := range coords {
		want := ref(c[0], c[1], c[2], c[3])
		got := DistanceKm(c[0], c[1], c[2], c[3])
		assert.InEpsilon(t, want, got, 1e-6)
	}
}

func TestWithinRadius(t *testing.T) {
	const officeLat, officeLon = 40.7128, -74.0060

	t.Run("center is within any non-negative radius", func(t *testing.T) {
		assert.True(t, WithinRadius(officeLat, officeLon, officeLat, officeLon, 0))
		assert.True(t, WithinRadius(officeLat, officeLon, officeLat, officeLon, 0.5))
	})

	t.Run("nearby point within radius", func(t *testing.T) {
		// ~150 m away
		assert.True(t, WithinRadius(officeLat, officeLon, 40.7141, -74.0060, 0.2))
	})

	t.Run("distant point outside radius", func(t *testing.T) {
		assert.False(t, WithinRadius(officeLat, officeLon, 40.7300, -74.0060, 0.2))
	})
}
