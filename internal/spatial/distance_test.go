package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomasvik/geovisits/internal/spatial"
)

func TestHaversineDistance_Zero(t *testing.T) {
	assert.Equal(t, 0.0, spatial.HaversineDistance(48.8566, 2.3522, 48.8566, 2.3522))
}

func TestHaversineDistance_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{48.8566, 2.3522, 51.5074, -0.1278},  // Paris <-> London
		{35.6762, 139.6503, -33.8688, 151.2093}, // Tokyo <-> Sydney
		{0, 0, 0, 179.9},
		{89.9, 10, -89.9, -170},
	}
	for _, p := range pairs {
		d1 := spatial.HaversineDistance(p[0], p[1], p[2], p[3])
		d2 := spatial.HaversineDistance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, d1, d2, 1e-6)
		assert.GreaterOrEqual(t, d1, 0.0)
	}
}

func TestHaversineDistance_KnownValues(t *testing.T) {
	// One degree of longitude at the equator is ~111.19 km with R=6371km.
	d := spatial.HaversineDistance(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 50)

	// Short distances stay accurate: ~100m north of a point.
	lat2, lon2 := spatial.DestinationPoint(52.52, 13.405, 0, 100)
	assert.InDelta(t, 100, spatial.HaversineDistance(52.52, 13.405, lat2, lon2), 0.5)
}

func TestHaversineDistance_MonotonicWithSeparation(t *testing.T) {
	base := spatial.HaversineDistance(10, 10, 10, 10.001)
	prev := base
	for _, dLon := range []float64{0.002, 0.005, 0.01, 0.1, 1} {
		d := spatial.HaversineDistance(10, 10, 10, 10+dLon)
		assert.Greater(t, d, prev)
		prev = d
	}
}
