package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var home = Coordinate{Latitude: 51.097848, Longitude: -0.243409}

func TestDistanceMiles_SamePoint(t *testing.T) {
	assert.Zero(t, DistanceMiles(home, home))
}

func TestDistanceMiles_OneDegreeLatitude(t *testing.T) {
	// One degree of latitude is 111194.93 m on a 6371 km sphere, which is
	// 69.09 miles; rounded to the nearest tenth that is 69.1.
	point := Coordinate{Latitude: home.Latitude + 1, Longitude: home.Longitude}
	assert.InDelta(t, 69.1, DistanceMiles(home, point), 1e-9)
}

func TestDistanceMiles_Symmetric(t *testing.T) {
	point := Coordinate{Latitude: 51.5074, Longitude: -0.1278}
	assert.Equal(t, DistanceMiles(home, point), DistanceMiles(point, home))
}

func TestDistanceMiles_OneDecimalPlace(t *testing.T) {
	// Whatever the rounding debate settles on, the result carries at most
	// one decimal place.
	point := Coordinate{Latitude: 51.2, Longitude: -0.3}
	d := DistanceMiles(home, point)
	assert.InDelta(t, d, float64(int(d*10+0.5))/10, 1e-9)
	assert.Positive(t, d)
}
