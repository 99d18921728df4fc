package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLatitude(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidLatitude(0))
	assert.True(t, ValidLatitude(-90))
	assert.True(t, ValidLatitude(90))

	assert.False(t, ValidLatitude(90.0001))
	assert.False(t, ValidLatitude(-95))
	assert.False(t, ValidLatitude(math.NaN()))
	assert.False(t, ValidLatitude(math.Inf(1)))
}

func TestValidLongitude(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidLongitude(0))
	assert.True(t, ValidLongitude(-180))
	assert.True(t, ValidLongitude(180))

	assert.False(t, ValidLongitude(180.0001))
	assert.False(t, ValidLongitude(-181))
	assert.False(t, ValidLongitude(math.NaN()))
}

func TestPointValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Point{Latitude: 19.076, Longitude: 72.8777}.Valid())
	assert.False(t, Point{Latitude: 95, Longitude: 72.8777}.Valid())
	assert.False(t, Point{Latitude: 19.076, Longitude: 200}.Valid())
}

func TestDistanceMeters_Zero(t *testing.T) {
	t.Parallel()

	p := Point{Latitude: 12.9716, Longitude: 77.5946}
	assert.Equal(t, 0.0, DistanceMeters(p, p))
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	t.Parallel()

	// Mumbai CST to Gateway of India, roughly 2.3 km.
	cst := Point{Latitude: 18.9398, Longitude: 72.8355}
	gateway := Point{Latitude: 18.9220, Longitude: 72.8347}

	d := DistanceMeters(cst, gateway)
	assert.InDelta(t, 1980, d, 100)

	// Symmetric.
	assert.InDelta(t, d, DistanceMeters(gateway, cst), 0.0001)
}

func TestDistanceMeters_OneDegreeLatitude(t *testing.T) {
	t.Parallel()

	// One degree of latitude is ~111.2 km everywhere.
	a := Point{Latitude: 20, Longitude: 73}
	b := Point{Latitude: 21, Longitude: 73}

	assert.InDelta(t, 111195, DistanceMeters(a, b), 100)
}
