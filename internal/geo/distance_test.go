package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Jakarta and Bandung, roughly 116 km apart.
var (
	jakarta = Point{Lat: -6.2088, Lng: 106.8456}
	bandung = Point{Lat: -6.9175, Lng: 107.6191}
)

func TestDistanceKm_Symmetry(t *testing.T) {
	ab := DistanceKm(jakarta.Lat, jakarta.Lng, bandung.Lat, bandung.Lng)
	ba := DistanceKm(bandung.Lat, bandung.Lng, jakarta.Lat, jakarta.Lng)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestDistanceKm_Identity(t *testing.T) {
	assert.InDelta(t, 0, DistanceKm(jakarta.Lat, jakarta.Lng, jakarta.Lat, jakarta.Lng), 1e-9)
	assert.InDelta(t, 0, DistanceKm(0, 0, 0, 0), 1e-9)
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	d := DistanceKm(jakarta.Lat, jakarta.Lng, bandung.Lat, bandung.Lng)
	assert.InDelta(t, 116, d, 5)
}

func TestFormat_Meters(t *testing.T) {
	km := 0.45
	assert.Equal(t, "450 m", Format(&km))
}

func TestFormat_Kilometers(t *testing.T) {
	km := 2.34
	assert.Equal(t, "2.3 km", Format(&km))
}

func TestFormat_Nil(t *testing.T) {
	assert.Equal(t, "", Format(nil))
}

func TestFormat_Boundary(t *testing.T) {
	just := 0.9996
	assert.Equal(t, "1000 m", Format(&just))

	one := 1.0
	assert.Equal(t, "1.0 km", Format(&one))
}
