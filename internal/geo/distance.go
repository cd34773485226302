// Package geo ranks storefront entities by great-circle distance from the
// visitor and resolves the visitor's position with a bounded wait.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean sphere radius used by the haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the haversine distance in kilometers between two
// lat/lng pairs given in degrees. Inputs are not range-checked;
// out-of-range coordinates yield numerically valid but meaningless results.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Format renders a distance for the storefront: meters below one kilometer,
// one decimal of kilometers otherwise. A nil distance renders as an empty
// string so callers can substitute their own placeholder.
func Format(km *float64) string {
	if km == nil {
		return ""
	}
	if *km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(*km*1000)))
	}
	return fmt.Sprintf("%.1f km", *km)
}
