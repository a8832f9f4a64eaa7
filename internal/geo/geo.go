// Package geo provides great-circle distance helpers used for
// office-radius checks on attendance marks.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance in kilometers
// between two points given in decimal degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// WithinRadius reports whether the target point lies within radiusKm of the
// center point.
func WithinRadius(centerLat, centerLon, targetLat, targetLon, radiusKm float64) bool {
	return DistanceKm(centerLat, centerLon, targetLat, targetLon) <= radiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
