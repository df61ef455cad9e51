package utils

import "math"

// earthRadiusMeters is the mean Earth radius used for great-circle distances.
const earthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two points
// given as (longitude, latitude) degree pairs. Used by the in-memory store,
// where no 2dsphere index is available to do the spherical math.
func Haversine(lng1, lat1, lng2, lat2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
