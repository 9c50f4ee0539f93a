package geomath

import (
	"math"
	"time"
)

const (
	// EarthRadiusKm средний радиус Земли для формулы гаверсинусов.
	EarthRadiusKm = 6371.0

	// DefaultSpeedKmh подставляется вместо нулевой или отрицательной скорости
	// при расчете ETA.
	DefaultSpeedKmh = 20.0
)

// DistanceKm returns the great-circle distance between two points in
// kilometers (haversine formula). Symmetric; 0 for identical points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// BearingDegrees returns the initial bearing from point 1 to point 2,
// normalized to [0, 360). 0 is due north, increasing clockwise.
func BearingDegrees(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	y := math.Sin(deltaLng) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) -
		math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLng)

	bearing := math.Atan2(y, x) * 180 / math.Pi

	return math.Mod(bearing+360, 360)
}

// ETAFromSpeed returns the arrival timestamp for the given remaining distance
// and speed. Non-positive speed falls back to DefaultSpeedKmh instead of
// failing: куда важнее выдать хоть какую-то оценку, чем ошибку.
func ETAFromSpeed(distanceKm, speedKmh float64, now time.Time) time.Time {
	effectiveSpeed := speedKmh
	if effectiveSpeed <= 0 {
		effectiveSpeed = DefaultSpeedKmh
	}

	travel := time.Duration(distanceKm / effectiveSpeed * float64(time.Hour))
	return now.Add(travel)
}
