// Package geo computes great-circle distances and indexes bridge coordinates
// for radius searches.
package geo

import (
	"math"

	"github.com/umahmood/haversine"
)

// EarthRadiusKm is the mean Earth radius used by the haversine library.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometres between two
// points, rounded to the nearest metre.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return Round3(km)
}

// Round3 rounds v to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
