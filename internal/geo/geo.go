// internal/geo/geo.go
//
// Great-circle distance math for the guessing game.
// Defines:
//   - Point: a latitude/longitude pair in decimal degrees.
//   - Distance: haversine distance between two points in kilometers.
//
// Notes:
//   - Pure functions only; no state, no failure modes for in-range inputs.
//   - Earth is modeled as a sphere of radius 6371 km, which is accurate
//     enough for capital-to-capital feedback.

package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Point is a geographic coordinate in decimal degrees.
// Latitude is in [-90, 90], longitude in [-180, 180].
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the great-circle distance between a and b in kilometers,
// computed with the haversine formula. It is symmetric and returns 0 for
// identical points.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Min(1, math.Sqrt(h)))

	return earthRadiusKm * c
}

// radians converts degrees to radians.
func radians(deg float64) float64 { return deg * math.Pi / 180 }
