package walk

import "math"

const earthRadiusMeters = 6371000.0

// metersToDeciMiles is miles-per-meter scaled by ten, so the round/divide
// below lands on the nearest tenth of a mile. The factor matches the one
// every previously exported dataset was produced with; see DESIGN.md before
// touching it.
const metersToDeciMiles = 0.006213712

// DistanceMiles returns the great-circle distance from home to a walk's
// starting point, in miles rounded to one decimal place.
func DistanceMiles(home, point Coordinate) float64 {
	meters := haversineMeters(home, point)
	return math.Round(meters*metersToDeciMiles) / 10
}

// haversineMeters computes the great-circle surface distance between two
// coordinates on a spherical earth.
func haversineMeters(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
