package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// AzimuthCartesian returns the compass bearing in degrees from p1 to p2 on a
// projected plane with identical x/y units. 0 = north (+y), increasing
// clockwise. Note the swapped atan2 arguments relative to the mathematical
// convention; that is what puts north at zero.
func AzimuthCartesian(p1, p2 orb.Point) float64 {
	angle := math.Atan2(p2[0]-p1[0], p2[1]-p1[1])
	deg := angle * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// AzimuthLngLat returns the great-circle initial bearing in degrees from p1
// to p2, where points are (lng, lat). 0 = north, increasing clockwise.
func AzimuthLngLat(p1, p2 orb.Point) float64 {
	lat1 := p1[1] * math.Pi / 180
	lat2 := p2[1] * math.Pi / 180
	dLon := (p2[0] - p1[0]) * math.Pi / 180

	x := math.Sin(dLon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(x, y) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// CWDistance returns the angular distance in degrees swept going clockwise
// from azimuth az1 to azimuth az2. Always in [0, 360).
func CWDistance(az1, az2 float64) float64 {
	return math.Mod(math.Mod(az2-az1, 360)+360, 360)
}
