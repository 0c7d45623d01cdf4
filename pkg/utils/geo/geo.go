package geo

import (
	"fmt"
	"math"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// EarthRadiusKm is the mean earth radius used for distances
const EarthRadiusKm = 6371.0

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Haversine returns the great-circle distance between a and b in kilometres
func Haversine(a, b model.Coordinates) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FormatCoordinates renders c to four decimal places, or "" when c is unset
func FormatCoordinates(c *model.Coordinates) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}
