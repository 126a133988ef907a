package spatial

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

// DistanceMeters calculates the great-circle distance between two points in meters
func DistanceMeters(a, b models.Position) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DegreeDistance is the planar Euclidean distance between two points, in degrees.
// Marker spacing is measured this way, not geodesically.
func DegreeDistance(a, b models.Position) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}

// PolarOffset moves p by radius degrees along angle (radians).
// The latitude component follows cos(angle), longitude follows sin(angle).
func PolarOffset(p models.Position, angle, radius float64) models.Position {
	return models.Position{
		Lat: p.Lat + math.Cos(angle)*radius,
		Lng: p.Lng + math.Sin(angle)*radius,
	}
}

// EarthRadiusMeters is Earth's mean radius
const EarthRadiusMeters = 6371000.0
