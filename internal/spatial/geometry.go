package spatial

import (
	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

// Centroid calculates the arithmetic mean of a set of positions
func Centroid(points []models.Position) models.Position {
	if len(points) == 0 {
		return models.Position{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return models.Position{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}
}

// Extent calculates the bounding box of a set of positions. ok is false for
// an empty set.
func Extent(points []models.Position) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	b = Bounds{North: points[0].Lat, South: points[0].Lat, East: points[0].Lng, West: points[0].Lng}
	for _, p := range points[1:] {
		if p.Lat < b.South {
			b.South = p.Lat
		}
		if p.Lat > b.North {
			b.North = p.Lat
		}
		if p.Lng < b.West {
			b.West = p.Lng
		}
		if p.Lng > b.East {
			b.East = p.Lng
		}
	}

	return b, true
}
