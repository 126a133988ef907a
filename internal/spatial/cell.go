package spatial

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

// MetersPerDegree is the equatorial length of one degree. It is applied to
// both axes with no latitude correction, so cells narrow in real width away
// from the equator.
const MetersPerDegree = 111320.0

// containsTolerance absorbs float rounding at cell edges, in degrees
const containsTolerance = 1e-9

// CellID identifies a grid cell by its integer latitude/longitude indices
type CellID struct {
	Lat int `json:"lat"`
	Lng int `json:"lng"`
}

// String formats the id as "{lat}_{lng}"
func (c CellID) String() string {
	return fmt.Sprintf("%d_%d", c.Lat, c.Lng)
}

// ParseCellID parses the "{lat}_{lng}" form produced by String
func ParseCellID(s string) (CellID, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 2 {
		return CellID{}, fmt.Errorf("%w: %q", models.ErrInvalidCellID, s)
	}
	lat, err := strconv.Atoi(parts[0])
	if err != nil {
		return CellID{}, fmt.Errorf("%w: %q: %v", models.ErrInvalidCellID, s, err)
	}
	lng, err := strconv.Atoi(parts[1])
	if err != nil {
		return CellID{}, fmt.Errorf("%w: %q: %v", models.ErrInvalidCellID, s, err)
	}
	return CellID{Lat: lat, Lng: lng}, nil
}

// Bounds is the lat/lng box covered by a cell
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains reports whether the coordinate lies inside the box
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.South-containsTolerance && lat <= b.North+containsTolerance &&
		lng >= b.West-containsTolerance && lng <= b.East+containsTolerance
}

// Center returns the midpoint of the box
func (b Bounds) Center() models.Position {
	return models.Position{
		Lat: (b.North + b.South) / 2,
		Lng: (b.East + b.West) / 2,
	}
}

// Rect converts the box to an s2 rectangle, clamped to valid coordinates
func (b Bounds) Rect() s2.Rect {
	lo := s2.LatLngFromDegrees(clamp(b.South, -90, 90), clamp(b.West, -180, 180))
	hi := s2.LatLngFromDegrees(clamp(b.North, -90, 90), clamp(b.East, -180, 180))
	return s2.RectFromLatLng(lo).AddPoint(hi)
}

// AreaSquareMeters returns the true surface area of the box
func (b Bounds) AreaSquareMeters() float64 {
	return b.Rect().Area() * EarthRadiusMeters * EarthRadiusMeters
}

// Grid is a uniform lat/lng grid whose cell edge is given in meters
type Grid struct {
	SizeDegrees float64
}

// NewGrid creates a grid with cells cellSizeMeters wide on each axis
func NewGrid(cellSizeMeters float64) Grid {
	return Grid{SizeDegrees: cellSizeMeters / MetersPerDegree}
}

// CellFor returns the cell containing the coordinate
func (g Grid) CellFor(lat, lng float64) (CellID, error) {
	if err := models.ValidateCoordinate(lat, lng); err != nil {
		return CellID{}, err
	}
	return CellID{
		Lat: int(math.Floor(lat / g.SizeDegrees)),
		Lng: int(math.Floor(lng / g.SizeDegrees)),
	}, nil
}

// Bounds returns the box covered by the cell
func (g Grid) Bounds(id CellID) Bounds {
	return Bounds{
		South: float64(id.Lat) * g.SizeDegrees,
		North: float64(id.Lat+1) * g.SizeDegrees,
		West:  float64(id.Lng) * g.SizeDegrees,
		East:  float64(id.Lng+1) * g.SizeDegrees,
	}
}

// Center returns the midpoint of the cell
func (g Grid) Center(id CellID) models.Position {
	return g.Bounds(id).Center()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
