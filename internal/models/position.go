package models

import (
	"fmt"
	"math"
)

// Position is a WGS84 coordinate in degrees
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that the coordinate is finite and within range
func (p Position) Validate() error {
	return ValidateCoordinate(p.Lat, p.Lng)
}

// ValidateCoordinate rejects NaN and out-of-range latitude/longitude values
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("%w: non-finite value (%v, %v)", ErrInvalidCoordinate, lat, lng)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinate, lng)
	}
	return nil
}
