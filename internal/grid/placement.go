package grid

import (
	"math"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/spatial"
)

// Placement is the outcome of a free-slot search
type Placement struct {
	Position models.Position `json:"position"`

	// CollisionAvoided is false when every attempt was taken and Position is
	// the original, possibly overlapping, candidate
	CollisionAvoided bool `json:"collision_avoided"`

	Attempts     int     `json:"attempts"`
	OffsetMeters float64 `json:"offset_meters"`
}

// FindFreePosition looks for a spot near candidate that keeps the minimum
// spacing from every positioned entry. The candidate itself is tried first,
// then points on a widening ring around it. Ring points that leave the valid
// coordinate range are skipped. The search never fails: when no spot is free
// it returns the candidate with CollisionAvoided unset.
func (e *Engine) FindFreePosition(candidate models.Position, existing []models.Entry) Placement {
	minSpacing := e.cfg.MinSpacingDegrees
	attempts := e.cfg.PlacementAttempts

	for i := 0; i < attempts; i++ {
		probe := candidate
		if i > 0 {
			angle := float64(i) / float64(attempts) * 2 * math.Pi
			radius := minSpacing * (1 + float64(i)*0.3)
			probe = spatial.PolarOffset(candidate, angle, radius)
			if probe.Validate() != nil {
				continue
			}
		}

		if isFree(probe, existing, minSpacing) {
			return Placement{
				Position:         probe,
				CollisionAvoided: true,
				Attempts:         i + 1,
				OffsetMeters:     spatial.DistanceMeters(candidate, probe),
			}
		}
	}

	return Placement{
		Position:         candidate,
		CollisionAvoided: false,
		Attempts:         attempts,
	}
}

func isFree(p models.Position, existing []models.Entry, minSpacing float64) bool {
	for _, entry := range existing {
		if !entry.HasPosition() {
			continue
		}
		if spatial.DegreeDistance(*entry.Position, p) < minSpacing {
			return false
		}
	}
	return true
}
