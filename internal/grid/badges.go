package grid

// Badges returns the ladder, lowest threshold first
func (e *Engine) Badges() []Badge {
	out := make([]Badge, len(e.badges))
	copy(out, e.badges)
	return out
}

// UnlockedBadges returns every badge whose threshold is at most completed,
// lowest threshold first
func (e *Engine) UnlockedBadges(completed int) []Badge {
	unlocked := make([]Badge, 0, len(e.badges))
	for _, b := range e.badges {
		if completed >= b.Threshold {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}

// BadgeProgress is the next badge to unlock and the distance to it
type BadgeProgress struct {
	Badge
	Progress  int `json:"progress"`  // completed cells so far
	Remaining int `json:"remaining"` // cells still needed
}

// NextBadge returns the lowest badge not yet unlocked. ok is false once the
// whole ladder is unlocked.
func (e *Engine) NextBadge(completed int) (next BadgeProgress, ok bool) {
	for _, b := range e.badges {
		if completed < b.Threshold {
			return BadgeProgress{
				Badge:     b,
				Progress:  completed,
				Remaining: b.Threshold - completed,
			}, true
		}
	}
	return BadgeProgress{}, false
}

// UnlockKind tells a badge crossing apart from a plain cell completion
type UnlockKind string

// UnlockKind constants
const (
	UnlockBadge UnlockKind = "badge"
	UnlockCell  UnlockKind = "cell"
)

// Unlock is the event raised when progress moves forward
type Unlock struct {
	Kind   UnlockKind `json:"kind"`
	Badge  *Badge     `json:"badge,omitempty"`
	Name   string     `json:"name"`
	Icon   string     `json:"icon"`
	Points int        `json:"points"`
}

// DetectUnlock compares two completed-cell counts. A crossed badge threshold
// wins over the generic cell event; when several are crossed at once the
// lowest one is reported. ok is false when the count did not grow.
func (e *Engine) DetectUnlock(oldCompleted, newCompleted int) (u Unlock, ok bool) {
	if newCompleted <= oldCompleted {
		return Unlock{}, false
	}

	for _, b := range e.badges {
		if oldCompleted < b.Threshold && newCompleted >= b.Threshold {
			badge := b
			return Unlock{
				Kind:   UnlockBadge,
				Badge:  &badge,
				Name:   b.Name,
				Icon:   b.Icon,
				Points: b.Points,
			}, true
		}
	}

	return Unlock{
		Kind:   UnlockCell,
		Name:   "Zone completed",
		Icon:   "🎯",
		Points: e.cfg.PointsPerCell,
	}, true
}
