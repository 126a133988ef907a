package grid

// Tier is the display band of a cell, keyed by entry count
type Tier string

// Tier constants
const (
	TierNone         Tier = "none"
	TierStarted      Tier = "started"
	TierInProgress   Tier = "in_progress"
	TierNearComplete Tier = "near_complete"
	TierFull         Tier = "full"
)

// Lower bounds of the intermediate bands
const (
	nearCompleteFrom = 16
	inProgressFrom   = 6
	startedFrom      = 1
)

// Tier maps an entry count onto its display band. The full band starts at
// the completion threshold.
func (e *Engine) Tier(count int) Tier {
	switch {
	case count >= e.cfg.CompletionThreshold:
		return TierFull
	case count >= nearCompleteFrom:
		return TierNearComplete
	case count >= inProgressFrom:
		return TierInProgress
	case count >= startedFrom:
		return TierStarted
	default:
		return TierNone
	}
}
