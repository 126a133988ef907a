package stats

import (
	"strings"
	"time"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

// ApplyFilters returns the entries matching every active predicate of spec,
// in their original order. The input slice is never modified.
func ApplyFilters(entries []models.Entry, spec models.FilterSpec, now time.Time) []models.Entry {
	if spec.IsAll() {
		out := make([]models.Entry, len(entries))
		copy(out, entries)
		return out
	}

	filtered := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, spec, now) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Matches reports whether a single entry passes every active predicate
func Matches(e models.Entry, spec models.FilterSpec, now time.Time) bool {
	if spec.CategoryActive() && e.Category != spec.Category {
		return false
	}
	if spec.FoodActive() && normalizeFood(e.Food) != strings.TrimSpace(spec.Food) {
		return false
	}
	if spec.PeriodActive() && !InPeriod(e.Timestamp, spec.Period, now) {
		return false
	}
	return true
}

func normalizeFood(f models.FoodLabel) string {
	return strings.TrimSpace(string(f))
}
