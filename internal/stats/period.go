package stats

import (
	"time"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey formats the calendar day of t in loc as YYYY-MM-DD
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// InPeriod reports whether ts falls inside the window selected by p.
// today and yesterday compare calendar days in now's location; week and
// month are rolling windows ending at now.
func InPeriod(ts time.Time, p models.Period, now time.Time) bool {
	loc := now.Location()
	switch p {
	case models.PeriodToday:
		return SameDay(ts, now, loc)
	case models.PeriodYesterday:
		return SameDay(ts, now.AddDate(0, 0, -1), loc)
	case models.PeriodWeek:
		return !ts.Before(now.AddDate(0, 0, -7))
	case models.PeriodMonth:
		return !ts.Before(now.AddDate(0, -1, 0))
	default:
		return true
	}
}

// PeriodRange returns the window selected by p, for report headers.
// ok is false for the unbounded period.
func PeriodRange(p models.Period, now time.Time) (from, to time.Time, ok bool) {
	switch p {
	case models.PeriodToday:
		return StartOfDay(now), now, true
	case models.PeriodYesterday:
		y := now.AddDate(0, 0, -1)
		return StartOfDay(y), EndOfDay(y), true
	case models.PeriodWeek:
		return now.AddDate(0, 0, -7), now, true
	case models.PeriodMonth:
		return now.AddDate(0, -1, 0), now, true
	default:
		return time.Time{}, time.Time{}, false
	}
}
