package stats

import (
	"time"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

// Report sizing
const (
	ReportSeriesDays   = 30
	ReportCorrelations = 10
	ReportRecent       = 10
)

// Report filters the collection once and derives every view of the report
// screen from that single filtered snapshot
func Report(entries []models.Entry, spec models.FilterSpec, now time.Time) models.Report {
	filtered := ApplyFilters(entries, spec, now)

	r := models.Report{
		GeneratedAt:  now,
		Filter:       spec,
		PeriodLabel:  spec.Period.Label(),
		Statistics:   Calculate(filtered),
		TimeSeries:   TimeSeries(filtered, ReportSeriesDays, now),
		Correlations: TopCorrelations(filtered, ReportCorrelations),
		Recent:       RecentEntries(filtered, ReportRecent),
	}
	if from, to, ok := PeriodRange(spec.Period, now); ok {
		r.From, r.To = &from, &to
	}
	return r
}
