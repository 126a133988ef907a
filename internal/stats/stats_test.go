package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

var cet = time.FixedZone("CET", 3600)

// Monday afternoon
var now = time.Date(2025, time.March, 10, 15, 0, 0, 0, cet)

func entryAt(id string, ts time.Time, c models.Category, food string) models.Entry {
	return models.Entry{
		ID:        id,
		Timestamp: ts,
		Category:  c,
		Food:      models.FoodLabel(food),
		IsManual:  true,
	}
}

func ids(entries []models.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func hours(h float64) *float64 { return &h }

func TestApplyFilters_Identity(t *testing.T) {
	entries := []models.Entry{
		entryAt("a", now.Add(-time.Hour), models.CategoryNormal, "kibble"),
		entryAt("b", now.AddDate(0, -3, 0), models.CategoryBlood, ""),
		entryAt("c", now.AddDate(-1, 0, 0), models.CategorySoft, "rice"),
	}

	assert.Equal(t, entries, ApplyFilters(entries, models.AllFilter, now))
	assert.Equal(t, entries, ApplyFilters(entries, models.FilterSpec{}, now))
	assert.Empty(t, ApplyFilters(nil, models.AllFilter, now))
}

func TestApplyFilters_Periods(t *testing.T) {
	entries := []models.Entry{
		entryAt("today", now.Add(-2*time.Hour), models.CategoryNormal, ""),
		entryAt("yesterday", now.AddDate(0, 0, -1), models.CategoryNormal, ""),
		entryAt("eight-days", now.AddDate(0, 0, -8), models.CategoryNormal, ""),
	}

	tests := []struct {
		period models.Period
		want   []string
	}{
		{models.PeriodToday, []string{"today"}},
		{models.PeriodYesterday, []string{"yesterday"}},
		{models.PeriodWeek, []string{"today", "yesterday"}},
		{models.PeriodMonth, []string{"today", "yesterday", "eight-days"}},
		{models.PeriodAll, []string{"today", "yesterday", "eight-days"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			spec := models.FilterSpec{Period: tt.period, Category: models.FilterAll, Food: models.FilterAll}
			assert.Equal(t, tt.want, ids(ApplyFilters(entries, spec, now)))
		})
	}
}

func TestApplyFilters_CalendarDayBoundary(t *testing.T) {
	justAfterMidnight := time.Date(2025, time.March, 10, 0, 30, 0, 0, cet)
	lateYesterday := entryAt("late", time.Date(2025, time.March, 9, 23, 50, 0, 0, cet), models.CategoryNormal, "")
	// same instant as 23:30 CET on the 9th, expressed in UTC
	utcEntry := entryAt("utc", time.Date(2025, time.March, 9, 22, 30, 0, 0, time.UTC), models.CategoryNormal, "")
	entries := []models.Entry{lateYesterday, utcEntry}

	today := models.FilterSpec{Period: models.PeriodToday}
	yesterday := models.FilterSpec{Period: models.PeriodYesterday}

	assert.Empty(t, ApplyFilters(entries, today, justAfterMidnight), "40 minutes ago is not today")
	assert.Equal(t, []string{"late", "utc"}, ids(ApplyFilters(entries, yesterday, justAfterMidnight)))
}

func TestApplyFilters_WeekIsRolling(t *testing.T) {
	exactlySeven := entryAt("edge", now.AddDate(0, 0, -7), models.CategoryNormal, "")
	justBefore := entryAt("before", now.AddDate(0, 0, -7).Add(-time.Minute), models.CategoryNormal, "")

	spec := models.FilterSpec{Period: models.PeriodWeek}
	assert.Equal(t, []string{"edge"}, ids(ApplyFilters([]models.Entry{exactlySeven, justBefore}, spec, now)))
}

func TestApplyFilters_PredicatesAreANDed(t *testing.T) {
	entries := []models.Entry{
		entryAt("1", now.Add(-time.Hour), models.CategorySoft, "kibble"),
		entryAt("2", now.Add(-time.Hour), models.CategorySoft, "rice"),
		entryAt("3", now.Add(-time.Hour), models.CategoryNormal, "kibble"),
		entryAt("4", now.AddDate(0, 0, -3), models.CategorySoft, " kibble "),
	}

	spec := models.FilterSpec{Period: models.PeriodAll, Category: models.CategorySoft, Food: "kibble"}
	assert.Equal(t, []string{"1", "4"}, ids(ApplyFilters(entries, spec, now)))

	spec.Period = models.PeriodToday
	assert.Equal(t, []string{"1"}, ids(ApplyFilters(entries, spec, now)))

	spec = models.FilterSpec{Category: models.CategoryBlood}
	assert.Empty(t, ApplyFilters(entries, spec, now))
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	entries := []models.Entry{
		entryAt("1", now, models.CategorySoft, ""),
		entryAt("2", now, models.CategoryNormal, ""),
	}
	before := append([]models.Entry(nil), entries...)

	out := ApplyFilters(entries, models.FilterSpec{Category: models.CategoryNormal}, now)
	require.Len(t, out, 1)
	assert.Equal(t, before, entries)
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil)

	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Foods)
	assert.Zero(t, s.NormalRate)
	assert.Zero(t, s.ProblemRate)
	assert.Zero(t, s.MeanHoursSinceMeal)
	assert.Zero(t, s.MealProblemCorrelation)
}

func TestCalculate(t *testing.T) {
	entries := []models.Entry{
		entryAt("1", now, models.CategoryNormal, "kibble"),
		entryAt("2", now, models.CategoryNormal, "kibble"),
		entryAt("3", now, models.CategoryDiarrhea, "rice"),
		entryAt("4", now, models.CategoryHard, ""),
	}
	entries[0].HoursSinceMeal = hours(2)
	entries[1].HoursSinceMeal = hours(4)
	entries[2].HoursSinceMeal = hours(9)

	s := Calculate(entries)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Normal)
	assert.Equal(t, 2, s.Problems)
	assert.Equal(t, 50.0, s.ProblemRate)
	assert.Equal(t, map[models.Category]int{
		models.CategoryNormal:   2,
		models.CategoryDiarrhea: 1,
		models.CategoryHard:     1,
	}, s.Categories)
	assert.Equal(t, map[string]int{"kibble": 2, "rice": 1}, s.Foods)
	assert.Equal(t, 3, s.MealSamples)
	assert.InDelta(t, 5.0, s.MeanHoursSinceMeal, 1e-9)
	assert.InDelta(t, 4.0, s.MedianHoursSinceMeal, 1e-9)
	assert.Greater(t, s.MealProblemCorrelation, 0.9)
}

func TestTimeSeries(t *testing.T) {
	entries := []models.Entry{
		entryAt("today-ok", now.Add(-time.Hour), models.CategoryNormal, ""),
		entryAt("today-bad", now.Add(-2*time.Hour), models.CategoryMucus, ""),
		entryAt("two-days", now.AddDate(0, 0, -2), models.CategorySoft, ""),
		entryAt("too-old", now.AddDate(0, 0, -7), models.CategoryNormal, ""),
	}

	series := TimeSeries(entries, 7, now)
	require.Len(t, series, 7)
	assert.Equal(t, "2025-03-04", series[0].Date)
	assert.Equal(t, "2025-03-10", series[6].Date)

	assert.Equal(t, models.DayBucket{Date: "2025-03-10", Normal: 1, Problems: 1}, series[6])
	assert.Equal(t, models.DayBucket{Date: "2025-03-08", Problems: 1}, series[4])
	assert.Equal(t, models.DayBucket{Date: "2025-03-05"}, series[1])

	total := 0
	for _, b := range series {
		total += b.Normal + b.Problems
	}
	assert.Equal(t, 3, total)
}

func TestTimeSeries_Degenerate(t *testing.T) {
	assert.Empty(t, TimeSeries(nil, 0, now))
	assert.Empty(t, TimeSeries(nil, -3, now))

	series := TimeSeries(nil, 3, now)
	require.Len(t, series, 3)
	for _, b := range series {
		assert.Zero(t, b.Normal+b.Problems)
	}
}

func TestTopCorrelations(t *testing.T) {
	var entries []models.Entry
	for i := 0; i < 10; i++ {
		c := models.CategoryNormal
		if i < 3 {
			c = models.CategorySoft
		}
		entries = append(entries, entryAt(fmt.Sprintf("k%d", i), now, c, "kibble"))
	}
	entries = append(entries,
		entryAt("r1", now, models.CategoryBlood, "rice"),
		entryAt("r2", now, models.CategoryBlood, "rice"),
		entryAt("b1", now, models.CategoryNormal, "beef"),
		entryAt("b2", now, models.CategoryNormal, "beef "),
		entryAt("none", now, models.CategoryBlood, ""),
	)

	top := TopCorrelations(entries, 5)
	require.Len(t, top, 3)

	assert.Equal(t, models.FoodCorrelation{Food: "kibble", Total: 10, Problems: 3, ProblemRate: 30}, top[0])
	// equal totals are ordered by label
	assert.Equal(t, "beef", top[1].Food)
	assert.Equal(t, 0.0, top[1].ProblemRate)
	assert.Equal(t, "rice", top[2].Food)
	assert.Equal(t, 100.0, top[2].ProblemRate)

	assert.Len(t, TopCorrelations(entries, 1), 1)
	assert.Empty(t, TopCorrelations(entries, 0))
}

func TestTopCorrelations_Empty(t *testing.T) {
	top := TopCorrelations(nil, 10)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestRecentEntries(t *testing.T) {
	entries := []models.Entry{
		entryAt("old", now.AddDate(0, 0, -5), models.CategoryNormal, ""),
		entryAt("new", now.Add(-time.Minute), models.CategoryNormal, ""),
		entryAt("backdated", now.AddDate(0, 0, -10), models.CategoryNormal, ""),
		entryAt("twin-a", now.Add(-time.Hour), models.CategoryNormal, ""),
		entryAt("twin-b", now.Add(-time.Hour), models.CategoryNormal, ""),
	}

	assert.Equal(t, []string{"new", "twin-b", "twin-a", "old", "backdated"}, ids(RecentEntries(entries, 10)))
	assert.Equal(t, []string{"new", "twin-b"}, ids(RecentEntries(entries, 2)))
	assert.Len(t, RecentEntries(entries, 0), 5)
	assert.Empty(t, RecentEntries(nil, 3))
}

func TestReport(t *testing.T) {
	entries := []models.Entry{
		entryAt("1", now.Add(-time.Hour), models.CategoryNormal, "kibble"),
		entryAt("2", now.AddDate(0, 0, -20), models.CategorySoft, "rice"),
	}

	r := Report(entries, models.FilterSpec{Period: models.PeriodWeek}, now)
	assert.Equal(t, "Last 7 days", r.PeriodLabel)
	assert.Equal(t, 1, r.Statistics.Total)
	assert.Len(t, r.TimeSeries, ReportSeriesDays)
	require.Len(t, r.Correlations, 1)
	assert.Equal(t, "kibble", r.Correlations[0].Food)
	assert.Equal(t, []string{"1"}, ids(r.Recent))
	require.NotNil(t, r.From)
	assert.Equal(t, now.AddDate(0, 0, -7), *r.From)

	all := Report(entries, models.AllFilter, now)
	assert.Nil(t, all.From)
	assert.Equal(t, 2, all.Statistics.Total)
}

func TestSafePercent(t *testing.T) {
	assert.Equal(t, 0.0, SafePercent(0, 0))
	assert.Equal(t, 0.0, SafePercent(3, 0))
	assert.Equal(t, 30.0, SafePercent(3, 10))
}
