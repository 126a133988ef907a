package stats

import (
	"sort"
	"time"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

// Calculate aggregates the given entries. It does no filtering of its own;
// pass the output of ApplyFilters for a filtered view.
func Calculate(entries []models.Entry) models.Statistics {
	s := models.Statistics{
		Total:      len(entries),
		Categories: make(map[models.Category]int),
		Foods:      make(map[string]int),
	}

	var mealHours []float64
	for _, e := range entries {
		if e.Category.IsProblem() {
			s.Problems++
		} else {
			s.Normal++
		}
		s.Categories[e.Category]++

		if !e.Food.IsEmpty() {
			s.Foods[normalizeFood(e.Food)]++
		}
		if e.HoursSinceMeal != nil {
			mealHours = append(mealHours, *e.HoursSinceMeal)
		}
	}

	s.NormalRate = SafePercent(s.Normal, s.Total)
	s.ProblemRate = SafePercent(s.Problems, s.Total)

	s.MealSamples = len(mealHours)
	s.MeanHoursSinceMeal = Mean(mealHours)
	s.MedianHoursSinceMeal = Median(mealHours)
	s.MealProblemCorrelation = MealProblemCorrelation(entries)

	return s
}

// TimeSeries builds one bucket per calendar day for the trailing windowDays
// days ending today, oldest first. Days without entries are present with
// zero counts; entries outside the window are ignored.
func TimeSeries(entries []models.Entry, windowDays int, now time.Time) []models.DayBucket {
	buckets := []models.DayBucket{}
	if windowDays <= 0 {
		return buckets
	}

	loc := now.Location()
	today := StartOfDay(now)
	index := make(map[string]int, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		key := DayKey(today.AddDate(0, 0, -i), loc)
		index[key] = len(buckets)
		buckets = append(buckets, models.DayBucket{Date: key})
	}

	for _, e := range entries {
		i, ok := index[DayKey(e.Timestamp, loc)]
		if !ok {
			continue
		}
		if e.Category.IsProblem() {
			buckets[i].Problems++
		} else {
			buckets[i].Normal++
		}
	}
	return buckets
}

// DefaultRecentLimit is the size of the recent-activity list
const DefaultRecentLimit = 10

// RecentEntries returns the newest limit entries, newest first. Entries with
// equal timestamps keep reverse insertion order.
func RecentEntries(entries []models.Entry, limit int) []models.Entry {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	recent := make([]models.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		recent = append(recent, entries[i])
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp.After(recent[j].Timestamp)
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
