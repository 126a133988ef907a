package models

import (
	"fmt"
	"strings"
)

// FilterAll is the selector value that disables a predicate
const FilterAll = "all"

// Period selects a time window relative to now
type Period string

// Period constants
const (
	PeriodAll       Period = "all"
	PeriodToday     Period = "today"
	PeriodYesterday Period = "yesterday"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
)

var periodLabels = map[Period]string{
	PeriodAll:       "All entries",
	PeriodToday:     "Today",
	PeriodYesterday: "Yesterday",
	PeriodWeek:      "Last 7 days",
	PeriodMonth:     "Last month",
}

// ParsePeriod converts a raw selector. Empty means all.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PeriodAll, nil
	}
	if _, ok := periodLabels[p]; !ok {
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidFilter, s)
	}
	return p, nil
}

// Label returns a human readable name for reports
func (p Period) Label() string {
	if l, ok := periodLabels[p]; ok {
		return l
	}
	return periodLabels[PeriodAll]
}

// FilterSpec is the (time window, category, food label) selector tuple.
// Zero values and "all" disable the corresponding predicate.
type FilterSpec struct {
	Period   Period   `json:"period"`
	Category Category `json:"category"`
	Food     string   `json:"food"`
}

// AllFilter matches every entry
var AllFilter = FilterSpec{Period: PeriodAll, Category: FilterAll, Food: FilterAll}

// IsAll reports whether every predicate is disabled
func (f FilterSpec) IsAll() bool {
	return isAll(string(f.Period)) && isAll(string(f.Category)) && isAll(f.Food)
}

func isAll(s string) bool {
	return s == "" || s == FilterAll
}

// PeriodActive reports whether the time-window predicate is enabled
func (f FilterSpec) PeriodActive() bool { return !isAll(string(f.Period)) }

// CategoryActive reports whether the category predicate is enabled
func (f FilterSpec) CategoryActive() bool { return !isAll(string(f.Category)) }

// FoodActive reports whether the food predicate is enabled
func (f FilterSpec) FoodActive() bool { return !isAll(f.Food) }

// EntryFilter represents filter parameters for querying entries
type EntryFilter struct {
	Period   string `form:"period"`   // all, today, yesterday, week, month
	Category string `form:"category"` // all or a category name
	Food     string `form:"food"`     // all or an exact food label
}

// ToSpec validates the query parameters
func (q EntryFilter) ToSpec() (FilterSpec, error) {
	period, err := ParsePeriod(q.Period)
	if err != nil {
		return FilterSpec{}, err
	}

	spec := FilterSpec{Period: period, Category: FilterAll, Food: FilterAll}
	if !isAll(strings.TrimSpace(q.Category)) {
		c, err := ParseCategory(q.Category)
		if err != nil {
			return FilterSpec{}, fmt.Errorf("%w: unknown category %q", ErrInvalidFilter, q.Category)
		}
		spec.Category = c
	}
	if food := strings.TrimSpace(q.Food); !isAll(food) {
		spec.Food = food
	}
	return spec, nil
}
