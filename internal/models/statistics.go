package models

import "time"

// Statistics aggregates a (usually filtered) entry collection
type Statistics struct {
	Total       int              `json:"total"`
	Normal      int              `json:"normal"`
	Problems    int              `json:"problems"`
	NormalRate  float64          `json:"normal_rate"`  // percent
	ProblemRate float64          `json:"problem_rate"` // percent
	Categories  map[Category]int `json:"categories"`
	Foods       map[string]int   `json:"foods"`

	// Hours since last feeding, over entries that recorded it
	MealSamples          int     `json:"meal_samples"`
	MeanHoursSinceMeal   float64 `json:"mean_hours_since_meal"`
	MedianHoursSinceMeal float64 `json:"median_hours_since_meal"`

	// Point-biserial correlation of meal delay with problem outcomes, -1..1
	MealProblemCorrelation float64 `json:"meal_problem_correlation"`
}

// DayBucket is one calendar day of the time series
type DayBucket struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Normal   int    `json:"normal"`
	Problems int    `json:"problems"`
}

// FoodCorrelation relates a food label to the share of problem entries
type FoodCorrelation struct {
	Food        string  `json:"food"`
	Total       int     `json:"total"`
	Problems    int     `json:"problems"`
	ProblemRate float64 `json:"problem_rate"` // percent
}

// Report bundles every view the report/export screen needs
type Report struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	Filter       FilterSpec        `json:"filter"`
	PeriodLabel  string            `json:"period_label"`
	From         *time.Time        `json:"from,omitempty"`
	To           *time.Time        `json:"to,omitempty"`
	Statistics   Statistics        `json:"statistics"`
	TimeSeries   []DayBucket       `json:"time_series"`
	Correlations []FoodCorrelation `json:"correlations"`
	Recent       []Entry           `json:"recent"`
}
