package stats

import (
	"math"
	"sort"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

// PearsonCorrelation calculates the Pearson correlation coefficient between two variables
// Returns value between -1 and 1
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sumXY, sumX2, sumY2 float64
	for i := 0; i < len(x); i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumX2 += dx * dx
		sumY2 += dy * dy
	}

	if sumX2 == 0 || sumY2 == 0 {
		return 0
	}

	return sumXY / math.Sqrt(sumX2*sumY2)
}

// TopCorrelations groups entries by food label and reports the share of
// problem entries per label. Labels are ranked by how many entries use them,
// ties broken alphabetically; only the first n are returned.
func TopCorrelations(entries []models.Entry, n int) []models.FoodCorrelation {
	result := []models.FoodCorrelation{}
	if n <= 0 {
		return result
	}

	byFood := make(map[string]*models.FoodCorrelation)
	for _, e := range entries {
		if e.Food.IsEmpty() {
			continue
		}
		label := normalizeFood(e.Food)

		c, ok := byFood[label]
		if !ok {
			c = &models.FoodCorrelation{Food: label}
			byFood[label] = c
		}
		c.Total++
		if e.Category.IsProblem() {
			c.Problems++
		}
	}

	for _, c := range byFood {
		c.ProblemRate = SafePercent(c.Problems, c.Total)
		result = append(result, *c)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Food < result[j].Food
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}

// MealProblemCorrelation correlates hours-since-meal with the problem flag
// (point-biserial). Entries without a meal time are ignored.
func MealProblemCorrelation(entries []models.Entry) float64 {
	var hours, problem []float64
	for _, e := range entries {
		if e.HoursSinceMeal == nil {
			continue
		}
		hours = append(hours, *e.HoursSinceMeal)
		if e.Category.IsProblem() {
			problem = append(problem, 1)
		} else {
			problem = append(problem, 0)
		}
	}
	return PearsonCorrelation(hours, problem)
}
