package analytics

import (
	"math"
	"time"

	"github.com/vie2206/levelup-backend/internal/models"
)

// Consistency labels, keyed off the population standard deviation of all scores.
const (
	LabelInsufficient   = "Insufficient Data"
	LabelVeryConsistent = "Very Consistent"
	LabelConsistent     = "Consistent"
	LabelModerate       = "Moderately Consistent"
	LabelNeedsFocus     = "Needs Focus"
)

// ProgressPoint is one recent submission in the weekly progress view.
type ProgressPoint struct {
	Date     time.Time `json:"date"`
	Score    float64   `json:"score"`
	TestName string    `json:"testName"`
}

// Improvement compares the mean of the last three tests against the mean of
// everything before that window, rounded. Returns 0 when there are fewer
// than two tests or no earlier window to compare against.
func Improvement(tests []models.Test) int {
	if len(tests) < 2 {
		return 0
	}
	cut := len(tests) - 3
	if cut <= 0 {
		return 0
	}
	recent := mean(tests[cut:])
	earlier := mean(tests[:cut])
	return int(math.Round(recent - earlier))
}

// Consistency maps the score spread to a categorical label.
func Consistency(tests []models.Test) string {
	if len(tests) < 3 {
		return LabelInsufficient
	}
	sd := stddev(tests)
	switch {
	case sd < 5:
		return LabelVeryConsistent
	case sd < 10:
		return LabelConsistent
	case sd < 15:
		return LabelModerate
	default:
		return LabelNeedsFocus
	}
}

// WeeklyProgress returns the tests submitted in the trailing seven days,
// in their original submission order.
func WeeklyProgress(tests []models.Test, now time.Time) []ProgressPoint {
	cutoff := now.Add(-7 * 24 * time.Hour)
	points := []ProgressPoint{}
	for _, t := range tests {
		if t.Date.After(cutoff) {
			points = append(points, ProgressPoint{Date: t.Date, Score: t.Score, TestName: t.TestName})
		}
	}
	return points
}

// RecentTests returns up to n tests, newest first.
func RecentTests(tests []models.Test, n int) []models.Test {
	if n > len(tests) {
		n = len(tests)
	}
	out := make([]models.Test, 0, n)
	for i := len(tests) - 1; i >= len(tests)-n; i-- {
		out = append(out, tests[i])
	}
	return out
}

func mean(tests []models.Test) float64 {
	if len(tests) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range tests {
		sum += t.Score
	}
	return sum / float64(len(tests))
}

// stddev is the population standard deviation of all scores.
func stddev(tests []models.Test) float64 {
	m := mean(tests)
	variance := 0.0
	for _, t := range tests {
		d := t.Score - m
		variance += d * d
	}
	variance /= float64(len(tests))
	return math.Sqrt(variance)
}
