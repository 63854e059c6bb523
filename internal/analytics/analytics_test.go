package analytics

import (
	"testing"
	"time"

	"github.com/vie2206/levelup-backend/internal/models"
)

func testsWithScores(scores ...float64) []models.Test {
	tests := make([]models.Test, 0, len(scores))
	for i, s := range scores {
		tests = append(tests, models.Test{
			TestName: "mock",
			Score:    s,
			Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
		})
	}
	return tests
}

func TestImprovement(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   int
	}{
		{"no tests", nil, 0},
		{"single test", []float64{80}, 0},
		{"two tests, earlier window empty", []float64{60, 90}, 0},
		{"three tests, earlier window empty", []float64{60, 70, 80}, 0},
		{"steady improvement", []float64{60, 62, 64, 90, 92, 94}, 30},
		{"decline", []float64{90, 90, 90, 60, 60, 60}, -30},
		{"four tests", []float64{50, 80, 80, 80}, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Improvement(testsWithScores(tc.scores...))
			if got != tc.want {
				t.Fatalf("Improvement(%v) = %d, want %d", tc.scores, got, tc.want)
			}
		})
	}
}

func TestConsistency(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   string
	}{
		{"no tests", nil, LabelInsufficient},
		{"two tests", []float64{50, 90}, LabelInsufficient},
		{"identical scores", []float64{70, 70, 70}, LabelVeryConsistent},
		{"small spread", []float64{60, 70, 80}, LabelConsistent},
		{"moderate spread", []float64{60, 75, 90}, LabelModerate},
		{"wild spread", []float64{50, 90, 50, 90}, LabelNeedsFocus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Consistency(testsWithScores(tc.scores...))
			if got != tc.want {
				t.Fatalf("Consistency(%v) = %q, want %q", tc.scores, got, tc.want)
			}
		})
	}
}

func TestWeeklyProgressFiltersTrailingWeek(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []models.Test{
		{TestName: "old", Score: 50, Date: now.Add(-8 * 24 * time.Hour)},
		{TestName: "first", Score: 60, Date: now.Add(-6 * 24 * time.Hour)},
		{TestName: "second", Score: 70, Date: now.Add(-time.Hour)},
	}

	points := WeeklyProgress(tests, now)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	// Original submission order, no re-sort.
	if points[0].TestName != "first" || points[1].TestName != "second" {
		t.Fatalf("unexpected order: %+v", points)
	}
}

func TestWeeklyProgressEmptyHistory(t *testing.T) {
	points := WeeklyProgress(nil, time.Now())
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", points)
	}
}

func TestRecentTestsNewestFirst(t *testing.T) {
	tests := testsWithScores(10, 20, 30, 40, 50, 60, 70)

	recent := RecentTests(tests, 5)
	if len(recent) != 5 {
		t.Fatalf("expected 5 tests, got %d", len(recent))
	}
	if recent[0].Score != 70 || recent[4].Score != 30 {
		t.Fatalf("expected newest first, got %v then %v", recent[0].Score, recent[4].Score)
	}

	all := RecentTests(tests[:2], 5)
	if len(all) != 2 || all[0].Score != 20 {
		t.Fatalf("short history should return everything newest first, got %+v", all)
	}
}
