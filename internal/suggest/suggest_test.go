package suggest

import (
	"strings"
	"testing"
	"time"
)

var now = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

// TestWeightIncrement verifies the per-exercise jump table.
func TestWeightIncrement(t *testing.T) {
	tests := []struct {
		exercise string
		current  float64
		want     float64
	}{
		{"Curls", 40, 2.5},
		{"Tricep Extensions", 60, 2.5},
		{"Bench Press", 95, 5},
		{"Bench Press", 185, 10},
		{"Single Arm Rows", 80, 5},
		{"Squats", 135, 10},
		{"Deadlifts", 315, 20},
	}
	for _, tc := range tests {
		if got := WeightIncrement(tc.exercise, tc.current); got != tc.want {
			t.Errorf("WeightIncrement(%q, %v) = %v, want %v", tc.exercise, tc.current, got, tc.want)
		}
	}
}

// TestProgressionBands verifies the days-since bands map to the expected
// progression types.
func TestProgressionBands(t *testing.T) {
	sets := []Set{{Weight: 135, Reps: 5}, {Weight: 145, Reps: 3}}
	tests := []struct {
		days int
		want Progression
	}{
		{0, Maintain},
		{2, IncreaseReps},
		{5, IncreaseWeight},
		{10, Maintain},
		{21, Deload},
	}
	for _, tc := range tests {
		sug := ForExercise("Bench Press", daysAgo(tc.days), sets, now)
		if sug.Progression != tc.want {
			t.Errorf("days=%d progression = %v, want %v", tc.days, sug.Progression, tc.want)
		}
	}
}

// TestIncreaseWeightRecommendation verifies the increment appears in the
// recommendation text.
func TestIncreaseWeightRecommendation(t *testing.T) {
	sets := []Set{{Weight: 135, Reps: 5}}
	sug := ForExercise("Bench Press", daysAgo(5), sets, now)
	if !strings.Contains(sug.Recommendation, "135 → 145") {
		t.Errorf("recommendation %q missing 135 → 145", sug.Recommendation)
	}
}

// TestDeloadRoundsToFives verifies the deload target is 90% rounded to the
// nearest 5 lbs.
func TestDeloadRoundsToFives(t *testing.T) {
	sets := []Set{{Weight: 225, Reps: 5}}
	sug := ForExercise("Squats", daysAgo(30), sets, now)
	// 225 * 0.9 = 202.5 → nearest 5 lb step is 205.
	if !strings.Contains(sug.Recommendation, "205") {
		t.Errorf("recommendation %q missing deload weight 205", sug.Recommendation)
	}
	if sug.Progression != Deload {
		t.Errorf("progression = %v, want deload", sug.Progression)
	}
}

// TestWarmupsExcluded verifies warm-up sets do not raise the max weight.
func TestWarmupsExcluded(t *testing.T) {
	sets := []Set{
		{Weight: 185, Reps: 8, Warmup: true},
		{Weight: 135, Reps: 5},
	}
	sug := ForExercise("Bench Press", daysAgo(10), sets, now)
	if !strings.Contains(sug.Recommendation, "135") || strings.Contains(sug.Recommendation, "185") {
		t.Errorf("recommendation %q should use working max 135, not warm-up 185", sug.Recommendation)
	}
}

// TestNoData verifies the empty-history paths.
func TestNoData(t *testing.T) {
	sug := NoHistory("Bench Press")
	if sug.Progression != NoData {
		t.Errorf("progression = %v, want no-data", sug.Progression)
	}

	onlyWarmups := []Set{{Weight: 95, Reps: 10, Warmup: true}}
	sug = ForExercise("Bench Press", daysAgo(3), onlyWarmups, now)
	if sug.Progression != NoData {
		t.Errorf("progression with only warm-ups = %v, want no-data", sug.Progression)
	}
}
