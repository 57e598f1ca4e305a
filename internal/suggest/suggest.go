// Package suggest produces progression recommendations for an exercise
// from its most recent logged workout.
package suggest

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Progression classifies the recommended next step.
type Progression string

const (
	IncreaseWeight Progression = "increase-weight"
	IncreaseReps   Progression = "increase-reps"
	Maintain       Progression = "maintain"
	Deload         Progression = "deload"
	NoData         Progression = "no-data"
)

// Set is a previously logged set considered for the recommendation.
type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Warmup bool    `json:"is_warmup"`
}

// Suggestion is the recommendation for the next session of an exercise.
type Suggestion struct {
	Exercise       string      `json:"exercise"`
	LastWorkout    *time.Time  `json:"last_workout,omitempty"`
	LastSets       []Set       `json:"last_sets,omitempty"`
	Recommendation string      `json:"recommendation"`
	Progression    Progression `json:"progression"`
}

// upperBodyExercises get 5–10 lb jumps; small-muscle isolation work gets 2.5.
var (
	upperBodyExercises = []string{
		"Bench Press", "Incline Bench", "Incline Press",
		"Overhead Press", "Rows", "Single Arm Rows",
	}
	smallMuscleExercises = []string{"Curls", "Tricep Extensions", "Lateral Raises"}
)

// WeightIncrement returns the recommended jump for an exercise at the
// given working weight.
func WeightIncrement(exercise string, current float64) float64 {
	for _, e := range smallMuscleExercises {
		if strings.Contains(exercise, e) {
			return 2.5
		}
	}
	for _, e := range upperBodyExercises {
		if strings.Contains(exercise, e) {
			if current < 100 {
				return 5
			}
			return 10
		}
	}
	if current < 200 {
		return 10
	}
	return 20
}

// NoHistory returns the suggestion for an exercise with no logged workouts.
func NoHistory(exercise string) Suggestion {
	return Suggestion{
		Exercise:       exercise,
		Recommendation: "No previous workout data. Start with a comfortable weight.",
		Progression:    NoData,
	}
}

// ForExercise builds a recommendation from the most recent workout's sets.
// The band is keyed on whole days since that workout; warm-up sets are
// excluded from the max-weight calculation.
func ForExercise(exercise string, lastWorkout time.Time, sets []Set, now time.Time) Suggestion {
	working := sets[:0:0]
	for _, s := range sets {
		if !s.Warmup {
			working = append(working, s)
		}
	}
	if len(working) == 0 {
		return Suggestion{
			Exercise:       exercise,
			Recommendation: "No set data found from last workout.",
			Progression:    NoData,
		}
	}

	maxWeight := working[0].Weight
	for _, s := range working[1:] {
		if s.Weight > maxWeight {
			maxWeight = s.Weight
		}
	}

	daysSince := int(now.Sub(lastWorkout).Hours() / 24)

	sug := Suggestion{
		Exercise:    exercise,
		LastWorkout: &lastWorkout,
		LastSets:    sets,
	}

	switch {
	case daysSince <= 0:
		sug.Recommendation = "You already worked out today! Consider resting or doing different muscle groups."
		sug.Progression = Maintain
	case daysSince <= 3:
		sug.Recommendation = fmt.Sprintf(
			"Last workout: %d days ago. Maintain %s lbs or add 1-2 reps.",
			daysSince, formatWeight(maxWeight))
		sug.Progression = IncreaseReps
	case daysSince <= 7:
		inc := WeightIncrement(exercise, maxWeight)
		sug.Recommendation = fmt.Sprintf(
			"Last workout: %d days ago. Try adding %s lbs (%s → %s lbs).",
			daysSince, formatWeight(inc), formatWeight(maxWeight), formatWeight(maxWeight+inc))
		sug.Progression = IncreaseWeight
	case daysSince <= 14:
		sug.Recommendation = fmt.Sprintf(
			"Last workout: %d days ago. Start with your previous weight: %s lbs.",
			daysSince, formatWeight(maxWeight))
		sug.Progression = Maintain
	default:
		deload := math.Round(maxWeight*0.9/5) * 5
		sug.Recommendation = fmt.Sprintf(
			"Last workout: %d days ago. Consider deloading to %s lbs (90%% of %s lbs).",
			daysSince, formatWeight(deload), formatWeight(maxWeight))
		sug.Progression = Deload
	}
	return sug
}

// formatWeight prints whole pounds without a decimal point, fractional
// jumps (2.5) with one.
func formatWeight(w float64) string {
	if w == math.Trunc(w) {
		return fmt.Sprintf("%.0f", w)
	}
	return fmt.Sprintf("%.1f", w)
}
