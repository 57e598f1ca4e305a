package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutRow is a row of the workouts table: one saved training session.
type WorkoutRow struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"user_id"`
	WorkoutDate time.Time `json:"workout_date"`
	CreatedAt   time.Time `json:"created_at"`
	DurationSec int       `json:"duration_sec"`
	Notes       string    `json:"notes,omitempty"`
}

// WorkoutExerciseRow is a row of workout_exercises: one exercise performed
// within a workout, ordered by ExerciseOrder.
type WorkoutExerciseRow struct {
	ID            uuid.UUID `json:"id"`
	WorkoutID     uuid.UUID `json:"workout_id"`
	ExerciseName  string    `json:"exercise_name"`
	ExerciseOrder int       `json:"exercise_order"`
	Notes         string    `json:"notes,omitempty"`
}

// WorkoutSetRow is a row of workout_sets: one logged set of an exercise.
type WorkoutSetRow struct {
	ID         int64     `json:"id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	SetNumber  int       `json:"set_number"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	IsWarmup   bool      `json:"is_warmup"`
}

// TemplateRow is a saved workout template: a named exercise sequence that
// can seed a new session.
type TemplateRow struct {
	ID        uuid.UUID          `json:"id"`
	UserID    int                `json:"user_id"`
	Name      string             `json:"name"`
	CreatedAt time.Time          `json:"created_at"`
	Exercises []TemplateExercise `json:"exercises"`
}

// TemplateExercise is one entry of a template's exercise list, stored as
// JSONB on the template row.
type TemplateExercise struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	DefaultRest int    `json:"default_rest_sec"`
}
