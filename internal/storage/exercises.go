package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bradpignatello/wellivian/internal/models"
)

// ExerciseOccurrence is one workout in which an exercise was performed.
type ExerciseOccurrence struct {
	WorkoutID   uuid.UUID              `json:"workout_id"`
	WorkoutDate time.Time              `json:"workout_date"`
	Notes       string                 `json:"notes,omitempty"`
	Sets        []models.WorkoutSetRow `json:"sets"`
}

// ExerciseHistory retrieves the most recent occurrences of an exercise,
// newest first, each with its sets in logged order.
func (db *DB) ExerciseHistory(ctx context.Context, userID int, exercise string, limit int) ([]ExerciseOccurrence, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT w.id, w.workout_date, we.id, COALESCE(we.notes, '')
		 FROM workout_exercises we
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = $1 AND we.exercise_name = $2
		 ORDER BY w.workout_date DESC, w.created_at DESC
		 LIMIT $3`,
		userID, exercise, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	var occurrences []ExerciseOccurrence
	var exerciseIDs []uuid.UUID
	for rows.Next() {
		var occ ExerciseOccurrence
		var exID uuid.UUID
		if err := rows.Scan(&occ.WorkoutID, &occ.WorkoutDate, &exID, &occ.Notes); err != nil {
			return nil, fmt.Errorf("scanning exercise history: %w", err)
		}
		occurrences = append(occurrences, occ)
		exerciseIDs = append(exerciseIDs, exID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, exID := range exerciseIDs {
		setRows, err := db.Pool.Query(ctx,
			`SELECT id, exercise_id, set_number, weight, reps, is_warmup
			 FROM workout_sets
			 WHERE exercise_id = $1
			 ORDER BY set_number ASC`,
			exID)
		if err != nil {
			return nil, fmt.Errorf("querying history sets: %w", err)
		}
		for setRows.Next() {
			var s models.WorkoutSetRow
			if err := setRows.Scan(&s.ID, &s.ExerciseID, &s.SetNumber, &s.Weight, &s.Reps, &s.IsWarmup); err != nil {
				setRows.Close()
				return nil, fmt.Errorf("scanning history set: %w", err)
			}
			occurrences[i].Sets = append(occurrences[i].Sets, s)
		}
		err = setRows.Err()
		setRows.Close()
		if err != nil {
			return nil, err
		}
	}

	return occurrences, nil
}

// LastExerciseOccurrence returns the most recent occurrence of an exercise,
// or nil if it has never been logged.
func (db *DB) LastExerciseOccurrence(ctx context.Context, userID int, exercise string) (*ExerciseOccurrence, error) {
	history, err := db.ExerciseHistory(ctx, userID, exercise, 1)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}
	return &history[0], nil
}

// ExerciseStats holds lifetime aggregates for one exercise. The estimated
// one-rep max uses the Epley formula over working sets.
type ExerciseStats struct {
	Exercise      string     `json:"exercise"`
	TotalWorkouts int        `json:"total_workouts"`
	TotalSets     int        `json:"total_sets"`
	TotalReps     int        `json:"total_reps"`
	TotalVolume   float64    `json:"total_volume"`
	MaxWeight     float64    `json:"max_weight"`
	EstOneRepMax  float64    `json:"est_one_rep_max"`
	FirstLogged   *time.Time `json:"first_logged,omitempty"`
	LastLogged    *time.Time `json:"last_logged,omitempty"`
}

// GetExerciseStats returns lifetime aggregates for an exercise. Warm-up
// sets are excluded from every aggregate.
func (db *DB) GetExerciseStats(ctx context.Context, userID int, exercise string) (*ExerciseStats, error) {
	stats := &ExerciseStats{Exercise: exercise}
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT w.id),
		        COUNT(s.id),
		        COALESCE(SUM(s.reps), 0),
		        COALESCE(SUM(s.weight * s.reps), 0),
		        COALESCE(MAX(s.weight), 0),
		        COALESCE(MAX(s.weight * (1 + s.reps / 30.0)), 0),
		        MIN(w.workout_date),
		        MAX(w.workout_date)
		 FROM workout_sets s
		 JOIN workout_exercises we ON we.id = s.exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = $1 AND we.exercise_name = $2 AND NOT s.is_warmup`,
		userID, exercise,
	).Scan(&stats.TotalWorkouts, &stats.TotalSets, &stats.TotalReps,
		&stats.TotalVolume, &stats.MaxWeight, &stats.EstOneRepMax,
		&stats.FirstLogged, &stats.LastLogged)
	if err != nil {
		return nil, fmt.Errorf("querying exercise stats: %w", err)
	}
	return stats, nil
}

// ListExerciseNames returns the distinct exercises a user has logged,
// most frequently performed first.
func (db *DB) ListExerciseNames(ctx context.Context, userID int) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT we.exercise_name
		 FROM workout_exercises we
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = $1
		 GROUP BY we.exercise_name
		 ORDER BY COUNT(*) DESC, we.exercise_name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning exercise name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
