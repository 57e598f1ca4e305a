package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bradpignatello/wellivian/internal/models"
)

// ExerciseSets pairs an exercise row with its logged sets.
type ExerciseSets struct {
	models.WorkoutExerciseRow
	Sets []models.WorkoutSetRow `json:"sets"`
}

// WorkoutDetail is a workout with its exercises and sets.
type WorkoutDetail struct {
	models.WorkoutRow
	Exercises []ExerciseSets `json:"exercises"`
}

// CreateWorkout inserts a workout with its exercises and sets in a single
// transaction. Missing IDs are generated. Returns the workout ID.
func (db *DB) CreateWorkout(ctx context.Context, w models.WorkoutRow, exercises []ExerciseSets) (uuid.UUID, error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}

	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("beginning workout tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO workouts (id, user_id, workout_date, duration_sec, notes)
		 VALUES ($1,$2,$3,$4,$5)`,
		w.ID, w.UserID, w.WorkoutDate, w.DurationSec, w.Notes)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting workout: %w", err)
	}

	for i, ex := range exercises {
		exID := ex.ID
		if exID == uuid.Nil {
			exID = uuid.New()
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO workout_exercises (id, workout_id, exercise_name, exercise_order, notes)
			 VALUES ($1,$2,$3,$4,$5)`,
			exID, w.ID, ex.ExerciseName, i, ex.Notes)
		if err != nil {
			return uuid.Nil, fmt.Errorf("inserting exercise %q: %w", ex.ExerciseName, err)
		}

		if len(ex.Sets) == 0 {
			continue
		}
		query := `INSERT INTO workout_sets (exercise_id, set_number, weight, reps, is_warmup) VALUES `
		args := make([]any, 0, len(ex.Sets)*5)
		valueStrings := make([]string, 0, len(ex.Sets))
		for j, s := range ex.Sets {
			base := j * 5
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5,
			))
			args = append(args, exID, s.SetNumber, s.Weight, s.Reps, s.IsWarmup)
		}
		query += strings.Join(valueStrings, ",")

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return uuid.Nil, fmt.Errorf("inserting sets for %q: %w", ex.ExerciseName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("committing workout tx: %w", err)
	}
	return w.ID, nil
}

// QueryWorkouts retrieves workouts in a date range, newest first.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, workout_date, created_at, duration_sec, COALESCE(notes, '')
		 FROM workouts
		 WHERE workout_date >= $1 AND workout_date < $2 AND user_id = $3
		 ORDER BY workout_date DESC, created_at DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRow
	for rows.Next() {
		var w models.WorkoutRow
		if err := rows.Scan(&w.ID, &w.UserID, &w.WorkoutDate, &w.CreatedAt, &w.DurationSec, &w.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkout retrieves a single workout by ID with its exercises and sets.
func (db *DB) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*WorkoutDetail, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, workout_date, created_at, duration_sec, COALESCE(notes, '')
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		workoutID, userID)

	var w models.WorkoutRow
	err := row.Scan(&w.ID, &w.UserID, &w.WorkoutDate, &w.CreatedAt, &w.DurationSec, &w.Notes)
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	detail := &WorkoutDetail{WorkoutRow: w}

	exRows, err := db.Pool.Query(ctx,
		`SELECT id, workout_id, exercise_name, exercise_order, COALESCE(notes, '')
		 FROM workout_exercises
		 WHERE workout_id = $1
		 ORDER BY exercise_order ASC`,
		workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var ex ExerciseSets
		if err := exRows.Scan(&ex.ID, &ex.WorkoutID, &ex.ExerciseName, &ex.ExerciseOrder, &ex.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		detail.Exercises = append(detail.Exercises, ex)
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	for i := range detail.Exercises {
		setRows, err := db.Pool.Query(ctx,
			`SELECT id, exercise_id, set_number, weight, reps, is_warmup
			 FROM workout_sets
			 WHERE exercise_id = $1
			 ORDER BY set_number ASC`,
			detail.Exercises[i].ID)
		if err != nil {
			return nil, fmt.Errorf("querying sets: %w", err)
		}
		for setRows.Next() {
			var s models.WorkoutSetRow
			if err := setRows.Scan(&s.ID, &s.ExerciseID, &s.SetNumber, &s.Weight, &s.Reps, &s.IsWarmup); err != nil {
				setRows.Close()
				return nil, fmt.Errorf("scanning set: %w", err)
			}
			detail.Exercises[i].Sets = append(detail.Exercises[i].Sets, s)
		}
		err = setRows.Err()
		setRows.Close()
		if err != nil {
			return nil, err
		}
	}

	return detail, nil
}

// DeleteWorkout removes a workout and its exercises and sets. Returns true
// if a row was deleted.
func (db *DB) DeleteWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`,
		workoutID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting workout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
