package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalWorkouts     int64               `json:"total_workouts"`
	TotalSets         int64               `json:"total_sets"`
	TotalVolume       float64             `json:"total_volume"`
	TotalWearableDays int64               `json:"total_wearable_days"`
	EarliestData      *time.Time          `json:"earliest_data"`
	LatestData        *time.Time          `json:"latest_data"`
	TopExercises      []ExerciseCountStat `json:"top_exercises"`
}

// ExerciseCountStat holds summary stats for a single exercise.
type ExerciseCountStat struct {
	Name      string  `json:"name"`
	Count     int64   `json:"count"`
	MaxWeight float64 `json:"max_weight"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(s.id), COALESCE(SUM(s.weight * s.reps), 0)
		 FROM workout_sets s
		 JOIN workout_exercises we ON we.id = s.exercise_id
		 JOIN workouts w ON w.id = we.workout_id
		 WHERE w.user_id = $1 AND NOT s.is_warmup`, userID,
	).Scan(&stats.TotalSets, &stats.TotalVolume)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM readiness_days WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWearableDays)
	if err != nil {
		return nil, fmt.Errorf("counting wearable days: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(t), MAX(t) FROM (
			SELECT MIN(workout_date) AS t FROM workouts WHERE user_id = $1
			UNION ALL
			SELECT MIN(day) FROM readiness_days WHERE user_id = $1
			UNION ALL
			SELECT MAX(workout_date) FROM workouts WHERE user_id = $1
			UNION ALL
			SELECT MAX(day) FROM readiness_days WHERE user_id = $1
		) sub`, userID,
	).Scan(&stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("querying date range: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT we.exercise_name, COUNT(DISTINCT we.workout_id),
		        COALESCE(MAX(s.weight) FILTER (WHERE NOT s.is_warmup), 0)
		 FROM workout_exercises we
		 JOIN workouts w ON w.id = we.workout_id
		 LEFT JOIN workout_sets s ON s.exercise_id = we.id
		 WHERE w.user_id = $1
		 GROUP BY we.exercise_name
		 ORDER BY COUNT(DISTINCT we.workout_id) DESC
		 LIMIT 10`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying top exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseCountStat
		if err := rows.Scan(&s.Name, &s.Count, &s.MaxWeight); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.TopExercises = append(stats.TopExercises, s)
	}
	return stats, rows.Err()
}
