package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bradpignatello/wellivian/internal/models"
)

// UpsertReadiness inserts or replaces the readiness summary for a day.
// Returns true if a new row was created.
func (db *DB) UpsertReadiness(ctx context.Context, r models.ReadinessRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO readiness_days (user_id, day, score, temperature_deviation,
		 temperature_trend_deviation, hrv_balance, recovery_index, resting_heart_rate)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (user_id, day) DO UPDATE SET
			score = EXCLUDED.score,
			temperature_deviation = EXCLUDED.temperature_deviation,
			temperature_trend_deviation = EXCLUDED.temperature_trend_deviation,
			hrv_balance = EXCLUDED.hrv_balance,
			recovery_index = EXCLUDED.recovery_index,
			resting_heart_rate = EXCLUDED.resting_heart_rate`,
		r.UserID, r.Day, r.Score, r.TemperatureDeviation, r.TemperatureTrendDeviation,
		r.HRVBalance, r.RecoveryIndex, r.RestingHeartRate)
	if err != nil {
		return false, fmt.Errorf("upserting readiness: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpsertSleep inserts or replaces the sleep summary for a night.
func (db *DB) UpsertSleep(ctx context.Context, s models.SleepRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO sleep_days (user_id, day, score, total_sec, efficiency, rem_sec, deep_sec, latency_sec)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (user_id, day) DO UPDATE SET
			score = EXCLUDED.score,
			total_sec = EXCLUDED.total_sec,
			efficiency = EXCLUDED.efficiency,
			rem_sec = EXCLUDED.rem_sec,
			deep_sec = EXCLUDED.deep_sec,
			latency_sec = EXCLUDED.latency_sec`,
		s.UserID, s.Day, s.Score, s.TotalSec, s.Efficiency, s.RemSec, s.DeepSec, s.LatencySec)
	if err != nil {
		return false, fmt.Errorf("upserting sleep: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpsertActivity inserts or replaces the activity summary for a day.
func (db *DB) UpsertActivity(ctx context.Context, a models.ActivityRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO activity_days (user_id, day, score, steps, active_calories, total_calories, target_calories)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (user_id, day) DO UPDATE SET
			score = EXCLUDED.score,
			steps = EXCLUDED.steps,
			active_calories = EXCLUDED.active_calories,
			total_calories = EXCLUDED.total_calories,
			target_calories = EXCLUDED.target_calories`,
		a.UserID, a.Day, a.Score, a.Steps, a.ActiveCalories, a.TotalCalories, a.TargetCalories)
	if err != nil {
		return false, fmt.Errorf("upserting activity: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// InsertHeartRateSamples batch-inserts heart-rate samples. Returns count
// inserted (duplicates skipped via ON CONFLICT DO NOTHING).
func (db *DB) InsertHeartRateSamples(ctx context.Context, rows []models.HeartRateRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO heart_rate_samples (time, user_id, bpm, source) VALUES `
	args := make([]any, 0, len(rows)*4)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 4
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4,
		))
		args = append(args, r.Time, r.UserID, r.BPM, r.Source)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting heart rate samples: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryReadiness retrieves readiness summaries in a day range, oldest first.
func (db *DB) QueryReadiness(ctx context.Context, start, end time.Time, userID int) ([]models.ReadinessRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, day, score, temperature_deviation, temperature_trend_deviation,
		 hrv_balance, recovery_index, resting_heart_rate
		 FROM readiness_days
		 WHERE day >= $1 AND day < $2 AND user_id = $3
		 ORDER BY day ASC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying readiness: %w", err)
	}
	defer rows.Close()

	var result []models.ReadinessRow
	for rows.Next() {
		var r models.ReadinessRow
		if err := rows.Scan(&r.UserID, &r.Day, &r.Score, &r.TemperatureDeviation,
			&r.TemperatureTrendDeviation, &r.HRVBalance, &r.RecoveryIndex, &r.RestingHeartRate); err != nil {
			return nil, fmt.Errorf("scanning readiness: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// QuerySleep retrieves sleep summaries in a day range, oldest first.
func (db *DB) QuerySleep(ctx context.Context, start, end time.Time, userID int) ([]models.SleepRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, day, score, total_sec, efficiency, rem_sec, deep_sec, latency_sec
		 FROM sleep_days
		 WHERE day >= $1 AND day < $2 AND user_id = $3
		 ORDER BY day ASC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sleep: %w", err)
	}
	defer rows.Close()

	var result []models.SleepRow
	for rows.Next() {
		var s models.SleepRow
		if err := rows.Scan(&s.UserID, &s.Day, &s.Score, &s.TotalSec, &s.Efficiency,
			&s.RemSec, &s.DeepSec, &s.LatencySec); err != nil {
			return nil, fmt.Errorf("scanning sleep: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// QueryActivity retrieves activity summaries in a day range, oldest first.
func (db *DB) QueryActivity(ctx context.Context, start, end time.Time, userID int) ([]models.ActivityRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, day, score, steps, active_calories, total_calories, target_calories
		 FROM activity_days
		 WHERE day >= $1 AND day < $2 AND user_id = $3
		 ORDER BY day ASC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	defer rows.Close()

	var result []models.ActivityRow
	for rows.Next() {
		var a models.ActivityRow
		if err := rows.Scan(&a.UserID, &a.Day, &a.Score, &a.Steps, &a.ActiveCalories,
			&a.TotalCalories, &a.TargetCalories); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// QueryHeartRate retrieves heart-rate samples in a time range, oldest first.
func (db *DB) QueryHeartRate(ctx context.Context, start, end time.Time, userID int) ([]models.HeartRateRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT time, user_id, bpm, COALESCE(source, '')
		 FROM heart_rate_samples
		 WHERE time >= $1 AND time < $2 AND user_id = $3
		 ORDER BY time ASC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying heart rate: %w", err)
	}
	defer rows.Close()

	var result []models.HeartRateRow
	for rows.Next() {
		var h models.HeartRateRow
		if err := rows.Scan(&h.Time, &h.UserID, &h.BPM, &h.Source); err != nil {
			return nil, fmt.Errorf("scanning heart rate: %w", err)
		}
		result = append(result, h)
	}
	return result, rows.Err()
}
