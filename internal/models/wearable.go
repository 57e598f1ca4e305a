package models

import "time"

// ReadinessRow is a daily readiness summary from the wearable provider.
type ReadinessRow struct {
	UserID                    int       `json:"user_id"`
	Day                       time.Time `json:"day"`
	Score                     int       `json:"score"`
	TemperatureDeviation      float64   `json:"temperature_deviation"`
	TemperatureTrendDeviation float64   `json:"temperature_trend_deviation"`
	HRVBalance                int       `json:"hrv_balance"`
	RecoveryIndex             int       `json:"recovery_index"`
	RestingHeartRate          int       `json:"resting_heart_rate"`
}

// SleepRow is a nightly sleep summary from the wearable provider.
type SleepRow struct {
	UserID     int       `json:"user_id"`
	Day        time.Time `json:"day"`
	Score      int       `json:"score"`
	TotalSec   int       `json:"total_sec"`
	Efficiency int       `json:"efficiency"`
	RemSec     int       `json:"rem_sec"`
	DeepSec    int       `json:"deep_sec"`
	LatencySec int       `json:"latency_sec"`
}

// ActivityRow is a daily activity summary from the wearable provider.
type ActivityRow struct {
	UserID         int       `json:"user_id"`
	Day            time.Time `json:"day"`
	Score          int       `json:"score"`
	Steps          int       `json:"steps"`
	ActiveCalories int       `json:"active_calories"`
	TotalCalories  int       `json:"total_calories"`
	TargetCalories int       `json:"target_calories"`
}

// HeartRateRow is a single heart-rate sample.
type HeartRateRow struct {
	UserID int       `json:"user_id"`
	Time   time.Time `json:"time"`
	BPM    int       `json:"bpm"`
	Source string    `json:"source,omitempty"`
}
