package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	DaysReceived     int `json:"days_received"`
	ReadinessUpserts int `json:"readiness_upserts"`
	SleepUpserts     int `json:"sleep_upserts"`
	ActivityUpserts  int `json:"activity_upserts"`

	HeartRateReceived int   `json:"heart_rate_received"`
	HeartRateInserted int64 `json:"heart_rate_inserted"`
	HeartRateSkipped  int64 `json:"heart_rate_skipped"`

	Message string `json:"message,omitempty"`
}
