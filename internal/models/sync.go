package models

// OuraPayload is the body of a wearable sync upload: one or more days of
// summaries plus optional heart-rate samples.
type OuraPayload struct {
	Days []OuraDay `json:"days"`
}

// OuraDay carries the summaries fetched for a single calendar day. Nil
// sections were unavailable at the source and are skipped.
type OuraDay struct {
	Day       string         `json:"day"`
	Readiness *ReadinessRow  `json:"readiness,omitempty"`
	Sleep     *SleepRow      `json:"sleep,omitempty"`
	Activity  *ActivityRow   `json:"activity,omitempty"`
	HeartRate []HeartRateRow `json:"heart_rate,omitempty"`
}
