package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// handleWearableSummary fetches today's readiness, sleep, and activity
// live from the wearable API.
func (s *Server) handleWearableSummary(w http.ResponseWriter, r *http.Request) {
	if s.wear == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "wearable client not configured"})
		return
	}

	day := time.Now()
	if v := r.URL.Query().Get("day"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid day"})
			return
		}
		day = parsed
	}

	writeJSON(w, http.StatusOK, s.wear.DaySummary(r.Context(), day))
}

// handleWearableRange serves stored wearable data by scope:
// readiness, sleep, activity, or heartrate.
func (s *Server) handleWearableRange(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	scope := chi.URLParam(r, "scope")

	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var rows any
	switch scope {
	case "readiness":
		rows, err = s.db.QueryReadiness(r.Context(), start, end, uid)
	case "sleep":
		rows, err = s.db.QuerySleep(r.Context(), start, end, uid)
	case "activity":
		rows, err = s.db.QueryActivity(r.Context(), start, end, uid)
	case "heartrate":
		rows, err = s.db.QueryHeartRate(r.Context(), start, end, uid)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown scope: " + scope})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
