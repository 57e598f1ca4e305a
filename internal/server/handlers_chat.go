package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bradpignatello/wellivian/internal/coach"
)

// chatRequest is the body of POST /api/v1/chat. Exercises names the
// current session's lineup so the coach can reason about pairings.
type chatRequest struct {
	Messages  []coach.Message `json:"messages"`
	Exercises []string        `json:"exercises,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.coach == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "coach not configured"})
		return
	}
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "messages required"})
		return
	}

	sc := s.buildSessionContext(r, uid, req.Exercises)

	reply, err := s.coach.Complete(r.Context(), coach.BuildSystemPrompt(sc), req.Messages)
	if err != nil {
		s.log.Error("chat completion", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// buildSessionContext assembles workout and recovery context for the
// system prompt. Lookups that fail are logged and skipped so chat still
// works with partial data.
func (s *Server) buildSessionContext(r *http.Request, uid int, exercises []string) coach.SessionContext {
	sc := coach.SessionContext{}

	for _, name := range exercises {
		ec := coach.ExerciseContext{Name: name}
		for _, g := range s.muscles.Groups(name) {
			ec.MuscleGroups = append(ec.MuscleGroups, string(g))
		}
		if last, err := s.db.LastExerciseOccurrence(r.Context(), uid, name); err == nil && last != nil {
			var maxWeight float64
			working := 0
			for _, set := range last.Sets {
				if set.IsWarmup {
					continue
				}
				working++
				if set.Weight > maxWeight {
					maxWeight = set.Weight
				}
			}
			if working > 0 {
				ec.LastSummary = fmt.Sprintf("%d sets, top weight %.0f lbs on %s",
					working, maxWeight, last.WorkoutDate.Format("2006-01-02"))
			}
		}
		sc.Exercises = append(sc.Exercises, ec)
	}

	now := time.Now()
	if workouts, err := s.db.QueryWorkouts(r.Context(), now.AddDate(0, 0, -14), now, uid); err == nil {
		for i, wo := range workouts {
			if i >= 5 {
				break
			}
			sc.RecentWorkouts = append(sc.RecentWorkouts,
				fmt.Sprintf("%s (%d min)", wo.WorkoutDate.Format("2006-01-02"), wo.DurationSec/60))
		}
	} else {
		s.log.Warn("chat context workouts", "error", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if rows, err := s.db.QueryReadiness(r.Context(), dayStart, dayStart.AddDate(0, 0, 1), uid); err == nil && len(rows) > 0 {
		sc.ReadinessScore = rows[len(rows)-1].Score
	}
	if rows, err := s.db.QuerySleep(r.Context(), dayStart, dayStart.AddDate(0, 0, 1), uid); err == nil && len(rows) > 0 {
		sc.SleepScore = rows[len(rows)-1].Score
	}

	return sc
}
