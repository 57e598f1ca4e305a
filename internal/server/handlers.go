package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bradpignatello/wellivian/internal/ingest"
	"github.com/bradpignatello/wellivian/internal/models"
	"github.com/bradpignatello/wellivian/internal/pairing"
	"github.com/bradpignatello/wellivian/internal/storage"
	"github.com/bradpignatello/wellivian/internal/suggest"
)

func (s *Server) handleOuraIngest(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	var payload models.OuraPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	// Record the sync in import_logs: a "running" row up front, finalized
	// with the result counters (or the error) below.
	started := time.Now()
	logID, logErr := s.db.InsertImportLog(r.Context(), storage.ImportLog{
		UserID: uid,
		Source: "oura_sync",
		Status: "running",
	})
	if logErr != nil {
		s.log.Error("failed to create import log", "error", logErr)
	}

	result, err := s.ingest.Ingest(r.Context(), &payload, uid)

	if logErr == nil {
		if uerr := s.db.UpdateImportLog(r.Context(), logID, finalImportLog(result, err, time.Since(started))); uerr != nil {
			s.log.Error("failed to finalize import log", "log_id", logID, "error", uerr)
		}
	}

	if err != nil {
		s.log.Error("ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// finalImportLog builds the finished log entry for a sync: result counters,
// elapsed duration, and the error message when ingestion failed.
func finalImportLog(result *ingest.Result, err error, elapsed time.Duration) storage.ImportLog {
	durationMs := int(elapsed.Milliseconds())
	entry := storage.ImportLog{
		Status:     "success",
		DurationMs: &durationMs,
	}
	if err != nil {
		msg := err.Error()
		entry.Status = "error"
		entry.ErrorMessage = &msg
	}
	if result != nil {
		entry.DaysReceived = result.DaysReceived
		entry.ReadinessUpserts = result.ReadinessUpserts
		entry.SleepUpserts = result.SleepUpserts
		entry.ActivityUpserts = result.ActivityUpserts
		entry.HeartRateInserted = result.HeartRateInserted
	}
	return entry
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.QueryWorkouts(r.Context(), start, end, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

// createWorkoutRequest is the body of POST /api/v1/workouts.
type createWorkoutRequest struct {
	WorkoutDate string                 `json:"workout_date"`
	DurationSec int                    `json:"duration_sec"`
	Notes       string                 `json:"notes"`
	Exercises   []storage.ExerciseSets `json:"exercises"`
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var req createWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one exercise required"})
		return
	}

	date := time.Now()
	if req.WorkoutDate != "" {
		parsed, err := time.Parse("2006-01-02", req.WorkoutDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout_date"})
			return
		}
		date = parsed
	}

	id, err := s.db.CreateWorkout(r.Context(), models.WorkoutRow{
		UserID:      uid,
		WorkoutDate: date,
		DurationSec: req.DurationSec,
		Notes:       req.Notes,
	}, req.Exercises)
	if err != nil {
		s.log.Error("create workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	detail, err := s.db.GetWorkout(r.Context(), workoutID, uid)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	deleted, err := s.db.DeleteWorkout(r.Context(), workoutID, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	logged, err := s.db.ListExerciseNames(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"catalog": pairing.Catalog,
		"logged":  logged,
	})
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	name := chi.URLParam(r, "name")

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := parseInt(v); err == nil && n > 0 {
			limit = n
		}
	}

	history, err := s.db.ExerciseHistory(r.Context(), uid, name, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleExerciseStats(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	name := chi.URLParam(r, "name")

	stats, err := s.db.GetExerciseStats(r.Context(), uid, name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleExerciseSuggestion(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)
	name := chi.URLParam(r, "name")

	last, err := s.db.LastExerciseOccurrence(r.Context(), uid, name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if last == nil {
		writeJSON(w, http.StatusOK, suggest.NoHistory(name))
		return
	}

	sets := make([]suggest.Set, 0, len(last.Sets))
	for _, s := range last.Sets {
		sets = append(sets, suggest.Set{Weight: s.Weight, Reps: s.Reps, Warmup: s.IsWarmup})
	}

	writeJSON(w, http.StatusOK, suggest.ForExercise(name, last.WorkoutDate, sets, time.Now()))
}

// handleExercisePairings rates every catalog exercise against the named one.
func (s *Server) handleExercisePairings(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	type ratedExercise struct {
		Exercise string         `json:"exercise"`
		Rating   pairing.Rating `json:"rating"`
	}

	var rated []ratedExercise
	for _, entry := range pairing.Catalog {
		if entry.Name == name {
			continue
		}
		rated = append(rated, ratedExercise{
			Exercise: entry.Name,
			Rating:   pairing.Classify(name, entry.Name, s.muscles),
		})
	}
	writeJSON(w, http.StatusOK, rated)
}

func (s *Server) handlePairing(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a and b parameters required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"a":      a,
		"b":      b,
		"rating": pairing.Classify(a, b, s.muscles),
	})
}

func (s *Server) handleQueryTemplates(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	templates, err := s.db.QueryTemplates(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}

	var t models.TemplateRow
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if t.Name == "" || len(t.Exercises) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and exercises required"})
		return
	}
	t.UserID = uid

	id, err := s.db.CreateTemplate(r.Context(), t)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	templateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid template ID"})
		return
	}

	t, err := s.db.GetTemplate(r.Context(), templateID, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if t == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	templateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid template ID"})
		return
	}

	deleted, err := s.db.DeleteTemplate(r.Context(), templateID, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "template not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	info := userInfoFromContext(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      userIDFromContext(r),
		"login":        info.Login,
		"display_name": info.DisplayName,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	stats, err := s.db.GetDataStats(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImports(w http.ResponseWriter, r *http.Request) {
	uid := userIDFromContext(r)

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := parseInt(v); err == nil {
			limit = n
		}
	}

	logs, err := s.db.QueryImportLogs(r.Context(), uid, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 30 days
		end = time.Now()
		start = end.AddDate(0, 0, -30)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
