package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bradpignatello/wellivian/internal/pairing"
	"github.com/bradpignatello/wellivian/internal/suggest"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query logged strength workouts. Returns workout summaries with date, duration, and notes."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Retrieve the most recent workouts containing an exercise, each with its sets (weight, reps, warm-up flag)."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Bench Press')")),
	mcp.WithNumber("limit", mcp.Description("Max occurrences to return. Defaults to 10.")),
)

var toolGetExerciseStats = mcp.NewTool("get_exercise_stats",
	mcp.WithDescription("Lifetime aggregates for an exercise: total workouts, sets, reps, volume, max weight, and estimated one-rep max. Warm-ups excluded."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

var toolSuggestProgression = mcp.NewTool("suggest_progression",
	mcp.WithDescription("Recommend the next step for an exercise (increase weight, increase reps, maintain, or deload) based on the most recent workout and days elapsed."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

var toolClassifyPairing = mcp.NewTool("classify_pairing",
	mcp.WithDescription("Rate how well two exercises pair in a superset: great (antagonists or no overlap), good, neutral, or avoid (heavy muscle overlap)."),
	mcp.WithString("a", mcp.Required(), mcp.Description("First exercise name")),
	mcp.WithString("b", mcp.Required(), mcp.Description("Second exercise name")),
)

var toolRatePairings = mcp.NewTool("rate_pairings",
	mcp.WithDescription("Rate every catalog exercise as a superset partner for the given exercise."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name")),
)

var toolGetReadiness = mcp.NewTool("get_readiness",
	mcp.WithDescription("Daily readiness summaries: score, temperature deviation, HRV balance, recovery index, resting heart rate."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetSleep = mcp.NewTool("get_sleep",
	mcp.WithDescription("Nightly sleep summaries: score, total duration, efficiency, REM/deep durations, latency."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetActivity = mcp.NewTool("get_activity",
	mcp.WithDescription("Daily activity summaries: score, steps, active/total/target calories."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetWearableSummary = mcp.NewTool("get_wearable_summary",
	mcp.WithDescription("Combined readiness, sleep, and activity summary for a single day."),
	mcp.WithString("day", mcp.Description("Day (YYYY-MM-DD). Defaults to today.")),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Aggregate statistics: total workouts, sets, volume, wearable days, date range, and most-performed exercises."),
)

// --- Tool handlers ---

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	limit := req.GetInt("limit", 10)

	uid := UserIDFromContext(ctx)
	history, err := h.ds.ExerciseHistory(ctx, uid, exercise, limit)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	uid := UserIDFromContext(ctx)
	stats, err := h.ds.GetExerciseStats(ctx, uid, exercise)
	if err != nil {
		h.log.Error("mcp get_exercise_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	uid := UserIDFromContext(ctx)
	last, err := h.ds.LastExerciseOccurrence(ctx, uid, exercise)
	if err != nil {
		h.log.Error("mcp suggest_progression", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	var sug suggest.Suggestion
	if last == nil {
		sug = suggest.NoHistory(exercise)
	} else {
		sets := make([]suggest.Set, 0, len(last.Sets))
		for _, s := range last.Sets {
			sets = append(sets, suggest.Set{Weight: s.Weight, Reps: s.Reps, Warmup: s.IsWarmup})
		}
		sug = suggest.ForExercise(exercise, last.WorkoutDate, sets, time.Now())
	}

	result, err := mcp.NewToolResultJSON(sug)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) classifyPairing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := req.RequireString("a")
	if err != nil {
		return mcp.NewToolResultError("a parameter is required"), nil
	}
	b, err := req.RequireString("b")
	if err != nil {
		return mcp.NewToolResultError("b parameter is required"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"a":      a,
		"b":      b,
		"rating": pairing.Classify(a, b, pairing.DefaultMap()),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) ratePairings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	muscles := pairing.DefaultMap()
	type rated struct {
		Exercise string         `json:"exercise"`
		Rating   pairing.Rating `json:"rating"`
	}
	var ratings []rated
	for _, entry := range pairing.Catalog {
		if entry.Name == exercise {
			continue
		}
		ratings = append(ratings, rated{
			Exercise: entry.Name,
			Rating:   pairing.Classify(exercise, entry.Name, muscles),
		})
	}

	result, err := mcp.NewToolResultJSON(ratings)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getReadiness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	rows, err := h.ds.QueryReadiness(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_readiness", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSleep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	rows, err := h.ds.QuerySleep(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_sleep", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	rows, err := h.ds.QueryActivity(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_activity", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWearableSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var day time.Time
	if dayStr := req.GetString("day", ""); dayStr != "" {
		var err error
		day, err = time.Parse("2006-01-02", dayStr)
		if err != nil {
			return mcp.NewToolResultError("invalid day format, want YYYY-MM-DD"), nil
		}
	} else {
		now := time.Now()
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	next := day.AddDate(0, 0, 1)

	uid := UserIDFromContext(ctx)
	summary := map[string]any{"day": day.Format("2006-01-02")}

	if rows, err := h.ds.QueryReadiness(ctx, day, next, uid); err != nil {
		h.log.Error("mcp get_wearable_summary: readiness", "error", err)
	} else if len(rows) > 0 {
		summary["readiness"] = rows[len(rows)-1]
	}
	if rows, err := h.ds.QuerySleep(ctx, day, next, uid); err != nil {
		h.log.Error("mcp get_wearable_summary: sleep", "error", err)
	} else if len(rows) > 0 {
		summary["sleep"] = rows[len(rows)-1]
	}
	if rows, err := h.ds.QueryActivity(ctx, day, next, uid); err != nil {
		h.log.Error("mcp get_wearable_summary: activity", "error", err)
	} else if len(rows) > 0 {
		summary["activity"] = rows[len(rows)-1]
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	stats, err := h.ds.GetDataStats(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
