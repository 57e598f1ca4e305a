package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bradpignatello/wellivian/internal/pairing"
)

func (h *handlers) dailySummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	summary := map[string]any{
		"date": today.Format("2006-01-02"),
	}

	if rows, err := h.ds.QueryReadiness(ctx, today, tomorrow, uid); err != nil {
		h.log.Warn("daily_summary: readiness query failed", "error", err)
	} else if len(rows) > 0 {
		summary["readiness"] = rows[len(rows)-1]
	}

	if rows, err := h.ds.QuerySleep(ctx, today, tomorrow, uid); err != nil {
		h.log.Warn("daily_summary: sleep query failed", "error", err)
	} else if len(rows) > 0 {
		summary["sleep"] = rows[len(rows)-1]
	}

	if rows, err := h.ds.QueryActivity(ctx, today, tomorrow, uid); err != nil {
		h.log.Warn("daily_summary: activity query failed", "error", err)
	} else if len(rows) > 0 {
		summary["activity"] = rows[len(rows)-1]
	}

	workouts, err := h.ds.QueryWorkouts(ctx, today, tomorrow, uid)
	if err != nil {
		h.log.Warn("daily_summary: workout query failed", "error", err)
	}
	summary["todays_workouts"] = workouts

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	end := time.Now()
	start := end.AddDate(0, 0, -14)

	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(workouts)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(pairing.Catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
