// Package oura ingests wearable sync payloads: per-day readiness, sleep,
// and activity summaries plus heart-rate samples.
package oura

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bradpignatello/wellivian/internal/ingest"
	"github.com/bradpignatello/wellivian/internal/models"
	"github.com/bradpignatello/wellivian/internal/storage"
)

// Provider processes Oura sync payloads.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new Oura ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest stores the days of an Oura payload. Summaries are upserted so a
// re-sync of the same day refreshes it; heart-rate samples are
// insert-only with duplicates skipped.
func (p *Provider) Ingest(ctx context.Context, payload *models.OuraPayload, userID int) (*ingest.Result, error) {
	result := &ingest.Result{}

	var hrRows []models.HeartRateRow

	for _, d := range payload.Days {
		day, err := time.Parse("2006-01-02", d.Day)
		if err != nil {
			p.log.Warn("skipping day with bad date", "day", d.Day, "error", err)
			continue
		}
		result.DaysReceived++

		if d.Readiness != nil {
			r := *d.Readiness
			r.UserID = userID
			r.Day = day
			if _, err := p.db.UpsertReadiness(ctx, r); err != nil {
				return result, fmt.Errorf("upserting readiness for %s: %w", d.Day, err)
			}
			result.ReadinessUpserts++
		}

		if d.Sleep != nil {
			s := *d.Sleep
			s.UserID = userID
			s.Day = day
			if _, err := p.db.UpsertSleep(ctx, s); err != nil {
				return result, fmt.Errorf("upserting sleep for %s: %w", d.Day, err)
			}
			result.SleepUpserts++
		}

		if d.Activity != nil {
			a := *d.Activity
			a.UserID = userID
			a.Day = day
			if _, err := p.db.UpsertActivity(ctx, a); err != nil {
				return result, fmt.Errorf("upserting activity for %s: %w", d.Day, err)
			}
			result.ActivityUpserts++
		}

		for _, hr := range d.HeartRate {
			hr.UserID = userID
			hrRows = append(hrRows, hr)
		}
	}

	result.HeartRateReceived = len(hrRows)
	if len(hrRows) > 0 {
		inserted, err := p.db.InsertHeartRateSamples(ctx, hrRows)
		if err != nil {
			return result, fmt.Errorf("inserting heart rate samples: %w", err)
		}
		result.HeartRateInserted = inserted
		result.HeartRateSkipped = int64(len(hrRows)) - inserted
	}

	if result.DaysReceived == 0 {
		result.Message = "no valid days in payload"
	}

	return result, nil
}
