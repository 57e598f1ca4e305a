package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bradpignatello/wellivian/internal/models"
	"github.com/bradpignatello/wellivian/internal/oura"
)

// Syncer pulls daily wearable data and pushes it to the server.
type Syncer struct {
	wear   *oura.Client
	client *Client
	state  *StateDB
	log    *slog.Logger
}

// NewSyncer wires the wearable client, server client, and state database.
func NewSyncer(wear *oura.Client, client *Client, state *StateDB, log *slog.Logger) *Syncer {
	return &Syncer{wear: wear, client: client, state: state, log: log}
}

// Run syncs the last `days` days. Finished days already marked complete
// are skipped; today is always re-fetched since its data is still moving.
func (s *Syncer) Run(ctx context.Context, days int) error {
	if days <= 0 {
		days = 1
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var payload models.OuraPayload

	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		dayStr := day.Format(oura.DayLayout)
		final := day.Before(today)

		if final {
			done, err := s.state.IsComplete(dayStr)
			if err != nil {
				return fmt.Errorf("checking state for %s: %w", dayStr, err)
			}
			if done {
				s.log.Debug("day already synced", "day", dayStr)
				continue
			}
		}

		entry, err := s.fetchDay(ctx, day)
		if err != nil {
			s.log.Warn("fetching day failed", "day", dayStr, "error", err)
			continue
		}
		payload.Days = append(payload.Days, entry)
	}

	if len(payload.Days) == 0 {
		s.log.Info("nothing to sync")
		return nil
	}

	result, err := s.client.SendPayload(payload)
	if err != nil {
		return fmt.Errorf("sending payload: %w", err)
	}
	s.log.Info("sync complete",
		"days", result.DaysReceived,
		"readiness", result.ReadinessUpserts,
		"sleep", result.SleepUpserts,
		"activity", result.ActivityUpserts,
		"heart_rate", result.HeartRateInserted,
	)

	for _, d := range payload.Days {
		day, _ := time.Parse(oura.DayLayout, d.Day)
		if err := s.state.MarkSynced(d.Day, day.Before(today)); err != nil {
			return fmt.Errorf("marking %s synced: %w", d.Day, err)
		}
	}
	return nil
}

// fetchDay collects the day's summaries and heart-rate samples. Summary
// sections degrade to zero values individually; a zero-score section is
// omitted from the payload rather than overwriting stored data.
func (s *Syncer) fetchDay(ctx context.Context, day time.Time) (models.OuraDay, error) {
	entry := models.OuraDay{Day: day.Format(oura.DayLayout)}

	sum := s.wear.DaySummary(ctx, day)
	if sum.Readiness.Score > 0 {
		r := sum.Readiness
		entry.Readiness = &r
	}
	if sum.Sleep.Score > 0 || sum.Sleep.TotalSec > 0 {
		sl := sum.Sleep
		entry.Sleep = &sl
	}
	if sum.Activity.Score > 0 || sum.Activity.Steps > 0 {
		a := sum.Activity
		entry.Activity = &a
	}

	hr, err := s.wear.GetHeartRate(ctx, day)
	if err != nil {
		s.log.Warn("heart rate unavailable", "day", entry.Day, "error", err)
	} else {
		entry.HeartRate = hr
	}

	if entry.Readiness == nil && entry.Sleep == nil && entry.Activity == nil && len(entry.HeartRate) == 0 {
		return entry, fmt.Errorf("no data for %s", entry.Day)
	}
	return entry, nil
}
