package oura

import (
	"context"
	"sync"
	"time"

	"github.com/bradpignatello/wellivian/internal/models"
)

// Summary bundles the day's readiness, sleep, and activity data.
type Summary struct {
	Day       time.Time           `json:"day"`
	Readiness models.ReadinessRow `json:"readiness"`
	Sleep     models.SleepRow     `json:"sleep"`
	Activity  models.ActivityRow  `json:"activity"`
}

// DaySummary fetches readiness, sleep, and activity concurrently. A failed
// call degrades to its zero-valued default so one missing collection does
// not lose the others.
func (c *Client) DaySummary(ctx context.Context, day time.Time) Summary {
	sum := Summary{Day: day}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		r, err := c.GetReadiness(ctx, day)
		if err != nil {
			c.log.Warn("readiness unavailable", "day", day.Format(DayLayout), "error", err)
		}
		sum.Readiness = r
	}()
	go func() {
		defer wg.Done()
		s, err := c.GetSleep(ctx, day)
		if err != nil {
			c.log.Warn("sleep unavailable", "day", day.Format(DayLayout), "error", err)
		}
		sum.Sleep = s
	}()
	go func() {
		defer wg.Done()
		a, err := c.GetActivity(ctx, day)
		if err != nil {
			c.log.Warn("activity unavailable", "day", day.Format(DayLayout), "error", err)
		}
		sum.Activity = a
	}()

	wg.Wait()
	return sum
}
