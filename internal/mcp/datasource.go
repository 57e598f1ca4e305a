package mcp

import (
	"context"
	"time"

	"github.com/bradpignatello/wellivian/internal/models"
	"github.com/bradpignatello/wellivian/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRow, error)
	ExerciseHistory(ctx context.Context, userID int, exercise string, limit int) ([]storage.ExerciseOccurrence, error)
	LastExerciseOccurrence(ctx context.Context, userID int, exercise string) (*storage.ExerciseOccurrence, error)
	GetExerciseStats(ctx context.Context, userID int, exercise string) (*storage.ExerciseStats, error)
	ListExerciseNames(ctx context.Context, userID int) ([]string, error)
	QueryReadiness(ctx context.Context, start, end time.Time, userID int) ([]models.ReadinessRow, error)
	QuerySleep(ctx context.Context, start, end time.Time, userID int) ([]models.SleepRow, error)
	QueryActivity(ctx context.Context, start, end time.Time, userID int) ([]models.ActivityRow, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
