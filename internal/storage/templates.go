package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bradpignatello/wellivian/internal/models"
)

// CreateTemplate saves a named exercise sequence. The exercise list is
// stored as JSONB. Returns the template ID.
func (db *DB) CreateTemplate(ctx context.Context, t models.TemplateRow) (uuid.UUID, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	exercises, err := json.Marshal(t.Exercises)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding template exercises: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workout_templates (id, user_id, name, exercises)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (user_id, name) DO UPDATE SET exercises = EXCLUDED.exercises`,
		t.ID, t.UserID, t.Name, exercises)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting template: %w", err)
	}
	return t.ID, nil
}

// QueryTemplates returns all of a user's templates, newest first.
func (db *DB) QueryTemplates(ctx context.Context, userID int) ([]models.TemplateRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, created_at, exercises
		 FROM workout_templates
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.TemplateRow
	for rows.Next() {
		var t models.TemplateRow
		var exercises []byte
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &exercises); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		if err := json.Unmarshal(exercises, &t.Exercises); err != nil {
			return nil, fmt.Errorf("decoding template exercises: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// GetTemplate returns a single template by ID, or nil if not found.
func (db *DB) GetTemplate(ctx context.Context, templateID uuid.UUID, userID int) (*models.TemplateRow, error) {
	var t models.TemplateRow
	var exercises []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, created_at, exercises
		 FROM workout_templates
		 WHERE id = $1 AND user_id = $2`,
		templateID, userID).Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &exercises)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying template: %w", err)
	}
	if err := json.Unmarshal(exercises, &t.Exercises); err != nil {
		return nil, fmt.Errorf("decoding template exercises: %w", err)
	}
	return &t, nil
}

// DeleteTemplate removes a template. Returns true if a row was deleted.
func (db *DB) DeleteTemplate(ctx context.Context, templateID uuid.UUID, userID int) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_templates WHERE id = $1 AND user_id = $2`,
		templateID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
