package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// LogGeneration appends one row to the generation log. A zero ID is
// replaced with a fresh one.
func (db *DB) LogGeneration(ctx context.Context, rec *GenerationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO cv_generations
		 (id, request_id, profile_id, template, format, success, error_code, duration_ms, size_bytes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.RequestID, rec.ProfileID, rec.Template, rec.Format,
		rec.Success, rec.ErrorCode, rec.DurationMS, rec.SizeBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to log generation: %w", err)
	}
	return nil
}

// ListGenerations returns the most recent log rows for a profile
func (db *DB) ListGenerations(ctx context.Context, profileID uuid.UUID, limit int) ([]GenerationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, request_id, profile_id, template, format, success, error_code, duration_ms, size_bytes, created_at
		 FROM cv_generations WHERE profile_id = $1 ORDER BY created_at DESC LIMIT $2`,
		profileID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var out []GenerationRecord
	for rows.Next() {
		var (
			r   GenerationRecord
			pid uuid.NullUUID
		)
		if err := rows.Scan(&r.ID, &r.RequestID, &pid, &r.Template, &r.Format,
			&r.Success, &r.ErrorCode, &r.DurationMS, &r.SizeBytes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		if pid.Valid {
			r.ProfileID = &pid.UUID
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return out, nil
}
