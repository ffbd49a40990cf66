package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/cv-generator/internal/types"
)

// SaveProfile stores a CV payload and returns its new id
func (db *DB) SaveProfile(ctx context.Context, name string, data *types.CompleteCVData) (uuid.UUID, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO cv_profiles (id, name, data) VALUES ($1, $2, $3)`,
		id, name, payload,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return id, nil
}

// UpdateProfile replaces the payload of an existing profile
func (db *DB) UpdateProfile(ctx context.Context, id uuid.UUID, data *types.CompleteCVData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE cv_profiles SET data = $1, updated_at = NOW() WHERE id = $2`,
		payload, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return nil
}

// GetProfile loads a stored profile. A missing row yields ErrProfileNotFound.
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var (
		p       Profile
		payload []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, data, created_at, updated_at FROM cv_profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &payload, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var data types.CompleteCVData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}
	p.Data = &data
	return &p, nil
}

// ListProfiles returns profile ids and names, newest first
func (db *DB) ListProfiles(ctx context.Context, limit int) ([]Profile, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM cv_profiles ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return out, nil
}
