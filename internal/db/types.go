package db

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-generator/internal/types"
)

// ErrProfileNotFound is returned when no profile has the requested id
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a stored CV payload
type Profile struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Data      *types.CompleteCVData `json:"data"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// GenerationRecord is one row of the generation log
type GenerationRecord struct {
	ID         uuid.UUID  `json:"id"`
	RequestID  uuid.UUID  `json:"request_id"`
	ProfileID  *uuid.UUID `json:"profile_id,omitempty"`
	Template   string     `json:"template"`
	Format     string     `json:"format"`
	Success    bool       `json:"success"`
	ErrorCode  string     `json:"error_code,omitempty"`
	DurationMS int64      `json:"duration_ms"`
	SizeBytes  int64      `json:"size_bytes"`
	CreatedAt  time.Time  `json:"created_at"`
}
