package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

// ProfileRepository stores the single dog profile
type ProfileRepository struct {
	db querier
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ProfileRepository) WithTx(tx *sql.Tx) *ProfileRepository {
	return &ProfileRepository{db: tx}
}

// Get returns the saved profile, or ErrNotFound before the first save
func (r *ProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM profile WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}

// Save upserts the profile
func (r *ProfileRepository) Save(ctx context.Context, p models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	query := `INSERT INTO profile (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, string(data), formatTime(p.UpdatedAt)); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Delete removes the saved profile
func (r *ProfileRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profile`); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
