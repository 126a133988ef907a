package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ProgressRepository persists the completed-cell count last announced to the user
type ProgressRepository struct {
	db querier
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *ProgressRepository) WithTx(tx *sql.Tx) *ProgressRepository {
	return &ProgressRepository{db: tx}
}

// CompletedCells returns the stored baseline, zero when none was stored
func (r *ProgressRepository) CompletedCells(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT completed_cells FROM progress WHERE id = 1`).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get progress: %w", err)
	}
	return n, nil
}

// SetCompletedCells stores a new baseline
func (r *ProgressRepository) SetCompletedCells(ctx context.Context, n int) error {
	query := `INSERT INTO progress (id, completed_cells, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET completed_cells = excluded.completed_cells, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, n, formatTime(time.Now().UTC())); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
