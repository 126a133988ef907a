package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jengzang/pawtrack-backend-go/internal/models"
)

const entryColumns = `id, latitude, longitude, timestamp, category,
	size, color, smell, food, hours_since_meal, notes, is_manual, created_at`

// EntryRepository handles database operations for entries and the food label vocabulary
type EntryRepository struct {
	db querier
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *EntryRepository) WithTx(tx *sql.Tx) *EntryRepository {
	return &EntryRepository{db: tx}
}

// Create stores a new entry, assigning its ID and CreatedAt when unset.
// A non-empty food label is also added to the vocabulary.
func (r *EntryRepository) Create(ctx context.Context, e *models.Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	var lat, lng sql.NullFloat64
	if e.Position != nil {
		lat = sql.NullFloat64{Float64: e.Position.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: e.Position.Lng, Valid: true}
	}
	var hours sql.NullFloat64
	if e.HoursSinceMeal != nil {
		hours = sql.NullFloat64{Float64: *e.HoursSinceMeal, Valid: true}
	}

	query := `INSERT INTO entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, lat, lng, formatTime(e.Timestamp), string(e.Category),
		e.Size, e.Color, e.Smell, e.Food.String(), hours, e.Notes, e.IsManual, formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	if !e.Food.IsEmpty() {
		if err := r.AddFoodLabel(ctx, e.Food); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a single entry
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

// List returns every entry in insertion order
func (r *EntryRepository) List(ctx context.Context) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries
func (r *EntryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// Delete removes an entry by id
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every entry and returns how many were removed
func (r *EntryRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear entries: %w", err)
	}
	return res.RowsAffected()
}

// ReplaceAll swaps the whole collection for the given entries, keeping their
// ids and order. Call it on a repository from WithTx to make it atomic.
func (r *EntryRepository) ReplaceAll(ctx context.Context, entries []models.Entry) error {
	if _, err := r.DeleteAll(ctx); err != nil {
		return err
	}
	for i := range entries {
		if err := r.Create(ctx, &entries[i]); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// FoodLabels returns the label vocabulary in first-use order
func (r *EntryRepository) FoodLabels(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT label FROM food_labels ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query food labels: %w", err)
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("failed to scan food label: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// AddFoodLabel records a label in the vocabulary; known labels keep their position
func (r *EntryRepository) AddFoodLabel(ctx context.Context, label models.FoodLabel) error {
	l := strings.TrimSpace(label.String())
	if l == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO food_labels (label) VALUES (?)`, l); err != nil {
		return fmt.Errorf("failed to record food label: %w", err)
	}
	return nil
}

// ReplaceFoodLabels swaps the vocabulary for the given labels
func (r *EntryRepository) ReplaceFoodLabels(ctx context.Context, labels []models.FoodLabel) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM food_labels`); err != nil {
		return fmt.Errorf("failed to clear food labels: %w", err)
	}
	for _, l := range labels {
		if err := r.AddFoodLabel(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s rowScanner) (*models.Entry, error) {
	var (
		e                  models.Entry
		lat, lng, hours    sql.NullFloat64
		category, food     string
		timestamp, created string
	)
	err := s.Scan(
		&e.ID, &lat, &lng, &timestamp, &category,
		&e.Size, &e.Color, &e.Smell, &food, &hours, &e.Notes, &e.IsManual, &created,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		e.Position = &models.Position{Lat: lat.Float64, Lng: lng.Float64}
	}
	if hours.Valid {
		h := hours.Float64
		e.HoursSinceMeal = &h
	}
	e.Category = models.Category(category)
	e.Food = models.FoodLabel(food)

	if e.Timestamp, err = parseTime(timestamp); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &e, nil
}
