package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// NoteRepository stores reusable note snippets
type NoteRepository struct {
	db querier
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *NoteRepository) WithTx(tx *sql.Tx) *NoteRepository {
	return &NoteRepository{db: tx}
}

// List returns the saved notes in the order they were added
func (r *NoteRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT text FROM saved_notes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Add saves a note. Blank and already saved notes are ignored; added reports
// whether a new row was written.
func (r *NoteRepository) Add(ctx context.Context, text string) (added bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO saved_notes (text) VALUES (?)`, text)
	if err != nil {
		return false, fmt.Errorf("failed to add note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to add note: %w", err)
	}
	return n > 0, nil
}

// Remove deletes a saved note
func (r *NoteRepository) Remove(ctx context.Context, text string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_notes WHERE text = ?`, strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("failed to remove note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove note: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll swaps the saved notes for the given list
func (r *NoteRepository) ReplaceAll(ctx context.Context, notes []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saved_notes`); err != nil {
		return fmt.Errorf("failed to clear notes: %w", err)
	}
	for _, n := range notes {
		if _, err := r.Add(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
