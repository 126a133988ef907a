package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jengzang/pawtrack-backend-go/internal/database"
	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"go.uber.org/zap"
)

// BackupVersion is written into every exported document
const BackupVersion = "2.0.0"

// ErrInvalidBackup is returned when an import document is malformed
var ErrInvalidBackup = errors.New("invalid backup")

// Backup is the portable JSON document holding every user datum
type Backup struct {
	Version     string          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	Entries     []models.Entry  `json:"entries"`
	Profile     *models.Profile `json:"profile"`
	SavedNotes  []string        `json:"savedNotes"`
	FoodHistory []string        `json:"foodHistory"`
}

// ImportResult summarizes a restore
type ImportResult struct {
	Entries        int `json:"entries"`
	SavedNotes     int `json:"saved_notes"`
	FoodLabels     int `json:"food_labels"`
	CompletedCells int `json:"completed_cells"`
}

// BackupService exports and restores the whole data set
type BackupService struct {
	app *App
}

// NewBackupService creates a new backup service
func NewBackupService(app *App) *BackupService {
	return &BackupService{app: app}
}

// Snapshot collects the current data set
func (s *BackupService) Snapshot(ctx context.Context) (*Backup, error) {
	entries, err := s.app.Entries.List(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.app.Notes.List(ctx)
	if err != nil {
		return nil, err
	}
	foods, err := s.app.Entries.FoodLabels(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := NewProfileService(s.app).Get(ctx)
	if err != nil {
		return nil, err
	}

	b := &Backup{
		Version:     BackupVersion,
		Timestamp:   s.app.Now(),
		Entries:     entries,
		SavedNotes:  notes,
		FoodHistory: foods,
	}
	if !profile.IsEmpty() {
		b.Profile = &profile
	}
	return b, nil
}

// Export writes the current data set as indented JSON
func (s *BackupService) Export(ctx context.Context, w io.Writer) error {
	b, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	s.app.Logger.Info("backup exported", zap.Int("entries", len(b.Entries)))
	return nil
}

// Import validates a backup document and replaces every stored datum with its
// content in one transaction. The progress baseline is reset to the restored
// grid so the restore itself announces nothing.
func (s *BackupService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	b, err := s.decode(r)
	if err != nil {
		return nil, err
	}

	s.app.writeMu.Lock()
	defer s.app.writeMu.Unlock()

	completed := s.app.Engine.Compute(b.Entries).CompletedCount()
	foods := make([]models.FoodLabel, 0, len(b.FoodHistory))
	for _, f := range b.FoodHistory {
		label, err := models.NewFoodLabel(f)
		if err != nil {
			return nil, fmt.Errorf("%w: food history: %v", ErrInvalidBackup, err)
		}
		foods = append(foods, label)
	}

	err = database.Transaction(s.app.DB, func(tx *sql.Tx) error {
		entries := s.app.Entries.WithTx(tx)
		if err := entries.ReplaceFoodLabels(ctx, foods); err != nil {
			return err
		}
		if err := entries.ReplaceAll(ctx, b.Entries); err != nil {
			return err
		}
		if err := s.app.Notes.WithTx(tx).ReplaceAll(ctx, b.SavedNotes); err != nil {
			return err
		}

		profiles := s.app.Profiles.WithTx(tx)
		if b.Profile == nil {
			if err := profiles.Delete(ctx); err != nil {
				return err
			}
		} else if err := profiles.Save(ctx, *b.Profile); err != nil {
			return err
		}

		return s.app.Progress.WithTx(tx).SetCompletedCells(ctx, completed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to restore backup: %w", err)
	}

	labels, err := s.app.Entries.FoodLabels(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := s.app.Notes.List(ctx)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{
		Entries:        len(b.Entries),
		SavedNotes:     len(notes),
		FoodLabels:     len(labels),
		CompletedCells: completed,
	}
	s.app.Logger.Info("backup imported",
		zap.String("version", b.Version),
		zap.Int("entries", res.Entries),
		zap.Int("completed_cells", completed),
	)
	return res, nil
}

// decode parses and validates a backup document without touching the stores
func (s *BackupService) decode(r io.Reader) (*Backup, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable body: %v", ErrInvalidBackup, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidBackup)
	}
	if _, ok := fields["version"]; !ok {
		return nil, fmt.Errorf("%w: version is missing", ErrInvalidBackup)
	}
	entriesRaw, ok := fields["entries"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(entriesRaw), []byte("[")) {
		return nil, fmt.Errorf("%w: entries must be an array", ErrInvalidBackup)
	}
	if profileRaw, ok := fields["profile"]; ok {
		trimmed := bytes.TrimSpace(profileRaw)
		if !bytes.Equal(trimmed, []byte("null")) && !bytes.HasPrefix(trimmed, []byte("{")) {
			return nil, fmt.Errorf("%w: profile must be an object", ErrInvalidBackup)
		}
	}

	var b Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	now := s.app.Now()
	seen := make(map[string]bool, len(b.Entries))
	for i := range b.Entries {
		e := &b.Entries[i]
		category, err := models.ParseCategory(string(e.Category))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidBackup, i, err)
		}
		e.Category = category
		if e.Food, err = models.NewFoodLabel(e.Food.String()); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidBackup, i, err)
		}
		if err := e.Validate(now); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidBackup, i, err)
		}
		if e.ID != "" {
			if seen[e.ID] {
				return nil, fmt.Errorf("%w: duplicate entry id %q", ErrInvalidBackup, e.ID)
			}
			seen[e.ID] = true
		}
	}

	if b.Profile != nil {
		if b.Profile.IsEmpty() {
			b.Profile = nil
		} else if err := b.Profile.Validate(now); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
		}
	}
	if b.SavedNotes == nil {
		b.SavedNotes = []string{}
	}
	return &b, nil
}
