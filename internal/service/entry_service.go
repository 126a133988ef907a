package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/pawtrack-backend-go/internal/database"
	"github.com/jengzang/pawtrack-backend-go/internal/grid"
	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/repository"
	"go.uber.org/zap"
)

// EntryService handles business logic for entries
type EntryService struct {
	app *App
}

// NewEntryService creates a new entry service
func NewEntryService(app *App) *EntryService {
	return &EntryService{app: app}
}

// CreateResult is what a new entry produced
type CreateResult struct {
	Entry     models.Entry    `json:"entry"`
	Placement *grid.Placement `json:"placement,omitempty"`
	Unlock    *grid.Unlock    `json:"unlock,omitempty"`
}

// Create validates and stores a new entry. A positioned entry is first moved
// to a free spot near the requested one. The grid is then recomputed and
// compared with the stored baseline to report any newly unlocked achievement.
func (s *EntryService) Create(ctx context.Context, req models.CreateEntryRequest) (*CreateResult, error) {
	entry, err := req.ToEntry(s.app.Now())
	if err != nil {
		return nil, err
	}

	s.app.writeMu.Lock()
	defer s.app.writeMu.Unlock()

	existing, err := s.app.Entries.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{}
	if entry.HasPosition() {
		placement := s.app.Engine.FindFreePosition(*entry.Position, existing)
		entry.Position = &models.Position{Lat: placement.Position.Lat, Lng: placement.Position.Lng}
		result.Placement = &placement
	}

	err = database.Transaction(s.app.DB, func(tx *sql.Tx) error {
		if err := s.app.Entries.WithTx(tx).Create(ctx, &entry); err != nil {
			return err
		}
		if !entry.HasPosition() {
			return nil
		}
		unlock, err := s.refreshBaseline(ctx, s.app.Progress.WithTx(tx), append(existing, entry))
		if err != nil {
			return err
		}
		result.Unlock = unlock
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Entry = entry

	s.app.Logger.Info("entry created",
		zap.String("id", entry.ID),
		zap.String("category", string(entry.Category)),
		zap.Bool("manual", entry.IsManual),
	)
	return result, nil
}

// Get returns one entry
func (s *EntryService) Get(ctx context.Context, id string) (*models.Entry, error) {
	return s.app.Entries.GetByID(ctx, id)
}

// List returns every entry in insertion order
func (s *EntryService) List(ctx context.Context) ([]models.Entry, error) {
	return s.app.Entries.List(ctx)
}

// Delete removes one entry and lets the baseline follow the grid down
func (s *EntryService) Delete(ctx context.Context, id string) error {
	s.app.writeMu.Lock()
	defer s.app.writeMu.Unlock()

	err := database.Transaction(s.app.DB, func(tx *sql.Tx) error {
		repo := s.app.Entries.WithTx(tx)
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		entries, err := repo.List(ctx)
		if err != nil {
			return err
		}
		_, err = s.refreshBaseline(ctx, s.app.Progress.WithTx(tx), entries)
		return err
	})
	if err != nil {
		return err
	}

	s.app.Logger.Info("entry deleted", zap.String("id", id))
	return nil
}

// Clear removes every entry and resets the baseline
func (s *EntryService) Clear(ctx context.Context) (int64, error) {
	s.app.writeMu.Lock()
	defer s.app.writeMu.Unlock()

	var n int64
	err := database.Transaction(s.app.DB, func(tx *sql.Tx) error {
		var err error
		if n, err = s.app.Entries.WithTx(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return s.app.Progress.WithTx(tx).SetCompletedCells(ctx, 0)
	})
	if err != nil {
		return 0, err
	}

	s.app.Logger.Info("entries cleared", zap.Int64("count", n))
	return n, nil
}

// Count returns the number of stored entries
func (s *EntryService) Count(ctx context.Context) (int, error) {
	return s.app.Entries.Count(ctx)
}

// FoodLabels returns the known food vocabulary
func (s *EntryService) FoodLabels(ctx context.Context) ([]string, error) {
	return s.app.Entries.FoodLabels(ctx)
}

// refreshBaseline recomputes the completed-cell count of entries, stores it as
// the new baseline through progress and returns the unlock it represents, if any
func (s *EntryService) refreshBaseline(ctx context.Context, progress *repository.ProgressRepository, entries []models.Entry) (*grid.Unlock, error) {
	baseline, err := progress.CompletedCells(ctx)
	if err != nil {
		return nil, err
	}
	completed := s.app.Engine.Compute(entries).CompletedCount()

	if completed != baseline {
		if err := progress.SetCompletedCells(ctx, completed); err != nil {
			return nil, fmt.Errorf("failed to store progress baseline: %w", err)
		}
	}

	unlock, ok := s.app.Engine.DetectUnlock(baseline, completed)
	if !ok {
		return nil, nil
	}
	s.app.Logger.Info("achievement unlocked",
		zap.String("kind", string(unlock.Kind)),
		zap.String("name", unlock.Name),
		zap.Int("completed_cells", completed),
	)
	return &unlock, nil
}
