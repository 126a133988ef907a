package service

import (
	"context"

	"github.com/jengzang/pawtrack-backend-go/internal/grid"
	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/repository"
	"github.com/jengzang/pawtrack-backend-go/internal/spatial"
)

// AchievementService exposes the exploration grid and its achievements
type AchievementService struct {
	app *App
}

// NewAchievementService creates a new achievement service
func NewAchievementService(app *App) *AchievementService {
	return &AchievementService{app: app}
}

// Summary returns points, completed cells, badges and the busiest cells
func (s *AchievementService) Summary(ctx context.Context) (grid.Achievements, error) {
	entries, err := s.app.Entries.List(ctx)
	if err != nil {
		return grid.Achievements{}, err
	}
	return s.app.Engine.Summary(entries), nil
}

// Grid returns every visited cell, busiest first
func (s *AchievementService) Grid(ctx context.Context, withEntries bool) ([]models.GridCell, error) {
	entries, err := s.app.Entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.app.Engine.Cells(s.app.Engine.Compute(entries), withEntries), nil
}

// Cell returns one visited cell with the ids of its entries
func (s *AchievementService) Cell(ctx context.Context, rawID string) (*models.GridCell, error) {
	id, err := spatial.ParseCellID(rawID)
	if err != nil {
		return nil, err
	}

	entries, err := s.app.Entries.List(ctx)
	if err != nil {
		return nil, err
	}

	c, ok := s.app.Engine.Compute(entries)[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	view := s.app.Engine.View(c, true)
	return &view, nil
}

// Placement runs the free-slot search for a candidate without storing anything
func (s *AchievementService) Placement(ctx context.Context, candidate models.Position) (grid.Placement, error) {
	if err := candidate.Validate(); err != nil {
		return grid.Placement{}, err
	}
	entries, err := s.app.Entries.List(ctx)
	if err != nil {
		return grid.Placement{}, err
	}
	return s.app.Engine.FindFreePosition(candidate, entries), nil
}
