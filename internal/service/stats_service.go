package service

import (
	"context"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/stats"
)

// StatsService answers filtered statistics queries over the entry collection
type StatsService struct {
	app *App
}

// NewStatsService creates a new stats service
func NewStatsService(app *App) *StatsService {
	return &StatsService{app: app}
}

// Filtered returns the entries matching spec, in insertion order
func (s *StatsService) Filtered(ctx context.Context, spec models.FilterSpec) ([]models.Entry, error) {
	entries, err := s.app.Entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.ApplyFilters(entries, spec, s.app.Now()), nil
}

// Query computes the statistics of the filtered collection
func (s *StatsService) Query(ctx context.Context, spec models.FilterSpec) (models.Statistics, error) {
	filtered, err := s.Filtered(ctx, spec)
	if err != nil {
		return models.Statistics{}, err
	}
	return stats.Calculate(filtered), nil
}

// TimeSeries buckets the filtered collection per calendar day over the last days
func (s *StatsService) TimeSeries(ctx context.Context, days int, spec models.FilterSpec) ([]models.DayBucket, error) {
	filtered, err := s.Filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return stats.TimeSeries(filtered, days, s.app.Now()), nil
}

// Correlations ranks food labels of the filtered collection by entry count
func (s *StatsService) Correlations(ctx context.Context, top int, spec models.FilterSpec) ([]models.FoodCorrelation, error) {
	filtered, err := s.Filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return stats.TopCorrelations(filtered, top), nil
}

// Recent returns the newest filtered entries, newest first
func (s *StatsService) Recent(ctx context.Context, limit int, spec models.FilterSpec) ([]models.Entry, error) {
	filtered, err := s.Filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return stats.RecentEntries(filtered, limit), nil
}

// Report assembles every report view from one filtered snapshot
func (s *StatsService) Report(ctx context.Context, spec models.FilterSpec) (models.Report, error) {
	entries, err := s.app.Entries.List(ctx)
	if err != nil {
		return models.Report{}, err
	}
	return stats.Report(entries, spec, s.app.Now()), nil
}
