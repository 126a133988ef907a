package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/repository"
)

// ReminderWindowDays is how far ahead a treatment counts as urgent
const ReminderWindowDays = 7

// ProfileService manages the dog profile and its treatment reminders
type ProfileService struct {
	app *App
}

// NewProfileService creates a new profile service
func NewProfileService(app *App) *ProfileService {
	return &ProfileService{app: app}
}

// Get returns the saved profile, or an empty one before the first save
func (s *ProfileService) Get(ctx context.Context) (models.Profile, error) {
	p, err := s.app.Profiles.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Profile{}, nil
	}
	if err != nil {
		return models.Profile{}, err
	}
	return *p, nil
}

// Save validates and stores the profile
func (s *ProfileService) Save(ctx context.Context, p models.Profile) (models.Profile, error) {
	now := s.app.Now()
	if err := p.Validate(now); err != nil {
		return models.Profile{}, err
	}
	p.UpdatedAt = now
	if err := s.app.Profiles.Save(ctx, p); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// UrgentReminders lists treatments of the saved profile that are overdue or due soon
func (s *ProfileService) UrgentReminders(ctx context.Context) ([]models.Reminder, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return UrgentReminders(p, s.app.Now()), nil
}

// UrgentReminders returns the reminders due within ReminderWindowDays or
// already overdue, overdue ones first and then by days left. Days left is the
// day difference rounded up.
func UrgentReminders(p models.Profile, now time.Time) []models.Reminder {
	candidates := []struct {
		kind string
		due  *time.Time
	}{
		{models.ReminderVaccination, p.NextVaccination},
		{models.ReminderAntiparasitic, p.NextAntiparasitic},
		{models.ReminderFleaTick, p.NextFleaTick},
	}

	reminders := []models.Reminder{}
	for _, c := range candidates {
		if c.due == nil || c.due.IsZero() {
			continue
		}
		daysLeft := int(math.Ceil(c.due.Sub(now).Hours() / 24))
		if daysLeft > ReminderWindowDays {
			continue
		}
		reminders = append(reminders, models.Reminder{
			Type:      c.kind,
			DueDate:   *c.due,
			DaysLeft:  daysLeft,
			IsOverdue: daysLeft < 0,
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].IsOverdue != reminders[j].IsOverdue {
			return reminders[i].IsOverdue
		}
		return reminders[i].DaysLeft < reminders[j].DaysLeft
	})
	return reminders
}
