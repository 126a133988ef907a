package service

import (
	"database/sql"
	"sync"
	"time"

	"github.com/jengzang/pawtrack-backend-go/internal/grid"
	"github.com/jengzang/pawtrack-backend-go/internal/repository"
	"go.uber.org/zap"
)

// App is the orchestration context shared by every service. It is built once
// at startup and passed explicitly.
type App struct {
	DB       *sql.DB
	Entries  *repository.EntryRepository
	Profiles *repository.ProfileRepository
	Progress *repository.ProgressRepository
	Notes    *repository.NoteRepository
	Engine   *grid.Engine
	Location *time.Location
	Logger   *zap.Logger

	// Clock is replaceable in tests
	Clock func() time.Time

	// writeMu serializes read-modify-write sequences on the entry collection
	writeMu sync.Mutex
}

// NewApp wires the stores around db
func NewApp(db *sql.DB, engine *grid.Engine, loc *time.Location, logger *zap.Logger) *App {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		DB:       db,
		Entries:  repository.NewEntryRepository(db),
		Profiles: repository.NewProfileRepository(db),
		Progress: repository.NewProgressRepository(db),
		Notes:    repository.NewNoteRepository(db),
		Engine:   engine,
		Location: loc,
		Logger:   logger,
		Clock:    time.Now,
	}
}

// Now returns the current time in the configured location
func (a *App) Now() time.Time {
	return a.Clock().In(a.Location)
}

// Services bundles every service built on one App
type Services struct {
	Entries      *EntryService
	Achievements *AchievementService
	Stats        *StatsService
	Profile      *ProfileService
	Notes        *NoteService
	Backup       *BackupService
}

// NewServices builds the service set
func NewServices(app *App) *Services {
	return &Services{
		Entries:      NewEntryService(app),
		Achievements: NewAchievementService(app),
		Stats:        NewStatsService(app),
		Profile:      NewProfileService(app),
		Notes:        NewNoteService(app),
		Backup:       NewBackupService(app),
	}
}
