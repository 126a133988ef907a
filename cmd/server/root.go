package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jengzang/pawtrack-backend-go/internal/config"
	"github.com/jengzang/pawtrack-backend-go/internal/database"
	"github.com/jengzang/pawtrack-backend-go/internal/grid"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pawtrack",
	Short: "Pawtrack backend: dog walk log, exploration grid and health statistics",
	Long: `pawtrack stores logged entries in sqlite and serves the exploration grid,
achievements and filtered health statistics over HTTP.

Usage:
  pawtrack serve                       Start the HTTP API
  pawtrack export > backup.json        Write a backup document to stdout
  pawtrack import backup.json          Replace all data with a backup document
  pawtrack stats --period week         Print statistics for a filter`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "pawtrack.toml", "path to the TOML config file")
	rootCmd.AddCommand(serveCmd, exportCmd, importCmd, statsCmd)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	return zc.Build()
}

// openApp opens the database and builds the orchestration context
func openApp() (*service.App, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath}, logger)
	if err != nil {
		return nil, nil, err
	}

	app := service.NewApp(db, grid.NewEngine(cfg.Grid), loc, logger)
	return app, func() { closeDB(db) }, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.Warn("failed to close database", zap.Error(err))
	}
}
