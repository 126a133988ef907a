package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup document to stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, closeApp, err := openApp()
		if err != nil {
			return err
		}
		defer closeApp()

		return service.NewBackupService(app).Export(cmd.Context(), cmd.OutOrStdout())
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with a backup document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		app, closeApp, err := openApp()
		if err != nil {
			return err
		}
		defer closeApp()

		res, err := service.NewBackupService(app).Import(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d entries, %d notes, %d food labels (%d completed cells)\n",
			res.Entries, res.SavedNotes, res.FoodLabels, res.CompletedCells)
		return nil
	},
}

var statsFilter models.EntryFilter

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the statistics report for a filter as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := statsFilter.ToSpec()
		if err != nil {
			return err
		}

		app, closeApp, err := openApp()
		if err != nil {
			return err
		}
		defer closeApp()

		report, err := service.NewStatsService(app).Report(cmd.Context(), spec)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFilter.Period, "period", "all", "all, today, yesterday, week or month")
	statsCmd.Flags().StringVar(&statsFilter.Category, "category", "all", "all or a category name")
	statsCmd.Flags().StringVar(&statsFilter.Food, "food", "all", "all or an exact food label")
}
