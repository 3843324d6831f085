package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-matches/internal/config"
	"github.com/pable/go-lol-matches/internal/loghandler"
)

var (
	cfg = config.Load(".env")

	datasetDir   string
	gamesFile    string
	presetsPath  string
	dbPath       string
	exportDir    string
	logLevel     string
	recordSource string

	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "lolmatches",
	Short: "League of Legends match explorer",
	Long: `Load a League of Legends ranked games dataset, narrow it down with chained
filters, compute statistics, save filter pipelines as presets and export the
result. Runs the interactive shell when no subcommand is given.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setupLogger,
	RunE:              runShell,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&datasetDir, "dataset", cfg.DatasetDir, "directory holding the games CSV and lookup JSON files")
	pf.StringVar(&gamesFile, "games", cfg.GamesFile, "games CSV file name inside the dataset directory")
	pf.StringVar(&presetsPath, "presets", cfg.PresetsPath, "path to the presets JSON file")
	pf.StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite database")
	pf.StringVar(&exportDir, "export-dir", cfg.ExportDir, "directory for saved exports")
	pf.StringVar(&logLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	pf.StringVar(&recordSource, "source", sourceCSV, "record source: csv (dataset directory) or db (SQLite copy made by 'import')")

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(championsCmd)
	rootCmd.AddCommand(dropCmd)
}

func setupLogger(_ *cobra.Command, _ []string) error {
	logger = slog.New(loghandler.NewCompactHandler(os.Stderr, config.ParseLevel(logLevel)))
	slog.SetDefault(logger)
	return nil
}
