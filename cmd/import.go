package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-matches/internal/loader"
	"github.com/pable/go-lol-matches/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV dataset into the SQLite database",
	Long: `Read the games CSV and lookup files from the dataset directory, enrich every
game and store it in the SQLite database. Re-importing replaces games with the
same gameId. Afterwards use --source db to explore from the database, or
'lolmatches sql' for ad-hoc queries.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func runImport(_ *cobra.Command, _ []string) error {
	records, err := loader.Load(datasetDir, gamesFile, logger.With("tag", "loader"))
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	imported, skipped, err := db.ImportRecords(records)
	if err != nil {
		return fmt.Errorf("import games: %w", err)
	}
	logger.Info("games imported", "tag", "storage", "imported", imported, "skipped", skipped)

	total, err := db.CountGames()
	if err != nil {
		return fmt.Errorf("count games: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Imported %d games (%d skipped). Database now holds %d games: %s\n",
		imported, skipped, total, dbPath)
	return nil
}
