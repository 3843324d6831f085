package cmd

import (
	"fmt"

	"github.com/pable/go-lol-matches/internal/loader"
	"github.com/pable/go-lol-matches/internal/model"
	"github.com/pable/go-lol-matches/internal/preset"
	"github.com/pable/go-lol-matches/internal/storage"
)

const (
	sourceCSV = "csv"
	sourceDB  = "db"
)

// loadRecords reads the full record set from the selected source.
func loadRecords() ([]model.Record, error) {
	switch recordSource {
	case sourceCSV, "":
		records, err := loader.Load(datasetDir, gamesFile, logger.With("tag", "loader"))
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		return records, nil
	case sourceDB:
		db, err := storage.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		records, err := db.LoadRecords()
		if err != nil {
			return nil, fmt.Errorf("load records: %w", err)
		}
		logger.Info("games loaded", "tag", "storage", "db", dbPath, "count", len(records))
		return records, nil
	}
	return nil, fmt.Errorf("unknown source %q (want %s or %s)", recordSource, sourceCSV, sourceDB)
}

// loadPresetRecords loads the full record set and, when name is non-empty,
// replays that preset over it. The returned history is empty without a preset.
func loadPresetRecords(name string) ([]model.Record, []string, error) {
	records, err := loadRecords()
	if err != nil {
		return nil, nil, err
	}
	if name == "" {
		return records, nil, nil
	}
	tokens, err := newPresetStore().Get(name)
	if err != nil {
		return nil, nil, err
	}
	working, history := preset.Apply(records, tokens, logger.With("tag", "preset"))
	return working, history, nil
}

func newPresetStore() *preset.Store {
	return preset.NewStore(presetsPath, logger.With("tag", "preset"))
}
