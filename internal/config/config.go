package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LOLMATCHES_"

// Config holds the explorer's paths and tunables.
type Config struct {
	DatasetDir  string // directory holding the games CSV and lookup JSON files
	GamesFile   string
	PresetsPath string
	DBPath      string
	ExportDir   string
	LogLevel    string

	// MinChampionGames is the game threshold for champion rankings.
	MinChampionGames int
	// TopN caps each ranking.
	TopN int
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		DatasetDir:       ".",
		GamesFile:        "games.csv",
		PresetsPath:      "presets.json",
		DBPath:           filepath.Join(userHome(), ".lolmatches", "matches.db"),
		ExportDir:        "exports",
		LogLevel:         "info",
		MinChampionGames: 50,
		TopN:             10,
	}
}

// Load reads an optional dotenv file, then applies LOLMATCHES_* environment
// overrides. Variables already set in the environment win over the file.
// Fields not set in either source retain their default values.
func Load(envFile string) *Config {
	cfg := Defaults()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to read env file", "path", envFile, "err", err)
		}
	}

	overrideString(&cfg.DatasetDir, "DATASET")
	overrideString(&cfg.GamesFile, "GAMES")
	overrideString(&cfg.PresetsPath, "PRESETS")
	overrideString(&cfg.DBPath, "DB")
	overrideString(&cfg.ExportDir, "EXPORT_DIR")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideInt(&cfg.MinChampionGames, "MIN_CHAMPION_GAMES")
	overrideInt(&cfg.TopN, "TOP_N")

	return cfg
}

// ParseLevel maps a level name to a slog level; unknown names yield info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func overrideInt(field *int, key string) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			slog.Warn("invalid config value", "key", EnvPrefix+key, "value", val)
		}
	}
}

func overrideString(field *string, key string) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		*field = val
	}
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
