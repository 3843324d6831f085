package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-matches/internal/aggregator"
	"github.com/pable/go-lol-matches/internal/report"
)

var (
	statsPreset   string
	statsChampion string
	statsFields   bool
	statsMinGames int
	statsTop      int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print advanced statistics for the dataset or a preset",
	Long: `Print the team-1 win rate, first-objective impact and champion rankings for the
whole dataset, or for the games selected by a saved preset.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsPreset, "preset", "", "replay this preset before computing statistics")
	statsCmd.Flags().StringVar(&statsChampion, "champion", "", "print a single champion's games and win rate")
	statsCmd.Flags().BoolVar(&statsFields, "fields", false, "also print per-field statistics")
	statsCmd.Flags().IntVar(&statsMinGames, "min-games", cfg.MinChampionGames, "minimum games for champion rankings")
	statsCmd.Flags().IntVar(&statsTop, "top", cfg.TopN, "number of champions per ranking")
}

func runStats(_ *cobra.Command, _ []string) error {
	records, history, err := loadPresetRecords(statsPreset)
	if err != nil {
		return err
	}
	if len(history) > 0 {
		fmt.Fprintf(os.Stdout, "Preset %q: %s\n", statsPreset, strings.Join(history, " > "))
	}

	if statsFields {
		fmt.Fprintf(os.Stdout, "\n=== Field Statistics ===\n\n")
		report.PrintFieldStats(os.Stdout, aggregator.FieldStats(records))
	}

	summary := aggregator.Summarize(records)
	if statsChampion != "" {
		report.PrintChampion(os.Stdout, summary, statsChampion)
		return nil
	}
	report.PrintOverview(os.Stdout, summary, statsMinGames, statsTop)
	return nil
}
