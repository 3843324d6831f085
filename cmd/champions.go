package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-matches/internal/report"
	"github.com/pable/go-lol-matches/internal/storage"
)

var championsMinGames int

// championsCmd reports champion win rates straight from the database.
var championsCmd = &cobra.Command{
	Use:   "champions",
	Short: "Show champion win rates from the games database",
	Long: `Display games, wins and win rate per champion computed in SQL over every
game stored by 'lolmatches import'. A champion appearing twice on one side of a
game counts once.`,
	Args: cobra.NoArgs,
	RunE: runChampions,
}

func init() {
	championsCmd.Flags().IntVar(&championsMinGames, "min-games", cfg.MinChampionGames, "minimum games to list a champion")
}

func runChampions(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	total, err := db.CountGames()
	if err != nil {
		return fmt.Errorf("count games: %w", err)
	}
	if total == 0 {
		fmt.Fprintln(os.Stdout, "No games stored yet. Run 'lolmatches import' to add the dataset.")
		return nil
	}

	rates, err := db.ChampionWinRates(championsMinGames)
	if err != nil {
		return fmt.Errorf("champion win rates: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\n=== Champions (%d games stored, min %d games) ===\n\n", total, championsMinGames)
	report.PrintChampionWinRates(os.Stdout, rates)
	return nil
}
