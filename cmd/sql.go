package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-matches/internal/report"
	"github.com/pable/go-lol-matches/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the games database",
	Long: `Run an arbitrary SQL query against the games database and print results as a table.
Populate the database first with 'lolmatches import'.

Schema overview:
  games(game_id, creation_time, game_duration, season_id, winner, team1_wins,
    first_blood, first_tower, first_inhibitor, first_baron, first_dragon,
    first_rift_herald, record_json)
  game_champions(game_id, team, slot, champion_id, champion_name, tags, won)
  game_bans(game_id, team, slot, champion_id, champion_name)

team is 1 or 2; won is 1 when that champion's side won. tags is comma-separated.
Example: SELECT champion_name, COUNT(1) FROM game_bans GROUP BY 1 ORDER BY 2 DESC LIMIT 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintRows(os.Stdout, cols, rows)
	return nil
}
