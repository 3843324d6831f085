package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pable/go-lol-matches/internal/model"
)

// CountGames returns the number of stored games.
func (db *DB) CountGames() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM games").Scan(&n)
	return n, err
}

// ImportRecords stores records in a single transaction. Uses INSERT OR REPLACE
// keyed on gameId, so re-importing a dataset is idempotent. Records without a
// gameId are skipped and counted in the returned skipped value.
func (db *DB) ImportRecords(records []model.Record) (imported, skipped int, err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	gameStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO games(
			game_id, creation_time, game_duration, season_id, winner, team1_wins,
			first_blood, first_tower, first_inhibitor, first_baron, first_dragon, first_rift_herald,
			record_json
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, 0, err
	}
	defer gameStmt.Close()

	champStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO game_champions(game_id, team, slot, champion_id, champion_name, tags, won)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, 0, err
	}
	defer champStmt.Close()

	banStmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO game_bans(game_id, team, slot, champion_id, champion_name)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return 0, 0, err
	}
	defer banStmt.Close()

	for _, r := range records {
		id, ok := model.AsInt(r[model.FieldGameID])
		if !ok {
			skipped++
			continue
		}
		doc, err := json.Marshal(r)
		if err != nil {
			return imported, skipped, fmt.Errorf("encode game %d: %w", id, err)
		}
		for _, q := range []string{"DELETE FROM game_champions WHERE game_id = ?", "DELETE FROM game_bans WHERE game_id = ?"} {
			if _, err := tx.Exec(q, id); err != nil {
				return imported, skipped, fmt.Errorf("clear game %d: %w", id, err)
			}
		}
		t1Win := model.Truthy(r[model.FieldTeam1Wins])
		_, err = gameStmt.Exec(
			id, intField(r, "creationTime"), intField(r, "gameDuration"), intField(r, "seasonId"),
			intField(r, model.FieldWinner), boolInt(t1Win),
			intField(r, "firstBlood"), intField(r, "firstTower"), intField(r, "firstInhibitor"),
			intField(r, "firstBaron"), intField(r, "firstDragon"), intField(r, "firstRiftHerald"),
			string(doc),
		)
		if err != nil {
			return imported, skipped, fmt.Errorf("insert game %d: %w", id, err)
		}

		for team, side := range []string{"t1", "t2"} {
			won := t1Win == (team == 0)
			ids := model.Ints(r[side+"_champ_ids"])
			names := model.Strings(r[side+"_champ_names"])
			tags := model.StringLists(r[side+"_champ_tags"])
			for slot, name := range names {
				var champID int
				if slot < len(ids) {
					champID = ids[slot]
				}
				var tagList string
				if slot < len(tags) {
					tagList = strings.Join(tags[slot], ",")
				}
				if _, err := champStmt.Exec(id, team+1, slot+1, champID, name, tagList, boolInt(won)); err != nil {
					return imported, skipped, fmt.Errorf("insert champion for game %d: %w", id, err)
				}
			}

			bans := model.Ints(r[side+"_bans"])
			banNames := model.Strings(r[side+"_ban_names"])
			for slot, name := range banNames {
				var champID int
				if slot < len(bans) {
					champID = bans[slot]
				}
				if _, err := banStmt.Exec(id, team+1, slot+1, champID, name); err != nil {
					return imported, skipped, fmt.Errorf("insert ban for game %d: %w", id, err)
				}
			}
		}
		imported++
	}
	return imported, skipped, tx.Commit()
}

// LoadRecords reads every stored game ordered by gameId, restoring the
// catalog types of each field.
func (db *DB) LoadRecords() ([]model.Record, error) {
	rows, err := db.conn.Query("SELECT record_json FROM games ORDER BY game_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Record
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var raw map[string]any
		if err := json.Unmarshal([]byte(doc), &raw); err != nil {
			return nil, fmt.Errorf("decode stored game: %w", err)
		}
		r := make(model.Record, len(raw))
		for k, v := range raw {
			kind, _ := model.KindOf(k)
			r[k] = restore(kind, v)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// restore converts a decoded JSON value back to the record type of kind.
// Fields outside the catalog keep a best-effort conversion.
func restore(kind model.Kind, v any) any {
	switch kind {
	case model.KindInt:
		return jsonInt(v)
	case model.KindBool:
		b, _ := v.(bool)
		return b
	case model.KindString:
		s, _ := v.(string)
		return s
	case model.KindIntList:
		return jsonInts(v)
	case model.KindStringList:
		return jsonStrings(v)
	case model.KindIntPairs:
		items, _ := v.([]any)
		out := make([][]int, len(items))
		for i, it := range items {
			out[i] = jsonInts(it)
		}
		return out
	case model.KindStringPairs:
		items, _ := v.([]any)
		out := make([][]string, len(items))
		for i, it := range items {
			out[i] = jsonStrings(it)
		}
		return out
	}
	if f, ok := v.(float64); ok && f == math.Trunc(f) {
		return int(f)
	}
	return v
}

func jsonInt(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func jsonInts(v any) []int {
	items, _ := v.([]any)
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = jsonInt(it)
	}
	return out
}

func jsonStrings(v any) []string {
	items, _ := v.([]any)
	out := make([]string, len(items))
	for i, it := range items {
		out[i], _ = it.(string)
	}
	return out
}

// ChampionWinRate is one row of the stored champion rollup.
type ChampionWinRate struct {
	Name  string
	Games int
	Wins  int
}

// ChampionWinRates returns games and wins per champion name from the stored
// rosters, for champions with at least minGames games. A champion listed twice
// on one side of a game counts once. Ordered by games descending, then name.
func (db *DB) ChampionWinRates(minGames int) ([]ChampionWinRate, error) {
	rows, err := db.conn.Query(`
		SELECT champion_name, COUNT(1), SUM(won)
		FROM (
			SELECT DISTINCT game_id, team, champion_name, won FROM game_champions
		)
		GROUP BY champion_name
		HAVING COUNT(1) >= ?
		ORDER BY COUNT(1) DESC, champion_name`, minGames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChampionWinRate
	for rows.Next() {
		var c ChampionWinRate
		if err := rows.Scan(&c.Name, &c.Games, &c.Wins); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and rows as
// display strings. NULL renders as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func intField(r model.Record, field string) int {
	n, _ := model.AsInt(r[field])
	return n
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
