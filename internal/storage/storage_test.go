package storage

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pable/go-lol-matches/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleGame(id int, team1Wins bool, t1, t2 []string) model.Record {
	winner := 2
	if team1Wins {
		winner = 1
	}
	return model.Record{
		"gameId":                   id,
		"gameDuration":             1800 + id,
		"winner":                   winner,
		"team1Wins":                team1Wins,
		"firstTower":               1,
		"t1_champ_ids":             []int{1, 2},
		"t1_champ_names":           t1,
		"t2_champ_names":           t2,
		"t1_champ_tags":            [][]string{{"Mage"}, {}},
		"t1_summoner_spells_ids":   [][]int{{4, 14}, {4, 12}},
		"t1_summoner_spells_names": [][]string{{"Flash", "Ignite"}, {"Flash", "Teleport"}},
		"t1_bans":                  []int{7, 0},
		"t1_ban_names":             []string{"LeBlanc", "Unknown_0"},
	}
}

func TestImportAndLoadRoundTrip(t *testing.T) {
	db := openMemDB(t)
	games := []model.Record{
		sampleGame(2, false, []string{"Ahri", "Zed"}, []string{"Lux"}),
		sampleGame(1, true, []string{"Ahri", "Lux"}, []string{"Zed"}),
	}
	imported, skipped, err := db.ImportRecords(games)
	if err != nil {
		t.Fatalf("ImportRecords: %v", err)
	}
	if imported != 2 || skipped != 0 {
		t.Errorf("want imported=2 skipped=0, got %d/%d", imported, skipped)
	}

	loaded, err := db.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	// Ordered by gameId.
	want := []model.Record{games[1], games[0]}
	if diff := cmp.Diff(want, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	db := openMemDB(t)
	g := sampleGame(1, true, []string{"Ahri"}, []string{"Zed"})
	for i := 0; i < 2; i++ {
		if _, _, err := db.ImportRecords([]model.Record{g}); err != nil {
			t.Fatalf("ImportRecords #%d: %v", i, err)
		}
	}
	n, err := db.CountGames()
	if err != nil {
		t.Fatalf("CountGames: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 game after re-import, got %d", n)
	}
}

func TestImportSkipsRecordsWithoutID(t *testing.T) {
	db := openMemDB(t)
	imported, skipped, err := db.ImportRecords([]model.Record{{"winner": 1}})
	if err != nil {
		t.Fatalf("ImportRecords: %v", err)
	}
	if imported != 0 || skipped != 1 {
		t.Errorf("want imported=0 skipped=1, got %d/%d", imported, skipped)
	}
}

func TestChampionWinRates(t *testing.T) {
	db := openMemDB(t)
	games := []model.Record{
		sampleGame(1, true, []string{"Ahri", "Ahri"}, []string{"Zed"}),
		sampleGame(2, false, []string{"Ahri"}, []string{"Zed"}),
		sampleGame(3, true, []string{"Lux"}, []string{"Ahri"}),
	}
	if _, _, err := db.ImportRecords(games); err != nil {
		t.Fatalf("ImportRecords: %v", err)
	}

	rates, err := db.ChampionWinRates(2)
	if err != nil {
		t.Fatalf("ChampionWinRates: %v", err)
	}
	want := []ChampionWinRate{
		{Name: "Ahri", Games: 3, Wins: 1},
		{Name: "Zed", Games: 2, Wins: 1},
	}
	if diff := cmp.Diff(want, rates); diff != "" {
		t.Errorf("win rates mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	if _, _, err := db.ImportRecords([]model.Record{sampleGame(7, true, []string{"Ahri"}, nil)}); err != nil {
		t.Fatalf("ImportRecords: %v", err)
	}
	cols, rows, err := db.QueryRaw("SELECT game_id, winner, NULL AS empty_col FROM games")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if diff := cmp.Diff([]string{"game_id", "winner", "empty_col"}, cols); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"7", "1", "NULL"}}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}

	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}
