package aggregator

import (
	"fmt"
	"math"
	"testing"

	"github.com/pable/go-lol-matches/internal/model"
)

// makeGame builds a minimal enriched game record.
func makeGame(id int, team1Wins bool, t1, t2 []string) model.Record {
	winner := 2
	if team1Wins {
		winner = 1
	}
	return model.Record{
		"gameId":         id,
		"winner":         winner,
		"team1Wins":      team1Wins,
		"t1_champ_names": t1,
		"t2_champ_names": t2,
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalGames != 0 {
		t.Errorf("TotalGames: want 0, got %d", s.TotalGames)
	}
	if s.Team1WinRate != nil {
		t.Error("win rate of an empty set must be undefined")
	}
	if s.Objectives != nil || s.Champions != nil {
		t.Error("rollups of an empty set must be absent")
	}
	if FieldStats(nil) != nil {
		t.Error("field stats of an empty set must be absent")
	}
}

func TestSummarize_GlobalWinRate(t *testing.T) {
	var games []model.Record
	for i := 0; i < 100; i++ {
		games = append(games, makeGame(i, i < 55, nil, nil))
	}
	s := Summarize(games)
	if s.Team1WinRate == nil || *s.Team1WinRate != 0.55 {
		t.Errorf("Team1WinRate: want 0.55, got %v", s.Team1WinRate)
	}
}

func TestSummarize_ChampionBothSides(t *testing.T) {
	other := []string{"A", "B", "C", "D"}
	with := func(names []string) []string { return append([]string{"Ahri"}, names...) }
	games := []model.Record{
		makeGame(1, true, with(other), other),  // team 1, win
		makeGame(2, true, with(other), other),  // team 1, win
		makeGame(3, false, with(other), other), // team 1, loss
		makeGame(4, false, other, with(other)), // team 2, win
		makeGame(5, true, other, with(other)),  // team 2, loss
	}
	s := Summarize(games)
	c, ok := s.Champion("Ahri")
	if !ok {
		t.Fatal("Ahri missing from champion stats")
	}
	if c.Games != 5 || c.Wins != 3 {
		t.Errorf("Ahri: want games=5 wins=3, got games=%d wins=%d", c.Games, c.Wins)
	}
	if c.WinRate == nil || !approx(*c.WinRate, 0.6) {
		t.Errorf("Ahri win rate: want 0.6, got %v", c.WinRate)
	}
}

func TestSummarize_DuplicateNameOnOneSideCountsOnce(t *testing.T) {
	games := []model.Record{
		makeGame(1, true, []string{"Unknown_0", "Unknown_0", "Lux"}, []string{"Zed"}),
	}
	s := Summarize(games)
	if c, _ := s.Champion("Unknown_0"); c.Games != 1 || c.Wins != 1 {
		t.Errorf("placeholder twice on one side: want games=1 wins=1, got %+v", c)
	}
	if c, _ := s.Champion("zed"); c.Games != 1 || c.Wins != 0 {
		t.Errorf("case-insensitive lookup: want Zed games=1 wins=0, got %+v", c)
	}
	if _, ok := s.Champion("Teemo"); ok {
		t.Error("unexpected Teemo")
	}
}

func TestSummarize_Objectives(t *testing.T) {
	games := []model.Record{
		makeGame(1, true, nil, nil),
		makeGame(2, true, nil, nil),
		makeGame(3, false, nil, nil),
		makeGame(4, false, nil, nil),
	}
	games[0]["firstTower"] = 1
	games[1]["firstTower"] = 1
	games[2]["firstTower"] = 1
	games[3]["firstTower"] = 2
	games[0]["firstBaron"] = 0

	s := Summarize(games)
	var tower, baron ObjectiveStat
	for _, o := range s.Objectives {
		switch o.Objective {
		case "firstTower":
			tower = o
		case "firstBaron":
			baron = o
		}
	}
	if tower.Team1.Games != 3 || tower.Team1.Wins != 2 {
		t.Errorf("tower team1: want 3 games 2 wins, got %+v", tower.Team1)
	}
	if tower.Team1.WinRate == nil || !approx(*tower.Team1.WinRate, 2.0/3.0) {
		t.Errorf("tower team1 rate: got %v", tower.Team1.WinRate)
	}
	if tower.Team2.Games != 1 || tower.Team2.Wins != 1 {
		t.Errorf("tower team2: want 1 game 1 win, got %+v", tower.Team2)
	}
	if baron.Team1.WinRate != nil || baron.Team2.WinRate != nil {
		t.Error("objective never taken must have undefined rates, not zero")
	}
	if len(s.Objectives) != len(model.ObjectiveFields) {
		t.Errorf("want %d objectives, got %d", len(model.ObjectiveFields), len(s.Objectives))
	}
}

func TestRankings(t *testing.T) {
	var games []model.Record
	id := 0
	// "Popular" plays 6 games winning 2; "Strong" plays 4 winning 4;
	// "Rare" plays 1 game and stays under the threshold.
	for i := 0; i < 6; i++ {
		id++
		games = append(games, makeGame(id, i < 2, []string{"Popular"}, []string{"X"}))
	}
	for i := 0; i < 4; i++ {
		id++
		games = append(games, makeGame(id, true, []string{"Strong"}, []string{"X"}))
	}
	id++
	games = append(games, makeGame(id, true, []string{"Rare"}, []string{"X"}))

	s := Summarize(games)

	most := MostPlayed(s, 2, 10)
	names := func(cs []ChampionStat) string {
		out := ""
		for _, c := range cs {
			out += c.Name + ","
		}
		return out
	}
	if got := names(most); got != "X,Popular,Strong," {
		t.Errorf("MostPlayed: got %s", got)
	}

	top := TopWinRate(s, 2, 10)
	if got := names(top); got != "Strong,X,Popular," {
		t.Errorf("TopWinRate: got %s", got)
	}

	if got := MostPlayed(s, 2, 1); len(got) != 1 || got[0].Name != "X" {
		t.Errorf("limit 1: got %s", names(got))
	}
	if got := MostPlayed(s, 100, 10); len(got) != 0 {
		t.Errorf("threshold above every champion: got %s", names(got))
	}
}

func TestFieldStats(t *testing.T) {
	games := []model.Record{
		{"gameDuration": 1000, "team1Wins": true, "t1_bans": []int{1, 2, 3, 4, 5}, "label": "a"},
		{"gameDuration": 2000, "team1Wins": false, "t1_bans": []int{1, 2, 3}},
		{"gameDuration": 3000, "team1Wins": true},
	}
	byField := make(map[string]FieldStat)
	for _, fs := range FieldStats(games) {
		byField[fs.Field] = fs
	}

	d := byField["gameDuration"]
	if d.Type != StatNumber || d.Min != 1000 || d.Max != 3000 || d.Avg != 2000 {
		t.Errorf("gameDuration: %+v", d)
	}
	w := byField["team1Wins"]
	if w.Type != StatNumber || w.Min != 0 || w.Max != 1 || !approx(w.Avg, 2.0/3.0) {
		t.Errorf("team1Wins: %+v", w)
	}
	b := byField["t1_bans"]
	if b.Type != StatList || b.MinLen != 3 || b.MaxLen != 5 || b.AvgLen != 4 {
		t.Errorf("t1_bans: %+v", b)
	}
	l := byField["label"]
	if l.Type != StatOther || fmt.Sprint(l.Example) != "a" {
		t.Errorf("label: %+v", l)
	}
}

func TestFieldStats_MixedValuesSkipped(t *testing.T) {
	games := []model.Record{
		{"gameDuration": 1000},
		{"gameDuration": "n/a"},
		{"gameDuration": nil},
		{"gameDuration": 3000},
	}
	stats := FieldStats(games)
	if len(stats) != 1 {
		t.Fatalf("want one field, got %d", len(stats))
	}
	if stats[0].Avg != 2000 {
		t.Errorf("non-numeric values must be skipped: avg=%v", stats[0].Avg)
	}
}
