package aggregator

import (
	"sort"
	"strings"

	"github.com/pable/go-lol-matches/internal/model"
)

// StatType classifies a field for the general statistics.
type StatType string

const (
	StatNumber StatType = "number"
	StatList   StatType = "list"
	StatOther  StatType = "other"
)

// FieldStat summarises one field over every record exposing it.
type FieldStat struct {
	Field string
	Type  StatType

	// Number fields. Booleans count as 0/1.
	Min, Max, Avg float64

	// List fields.
	MinLen, MaxLen int
	AvgLen         float64

	// Other fields: the first observed value.
	Example any
}

// FieldStats computes per-field statistics. A field is classified by the
// first non-nil value seen; records lacking the field are skipped, not
// zero-filled. An empty record set yields nil.
func FieldStats(records []model.Record) []FieldStat {
	if len(records) == 0 {
		return nil
	}
	var out []FieldStat
	for _, key := range model.UnionKeys(records) {
		values := make([]any, 0, len(records))
		for _, r := range records {
			if v, ok := r[key]; ok && v != nil {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		if fs, ok := fieldStat(key, values); ok {
			out = append(out, fs)
		}
	}
	return out
}

func fieldStat(key string, values []any) (FieldStat, bool) {
	first := values[0]
	if model.IsNumeric(first) {
		var sum, mn, mx float64
		n := 0
		for _, v := range values {
			f, ok := model.AsFloat(v)
			if !ok {
				continue
			}
			if n == 0 || f < mn {
				mn = f
			}
			if n == 0 || f > mx {
				mx = f
			}
			sum += f
			n++
		}
		return FieldStat{Field: key, Type: StatNumber, Min: mn, Max: mx, Avg: sum / float64(n)}, true
	}
	if _, ok := model.ListLen(first); ok {
		var sum, mn, mx, n int
		for _, v := range values {
			l, ok := model.ListLen(v)
			if !ok {
				continue
			}
			if n == 0 || l < mn {
				mn = l
			}
			if n == 0 || l > mx {
				mx = l
			}
			sum += l
			n++
		}
		return FieldStat{Field: key, Type: StatList, MinLen: mn, MaxLen: mx, AvgLen: float64(sum) / float64(n)}, true
	}
	return FieldStat{Field: key, Type: StatOther, Example: first}, true
}

// SideStat counts games where one side took an objective first, and how many
// of those that side won. WinRate is nil when Games is zero.
type SideStat struct {
	Games   int
	Wins    int
	WinRate *float64
}

// ObjectiveStat is the first-take impact of one objective, split by side.
type ObjectiveStat struct {
	Objective string
	Team1     SideStat
	Team2     SideStat
}

// ChampionStat aggregates one champion across both sides.
type ChampionStat struct {
	Name    string
	Games   int
	Wins    int
	WinRate *float64
}

// Summary holds the league rollups for a record set. For an empty set only
// TotalGames is set; every rate is nil.
type Summary struct {
	TotalGames   int
	Team1WinRate *float64
	Objectives   []ObjectiveStat
	Champions    map[string]*ChampionStat
}

// Summarize computes the global win rate, per-objective first-take win rates
// and per-champion games/wins in a single pass.
func Summarize(records []model.Record) Summary {
	s := Summary{TotalGames: len(records)}
	if len(records) == 0 {
		return s
	}

	objectives := make([]ObjectiveStat, len(model.ObjectiveFields))
	for i, f := range model.ObjectiveFields {
		objectives[i].Objective = f
	}
	champions := make(map[string]*ChampionStat)
	team1Wins := 0

	for _, g := range records {
		if won, ok := g[model.FieldTeam1Wins].(bool); ok && won {
			team1Wins++
		}
		t1Win := model.Truthy(g[model.FieldTeam1Wins])

		for i, f := range model.ObjectiveFields {
			taker, _ := model.AsInt(g[f])
			switch model.Team(taker) {
			case model.Team1:
				objectives[i].Team1.Games++
				if t1Win {
					objectives[i].Team1.Wins++
				}
			case model.Team2:
				objectives[i].Team2.Games++
				if !t1Win {
					objectives[i].Team2.Wins++
				}
			}
		}

		countRoster(champions, model.Strings(g[model.FieldT1Names]), t1Win)
		countRoster(champions, model.Strings(g[model.FieldT2Names]), !t1Win)
	}

	s.Team1WinRate = rate(team1Wins, len(records))
	for i := range objectives {
		objectives[i].Team1.WinRate = rate(objectives[i].Team1.Wins, objectives[i].Team1.Games)
		objectives[i].Team2.WinRate = rate(objectives[i].Team2.Wins, objectives[i].Team2.Games)
	}
	for _, c := range champions {
		c.WinRate = rate(c.Wins, c.Games)
	}
	s.Objectives = objectives
	s.Champions = champions
	return s
}

// countRoster credits each distinct name on one side once per game.
func countRoster(champions map[string]*ChampionStat, names []string, won bool) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		c, ok := champions[name]
		if !ok {
			c = &ChampionStat{Name: name}
			champions[name] = c
		}
		c.Games++
		if won {
			c.Wins++
		}
	}
}

func rate(wins, games int) *float64 {
	if games == 0 {
		return nil
	}
	r := float64(wins) / float64(games)
	return &r
}

// Champion looks up one champion's aggregate. An exact name match wins over
// a case-insensitive one.
func (s Summary) Champion(name string) (ChampionStat, bool) {
	name = strings.TrimSpace(name)
	if c, ok := s.Champions[name]; ok {
		return *c, true
	}
	for n, c := range s.Champions {
		if strings.EqualFold(n, name) {
			return *c, true
		}
	}
	return ChampionStat{}, false
}

// MostPlayed returns champions with at least minGames games, most games
// first, truncated to limit (limit <= 0 means no limit).
func MostPlayed(s Summary, minGames, limit int) []ChampionStat {
	list := eligible(s, minGames)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Games != list[j].Games {
			return list[i].Games > list[j].Games
		}
		return list[i].Name < list[j].Name
	})
	return truncate(list, limit)
}

// TopWinRate returns champions with at least minGames games, highest win
// rate first, truncated to limit.
func TopWinRate(s Summary, minGames, limit int) []ChampionStat {
	list := eligible(s, minGames)
	sort.SliceStable(list, func(i, j int) bool {
		wi, wj := *list[i].WinRate, *list[j].WinRate
		if wi != wj {
			return wi > wj
		}
		if list[i].Games != list[j].Games {
			return list[i].Games > list[j].Games
		}
		return list[i].Name < list[j].Name
	})
	return truncate(list, limit)
}

func eligible(s Summary, minGames int) []ChampionStat {
	list := make([]ChampionStat, 0, len(s.Champions))
	for _, c := range s.Champions {
		if c.Games < minGames || c.WinRate == nil {
			continue
		}
		list = append(list, *c)
	}
	return list
}

func truncate(list []ChampionStat, limit int) []ChampionStat {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}
