package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-lol-matches/internal/aggregator"
	"github.com/pable/go-lol-matches/internal/descriptor"
	"github.com/pable/go-lol-matches/internal/model"
	"github.com/pable/go-lol-matches/internal/preset"
	"github.com/pable/go-lol-matches/internal/storage"
)

const na = "N/A"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

func newLeftTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// Percent renders a rate as "55.00%", or N/A when undefined.
func Percent(rate *float64) string {
	if rate == nil {
		return na
	}
	return fmt.Sprintf("%.2f%%", *rate*100)
}

// FormatValue renders a record value for display. Lists use brackets.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []int:
		parts := make([]string, len(x))
		for i, n := range x {
			parts[i] = strconv.Itoa(n)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []string:
		return "[" + strings.Join(x, ", ") + "]"
	case [][]int:
		parts := make([]string, len(x))
		for i, l := range x {
			parts[i] = FormatValue(l)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case [][]string:
		parts := make([]string, len(x))
		for i, l := range x {
			parts[i] = FormatValue(l)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return descriptor.FormatValue(v)
}

// PrintSummary prints the working-set size, the active filters and the first
// record as a field/value table.
func PrintSummary(w io.Writer, records []model.Record, history []string) {
	fmt.Fprintf(w, "\nGames in working set: %d\n", len(records))
	if len(history) == 0 {
		fmt.Fprintln(w, "Active filters: none")
	} else {
		fmt.Fprintf(w, "Active filters: %s\n", strings.Join(history, " > "))
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No games match the current filters.")
		return
	}

	fmt.Fprintf(w, "\nFirst game:\n\n")
	table := newLeftTable(w)
	table.Header("FIELD", "VALUE")
	first := records[0]
	for _, k := range first.Keys() {
		table.Append(k, FormatValue(first[k]))
	}
	table.Render()
}

// PrintFieldStats prints the per-field statistics table.
func PrintFieldStats(w io.Writer, stats []aggregator.FieldStat) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No data for statistics.")
		return
	}
	table := newTable(w)
	table.Header("FIELD", "TYPE", "MIN", "MAX", "AVG", "EXAMPLE")
	for _, s := range stats {
		switch s.Type {
		case aggregator.StatNumber:
			table.Append(s.Field, string(s.Type),
				strconv.FormatFloat(s.Min, 'f', -1, 64),
				strconv.FormatFloat(s.Max, 'f', -1, 64),
				fmt.Sprintf("%.2f", s.Avg),
				"")
		case aggregator.StatList:
			table.Append(s.Field, "list (len)",
				strconv.Itoa(s.MinLen),
				strconv.Itoa(s.MaxLen),
				fmt.Sprintf("%.2f", s.AvgLen),
				"")
		default:
			table.Append(s.Field, string(s.Type), "", "", "", FormatValue(s.Example))
		}
	}
	table.Render()
}

// PrintObjectives prints the first-objective impact table.
func PrintObjectives(w io.Writer, s aggregator.Summary) {
	fmt.Fprintf(w, "\nTotal games analysed: %d\n", s.TotalGames)
	if s.Team1WinRate != nil {
		fmt.Fprintf(w, "Team 1 win rate: %s\n", Percent(s.Team1WinRate))
	}
	if len(s.Objectives) == 0 {
		fmt.Fprintln(w, "No objective statistics available.")
		return
	}

	fmt.Fprintf(w, "\n--- First Objective Impact ---\n\n")
	table := newTable(w)
	table.Header("OBJECTIVE", "T1 FIRST", "T1 WIN%", "T2 FIRST", "T2 WIN%")
	for _, o := range s.Objectives {
		table.Append(
			o.Objective,
			strconv.Itoa(o.Team1.Games),
			Percent(o.Team1.WinRate),
			strconv.Itoa(o.Team2.Games),
			Percent(o.Team2.WinRate),
		)
	}
	table.Render()
}

// PrintChampionRanking prints one ranked champion table under title.
func PrintChampionRanking(w io.Writer, title string, champs []aggregator.ChampionStat) {
	fmt.Fprintf(w, "\n--- %s ---\n\n", title)
	if len(champs) == 0 {
		fmt.Fprintln(w, "(no champion reaches the minimum games)")
		return
	}
	table := newTable(w)
	table.Header("#", "CHAMPION", "GAMES", "WINS", "WIN%")
	for i, c := range champs {
		table.Append(
			strconv.Itoa(i+1),
			c.Name,
			strconv.Itoa(c.Games),
			strconv.Itoa(c.Wins),
			Percent(c.WinRate),
		)
	}
	table.Render()
}

// PrintOverview prints the advanced statistics: global win rate, objective
// impact and both champion rankings.
func PrintOverview(w io.Writer, s aggregator.Summary, minGames, topN int) {
	fmt.Fprintf(w, "\n=== Advanced Statistics ===\n")
	PrintObjectives(w, s)
	if len(s.Champions) == 0 {
		fmt.Fprintln(w, "\nNo champion statistics available.")
		return
	}
	PrintChampionRanking(w, fmt.Sprintf("Most Played (min %d games)", minGames), aggregator.MostPlayed(s, minGames, topN))
	PrintChampionRanking(w, fmt.Sprintf("Top Win Rates (min %d games)", minGames), aggregator.TopWinRate(s, minGames, topN))
}

// PrintChampion prints one champion's games, wins and win rate.
func PrintChampion(w io.Writer, s aggregator.Summary, name string) {
	c, ok := s.Champion(name)
	if !ok {
		fmt.Fprintf(w, "\nChampion %q does not appear in the data.\n", strings.TrimSpace(name))
		return
	}
	fmt.Fprintf(w, "\n=== Champion: %s ===\n\n", c.Name)
	table := newTable(w)
	table.Header("CHAMPION", "GAMES", "WINS", "WIN%")
	table.Append(c.Name, strconv.Itoa(c.Games), strconv.Itoa(c.Wins), Percent(c.WinRate))
	table.Render()
}

// PrintPresets prints the saved presets in name order with their tokens.
func PrintPresets(w io.Writer, p preset.Presets) {
	if len(p) == 0 {
		fmt.Fprintln(w, "No presets saved.")
		return
	}
	table := newLeftTable(w)
	table.Header("#", "PRESET", "STEPS", "FILTERS")
	for i, name := range p.Names() {
		tokens := p[name]
		table.Append(strconv.Itoa(i+1), name, strconv.Itoa(len(tokens)), strings.Join(tokens, " > "))
	}
	table.Render()
}

// PrintRows prints a raw query result with its row count.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

// PrintChampionWinRates prints champion rates computed by the database.
func PrintChampionWinRates(w io.Writer, rates []storage.ChampionWinRate) {
	if len(rates) == 0 {
		fmt.Fprintln(w, "(no champion reaches the minimum games)")
		return
	}
	table := newTable(w)
	table.Header("CHAMPION", "GAMES", "WINS", "WIN%")
	for _, c := range rates {
		var r *float64
		if c.Games > 0 {
			v := float64(c.Wins) / float64(c.Games)
			r = &v
		}
		table.Append(c.Name, strconv.Itoa(c.Games), strconv.Itoa(c.Wins), Percent(r))
	}
	table.Render()
}
