// Package loader reads the raw games CSV and enriches champion, ban and
// summoner-spell ids into names and tags using the lookup JSON files that sit
// next to it.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pable/go-lol-matches/internal/model"
)

// Lookup file names inside the dataset directory.
const (
	ChampionInfoFile  = "champion_info.json"
	ChampionInfo2File = "champion_info_2.json"
	SpellInfoFile     = "summoner_spell_info.json"
)

// Lookups holds the id → name/tags tables used for enrichment.
type Lookups struct {
	Champions map[int]string
	Tags      map[int][]string
	Spells    map[int]string
}

// ChampionName returns the champion name for id or the Unknown_<id> placeholder.
func (l Lookups) ChampionName(id int) string {
	if n, ok := l.Champions[id]; ok {
		return n
	}
	return placeholder(id)
}

// SpellName returns the spell name for id or the Unknown_<id> placeholder.
func (l Lookups) SpellName(id int) string {
	if n, ok := l.Spells[id]; ok {
		return n
	}
	return placeholder(id)
}

// ChampionTags returns the tags for id, or an empty list.
func (l Lookups) ChampionTags(id int) []string {
	if t, ok := l.Tags[id]; ok {
		return t
	}
	return []string{}
}

func placeholder(id int) string {
	return "Unknown_" + strconv.Itoa(id)
}

// lookupEntry is one element of a lookup document's "data" object. Ids are
// numbers in some dumps and strings in others.
type lookupEntry struct {
	ID   json.RawMessage `json:"id"`
	Name string          `json:"name"`
	Tags []string        `json:"tags"`
}

type lookupDoc struct {
	Data map[string]lookupEntry `json:"data"`
}

func (e lookupEntry) id() (int, error) {
	s := strings.Trim(strings.TrimSpace(string(e.ID)), `"`)
	return strconv.Atoi(s)
}

// readLookup parses one lookup file. A missing file returns (nil, nil).
func readLookup(path string) ([]lookupEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	var doc lookupDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	out := make([]lookupEntry, 0, len(doc.Data))
	for _, e := range doc.Data {
		out = append(out, e)
	}
	return out, nil
}

// LoadLookups reads the lookup files from dir. Missing files degrade to empty
// tables, so every id renders as a placeholder.
func LoadLookups(dir string, log *slog.Logger) (Lookups, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	l := Lookups{
		Champions: make(map[int]string),
		Tags:      make(map[int][]string),
		Spells:    make(map[int]string),
	}

	// champion_info_2 is newer; its names override the first file.
	for _, name := range []string{ChampionInfoFile, ChampionInfo2File} {
		entries, err := readLookup(filepath.Join(dir, name))
		if err != nil {
			return l, err
		}
		if entries == nil {
			log.Warn("lookup file missing", "file", name)
		}
		for _, e := range entries {
			id, err := e.id()
			if err != nil {
				return l, fmt.Errorf("%s: bad id %s: %w", name, e.ID, err)
			}
			l.Champions[id] = e.Name
			if name == ChampionInfo2File {
				tags := e.Tags
				if tags == nil {
					tags = []string{}
				}
				l.Tags[id] = tags
			}
		}
	}

	entries, err := readLookup(filepath.Join(dir, SpellInfoFile))
	if err != nil {
		return l, err
	}
	if entries == nil {
		log.Warn("lookup file missing", "file", SpellInfoFile)
	}
	for _, e := range entries {
		id, err := e.id()
		if err != nil {
			return l, fmt.Errorf("%s: bad id %s: %w", SpellInfoFile, e.ID, err)
		}
		l.Spells[id] = e.Name
	}

	log.Debug("lookups loaded", "champions", len(l.Champions), "tags", len(l.Tags), "spells", len(l.Spells))
	return l, nil
}

// Load reads gamesFile from dir and returns enriched records.
func Load(dir, gamesFile string, log *slog.Logger) ([]model.Record, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	lookups, err := LoadLookups(dir, log)
	if err != nil {
		return nil, fmt.Errorf("load lookups: %w", err)
	}
	f, err := os.Open(filepath.Join(dir, gamesFile))
	if err != nil {
		return nil, fmt.Errorf("open games: %w", err)
	}
	defer f.Close()

	records, err := ReadGames(f, lookups)
	if err != nil {
		return nil, fmt.Errorf("read games: %w", err)
	}
	log.Info("games loaded", "file", gamesFile, "count", len(records))
	return records, nil
}

// ReadGames parses a games CSV with a header row and enriches every row.
func ReadGames(r io.Reader, lookups Lookups) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	var out []model.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(out)+2, err)
		}
		out = append(out, enrich(rawRow{cols: cols, values: row}, lookups))
	}
	return out, nil
}

// rawRow reads CSV cells by column name.
type rawRow struct {
	cols   map[string]int
	values []string
}

// Int returns the cell as an integer; empty, missing or invalid cells are 0.
func (r rawRow) Int(col string) int {
	i, ok := r.cols[col]
	if !ok || i >= len(r.values) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(r.values[i]))
	if err != nil {
		return 0
	}
	return n
}

func (r rawRow) slots(format string) []int {
	out := make([]int, model.SlotsPerTeam)
	for i := range out {
		out[i] = r.Int(fmt.Sprintf(format, i+1))
	}
	return out
}

var objectiveCounters = []string{"towerKills", "inhibitorKills", "baronKills", "dragonKills", "riftHeraldKills"}

func enrich(row rawRow, l Lookups) model.Record {
	g := model.Record{
		"gameId":       row.Int("gameId"),
		"creationTime": row.Int("creationTime"),
		"gameDuration": row.Int("gameDuration"),
		"seasonId":     row.Int("seasonId"),
	}
	winner := row.Int("winner")
	g["winner"] = winner
	g["team1Wins"] = model.Team(winner) == model.Team1

	for _, f := range []string{"firstBlood", "firstTower", "firstInhibitor", "firstBaron", "firstDragon", "firstRiftHerald"} {
		g[f] = row.Int(f)
	}

	for _, side := range []string{"t1", "t2"} {
		champs := row.slots(side + "_champ%did")
		g[side+"_champ_ids"] = champs
		g[side+"_champ_names"] = mapNames(champs, l.ChampionName)

		tags := make([][]string, len(champs))
		for i, id := range champs {
			tags[i] = l.ChampionTags(id)
		}
		g[side+"_champ_tags"] = tags

		spellIDs := make([][]int, model.SlotsPerTeam)
		spellNames := make([][]string, model.SlotsPerTeam)
		for i := range spellIDs {
			pair := []int{
				row.Int(fmt.Sprintf("%s_champ%d_sum1", side, i+1)),
				row.Int(fmt.Sprintf("%s_champ%d_sum2", side, i+1)),
			}
			spellIDs[i] = pair
			spellNames[i] = mapNames(pair, l.SpellName)
		}
		g[side+"_summoner_spells_ids"] = spellIDs
		g[side+"_summoner_spells_names"] = spellNames

		objectives := make([]int, len(objectiveCounters))
		for i, c := range objectiveCounters {
			n := row.Int(side + "_" + c)
			g[side+"_"+c] = n
			objectives[i] = n
		}
		g[side+"_objectives"] = objectives

		bans := row.slots(side + "_ban%d")
		g[side+"_bans"] = bans
		g[side+"_ban_names"] = mapNames(bans, l.ChampionName)
	}
	return g
}

func mapNames(ids []int, name func(int) string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = name(id)
	}
	return out
}
