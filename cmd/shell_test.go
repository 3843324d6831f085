package cmd

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-lol-matches/internal/model"
	"github.com/pable/go-lol-matches/internal/preset"
	"github.com/pable/go-lol-matches/internal/session"
)

func testGames() []model.Record {
	return []model.Record{
		{"gameId": 1, "winner": 1, "team1Wins": true, "gameDuration": 1500,
			"t1_champ_names": []string{"Ahri"}, "t2_champ_names": []string{"Zed"}},
		{"gameId": 2, "winner": 2, "team1Wins": false, "gameDuration": 2500,
			"t1_champ_names": []string{"Lux"}, "t2_champ_names": []string{"Zed"}},
		{"gameId": 3, "winner": 1, "team1Wins": true, "gameDuration": 2000,
			"t1_champ_names": []string{"Zed"}, "t2_champ_names": []string{"Ahri"}},
	}
}

func newTestShell(t *testing.T, script string) (*shell, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	dir := t.TempDir()
	var out bytes.Buffer
	return &shell{
		in:        bufio.NewScanner(strings.NewReader(script)),
		out:       &out,
		sess:      session.New(testGames(), nil),
		store:     preset.NewStore(filepath.Join(dir, "presets.json"), nil),
		minGames:  1,
		topN:      5,
		exportDir: filepath.Join(dir, "exports"),
	}, &out
}

func TestShell_FilterSavePresetAndExport(t *testing.T) {
	script := strings.Join([]string{
		// filter by champion played, then show the summary
		"4", "3", "Ahri", "0",
		"1",
		// save a preset, reset, load it back
		"6", "1", "ahri", "0",
		"8",
		"6", "2", "1", "0",
		// save as JSON
		"7", "2", "0",
		"0",
	}, "\n") + "\n"
	sh, out := newTestShell(t, script)
	sh.run()

	text := out.String()
	assert.Contains(t, text, "2 results after filtering.")
	assert.Contains(t, text, "Active filters: champ_played_Ahri")
	assert.Contains(t, text, `Preset "ahri" saved.`)
	assert.Contains(t, text, "Data reset: 3 games.")
	assert.Contains(t, text, `Preset "ahri" applied.`)
	assert.Contains(t, text, "Bye.")

	assert.Equal(t, []string{"champ_played_Ahri"}, sh.sess.History())
	_, err := os.Stat(filepath.Join(sh.exportDir, "champ_played_Ahri.json"))
	require.NoError(t, err)
}

func TestShell_FieldFilterCoercesByKind(t *testing.T) {
	// team1Wins is field 6 in the filterable list.
	script := "4\n1\n6\n==\n1\n0\n0\n"
	sh, out := newTestShell(t, script)
	sh.run()

	assert.Contains(t, out.String(), "2 results after filtering.")
	assert.Equal(t, []string{"team1Wins_eq_True"}, sh.sess.History())
}

func TestShell_InvalidInputIsNotRecorded(t *testing.T) {
	script := strings.Join([]string{
		"9",
		"4", "1", "99",
		"1", "3", "=>",
		"2", "1", "==", "x",
		"0", "0",
	}, "\n") + "\n"
	sh, out := newTestShell(t, script)
	sh.run()

	assert.Contains(t, out.String(), "Invalid choice.")
	assert.Contains(t, out.String(), `Invalid operator "=>".`)
	assert.Contains(t, out.String(), `Invalid length "x".`)
	assert.Empty(t, sh.sess.History())
	assert.Len(t, sh.sess.Working(), 3)
}

func TestShell_SortIsNotRecorded(t *testing.T) {
	// gameDuration is field 3 in the sortable list.
	sh, out := newTestShell(t, "5\n3\ndesc\n0\n")
	sh.run()

	assert.Contains(t, out.String(), "Sorted.")
	assert.Empty(t, sh.sess.History())
	assert.Equal(t, 2, sh.sess.Working()[0]["gameId"])
}

func TestShell_EndOfInputExits(t *testing.T) {
	sh, out := newTestShell(t, "4\n")
	sh.run()
	assert.NotContains(t, out.String(), "Bye.")
}

func TestShell_SaveEmptySet(t *testing.T) {
	sh, out := newTestShell(t, "4\n3\nTeemo\n0\n7\n1\n0\n0\n")
	sh.run()
	assert.Contains(t, out.String(), "0 results after filtering.")
	assert.Contains(t, out.String(), "No data to save.")
}

func TestShell_SummaryShowsSessionID(t *testing.T) {
	sh, out := newTestShell(t, "1\n0\n")
	sh.run()
	assert.Contains(t, out.String(), "Session: "+sh.sess.ID.String())
	assert.Contains(t, out.String(), "Games in working set: 3")
}
