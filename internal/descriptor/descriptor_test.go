package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-lol-matches/internal/filter"
	"github.com/pable/go-lol-matches/internal/model"
)

func sampleGames() []model.Record {
	return []model.Record{
		{
			"gameId": 1, "gameDuration": 1500, "team1Wins": true, "winner": 1, "seasonId": 9,
			"t1_champ_ids":   []int{1, 2, 3, 4, 5},
			"t1_champ_names": []string{"Kai_Sa", "Ahri", "Garen", "Lux", "Thresh"},
			"t2_champ_names": []string{"Zed", "Jinx", "Darius", "Sona", "Leona"},
			"t1_ban_names":   []string{"Yasuo"},
			"t2_ban_names":   []string{"Teemo"},
			"t1_champ_tags":  [][]string{{"Marksman"}, {"Mage", "Assassin"}},
			"t2_champ_tags":  [][]string{{"Assassin"}},
		},
		{
			"gameId": 2, "gameDuration": 2100, "team1Wins": false, "winner": 2, "seasonId": 9,
			"t1_champ_ids":   []int{1, 2, 3, 4},
			"t1_champ_names": []string{"Zed"},
			"t2_champ_names": []string{"Kai_Sa"},
			"t1_ban_names":   []string{"Teemo"},
			"t2_ban_names":   []string{"Ahri"},
			"t1_champ_tags":  [][]string{{"Assassin"}},
			"t2_champ_tags":  [][]string{{"Marksman"}},
		},
		{
			"gameId": 3, "gameDuration": 2700, "team1Wins": true, "winner": 1, "seasonId": 8,
		},
	}
}

func gameIDs(records []model.Record) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r["gameId"].(int))
	}
	return out
}

func TestRender(t *testing.T) {
	cases := []struct {
		d    Descriptor
		want string
	}{
		{FieldCompare{Field: "gameDuration", Op: filter.OpGe, Value: 1800}, "gameDuration_ge_1800"},
		{FieldCompare{Field: "team1Wins", Op: filter.OpEq, Value: true}, "team1Wins_eq_True"},
		{FieldCompare{Field: "winner", Op: filter.OpNe, Value: -1}, "winner_ne_-1"},
		{ListLength{Field: "t1_bans", Op: filter.OpLt, Length: 5}, "t1_bans_len_lt_5"},
		{ChampionPlayed{Name: "Kai_Sa"}, "champ_played_Kai_Sa"},
		{ChampionBanned{Name: "Lee Sin"}, "champ_banned_Lee Sin"},
		{TagAtLeast{Tag: "Assassin", MinCount: 2}, "tag_Assassin_ge_2"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.d.String())
	}
}

func TestParse_Shapes(t *testing.T) {
	cases := []struct {
		token string
		want  Descriptor
	}{
		{"gameDuration_ge_1800", FieldCompare{Field: "gameDuration", Op: filter.OpGe, Value: 1800}},
		{"t1_towerKills_lt_3", FieldCompare{Field: "t1_towerKills", Op: filter.OpLt, Value: 3}},
		{"t1_objectives_len_eq_5", ListLength{Field: "t1_objectives", Op: filter.OpEq, Length: 5}},
		{"champ_played_Kai_Sa", ChampionPlayed{Name: "Kai_Sa"}},
		{"champ_banned_Nunu_&_Willump", ChampionBanned{Name: "Nunu_&_Willump"}},
		{"tag_Assassin_ge_2", TagAtLeast{Tag: "Assassin", MinCount: 2}},
		{"tag_Mage_ge_x", TagAtLeast{Tag: "Mage", MinCount: 1}},
		{"someField_eq_a_b_c", FieldCompare{Field: "someField", Op: filter.OpEq, Value: "a_b_c"}},
	}
	for _, c := range cases {
		got, err := Parse(c.token)
		require.NoError(t, err, c.token)
		assert.Equal(t, c.want, got, c.token)
	}
}

func TestParse_ChampionNameKeepsUnderscores(t *testing.T) {
	d, err := Parse("champ_played_Kai_Sa")
	require.NoError(t, err)
	played, ok := d.(ChampionPlayed)
	require.True(t, ok, "expected ChampionPlayed, got %T", d)
	assert.Equal(t, "Kai_Sa", played.Name)

	got := gameIDs(d.Apply(sampleGames()))
	assert.Equal(t, []int{1, 2}, got)
}

// Tag names are single segments on decode, unlike champion names. A tag
// containing an underscore does not survive a round trip.
func TestParse_TagUnderscoreAsymmetry(t *testing.T) {
	token := TagAtLeast{Tag: "Split_Pusher", MinCount: 2}.String()
	assert.Equal(t, "tag_Split_Pusher_ge_2", token)

	d, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, TagAtLeast{Tag: "Split", MinCount: 2}, d)
}

func TestParse_Malformed(t *testing.T) {
	for _, token := range []string{
		"",
		"nonsense",
		"champ_stolen_Ahri",
		"t1_bans_len_eq",
		"t1_bans_len_zz_5",
		"t1_bans_len_eq_five",
		"gameDuration_ge",
	} {
		_, err := Parse(token)
		assert.ErrorIs(t, err, ErrMalformed, token)
	}
}

func TestDecode_MalformedIsNoop(t *testing.T) {
	games := sampleGames()
	d := Decode("garbage_token")
	noop, ok := d.(Noop)
	require.True(t, ok)
	assert.ErrorIs(t, noop.Err, ErrMalformed)
	assert.Equal(t, "garbage_token", d.String())
	assert.Equal(t, gameIDs(games), gameIDs(d.Apply(games)))
}

func TestRoundTrip_IntegerFieldCompare(t *testing.T) {
	games := sampleGames()
	for _, op := range filter.Ops() {
		for _, v := range []int{1500, 2100, 0, 9999} {
			orig := FieldCompare{Field: "gameDuration", Op: op, Value: v}
			parsed, err := Parse(orig.String())
			require.NoError(t, err)
			assert.Equal(t, gameIDs(orig.Apply(games)), gameIDs(parsed.Apply(games)), orig.String())
		}
	}
}

func TestRoundTrip_AllVariants(t *testing.T) {
	games := sampleGames()
	for _, orig := range []Descriptor{
		FieldCompare{Field: "team1Wins", Op: filter.OpEq, Value: false},
		FieldCompare{Field: "seasonId", Op: filter.OpLe, Value: 8},
		ListLength{Field: "t1_champ_ids", Op: filter.OpEq, Length: 5},
		ChampionPlayed{Name: "zed"},
		ChampionBanned{Name: "Teemo"},
		TagAtLeast{Tag: "Assassin", MinCount: 2},
	} {
		parsed, err := Parse(orig.String())
		require.NoError(t, err)
		assert.Equal(t, orig, parsed)
		assert.Equal(t, gameIDs(orig.Apply(games)), gameIDs(parsed.Apply(games)))
	}
}

func TestParseValue(t *testing.T) {
	cases := map[string]any{
		"True":  true,
		" oui ": true,
		"NON":   false,
		"faux":  false,
		"42":    42,
		"-7":    -7,
		"+7":    "+7",
		"1.5":   "1.5",
		"Ahri":  "Ahri",
		"-":     "-",
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseValue(raw), raw)
	}
}

func TestCoerceValue_UsesDeclaredKind(t *testing.T) {
	// The same numeral means different things for bool and int fields.
	assert.Equal(t, true, CoerceValue("1", model.KindBool))
	assert.Equal(t, 1, CoerceValue("1", model.KindInt))
	assert.Equal(t, 1, CoerceValue("True", model.KindInt))
	assert.Equal(t, 7, CoerceValue("7", model.KindBool))
	assert.Equal(t, "yes", CoerceValue("yes", model.KindString))

	d, err := Parse("team1Wins_eq_1")
	require.NoError(t, err)
	assert.Equal(t, FieldCompare{Field: "team1Wins", Op: filter.OpEq, Value: true}, d)

	d, err = Parse("winner_eq_True")
	require.NoError(t, err)
	assert.Equal(t, FieldCompare{Field: "winner", Op: filter.OpEq, Value: 1}, d)
}

func TestFloatLiteralExcludesEverything(t *testing.T) {
	d, err := Parse("gameDuration_gt_1.5")
	require.NoError(t, err)
	assert.Empty(t, d.Apply(sampleGames()))
}
