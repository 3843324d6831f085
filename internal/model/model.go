package model

// Team identifies a side of the map. Raw "first objective" and winner columns
// carry these values; 0 means nobody took it.
type Team int

const (
	TeamNone Team = 0
	Team1    Team = 1
	Team2    Team = 2
)

func (t Team) String() string {
	switch t {
	case Team1:
		return "Team 1"
	case Team2:
		return "Team 2"
	default:
		return "?"
	}
}

// Kind is the declared shape of a record field.
type Kind int

const (
	KindUnknown Kind = iota
	KindInt
	KindBool
	KindString
	KindIntList
	KindStringList
	KindIntPairs    // five [2]int slots (summoner spell ids)
	KindStringPairs // five [2]string slots, or per-slot tag lists
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindIntList:
		return "int list"
	case KindStringList:
		return "string list"
	case KindIntPairs:
		return "int pairs"
	case KindStringPairs:
		return "string lists"
	default:
		return "unknown"
	}
}

// IsList reports whether values of this kind are slices.
func (k Kind) IsList() bool {
	return k >= KindIntList
}

// Record is one enriched match keyed by field name. Values are int, bool,
// string, []int, []string, [][]int or [][]string. Records are never mutated
// after load; every engine operation returns a new slice sharing the maps.
type Record map[string]any

// Field describes one entry of the record schema.
type Field struct {
	Name string
	Kind Kind
}

// Field names used by the domain rollups.
const (
	FieldGameID     = "gameId"
	FieldWinner     = "winner"
	FieldTeam1Wins  = "team1Wins"
	FieldT1Names    = "t1_champ_names"
	FieldT2Names    = "t2_champ_names"
	FieldT1Tags     = "t1_champ_tags"
	FieldT2Tags     = "t2_champ_tags"
	FieldT1BanNames = "t1_ban_names"
	FieldT2BanNames = "t2_ban_names"
)

// SlotsPerTeam is the roster, ban and objective list length.
const SlotsPerTeam = 5

// Fields is the full schema in load order. Exports use this order for columns.
var Fields = []Field{
	{"gameId", KindInt},
	{"creationTime", KindInt},
	{"gameDuration", KindInt},
	{"seasonId", KindInt},
	{"winner", KindInt},
	{"team1Wins", KindBool},
	{"firstBlood", KindInt},
	{"firstTower", KindInt},
	{"firstInhibitor", KindInt},
	{"firstBaron", KindInt},
	{"firstDragon", KindInt},
	{"firstRiftHerald", KindInt},
	{"t1_champ_ids", KindIntList},
	{"t2_champ_ids", KindIntList},
	{"t1_champ_names", KindStringList},
	{"t2_champ_names", KindStringList},
	{"t1_champ_tags", KindStringPairs},
	{"t2_champ_tags", KindStringPairs},
	{"t1_summoner_spells_ids", KindIntPairs},
	{"t2_summoner_spells_ids", KindIntPairs},
	{"t1_summoner_spells_names", KindStringPairs},
	{"t2_summoner_spells_names", KindStringPairs},
	{"t1_towerKills", KindInt},
	{"t1_inhibitorKills", KindInt},
	{"t1_baronKills", KindInt},
	{"t1_dragonKills", KindInt},
	{"t1_riftHeraldKills", KindInt},
	{"t2_towerKills", KindInt},
	{"t2_inhibitorKills", KindInt},
	{"t2_baronKills", KindInt},
	{"t2_dragonKills", KindInt},
	{"t2_riftHeraldKills", KindInt},
	{"t1_bans", KindIntList},
	{"t2_bans", KindIntList},
	{"t1_ban_names", KindStringList},
	{"t2_ban_names", KindStringList},
	{"t1_objectives", KindIntList},
	{"t2_objectives", KindIntList},
}

// FilterableFields are the scalar fields offered by the field-comparison filter.
var FilterableFields = []string{
	"gameId",
	"creationTime",
	"gameDuration",
	"seasonId",
	"winner",
	"team1Wins",
	"firstBlood",
	"firstTower",
	"firstInhibitor",
	"firstBaron",
	"firstDragon",
	"firstRiftHerald",
	"t1_towerKills",
	"t1_inhibitorKills",
	"t1_baronKills",
	"t1_dragonKills",
	"t1_riftHeraldKills",
	"t2_towerKills",
	"t2_inhibitorKills",
	"t2_baronKills",
	"t2_dragonKills",
	"t2_riftHeraldKills",
}

// ListFields are the fields offered by the list-length filter.
var ListFields = []string{
	"t1_objectives",
	"t2_objectives",
	"t1_champ_ids",
	"t2_champ_ids",
	"t1_bans",
	"t2_bans",
}

// SortableFields are the fields offered by the sort menu.
var SortableFields = FilterableFields

// ObjectiveFields are the "first taker" columns summarised by the rollups, in
// report order.
var ObjectiveFields = []string{
	"firstTower",
	"firstDragon",
	"firstBaron",
	"firstInhibitor",
	"firstRiftHerald",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(Fields))
	for _, f := range Fields {
		m[f.Name] = f.Kind
	}
	return m
}()

// KindOf returns the declared kind of a field.
func KindOf(name string) (Kind, bool) {
	k, ok := kindByName[name]
	return k, ok
}

// FieldIndex returns the position of name in Fields, or -1.
func FieldIndex(name string) int {
	for i, f := range Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
