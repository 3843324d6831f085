// Package descriptor encodes applied filters as single-line tokens and decodes
// them back into callable filters. Tokens are what presets persist, so their
// format must stay stable:
//
//	{field}_{op}_{value}         field comparison
//	{field}_len_{op}_{length}    list-length comparison
//	champ_played_{name}          champion on either roster
//	champ_banned_{name}          champion banned by either side
//	tag_{tag}_ge_{min}           tag occurs at least min times
//
// where {op} is one of eq, ne, lt, le, gt, ge.
package descriptor

import (
	"fmt"
	"strconv"

	"github.com/pable/go-lol-matches/internal/filter"
	"github.com/pable/go-lol-matches/internal/model"
)

// Descriptor is one filter step. The concrete types below are the only
// implementations.
type Descriptor interface {
	// Apply returns the records the step keeps.
	Apply(records []model.Record) []model.Record
	// String renders the step as its token.
	String() string

	descriptor()
}

// FieldCompare compares a scalar field against a literal.
type FieldCompare struct {
	Field string
	Op    filter.Op
	Value any
}

// ListLength compares the length of a list field.
type ListLength struct {
	Field  string
	Op     filter.Op
	Length int
}

// ChampionPlayed matches a champion on either roster.
type ChampionPlayed struct {
	Name string
}

// ChampionBanned matches a champion in either ban list.
type ChampionBanned struct {
	Name string
}

// TagAtLeast matches games with at least MinCount occurrences of Tag.
type TagAtLeast struct {
	Tag      string
	MinCount int
}

// Noop is what an undecodable token turns into. It keeps every record and
// renders back to the original token so replayed history is echoed verbatim.
type Noop struct {
	Token string
	Err   error
}

func (d FieldCompare) Apply(records []model.Record) []model.Record {
	return filter.ByField(records, d.Field, d.Op, d.Value)
}

func (d ListLength) Apply(records []model.Record) []model.Record {
	return filter.ByListLength(records, d.Field, d.Op, d.Length)
}

func (d ChampionPlayed) Apply(records []model.Record) []model.Record {
	return filter.ChampionPlayed(records, d.Name)
}

func (d ChampionBanned) Apply(records []model.Record) []model.Record {
	return filter.ChampionBanned(records, d.Name)
}

func (d TagAtLeast) Apply(records []model.Record) []model.Record {
	return filter.TagAtLeast(records, d.Tag, d.MinCount)
}

func (d Noop) Apply(records []model.Record) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)
	return out
}

func (d FieldCompare) String() string {
	return d.Field + sep + d.Op.Label() + sep + FormatValue(d.Value)
}

func (d ListLength) String() string {
	return d.Field + sep + lenMarker + sep + d.Op.Label() + sep + strconv.Itoa(d.Length)
}

func (d ChampionPlayed) String() string {
	return champPrefix + sep + playedVerb + sep + d.Name
}

func (d ChampionBanned) String() string {
	return champPrefix + sep + bannedVerb + sep + d.Name
}

// String always uses the ge label: the step is "at least".
func (d TagAtLeast) String() string {
	return tagPrefix + sep + d.Tag + sep + filter.OpGe.Label() + sep + strconv.Itoa(d.MinCount)
}

func (d Noop) String() string { return d.Token }

func (FieldCompare) descriptor()   {}
func (ListLength) descriptor()     {}
func (ChampionPlayed) descriptor() {}
func (ChampionBanned) descriptor() {}
func (TagAtLeast) descriptor()     {}
func (Noop) descriptor()           {}

// FormatValue renders a literal the way tokens carry it. Booleans render as
// True/False for compatibility with presets written by earlier versions.
func FormatValue(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	}
	return fmt.Sprint(v)
}

// Tokens renders each step.
func Tokens(ds []Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}
