// Package filter holds the record predicates. Every function takes a record
// slice and returns the matching subsequence in the original order; inputs
// are never modified.
package filter

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"

	"github.com/pable/go-lol-matches/internal/model"
)

// ErrUnknownOp is returned when an operator symbol or label is not one of the six.
var ErrUnknownOp = errors.New("unknown operator")

// Op is a comparison operator.
type Op int

const (
	OpInvalid Op = iota
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var opTable = []struct {
	op     Op
	symbol string
	label  string
}{
	{OpEq, "==", "eq"},
	{OpNe, "!=", "ne"},
	{OpLt, "<", "lt"},
	{OpLe, "<=", "le"},
	{OpGt, ">", "gt"},
	{OpGe, ">=", "ge"},
}

// Ops lists the operators in menu order.
func Ops() []Op {
	out := make([]Op, len(opTable))
	for i, e := range opTable {
		out[i] = e.op
	}
	return out
}

// Symbol returns the operator as typed by a user ("<=").
func (o Op) Symbol() string {
	for _, e := range opTable {
		if e.op == o {
			return e.symbol
		}
	}
	return "?"
}

// Label returns the descriptor label ("le").
func (o Op) Label() string {
	for _, e := range opTable {
		if e.op == o {
			return e.label
		}
	}
	return "?"
}

func (o Op) String() string { return o.Symbol() }

// ParseSymbol parses "==", "!=", "<", "<=", ">" or ">=".
func ParseSymbol(s string) (Op, error) {
	s = strings.TrimSpace(s)
	for _, e := range opTable {
		if e.symbol == s {
			return e.op, nil
		}
	}
	return OpInvalid, ErrUnknownOp
}

// ParseLabel parses "eq", "ne", "lt", "le", "gt" or "ge".
func ParseLabel(s string) (Op, error) {
	for _, e := range opTable {
		if e.label == s {
			return e.op, nil
		}
	}
	return OpInvalid, ErrUnknownOp
}

// Outcome is the result of evaluating one comparison against one record.
type Outcome int

const (
	Miss Outcome = iota
	Match
	Incomparable
)

// Evaluate applies op to a and b. Equality is defined for any pair of values;
// ordering operators on values without a common ordering yield Incomparable.
func Evaluate(a any, op Op, b any) Outcome {
	switch op {
	case OpEq:
		return outcome(model.Equal(a, b))
	case OpNe:
		return outcome(!model.Equal(a, b))
	}
	c, ok := model.Compare(a, b)
	if !ok {
		return Incomparable
	}
	switch op {
	case OpLt:
		return outcome(c < 0)
	case OpLe:
		return outcome(c <= 0)
	case OpGt:
		return outcome(c > 0)
	case OpGe:
		return outcome(c >= 0)
	}
	return Incomparable
}

func outcome(b bool) Outcome {
	if b {
		return Match
	}
	return Miss
}

// ByField keeps records whose field compares true against value. Records
// missing the field, or whose value cannot be ordered against value, are
// excluded.
func ByField(records []model.Record, field string, op Op, value any) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		v, ok := r[field]
		if !ok {
			continue
		}
		if Evaluate(v, op, value) == Match {
			out = append(out, r)
		}
	}
	return out
}

// ByListLength keeps records whose field holds a list with a length that
// compares true against length.
func ByListLength(records []model.Record, field string, op Op, length int) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		n, ok := model.ListLen(r[field])
		if !ok {
			continue
		}
		if Evaluate(n, op, length) == Match {
			out = append(out, r)
		}
	}
	return out
}

// ChampionPlayed keeps games where either roster contains name
// (case-insensitive, surrounding space ignored).
func ChampionPlayed(records []model.Record, name string) []model.Record {
	return anyNameIn(records, name, model.FieldT1Names, model.FieldT2Names)
}

// ChampionBanned keeps games where either side banned name.
func ChampionBanned(records []model.Record, name string) []model.Record {
	return anyNameIn(records, name, model.FieldT1BanNames, model.FieldT2BanNames)
}

func anyNameIn(records []model.Record, name, side1, side2 string) []model.Record {
	fold := cases.Fold()
	target := fold.String(strings.TrimSpace(name))
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if containsFolded(fold, model.Strings(r[side1]), target) ||
			containsFolded(fold, model.Strings(r[side2]), target) {
			out = append(out, r)
		}
	}
	return out
}

func containsFolded(fold cases.Caser, names []string, target string) bool {
	for _, n := range names {
		if fold.String(n) == target {
			return true
		}
	}
	return false
}

// TagAtLeast keeps games where tag occurs at least minCount times across both
// rosters' per-slot tag lists. Every occurrence counts, so two champions on
// one side sharing the tag count twice.
func TagAtLeast(records []model.Record, tag string, minCount int) []model.Record {
	fold := cases.Fold()
	target := fold.String(strings.TrimSpace(tag))
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		count := 0
		for _, side := range []string{model.FieldT1Tags, model.FieldT2Tags} {
			for _, slot := range model.StringLists(r[side]) {
				for _, t := range slot {
					if fold.String(t) == target {
						count++
					}
				}
			}
		}
		if count >= minCount {
			out = append(out, r)
		}
	}
	return out
}
