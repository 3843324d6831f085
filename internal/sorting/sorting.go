// Package sorting orders record sets by a field.
package sorting

import (
	"sort"

	"github.com/pable/go-lol-matches/internal/model"
)

// ByField returns a stably sorted copy of records ordered by field. Records
// missing the field sort as 0. Values that cannot be ordered against each
// other (e.g. a string and an int) are grouped by type: numbers before
// strings before anything else.
func ByField(records []model.Record, field string, desc bool) []model.Record {
	out := make([]model.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		c := order(valueOf(out[i], field), valueOf(out[j], field))
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func valueOf(r model.Record, field string) any {
	if v, ok := r[field]; ok {
		return v
	}
	return 0
}

func order(a, b any) int {
	if c, ok := model.Compare(a, b); ok {
		return c
	}
	ra, rb := rank(a), rank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	return 0
}

func rank(v any) int {
	if model.IsNumeric(v) {
		return 0
	}
	if _, ok := v.(string); ok {
		return 1
	}
	return 2
}
