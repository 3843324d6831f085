package model

import (
	"reflect"
	"sort"
	"strings"
)

// AsInt returns v as an integer. Booleans count as 0/1.
func AsInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// AsFloat returns v as a float for numeric statistics. Booleans count as 0/1.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	n, ok := AsInt(v)
	return float64(n), ok
}

// IsNumeric reports whether v is an int, float or bool.
func IsNumeric(v any) bool {
	_, ok := AsFloat(v)
	return ok
}

// Truthy mirrors a loose boolean reading of a value: zero values are false.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if n, ok := AsFloat(v); ok {
		return n != 0
	}
	if l, ok := ListLen(v); ok {
		return l > 0
	}
	return true
}

// ListLen returns the length of v when v is a list value.
func ListLen(v any) (int, bool) {
	switch x := v.(type) {
	case []int:
		return len(x), true
	case []string:
		return len(x), true
	case [][]int:
		return len(x), true
	case [][]string:
		return len(x), true
	case []any:
		return len(x), true
	}
	return 0, false
}

// Strings returns the string elements of a flat list value; non-strings are
// dropped.
func Strings(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Ints returns the integer elements of a flat list value; non-integers are
// dropped.
func Ints(v any) []int {
	switch x := v.(type) {
	case []int:
		return x
	case []any:
		out := make([]int, 0, len(x))
		for _, e := range x {
			if n, ok := AsInt(e); ok {
				out = append(out, n)
			}
		}
		return out
	}
	return nil
}

// StringLists returns the per-slot string lists of a nested list value.
func StringLists(v any) [][]string {
	switch x := v.(type) {
	case [][]string:
		return x
	case []any:
		out := make([][]string, 0, len(x))
		for _, e := range x {
			if l := Strings(e); l != nil {
				out = append(out, l)
			}
		}
		return out
	}
	return nil
}

// Compare orders two scalar values. ok is false when the values have no
// natural ordering against each other (string vs int, lists, nil).
func Compare(a, b any) (c int, ok bool) {
	if x, xok := AsFloat(a); xok {
		y, yok := AsFloat(b)
		if !yok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	if x, xok := a.(string); xok {
		y, yok := b.(string)
		if !yok {
			return 0, false
		}
		return strings.Compare(x, y), true
	}
	return 0, false
}

// Equal reports value equality. Numbers compare numerically; values of
// unrelated types are simply unequal.
func Equal(a, b any) bool {
	if c, ok := Compare(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

// Keys returns the record's field names: catalog fields first in schema
// order, then any extra fields alphabetically.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, f := range Fields {
		if _, ok := r[f.Name]; ok {
			keys = append(keys, f.Name)
		}
	}
	var extra []string
	for k := range r {
		if _, ok := kindByName[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// UnionKeys returns every field present in any record, ordered like Keys.
func UnionKeys(records []Record) []string {
	seen := make(Record)
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	return seen.Keys()
}
