package descriptor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pable/go-lol-matches/internal/filter"
	"github.com/pable/go-lol-matches/internal/model"
)

// ErrMalformed is returned for tokens that match none of the known shapes.
var ErrMalformed = errors.New("malformed descriptor")

const (
	sep         = "_"
	lenMarker   = "len"
	champPrefix = "champ"
	playedVerb  = "played"
	bannedVerb  = "banned"
	tagPrefix   = "tag"
)

// Parse decodes a token. Shapes are tried in a fixed priority order:
// champion steps, tag steps, list-length steps, then field comparisons split
// at the first operator label. Literal values of known fields are coerced to
// the field's declared kind.
func Parse(token string) (Descriptor, error) {
	parts := strings.Split(token, sep)

	if parts[0] == champPrefix && len(parts) >= 3 {
		name := strings.Join(parts[2:], sep)
		switch parts[1] {
		case playedVerb:
			return ChampionPlayed{Name: name}, nil
		case bannedVerb:
			return ChampionBanned{Name: name}, nil
		}
		return nil, fmt.Errorf("%w: %q: unknown champion verb %q", ErrMalformed, token, parts[1])
	}

	// Tags are a single segment; the op label in parts[2] is not read.
	if parts[0] == tagPrefix && len(parts) >= 4 {
		minCount, err := strconv.Atoi(parts[len(parts)-1])
		if err != nil {
			minCount = 1
		}
		return TagAtLeast{Tag: parts[1], MinCount: minCount}, nil
	}

	if i := indexOf(parts, lenMarker); i >= 0 {
		if i+2 >= len(parts) {
			return nil, fmt.Errorf("%w: %q: missing length", ErrMalformed, token)
		}
		op, err := filter.ParseLabel(parts[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, token, err)
		}
		length, err := strconv.Atoi(strings.Join(parts[i+2:], sep))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: length: %v", ErrMalformed, token, err)
		}
		return ListLength{Field: strings.Join(parts[:i], sep), Op: op, Length: length}, nil
	}

	for i, p := range parts {
		op, err := filter.ParseLabel(p)
		if err != nil {
			continue
		}
		if i+1 >= len(parts) {
			return nil, fmt.Errorf("%w: %q: missing value", ErrMalformed, token)
		}
		field := strings.Join(parts[:i], sep)
		raw := strings.Join(parts[i+1:], sep)
		return FieldCompare{Field: field, Op: op, Value: coerceForField(field, raw)}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrMalformed, token)
}

// Decode is Parse with the session error policy applied: a token that cannot
// be parsed becomes a Noop carrying the error.
func Decode(token string) Descriptor {
	d, err := Parse(token)
	if err != nil {
		return Noop{Token: token, Err: err}
	}
	return d
}

// NewFieldCompare builds a field comparison from raw operator input. raw is
// coerced by the field's declared kind, as when parsing a token.
func NewFieldCompare(field string, op filter.Op, raw string) FieldCompare {
	return FieldCompare{Field: field, Op: op, Value: coerceForField(field, raw)}
}

func indexOf(parts []string, s string) int {
	for i, p := range parts {
		if p == s {
			return i
		}
	}
	return -1
}

func coerceForField(field, raw string) any {
	kind, ok := model.KindOf(field)
	if !ok {
		return ParseValue(raw)
	}
	return CoerceValue(raw, kind)
}

var (
	trueWords  = []string{"true", "vrai", "yes", "oui"}
	falseWords = []string{"false", "faux", "no", "non"}
)

// ParseValue classifies a literal without schema knowledge: English or French
// boolean keywords, then a signed integer, else the trimmed string. Decimal
// numbers stay strings.
func ParseValue(raw string) any {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	for _, w := range trueWords {
		if lower == w {
			return true
		}
	}
	for _, w := range falseWords {
		if lower == w {
			return false
		}
	}
	if isSignedInt(s) {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return s
}

// CoerceValue classifies a literal for a field of the given kind. The same
// token text can mean a boolean or an integer; the declared kind decides.
// Literals that do not fit the kind keep their generic classification.
func CoerceValue(raw string, kind model.Kind) any {
	v := ParseValue(raw)
	switch kind {
	case model.KindBool:
		if n, ok := v.(int); ok && (n == 0 || n == 1) {
			return n == 1
		}
	case model.KindInt:
		if b, ok := v.(bool); ok {
			if b {
				return 1
			}
			return 0
		}
	case model.KindString:
		return strings.TrimSpace(raw)
	}
	return v
}

func isSignedInt(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
