// Package preset persists named filter pipelines as ordered lists of
// descriptor tokens in a single JSON document.
package preset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/pable/go-lol-matches/internal/descriptor"
	"github.com/pable/go-lol-matches/internal/model"
)

// ErrNotFound is returned by Delete and Get for an unknown preset name.
var ErrNotFound = errors.New("preset not found")

// Presets maps a preset name to its descriptor tokens.
type Presets map[string][]string

// Names returns the preset names sorted alphabetically.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Store reads and writes the preset document. Every mutation rewrites the
// whole file; there is no locking, so two processes sharing a file can lose
// each other's updates.
type Store struct {
	path string
	log  *slog.Logger
}

// NewStore returns a store backed by the JSON file at path. The file is not
// touched until the first Load or Save.
func NewStore(path string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, log: log}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the store. A missing, unreadable or malformed file yields an
// empty store. Entries whose value is not a list are dropped and list items
// are stringified.
func (s *Store) Load() Presets {
	out := make(Presets)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("read presets", "path", s.path, "err", err)
		}
		return out
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Warn("presets file is not a JSON object, ignoring", "path", s.path, "err", err)
		return out
	}
	for name, v := range raw {
		items, ok := v.([]any)
		if !ok {
			continue
		}
		tokens := make([]string, 0, len(items))
		for _, it := range items {
			tokens = append(tokens, stringify(it))
		}
		out[name] = tokens
	}
	return out
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return descriptor.FormatValue(x)
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Save writes the whole store, creating the parent directory if needed.
func (s *Store) Save(p Presets) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create presets dir: %w", err)
	}
	if p == nil {
		p = Presets{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	s.log.Debug("presets saved", "path", s.path, "count", len(p))
	return nil
}

// Get returns the tokens of one preset.
func (s *Store) Get(name string) ([]string, error) {
	tokens, ok := s.Load()[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return tokens, nil
}

// Put snapshots tokens under name, replacing any preset with that name.
func (s *Store) Put(name string, tokens []string) error {
	p := s.Load()
	p[name] = append([]string(nil), tokens...)
	return s.Save(p)
}

// Delete removes a preset by name.
func (s *Store) Delete(name string) error {
	p := s.Load()
	if _, ok := p[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(p, name)
	return s.Save(p)
}

// Apply replays tokens in order starting from the full record set, never
// from a previously filtered set, so a preset always yields the same result
// for the same data. Undecodable tokens keep every record. The returned
// history echoes tokens verbatim.
func Apply(all []model.Record, tokens []string, log *slog.Logger) ([]model.Record, []string) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	current := make([]model.Record, len(all))
	copy(current, all)
	history := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		d := descriptor.Decode(tok)
		if noop, ok := d.(descriptor.Noop); ok {
			log.Debug("preset step ignored", "token", tok, "err", noop.Err)
		}
		current = d.Apply(current)
		history = append(history, tok)
	}
	return current, history
}
