// Package session owns the state of one exploration session: the full record
// set, the current working set and the tokens of the filters applied so far.
package session

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/pable/go-lol-matches/internal/model"
	"github.com/pable/go-lol-matches/internal/sorting"
)

// Step is a filter that can be applied to a working set and recorded in
// history by its token. descriptor.Descriptor satisfies it.
type Step interface {
	Apply(records []model.Record) []model.Record
	String() string
}

// Session is a filter pipeline over a fixed record set. It is not safe for
// concurrent use; each operator gets their own Session.
type Session struct {
	ID uuid.UUID

	all     []model.Record
	working []model.Record
	history []string
	log     *slog.Logger
}

// New starts a session whose working set is all of records.
func New(records []model.Record, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		ID:  uuid.New(),
		all: records,
	}
	s.log = log.With("tag", "session", "id", s.ID.String())
	s.Reset()
	return s
}

// All returns the full loaded record set.
func (s *Session) All() []model.Record { return s.all }

// Working returns the current working set.
func (s *Session) Working() []model.Record { return s.working }

// History returns a copy of the applied filter tokens in order.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Apply runs step over the working set, replaces the working set with the
// result and records the step's token. It returns the new working-set size.
func (s *Session) Apply(step Step) int {
	before := len(s.working)
	s.working = step.Apply(s.working)
	s.history = append(s.history, step.String())
	s.log.Debug("filter applied", "step", step.String(), "before", before, "after", len(s.working))
	return len(s.working)
}

// Reset restores the full record set and clears history.
func (s *Session) Reset() {
	s.working = make([]model.Record, len(s.all))
	copy(s.working, s.all)
	s.history = nil
}

// Restore replaces the working set and history wholesale, as after replaying
// a preset from the full record set.
func (s *Session) Restore(working []model.Record, history []string) {
	s.working = working
	s.history = append([]string(nil), history...)
	s.log.Debug("session restored", "records", len(working), "steps", len(history))
}

// Sort reorders the working set by field. Sorting is not a filter and is not
// recorded in history.
func (s *Session) Sort(field string, desc bool) {
	s.working = sorting.ByField(s.working, field, desc)
}
