package batch

import (
	"github.com/matzehuels/photogrid/pkg/gallery"
)

// Session ties a batch State to a collection. Any selection change
// re-summarizes the selection and discards pending edits, so a State
// obtained before Toggle, SelectAll, SelectNone or Invert is stale
// afterwards; call State again.
//
// A Session is not safe for concurrent use.
type Session struct {
	coll  *gallery.Collection
	state *State
}

// NewSession starts a session over coll's current selection.
func NewSession(coll *gallery.Collection) *Session {
	s := &Session{coll: coll}
	s.refresh()
	return s
}

func (s *Session) refresh() { s.state = Summarize(s.coll.Selected()) }

// State returns the current aggregate.
func (s *Session) State() *State { return s.state }

// Collection returns the underlying collection.
func (s *Session) Collection() *gallery.Collection { return s.coll }

// Toggle flips one picture's selection.
func (s *Session) Toggle(id int64) error {
	if _, err := s.coll.Toggle(id); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// SelectAll selects every picture.
func (s *Session) SelectAll() {
	s.coll.SelectAll()
	s.refresh()
}

// SelectNone clears the selection.
func (s *Session) SelectNone() {
	s.coll.SelectNone()
	s.refresh()
}

// Invert flips the selection.
func (s *Session) Invert() {
	s.coll.Invert()
	s.refresh()
}

// Reset discards pending edits and re-reads the selection, which picks up
// pictures refreshed by a commit.
func (s *Session) Reset() { s.refresh() }

// Updates builds the command list for the current selection.
func (s *Session) Updates() []gallery.Command {
	return BuildUpdateList(s.coll.Selected(), s.state)
}
