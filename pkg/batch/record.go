package batch

import (
	"slices"

	"github.com/matzehuels/photogrid/pkg/errors"
)

// RecordEdit records a new value for a scalar field. The edit stays pending
// only when the field varies across the selection or the value differs from
// the shared one; otherwise any earlier pending value is dropped.
//
// Like every Record and Toggle method it does nothing on an empty state:
// there is no picture to edit. Only a field name outside ScalarFields is
// an error (INVALID_FIELD).
//
//	st := Summarize(pics)         // every cap is "beach"
//	st.RecordEdit("cap", "shore") // pending: cap=shore
//	st.RecordEdit("cap", "beach") // back to the shared value: nothing pending
func (s *State) RecordEdit(field, value string) error {
	if s.Empty() {
		return nil
	}
	f, ok := s.Scalars[field]
	if !ok {
		return errors.New(errors.ErrCodeInvalidField, "%q is not a batch field (want one of %v)", field, ScalarFields)
	}
	if f.Varies || f.Last != value {
		f.Pending = &value
	} else {
		f.Pending = nil
	}
	return nil
}

// RecordLocation records a new location id, following the same rule as
// RecordEdit with ids compared. A negative id is INVALID_INPUT.
func (s *State) RecordLocation(id int64) error {
	if s.Empty() {
		return nil
	}
	if id < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "location id must not be negative")
	}
	if s.Loc.Varies || s.Loc.ID != id {
		s.Loc.Pending = &id
	} else {
		s.Loc.Pending = nil
	}
	return nil
}

// RecordFreeText records a typed-in value for a collection: a new tag,
// person or location name. An empty text removes the pending value.
// field must be one of FreeTextFields.
func (s *State) RecordFreeText(field, text string) error {
	if s.Empty() {
		return nil
	}
	if !slices.Contains(FreeTextFields, field) {
		return errors.New(errors.ErrCodeInvalidField, "%q does not take free text (want one of %v)", field, FreeTextFields)
	}
	if text == "" {
		delete(s.Free, field)
	} else {
		s.Free[field] = text
	}
	return nil
}

// ToggleTag advances the pending change of one tag or person through
// unset, add and remove, and returns the new value:
//
//	Unset -> Add -> Remove -> Unset
//
// An id that is not in the summary is left alone and reported as Unset;
// use AddEntry to bring in a tag no selected picture carries. kind must be
// gallery.KindTag or gallery.KindPeople.
func (s *State) ToggleTag(kind string, id int64) (Toggle, error) {
	if !isKind(kind) {
		return Unset, errors.New(errors.ErrCodeInvalidField, "%q is not a tag collection", kind)
	}
	if e := s.entry(kind, id); e != nil {
		e.Pending = e.Pending.next()
		return e.Pending, nil
	}
	return Unset, nil
}

// Has reports whether id is in the summary for kind.
func (s *State) Has(kind string, id int64) bool { return s.entry(kind, id) != nil }

func (s *State) entry(kind string, id int64) *Entry {
	for _, e := range s.Entries(kind) {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// AddEntry puts a tag or person that no selected picture carries yet into
// the state with a pending add. Entries already present are set to add.
func (s *State) AddEntry(kind string, id int64, text string) error {
	if !isKind(kind) {
		return errors.New(errors.ErrCodeInvalidField, "%q is not a tag collection", kind)
	}
	if id <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%s id must be positive", kind)
	}
	if s.Empty() {
		return nil
	}
	if e := s.entry(kind, id); e != nil {
		e.Pending = Add
		return nil
	}
	s.setEntries(kind, append(s.Entries(kind), &Entry{ID: id, Text: text, Varies: true, Pending: Add}))
	return nil
}

// SetPending forces the pending change of an entry in the summary. Ids
// that are not in it are ignored.
func (s *State) SetPending(kind string, id int64, t Toggle) error {
	if !isKind(kind) {
		return errors.New(errors.ErrCodeInvalidField, "%q is not a tag collection", kind)
	}
	if e := s.entry(kind, id); e != nil {
		e.Pending = t
	}
	return nil
}

// Pending returns the pending scalar values, the location and free text,
// keyed by edit field name.
func (s *State) Pending() map[string]string {
	out := make(map[string]string)
	if s.Empty() {
		return out
	}
	for name, f := range s.Scalars {
		if f.Pending != nil {
			out[name] = *f.Pending
		}
	}
	if s.Loc != nil && s.Loc.Pending != nil {
		out["loc"] = formatID(*s.Loc.Pending)
	}
	for field, text := range s.Free {
		out[field+"_fre"] = text
	}
	return out
}
