package batch

import (
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

// ScalarFields are the fields a batch edit can set to one shared value.
var ScalarFields = []string{"cap", "ts", "tz", "wmk"}

// FreeTextFields are the collections that accept a typed-in new value.
var FreeTextFields = []string{"tag", "ppl", "loc"}

// Toggle is the pending change for one tag or person.
type Toggle int

const (
	Unset Toggle = iota
	Add
	Remove
)

func (t Toggle) String() string {
	switch t {
	case Add:
		return "add"
	case Remove:
		return "remove"
	}
	return "unset"
}

// MarshalText encodes the toggle by name.
func (t Toggle) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText accepts "unset", "add" or "remove". Empty means unset.
func (t *Toggle) UnmarshalText(b []byte) error {
	v, err := ParseToggle(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseToggle parses a toggle name.
func ParseToggle(s string) (Toggle, error) {
	switch s {
	case "", "unset":
		return Unset, nil
	case "add":
		return Add, nil
	case "remove":
		return Remove, nil
	}
	return Unset, errors.New(errors.ErrCodeInvalidInput, "bad toggle %q (want add, remove or unset)", s)
}

// next cycles unset -> add -> remove -> unset.
func (t Toggle) next() Toggle {
	switch t {
	case Unset:
		return Add
	case Add:
		return Remove
	}
	return Unset
}

// Scalar summarizes one scalar field.
type Scalar struct {
	Last    string  `json:"last"`
	Varies  bool    `json:"varies"`
	Pending *string `json:"pending,omitempty"`
}

// Location summarizes the selection's location, compared by id.
type Location struct {
	ID      int64  `json:"id"`
	Text    string `json:"txt"`
	Varies  bool   `json:"varies"`
	Pending *int64 `json:"pending,omitempty"`
}

// Entry is a tag or person present on at least one selected picture.
type Entry struct {
	ID      int64  `json:"id"`
	Text    string `json:"txt"`
	Varies  bool   `json:"varies"`
	Pending Toggle `json:"pending"`
}

// State is the aggregate view of a selection plus the edits pending on it.
//
// Summarize builds it. The Record methods, ToggleTag, AddEntry and Apply
// mark edits as pending; Pending and BuildUpdateList read them back. A
// State with Count 0 accepts every edit call and keeps nothing.
type State struct {
	Count   int                `json:"count"`
	Scalars map[string]*Scalar `json:"scalars"`
	Loc     *Location          `json:"loc,omitempty"`
	Tags    []*Entry           `json:"tag"`
	People  []*Entry           `json:"ppl"`
	// Free holds typed-in values keyed by collection (tag, ppl, loc).
	Free map[string]string `json:"free,omitempty"`
}

func newState() *State {
	return &State{
		Scalars: make(map[string]*Scalar),
		Free:    make(map[string]string),
	}
}

// Empty reports whether the state summarizes no pictures.
func (s *State) Empty() bool { return s == nil || s.Count == 0 }

// Entries returns the tag ("tag") or people ("ppl") entries.
func (s *State) Entries(kind string) []*Entry {
	if s == nil {
		return nil
	}
	switch kind {
	case gallery.KindTag:
		return s.Tags
	case gallery.KindPeople:
		return s.People
	}
	return nil
}

func (s *State) setEntries(kind string, e []*Entry) {
	if kind == gallery.KindTag {
		s.Tags = e
	} else {
		s.People = e
	}
}

// HasPending reports whether any edit is waiting to be committed.
func (s *State) HasPending() bool {
	if s == nil {
		return false
	}
	for _, f := range s.Scalars {
		if f.Pending != nil {
			return true
		}
	}
	if s.Loc != nil && s.Loc.Pending != nil {
		return true
	}
	if len(s.Free) > 0 {
		return true
	}
	for _, kind := range []string{gallery.KindPeople, gallery.KindTag} {
		for _, e := range s.Entries(kind) {
			if e.Pending != Unset {
				return true
			}
		}
	}
	return false
}

// Reset drops every pending edit, keeping the summary.
func (s *State) Reset() {
	for _, f := range s.Scalars {
		f.Pending = nil
	}
	if s.Loc != nil {
		s.Loc.Pending = nil
	}
	s.Free = make(map[string]string)
	for _, kind := range []string{gallery.KindPeople, gallery.KindTag} {
		for _, e := range s.Entries(kind) {
			e.Pending = Unset
		}
	}
}

func isKind(kind string) bool {
	return kind == gallery.KindTag || kind == gallery.KindPeople
}
