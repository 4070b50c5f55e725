package batch

import "github.com/matzehuels/photogrid/pkg/gallery"

// Edits is a set of pending changes in a form that can travel as JSON or
// be assembled from command-line flags.
type Edits struct {
	Scalars map[string]string `json:"scalars,omitempty"`
	Loc     *int64            `json:"loc,omitempty"`
	// Free maps tag, ppl or loc to typed-in text.
	Free    map[string]string `json:"free,omitempty"`
	Toggles []EntryToggle     `json:"toggles,omitempty"`
}

// EntryToggle sets the pending change of one tag or person. Text names an
// entry that no selected picture carries yet.
type EntryToggle struct {
	Kind    string `json:"kind"`
	ID      int64  `json:"id"`
	Text    string `json:"txt,omitempty"`
	Pending Toggle `json:"pending"`
}

// Apply records every change in e. It stops at the first invalid one.
func (s *State) Apply(e Edits) error {
	for field, value := range e.Scalars {
		if err := s.RecordEdit(field, value); err != nil {
			return err
		}
	}
	if e.Loc != nil {
		if err := s.RecordLocation(*e.Loc); err != nil {
			return err
		}
	}
	for field, text := range e.Free {
		if err := s.RecordFreeText(field, text); err != nil {
			return err
		}
	}
	for _, t := range e.Toggles {
		if err := s.applyToggle(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *State) applyToggle(t EntryToggle) error {
	if t.Pending == Add && !s.Has(t.Kind, t.ID) {
		return s.AddEntry(t.Kind, t.ID, t.Text)
	}
	return s.SetPending(t.Kind, t.ID, t.Pending)
}

// Plan summarizes selection, applies e and returns the commands that
// would commit it.
func Plan(selection []gallery.Picture, e Edits) (*State, []gallery.Command, error) {
	st := Summarize(selection)
	if err := st.Apply(e); err != nil {
		return st, nil, err
	}
	return st, BuildUpdateList(selection, st), nil
}
