package batch

import "github.com/matzehuels/photogrid/pkg/gallery"

// Summarize aggregates a selection into a State with nothing pending.
//
// # Scalars and location
//
// Each field in ScalarFields keeps the last value seen and is flagged as
// varying as soon as two pictures disagree. Locations are compared by id
// alone, and a picture without one counts as location 0.
//
// # Tags and people
//
// Only active entries count; inactive ones are server suggestions. The
// result lists the union of active entries across the selection. An entry
// is flagged as varying when some selected picture lacks it or carries it
// under a different text:
//
//	pic 1: sea, dog
//	pic 2: sea, dog (suggested)
//	=> sea (shared), dog (varies)
//
// The flags do not depend on the order of pictures; only the order in
// which entries are listed does. An empty selection yields a State with
// Count 0, on which every Record and Toggle method is a no-op.
func Summarize(selection []gallery.Picture) *State {
	s := newState()
	for i := range selection {
		pic := &selection[i]
		s.Count++

		for _, field := range ScalarFields {
			v := pic.Field(field)
			if f, ok := s.Scalars[field]; !ok {
				s.Scalars[field] = &Scalar{Last: v}
			} else if v != f.Last {
				f.Varies = true
			}
		}

		loc := locationOf(pic)
		if s.Loc == nil {
			s.Loc = &Location{ID: loc.ID, Text: loc.Text}
		} else if loc.ID != s.Loc.ID {
			s.Loc.Varies = true
		}

		for _, kind := range []string{gallery.KindTag, gallery.KindPeople} {
			if i == 0 {
				s.setEntries(kind, seed(pic.Collection(kind)))
			} else {
				s.setEntries(kind, merge(s.Entries(kind), pic.Collection(kind)))
			}
		}
	}

	for _, kind := range []string{gallery.KindTag, gallery.KindPeople} {
		reconcile(s.Entries(kind), selection, kind)
	}
	return s
}

// locationOf returns the first location entry; pictures without one count
// as location 0.
func locationOf(p *gallery.Picture) gallery.Entry {
	if len(p.Loc) == 0 {
		return gallery.Entry{}
	}
	return p.Loc[0]
}

// seed copies the active entries of the first picture.
func seed(entries []gallery.Entry) []*Entry {
	var out []*Entry
	for _, e := range entries {
		if e.Active {
			out = append(out, &Entry{ID: e.ID, Text: e.Text})
		}
	}
	return out
}

// merge folds one more picture's entries into acc. Inactive entries are
// server suggestions and do not count as present.
func merge(acc []*Entry, next []gallery.Entry) []*Entry {
	for _, n := range next {
		if !n.Active {
			continue
		}
		found := false
		for _, a := range acc {
			if a.ID == n.ID {
				found = true
				if a.Text != n.Text {
					a.Varies = true
				}
				break
			}
		}
		if !found {
			acc = append(acc, &Entry{ID: n.ID, Text: n.Text, Varies: true})
		}
	}
	for _, a := range acc {
		if !hasActive(next, a.ID) {
			a.Varies = true
		}
	}
	return acc
}

// reconcile recomputes Varies against the whole selection so an entry
// shared by every picture is never flagged, whatever order it was seen in.
func reconcile(acc []*Entry, selection []gallery.Picture, kind string) {
	for _, a := range acc {
		varies := false
		for i := range selection {
			e, ok := findActive(selection[i].Collection(kind), a.ID)
			if !ok || e.Text != a.Text {
				varies = true
				break
			}
		}
		a.Varies = varies
	}
}

func hasActive(entries []gallery.Entry, id int64) bool {
	_, ok := findActive(entries, id)
	return ok
}

func findActive(entries []gallery.Entry, id int64) (gallery.Entry, bool) {
	for _, e := range entries {
		if e.ID == id && e.Active {
			return e, true
		}
	}
	return gallery.Entry{}, false
}
