package batch

import (
	"testing"

	"github.com/matzehuels/photogrid/pkg/gallery"
)

func tag(id int64, txt string) gallery.Entry { return gallery.Entry{ID: id, Text: txt, Active: true} }

func suggestion(id int64, txt string) gallery.Entry { return gallery.Entry{ID: id, Text: txt} }

func pics() []gallery.Picture {
	return []gallery.Picture{
		{ID: 1, Caption: "beach", TS: "2019-03-01", TZ: "PST", Wmk: "(c) A",
			Loc:    []gallery.Entry{{ID: 9, Text: "Ocean Beach"}},
			Tags:   []gallery.Entry{tag(5, "family"), tag(6, "trip"), suggestion(7, "work")},
			People: []gallery.Entry{tag(40, "Ann")}},
		{ID: 2, Caption: "beach", TS: "2019-03-02", TZ: "PST", Wmk: "(c) A",
			Loc:    []gallery.Entry{{ID: 9, Text: "Ocean Beach"}},
			Tags:   []gallery.Entry{tag(5, "family"), suggestion(6, "trip"), tag(8, "sunset")},
			People: []gallery.Entry{tag(40, "Ann")}},
	}
}

func entryByID(entries []*Entry, id int64) *Entry {
	for _, e := range entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func TestSummarize(t *testing.T) {
	st := Summarize(pics())

	if st.Count != 2 {
		t.Errorf("Count = %d, want 2", st.Count)
	}
	scalars := map[string]struct {
		last   string
		varies bool
	}{
		"cap": {"beach", false},
		"ts":  {"2019-03-01", true},
		"tz":  {"PST", false},
		"wmk": {"(c) A", false},
	}
	for name, want := range scalars {
		got := st.Scalars[name]
		if got == nil || got.Last != want.last || got.Varies != want.varies {
			t.Errorf("Scalars[%q] = %+v, want last=%q varies=%v", name, got, want.last, want.varies)
		}
	}
	if st.Loc == nil || st.Loc.ID != 9 || st.Loc.Varies {
		t.Errorf("Loc = %+v, want id 9 not varying", st.Loc)
	}

	tags := map[int64]bool{5: false, 6: true, 8: true}
	if len(st.Tags) != len(tags) {
		t.Fatalf("Tags = %d entries, want %d", len(st.Tags), len(tags))
	}
	for id, varies := range tags {
		e := entryByID(st.Tags, id)
		if e == nil {
			t.Errorf("tag %d missing", id)
			continue
		}
		if e.Varies != varies {
			t.Errorf("tag %d Varies = %v, want %v", id, e.Varies, varies)
		}
	}
	if entryByID(st.Tags, 7) != nil {
		t.Error("suggestion-only tag 7 should not be aggregated")
	}
	if e := entryByID(st.People, 40); e == nil || e.Varies {
		t.Errorf("person 40 = %+v, want shared", e)
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	p := pics()
	a := Summarize(p)
	b := Summarize([]gallery.Picture{p[1], p[0]})
	for _, e := range a.Tags {
		other := entryByID(b.Tags, e.ID)
		if other == nil || other.Varies != e.Varies {
			t.Errorf("tag %d: %+v vs %+v", e.ID, e, other)
		}
	}
	for name, f := range a.Scalars {
		if b.Scalars[name].Varies != f.Varies {
			t.Errorf("scalar %s varies differs by order", name)
		}
	}
}

func TestSummarizeSingleNeverVaries(t *testing.T) {
	st := Summarize(pics()[:1])
	for name, f := range st.Scalars {
		if f.Varies {
			t.Errorf("scalar %s varies with one picture", name)
		}
	}
	for _, e := range append(st.Tags, st.People...) {
		if e.Varies {
			t.Errorf("entry %d varies with one picture", e.ID)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	st := Summarize(nil)
	if !st.Empty() || st.Loc != nil || len(st.Tags) != 0 {
		t.Errorf("Summarize(nil) = %+v, want empty", st)
	}
	if err := st.RecordEdit("cap", "x"); err != nil {
		t.Errorf("RecordEdit on empty state = %v, want a no-op", err)
	}
	if err := st.RecordLocation(4); err != nil {
		t.Errorf("RecordLocation on empty state = %v, want a no-op", err)
	}
	if got, err := st.ToggleTag("tag", 5); got != Unset || err != nil {
		t.Errorf("ToggleTag on empty state = %v, %v", got, err)
	}
	if err := st.AddEntry("tag", 5, "t"); err != nil || len(st.Tags) != 0 {
		t.Errorf("AddEntry on empty state = %v, tags %v", err, st.Tags)
	}
	if len(st.Pending()) != 0 || len(BuildUpdateList(nil, st)) != 0 {
		t.Error("empty state should stay empty")
	}
}

func TestSummarizeMissingLocation(t *testing.T) {
	p := pics()
	p[1].Loc = nil
	st := Summarize(p)
	if !st.Loc.Varies {
		t.Error("picture without location should make loc vary")
	}
}
