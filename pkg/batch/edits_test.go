package batch

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

func TestToggleText(t *testing.T) {
	var e EntryToggle
	if err := json.Unmarshal([]byte(`{"kind":"tag","id":5,"pending":"remove"}`), &e); err != nil {
		t.Fatal(err)
	}
	if e.Pending != Remove {
		t.Errorf("Pending = %v, want remove", e.Pending)
	}
	data, _ := json.Marshal(EntryToggle{Kind: "ppl", ID: 2, Pending: Add})
	if string(data) != `{"kind":"ppl","id":2,"pending":"add"}` {
		t.Errorf("Marshal = %s", data)
	}
	if _, err := ParseToggle("flip"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseToggle(flip) = %v", err)
	}
}

func TestPlan(t *testing.T) {
	sel := []gallery.Picture{
		{ID: 1, Caption: "a", Tags: []gallery.Entry{{ID: 5, Text: "sea", Active: true}}},
		{ID: 2, Caption: "b"},
	}
	loc := int64(9)
	_, cmds, err := Plan(sel, Edits{
		Scalars: map[string]string{"cap": "shore"},
		Loc:     &loc,
		Toggles: []EntryToggle{
			{Kind: gallery.KindTag, ID: 5, Pending: Remove},
			{Kind: gallery.KindTag, ID: 8, Text: "new", Pending: Add},
		},
	})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	got := make([]string, len(cmds))
	for i, c := range cmds {
		got[i] = c.String()
	}
	want := []string{
		`img=1 cap="shore" loc="9"`,
		`img=1 tag_del="5"`,
		`img=1 tag="8"`,
		`img=2 cap="shore" loc="9"`,
		`img=2 tag_del="5"`,
		`img=2 tag="8"`,
	}
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPlanRejectsUnknownField(t *testing.T) {
	_, _, err := Plan([]gallery.Picture{{ID: 1}}, Edits{Scalars: map[string]string{"xyz": "1"}})
	if !errors.Is(err, errors.ErrCodeInvalidField) {
		t.Errorf("Plan() = %v, want INVALID_FIELD", err)
	}
}

func TestPlanRemoveUnknownEntry(t *testing.T) {
	_, cmds, err := Plan([]gallery.Picture{{ID: 1}}, Edits{Toggles: []EntryToggle{{Kind: "tag", ID: 3, Pending: Remove}}})
	if err != nil || len(cmds) != 0 {
		t.Errorf("Plan() = %v, %v, want no commands and no error", cmds, err)
	}
}
