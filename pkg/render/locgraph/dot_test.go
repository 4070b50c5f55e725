package locgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

func suggestions() []gallery.Entry {
	return []gallery.Entry{
		{ID: 1, Text: "Earth", Rel: gallery.RelParent},
		{ID: 2, Text: "California", Rel: gallery.RelParent},
		{ID: 9, Text: "San Francisco"},
		{ID: 10, Text: "Ocean Beach", Rel: gallery.RelChild},
		{ID: 11, Text: "Mission", Rel: gallery.RelChild},
		{ID: 20, Text: "Oakland", Rel: gallery.RelSuggestion},
		{ID: 99, Text: "?", Rel: "x"},
	}
}

func TestFromSuggestions(t *testing.T) {
	g, err := FromSuggestions(suggestions())
	if err != nil {
		t.Fatal(err)
	}
	if g.Current.ID != 9 || len(g.Parents) != 2 || len(g.Children) != 2 || len(g.Suggested) != 1 {
		t.Errorf("graph = %+v", g)
	}

	_, err = FromSuggestions([]gallery.Entry{{ID: 1, Rel: gallery.RelParent}})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("no current = %v, want NOT_FOUND", err)
	}
}

func TestToDOT(t *testing.T) {
	g, _ := FromSuggestions(suggestions())
	dot := ToDOT(g, Options{Detailed: true})
	for _, want := range []string{
		`"loc1" -> "loc2";`,
		`"loc2" -> "loc9";`,
		`"loc9" -> "loc10";`,
		`"loc9" -> "loc20" [style=dashed, arrowhead=none];`,
		`label="San Francisco\nid: 9"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "loc99") {
		t.Error("unknown relations must be dropped")
	}
}

func TestToDOTLoneLocation(t *testing.T) {
	dot := ToDOT(Graph{Current: gallery.Entry{ID: 4}}, Options{})
	if strings.Contains(dot, "->") || !strings.Contains(dot, `label="(unnamed)"`) {
		t.Errorf("DOT = %s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	g, _ := FromSuggestions(suggestions())
	svg, err := RenderSVG(context.Background(), ToDOT(g, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(svg)), "<") || !strings.Contains(string(svg), "Ocean Beach") {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="5pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", got)
	}
}
