package locgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

// Graph is one location with its relatives.
type Graph struct {
	Current   gallery.Entry
	Parents   []gallery.Entry
	Children  []gallery.Entry
	Suggested []gallery.Entry
}

// Options configures diagram generation.
type Options struct {
	// Detailed adds database ids to node labels.
	Detailed bool
}

// FromSuggestions sorts suggest-endpoint location entries by relation.
// Entries with an unknown relation are ignored. It fails with NOT_FOUND
// when no entry is the current location.
func FromSuggestions(entries []gallery.Entry) (Graph, error) {
	var g Graph
	found := false
	for _, e := range entries {
		switch e.Rel {
		case gallery.RelSelf:
			if !found {
				g.Current, found = e, true
			}
		case gallery.RelParent:
			g.Parents = append(g.Parents, e)
		case gallery.RelChild:
			g.Children = append(g.Children, e)
		case gallery.RelSuggestion:
			g.Suggested = append(g.Suggested, e)
		}
	}
	if !found {
		return Graph{}, errors.New(errors.ErrCodeNotFound, "no current location among %d suggestions", len(entries))
	}
	return g, nil
}

// ToDOT converts a location graph to Graphviz DOT. Parents are chained
// top-down in the order given, ending at the current location.
func ToDOT(g Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph L {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeNode(&buf, g.Current, opts, "fillcolor=lightyellow", "penwidth=2")
	for _, e := range g.Parents {
		writeNode(&buf, e, opts)
	}
	for _, e := range g.Children {
		writeNode(&buf, e, opts)
	}
	for _, e := range g.Suggested {
		writeNode(&buf, e, opts, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}

	buf.WriteString("\n")
	prev := ""
	for _, e := range g.Parents {
		if prev != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", prev, nodeID(e))
		}
		prev = nodeID(e)
	}
	cur := nodeID(g.Current)
	if prev != "" {
		fmt.Fprintf(&buf, "  %q -> %q;\n", prev, cur)
	}
	for _, e := range g.Children {
		fmt.Fprintf(&buf, "  %q -> %q;\n", cur, nodeID(e))
	}
	for _, e := range g.Suggested {
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", cur, nodeID(e))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(e gallery.Entry) string { return "loc" + strconv.FormatInt(e.ID, 10) }

func writeNode(buf *bytes.Buffer, e gallery.Entry, opts Options, extra ...string) {
	label := e.Text
	if label == "" {
		label = "(unnamed)"
	}
	if opts.Detailed {
		label += "\nid: " + strconv.FormatInt(e.ID, 10)
	}
	attrs := append([]string{fmt.Sprintf("label=%q", label)}, extra...)
	fmt.Fprintf(buf, "  %q [%s];\n", nodeID(e), strings.Join(attrs, ", "))
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg element with one sized
// from the view box.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
