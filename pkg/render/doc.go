// Package render holds the graphical renderers.
//
// The [locgraph] subpackage draws the location hierarchy around one
// location (its parents, children and suggested neighbours) as a
// Graphviz diagram:
//
//	g, err := locgraph.FromSuggestions(s.Location)
//	dot := locgraph.ToDOT(g, locgraph.Options{})
//	svg, err := locgraph.RenderSVG(ctx, dot)
//
// [locgraph]: github.com/matzehuels/photogrid/pkg/render/locgraph
package render
