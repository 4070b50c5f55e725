// Package locgraph draws a location and its neighbourhood as a node-link
// diagram.
//
// The suggest endpoint answers a location id with the location itself,
// its parents, its children and a few suggestions, each tagged with a
// relation. [FromSuggestions] sorts those into a [Graph]; [ToDOT] turns
// the graph into Graphviz source with parents above and children below
// the current location:
//
//	g, err := locgraph.FromSuggestions(sugg.Location)
//	dot := locgraph.ToDOT(g, locgraph.Options{})
//	svg, err := locgraph.RenderSVG(ctx, dot)
//
// Suggestions hang off the current node with dashed edges.
//
// Rendering uses [github.com/goccy/go-graphviz] in-process, so no Graphviz
// installation is needed.
package locgraph
