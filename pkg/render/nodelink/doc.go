// Package nodelink renders the hub network as a Graphviz node-link diagram.
//
// [ToDOT] produces DOT source with one node per hub and one edge per
// connection whose endpoints exist. With [Options.Geographic] the nodes are
// pinned at their projected map positions and laid out with neato;
// otherwise Graphviz arranges them freely.
//
//	dot := nodelink.ToDOT(ds.Hubs, ds.Connections, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering runs in-process through [github.com/goccy/go-graphviz].
package nodelink
