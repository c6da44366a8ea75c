// Package nodelink renders materialized graphs as node-link diagrams.
//
// # Overview
//
// This package produces undirected graph visualizations using Graphviz,
// where vertices appear as circles connected by plain edges. Cliques show
// up as densely connected clusters, disjoint-union components drift apart
// under force-directed layout.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT defaults to force-directed layout (layout=neato),
// which places clique clusters naturally; [Options.Layout] selects a
// different engine.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering, so no external Graphviz installation is required.
package nodelink
