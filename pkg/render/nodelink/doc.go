// Package nodelink renders simulation frames as Graphviz node-link diagrams.
//
// # Overview
//
// The layout is already computed by the simulation, so Graphviz is used only
// to draw it: every node is pinned at its simulated position and the neato
// engine, which honors pins, routes straight edges between them.
//
// # Usage
//
// Convert a frame to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(s.Frame(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and drawn with the neato command line
// tool.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
