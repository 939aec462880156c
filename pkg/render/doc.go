// Package render turns simulation frames into output artifacts.
//
// # Overview
//
// Renderers consume a [sim.Frame], an immutable snapshot of node positions,
// labels, radii and edges, and never touch the running simulation. This lets
// the CLI write several formats concurrently from one frame.
//
//   - JSON layout export ([RenderJSON])
//   - Graphviz DOT and SVG with pinned positions (in [nodelink] subpackage)
//   - Styled terminal grid for the live view (in [canvas] subpackage)
//
// # JSON
//
// [RenderJSON] writes the frame together with an identifier for the run and,
// optionally, the physics constants and the final statistics, so a layout
// file records how it was produced:
//
//	data, err := render.RenderJSON(s.Frame(),
//	    render.WithPhysics(s.Config()),
//	    render.WithStats(s.Stats()))
//
// [nodelink]: github.com/matzehuels/emerge/pkg/render/nodelink
// [canvas]: github.com/matzehuels/emerge/pkg/render/canvas
package render
