// Package pkg provides the core libraries for emerge force-directed layouts.
//
// # Overview
//
// Emerge lays out graphs by simulating physics: every edge is a spring that
// pulls its endpoints toward a rest length and every pair of nearby nodes
// repels like electric charges. Positions are advanced tick by tick until the
// drawing settles. The pkg directory is organized into these areas:
//
//  1. [graph] - Topology store (labelled nodes, directed and undirected edges)
//  2. [physics] - Force solver and integrator
//  3. [sim] - Simulation driver owning the spatial state
//  4. [placement], [builder] - Initial positions and example topologies
//  5. [render] - JSON export, terminal canvas and Graphviz node-link output
//  6. [config], [errors], [observability] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	builder (or your own code)
//	         ↓
//	    [graph] package (nodes + edges, placed by a [placement] policy)
//	         ↓
//	    [sim] package (freeze topology, tick: [physics] forces → integrate)
//	         ↓
//	    [render] package (frame → JSON / terminal / DOT / SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/emerge/pkg/builder"
//	    "github.com/matzehuels/emerge/pkg/graph"
//	    "github.com/matzehuels/emerge/pkg/physics"
//	    "github.com/matzehuels/emerge/pkg/render"
//	    "github.com/matzehuels/emerge/pkg/sim"
//	)
//
//	g := graph.New()
//	if err := builder.Sample(g); err != nil {
//	    return err
//	}
//
//	s, err := sim.New(g, physics.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	s.Step(500)
//
//	data, err := render.RenderJSON(s.Frame())
//
// # Invariants
//
// The graph is mutable only until a simulation is created on it; from then on
// the topology is frozen and mutations fail with TOPOLOGY_FROZEN. The
// simulation is single-threaded: Tick must not run concurrently with itself or
// with reads of the state. Frames are value snapshots and may be rendered on
// other goroutines.
//
// [graph]: github.com/matzehuels/emerge/pkg/graph
// [physics]: github.com/matzehuels/emerge/pkg/physics
// [sim]: github.com/matzehuels/emerge/pkg/sim
// [placement]: github.com/matzehuels/emerge/pkg/placement
// [builder]: github.com/matzehuels/emerge/pkg/builder
// [render]: github.com/matzehuels/emerge/pkg/render
// [config]: github.com/matzehuels/emerge/pkg/config
// [errors]: github.com/matzehuels/emerge/pkg/errors
// [observability]: github.com/matzehuels/emerge/pkg/observability
package pkg
