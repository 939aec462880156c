// Package sim drives the force-directed layout of a graph over time.
//
// A [Simulation] takes ownership of a fully built [graph.Graph], freezes its
// topology and advances node positions once per call to [Simulation.Tick]:
//
//  1. zero every force accumulator
//  2. add spring attraction along every edge
//  3. add repulsion between every pair of nodes inside the cutoff
//  4. integrate positions (and velocities, in Newtonian mode)
//
// The host decides when time advances. An interactive view calls Tick once
// per frame; a headless run calls [Simulation.Step] with a fixed count. There
// is no convergence detection and no iteration cap: [Simulation.Stats] reports
// how much the layout is still moving, but the simulation never stops itself.
//
// # State
//
// Live spatial state lives in [State] as three parallel slices indexed by
// node id, separate from the graph's topology. Renderers read it through
// [Simulation.Frame], which returns an independent copy that may be handed to
// other goroutines.
//
// # Concurrency
//
// A Simulation is not safe for concurrent use. Call Tick, Frame and the other
// accessors from a single goroutine.
package sim
