// Package physics implements the force solver and integrator behind the
// force-directed layout.
//
// # Forces
//
// Every tick the solver rebuilds each node's force accumulator from scratch:
//
//  1. zero all accumulators
//  2. attraction: every edge (directed or undirected) is a spring with rest
//     length RestLength and stiffness SpringConstant
//  3. repulsion: every unordered pair of nodes closer than RepulsionCutoff
//     pushes apart with magnitude ElectrostaticConstant / dist²
//
// Both contributions are applied equal and opposite to the two endpoints and
// added onto the accumulator, never assigned, since a node takes part in many
// pairs per tick.
//
// # Degenerate Pairs
//
// Two nodes at (numerically) the same position have no direction between
// them. Such pairs are skipped: they contribute nothing this tick. The pure
// functions [SpringForce] and [ElectrostaticForce] report this with a false
// second result. Nodes separate again as soon as any other force moves one of
// them.
//
// # Cost
//
// Attraction is O(E). Repulsion evaluates all V(V-1)/2 pairs and discards
// those beyond the cutoff, so a tick is O(V²). This bound is deliberate and is
// the scaling limit of the engine: graphs of a few thousand nodes still tick in
// milliseconds, larger ones need a spatial index this package does not have.
//
// # Integration
//
// Under relaxation, the default, positions advance by 0.5*force*dt² and
// velocity stays zero. Newtonian integration updates velocity from force/mass
// first, damps it, and moves each node by velocity*dt. See [Integration].
package physics
