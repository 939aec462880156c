// Package graph provides the topology store for force-directed layouts.
//
// # Overview
//
// A [Graph] is an ordered sequence of nodes whose index is their id, plus a
// label -> id map. Ids are dense, start at 0, are assigned once at insertion
// and are never reused; nodes cannot be deleted.
//
// Topology is held as adjacency sets on each node:
//
//   - outgoing / incoming for directed edges (b in a.outgoing iff a in b.incoming)
//   - outgoing / incoming undirected sets for undirected edges
//
// There is no separate edge list. [Graph.Edges] derives the edge view from the
// sets on demand, so the two can never disagree and set semantics rule out
// duplicate edges for the same pair.
//
// # Basic Usage
//
//	g := graph.New()
//	g.AddNode("Cambodia")
//	g.AddNode("Albania")
//	g.AddDirectedEdge("Cambodia", "Albania")
//
//	for _, e := range g.Edges() {
//	    fmt.Println(e.From, e.To, e.Directed)
//	}
//
// # Lenient and Strict Operations
//
// Name-based edge operations are lenient: an unknown label or a self loop is a
// silent no-op, so builders can probe optimistically. Index-based operations
// ([Graph.AddEdge], [Graph.AddUndirectedEdgeByID], [Graph.Node]) treat an
// out-of-range id as a bug in the caller and panic.
//
// Adding a node whose label already exists fails with a DUPLICATE_LABEL error
// from pkg/errors; the existing node is left untouched.
//
// # Lifecycle
//
// A graph starts in the [Building] state. [Graph.Freeze] moves it to
// [Simulating] (the simulation driver does this when it starts). The
// transition is one-way: afterwards every structural mutation is rejected with
// a TOPOLOGY_FROZEN error (name-based calls) or a panic (index-based calls).
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Once frozen, a graph
// is read-only and may be read from several goroutines.
package graph
