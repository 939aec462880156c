package graph

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/geom"
	"github.com/matzehuels/emerge/pkg/placement"
)

// DefaultRadius is the display radius given to nodes unless overridden
// with [WithRadius].
const DefaultRadius = 15.0

// State is the lifecycle state of a Graph.
type State int

const (
	// Building accepts structural mutations.
	Building State = iota
	// Simulating rejects structural mutations; only the simulation's
	// per-node spatial state changes from here on.
	Simulating
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Simulating:
		return "simulating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type set map[int]struct{}

func (s set) sorted() []int { return slices.Sorted(maps.Keys(s)) }

// Node is a graph vertex. Position holds the initial position assigned at
// creation; the running simulation keeps live positions separately.
type Node struct {
	ID       int
	Label    string
	Position geom.Vec2
	Radius   float64

	outgoing set
	incoming set
	undirOut set
	undirIn  set
}

// Outgoing returns the ids of directed-edge targets, ascending.
func (n Node) Outgoing() []int { return n.outgoing.sorted() }

// Incoming returns the ids of directed-edge sources, ascending.
func (n Node) Incoming() []int { return n.incoming.sorted() }

// Neighbors returns the ids joined to n by an undirected edge, ascending.
func (n Node) Neighbors() []int {
	ids := make(set, len(n.undirOut)+len(n.undirIn))
	for id := range n.undirOut {
		ids[id] = struct{}{}
	}
	for id := range n.undirIn {
		ids[id] = struct{}{}
	}
	return ids.sorted()
}

// OutDegree returns the number of directed edges leaving n.
func (n Node) OutDegree() int { return len(n.outgoing) }

// InDegree returns the number of directed edges entering n.
func (n Node) InDegree() int { return len(n.incoming) }

// Edge is a derived view of one connection. For undirected edges From is the
// endpoint the edge was first added from.
type Edge struct {
	From     int
	To       int
	Directed bool
}

// Graph is the topology store. The zero value is not usable; use [New].
type Graph struct {
	nodes  []*Node
	lookup map[string]int
	placer placement.Placer
	radius float64
	state  State
}

// Option configures a Graph.
type Option func(*Graph)

// WithPlacer sets the policy that assigns initial positions in [Graph.AddNode].
func WithPlacer(p placement.Placer) Option {
	return func(g *Graph) { g.placer = p }
}

// WithRadius sets the display radius given to new nodes.
func WithRadius(r float64) Option {
	return func(g *Graph) { g.radius = r }
}

// New creates an empty graph in the Building state. Without [WithPlacer],
// nodes start at seeded uniform random positions over the default canvas.
func New(opts ...Option) *Graph {
	g := &Graph{
		lookup: make(map[string]int),
		radius: DefaultRadius,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.placer == nil {
		def := placement.DefaultOptions()
		g.placer = placement.NewRandom(def.Seed, def.Width, def.Height)
	}
	return g
}

// State returns the current lifecycle state.
func (g *Graph) State() State { return g.state }

// Frozen reports whether the graph has entered the Simulating state.
func (g *Graph) Frozen() bool { return g.state == Simulating }

// Freeze moves the graph to the Simulating state. It is idempotent and can
// never be undone.
func (g *Graph) Freeze() { g.state = Simulating }

// AddNode appends a node with the next id, placed by the graph's placement
// policy. It returns a DUPLICATE_LABEL error if label is already in use, an
// INVALID_LABEL error for an unusable label, or TOPOLOGY_FROZEN once the
// simulation has started. On error no node is added and no id is consumed.
func (g *Graph) AddNode(label string) (int, error) {
	if err := g.checkNewLabel(label); err != nil {
		return 0, err
	}
	return g.insert(label, g.placer.Place(len(g.nodes))), nil
}

// AddNodeAt is AddNode with a caller-assigned initial position.
func (g *Graph) AddNodeAt(label string, pos geom.Vec2) (int, error) {
	if err := g.checkNewLabel(label); err != nil {
		return 0, err
	}
	if !pos.IsFinite() {
		return 0, errors.New(errors.ErrCodeInvalidInput, "position of %q is not finite: %v", label, pos)
	}
	return g.insert(label, pos), nil
}

func (g *Graph) checkNewLabel(label string) error {
	if g.Frozen() {
		return errors.New(errors.ErrCodeFrozen, "cannot add node %q: graph is %s", label, g.state)
	}
	if err := errors.ValidateLabel(label); err != nil {
		return err
	}
	if id, ok := g.lookup[label]; ok {
		return errors.New(errors.ErrCodeDuplicateLabel, "label %q already used by node %d", label, id)
	}
	return nil
}

func (g *Graph) insert(label string, pos geom.Vec2) int {
	id := len(g.nodes)
	g.nodes = append(g.nodes, &Node{
		ID:       id,
		Label:    label,
		Position: pos,
		Radius:   g.radius,
		outgoing: set{},
		incoming: set{},
		undirOut: set{},
		undirIn:  set{},
	})
	g.lookup[label] = id
	return id
}

// Lookup returns the id for label and whether it exists.
func (g *Graph) Lookup(label string) (int, bool) {
	id, ok := g.lookup[label]
	return id, ok
}

// AddDirectedEdge connects from -> to by label. Unknown labels and
// from == to are silent no-ops. The only error is TOPOLOGY_FROZEN.
func (g *Graph) AddDirectedEdge(from, to string) error {
	if g.Frozen() {
		return errors.New(errors.ErrCodeFrozen, "cannot add edge %q -> %q: graph is %s", from, to, g.state)
	}
	a, b, ok := g.resolvePair(from, to)
	if !ok {
		return nil
	}
	g.link(a, b)
	return nil
}

// AddUndirectedEdge connects from and to by label with an undirected edge,
// under the same no-op rules as AddDirectedEdge. An unordered pair is stored
// once: adding b--a after a--b changes nothing.
func (g *Graph) AddUndirectedEdge(from, to string) error {
	if g.Frozen() {
		return errors.New(errors.ErrCodeFrozen, "cannot add edge %q -- %q: graph is %s", from, to, g.state)
	}
	a, b, ok := g.resolvePair(from, to)
	if !ok {
		return nil
	}
	g.linkUndirected(a, b)
	return nil
}

func (g *Graph) resolvePair(from, to string) (int, int, bool) {
	if from == to {
		return 0, 0, false
	}
	a, okA := g.lookup[from]
	b, okB := g.lookup[to]
	return a, b, okA && okB
}

// AddEdge connects from -> to by id. It panics if either id is out of range
// or the graph is frozen; from == to is a silent no-op.
func (g *Graph) AddEdge(from, to int) {
	g.mustMutate("AddEdge")
	g.mustID(from)
	g.mustID(to)
	if from == to {
		return
	}
	g.link(from, to)
}

// AddUndirectedEdgeByID is the index form of AddUndirectedEdge, with the
// panics of AddEdge.
func (g *Graph) AddUndirectedEdgeByID(a, b int) {
	g.mustMutate("AddUndirectedEdgeByID")
	g.mustID(a)
	g.mustID(b)
	if a == b {
		return
	}
	g.linkUndirected(a, b)
}

func (g *Graph) link(a, b int) {
	g.nodes[a].outgoing[b] = struct{}{}
	g.nodes[b].incoming[a] = struct{}{}
}

func (g *Graph) linkUndirected(a, b int) {
	if _, exists := g.nodes[b].undirOut[a]; exists {
		return
	}
	g.nodes[a].undirOut[b] = struct{}{}
	g.nodes[b].undirIn[a] = struct{}{}
}

func (g *Graph) mustMutate(op string) {
	if g.Frozen() {
		panic(fmt.Sprintf("graph: %s on a %s graph", op, g.state))
	}
}

func (g *Graph) mustID(id int) {
	if id < 0 || id >= len(g.nodes) {
		panic(fmt.Sprintf("graph: node id %d out of range [0, %d)", id, len(g.nodes)))
	}
}

// Node returns a copy of the node with the given id. It panics if id is out
// of range.
func (g *Graph) Node(id int) Node {
	g.mustID(id)
	return *g.nodes[id]
}

// Nodes returns copies of all nodes in id order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = *n
	}
	return out
}

// Outgoing returns the directed-edge targets of node id, ascending. It panics
// if id is out of range.
func (g *Graph) Outgoing(id int) []int {
	g.mustID(id)
	return g.nodes[id].Outgoing()
}

// Incoming returns the directed-edge sources of node id, ascending.
func (g *Graph) Incoming(id int) []int {
	g.mustID(id)
	return g.nodes[id].Incoming()
}

// Neighbors returns the undirected neighbors of node id, ascending.
func (g *Graph) Neighbors(id int) []int {
	g.mustID(id)
	return g.nodes[id].Neighbors()
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, directed and undirected.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, n := range g.nodes {
		count += len(n.outgoing) + len(n.undirOut)
	}
	return count
}

// Edges derives the edge list from the adjacency sets. Edges are ordered by
// source id; for each source, directed edges come first, then undirected
// ones, each by ascending target id. Between structural mutations repeated
// calls return identical slices.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, n := range g.nodes {
		for _, to := range n.outgoing.sorted() {
			edges = append(edges, Edge{From: n.ID, To: to, Directed: true})
		}
		for _, to := range n.undirOut.sorted() {
			edges = append(edges, Edge{From: n.ID, To: to, Directed: false})
		}
	}
	return edges
}

// Labels returns all labels in id order.
func (g *Graph) Labels() []string {
	labels := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		labels[i] = n.Label
	}
	return labels
}
