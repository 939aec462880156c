package graph

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/geom"
	"github.com/matzehuels/emerge/pkg/placement"
)

func mustAdd(t *testing.T, g *Graph, labels ...string) {
	t.Helper()
	for _, l := range labels {
		if _, err := g.AddNode(l); err != nil {
			t.Fatalf("AddNode(%q): %v", l, err)
		}
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", name)
		}
	}()
	fn()
}

func TestAddNodeDenseIDs(t *testing.T) {
	g := New()
	labels := []string{"Albania", "Andorra", "Austria", "Belgium", "Bulgaria"}
	for want, l := range labels {
		id, err := g.AddNode(l)
		if err != nil {
			t.Fatalf("AddNode(%q): %v", l, err)
		}
		if id != want {
			t.Errorf("AddNode(%q) = %d, want %d", l, id, want)
		}
	}

	if g.NodeCount() != len(labels) {
		t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), len(labels))
	}
	for want, l := range labels {
		id, ok := g.Lookup(l)
		if !ok || id != want {
			t.Errorf("Lookup(%q) = %d, %v, want %d, true", l, id, ok, want)
		}
		if n := g.Node(want); n.ID != want || n.Label != l {
			t.Errorf("Node(%d) = {%d %q}, want {%d %q}", want, n.ID, n.Label, want, l)
		}
	}
	if _, ok := g.Lookup("Chile"); ok {
		t.Error("Lookup of unknown label should fail")
	}
	if !slices.Equal(g.Labels(), labels) {
		t.Errorf("Labels() = %v, want %v", g.Labels(), labels)
	}
}

func TestAddNodeDefaults(t *testing.T) {
	g := New()
	mustAdd(t, g, "a")
	n := g.Node(0)
	if n.Radius != DefaultRadius {
		t.Errorf("Radius = %v, want %v", n.Radius, DefaultRadius)
	}
	if !n.Position.IsFinite() {
		t.Errorf("Position = %v, want finite", n.Position)
	}
	if n.Position.X < 0 || n.Position.X >= placement.DefaultWidth || n.Position.Y < 0 || n.Position.Y >= placement.DefaultHeight {
		t.Errorf("Position %v outside default canvas", n.Position)
	}
	if len(n.Outgoing()) != 0 || len(n.Incoming()) != 0 || len(n.Neighbors()) != 0 {
		t.Error("new node should have no adjacency")
	}
}

func TestAddNodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		label string
		code  errors.Code
	}{
		{"duplicate", "Albania", errors.ErrCodeDuplicateLabel},
		{"empty", "", errors.ErrCodeInvalidLabel},
		{"control", "a\nb", errors.ErrCodeInvalidLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			mustAdd(t, g, "Albania")
			_, err := g.AddNode(tt.label)
			if !errors.Is(err, tt.code) {
				t.Fatalf("AddNode(%q) error = %v, want %s", tt.label, err, tt.code)
			}
			if g.NodeCount() != 1 {
				t.Errorf("NodeCount() = %d after failed add, want 1", g.NodeCount())
			}
			if id, _ := g.Lookup("Albania"); id != 0 {
				t.Errorf("Lookup(Albania) = %d, want 0", id)
			}
		})
	}
}

func TestAddNodeAt(t *testing.T) {
	g := New()
	id, err := g.AddNodeAt("x", geom.V(3, 4))
	if err != nil {
		t.Fatalf("AddNodeAt: %v", err)
	}
	if got := g.Node(id).Position; got != geom.V(3, 4) {
		t.Errorf("Position = %v, want (3, 4)", got)
	}

	_, err = g.AddNodeAt("y", geom.V(0, math.Inf(1)))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddNodeAt(+Inf) error = %v, want INVALID_INPUT", err)
	}
}

func TestWithPlacerAndRadius(t *testing.T) {
	fixed := placement.Fixed{Positions: map[int]geom.Vec2{0: geom.V(1, 2), 1: geom.V(5, 6)}}
	g := New(WithPlacer(fixed), WithRadius(4))
	mustAdd(t, g, "a", "b")

	if got := g.Node(1).Position; got != geom.V(5, 6) {
		t.Errorf("Node(1).Position = %v, want (5, 6)", got)
	}
	if got := g.Node(0).Radius; got != 4 {
		t.Errorf("Radius = %v, want 4", got)
	}
}

func TestDirectedEdge(t *testing.T) {
	g := New()
	mustAdd(t, g, "A", "B")
	if err := g.AddDirectedEdge("A", "B"); err != nil {
		t.Fatalf("AddDirectedEdge: %v", err)
	}

	if !slices.Equal(g.Outgoing(0), []int{1}) {
		t.Errorf("Outgoing(A) = %v, want [1]", g.Outgoing(0))
	}
	if !slices.Equal(g.Incoming(1), []int{0}) {
		t.Errorf("Incoming(B) = %v, want [0]", g.Incoming(1))
	}
	if len(g.Incoming(0)) != 0 || len(g.Outgoing(1)) != 0 {
		t.Error("reverse direction should be empty")
	}

	want := []Edge{{From: 0, To: 1, Directed: true}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}

	// Adding the same edge again is idempotent.
	_ = g.AddDirectedEdge("A", "B")
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d after duplicate add, want 1", g.EdgeCount())
	}
	if n := g.Node(0); n.OutDegree() != 1 || g.Node(1).InDegree() != 1 {
		t.Errorf("degrees: out(A)=%d in(B)=%d, want 1, 1", n.OutDegree(), g.Node(1).InDegree())
	}
}

func TestSilentNoOps(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"self loop", "A", "A"},
		{"unknown source", "Z", "A"},
		{"unknown target", "A", "Z"},
		{"both unknown", "Y", "Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			mustAdd(t, g, "A", "B")
			if err := g.AddDirectedEdge(tt.from, tt.to); err != nil {
				t.Errorf("AddDirectedEdge error = %v, want nil", err)
			}
			if err := g.AddUndirectedEdge(tt.from, tt.to); err != nil {
				t.Errorf("AddUndirectedEdge error = %v, want nil", err)
			}
			if g.NodeCount() != 2 || g.EdgeCount() != 0 {
				t.Errorf("counts = %d nodes, %d edges; want 2, 0", g.NodeCount(), g.EdgeCount())
			}
		})
	}
}

func TestSelfLoopByID(t *testing.T) {
	g := New()
	mustAdd(t, g, "A")
	g.AddEdge(0, 0)
	g.AddUndirectedEdgeByID(0, 0)
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	for _, e := range g.Edges() {
		if e.From == e.To {
			t.Errorf("self loop %v", e)
		}
	}
}

func TestUndirectedEdge(t *testing.T) {
	g := New()
	mustAdd(t, g, "A", "B", "C")
	_ = g.AddUndirectedEdge("A", "B")
	_ = g.AddUndirectedEdge("B", "A")
	g.AddUndirectedEdgeByID(2, 1)

	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if !slices.Equal(g.Neighbors(1), []int{0, 2}) {
		t.Errorf("Neighbors(B) = %v, want [0 2]", g.Neighbors(1))
	}
	if !slices.Equal(g.Neighbors(0), []int{1}) {
		t.Errorf("Neighbors(A) = %v, want [1]", g.Neighbors(0))
	}
	want := []Edge{{From: 0, To: 1}, {From: 2, To: 1}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if len(g.Outgoing(0)) != 0 {
		t.Error("undirected edges must not appear in directed adjacency")
	}
}

func TestEdgesOrderAndIdempotence(t *testing.T) {
	g := New()
	mustAdd(t, g, "a", "b", "c", "d")
	g.AddEdge(2, 0)
	g.AddUndirectedEdgeByID(0, 3)
	g.AddEdge(0, 2)
	g.AddEdge(0, 1)
	g.AddUndirectedEdgeByID(0, 1)

	want := []Edge{
		{From: 0, To: 1, Directed: true},
		{From: 0, To: 2, Directed: true},
		{From: 0, To: 1},
		{From: 0, To: 3},
		{From: 2, To: 0, Directed: true},
	}
	first := g.Edges()
	if !slices.Equal(first, want) {
		t.Fatalf("Edges() = %v, want %v", first, want)
	}
	for range 3 {
		if got := g.Edges(); !slices.Equal(got, first) {
			t.Fatalf("Edges() not idempotent: %v vs %v", got, first)
		}
	}
}

func TestFreeze(t *testing.T) {
	g := New()
	mustAdd(t, g, "A", "B")
	if g.State() != Building || g.Frozen() {
		t.Fatalf("new graph state = %v, want building", g.State())
	}

	g.Freeze()
	g.Freeze()
	if g.State() != Simulating {
		t.Fatalf("State() = %v, want simulating", g.State())
	}

	if _, err := g.AddNode("C"); !errors.Is(err, errors.ErrCodeFrozen) {
		t.Errorf("AddNode error = %v, want TOPOLOGY_FROZEN", err)
	}
	if _, err := g.AddNodeAt("C", geom.V(0, 0)); !errors.Is(err, errors.ErrCodeFrozen) {
		t.Errorf("AddNodeAt error = %v, want TOPOLOGY_FROZEN", err)
	}
	if err := g.AddDirectedEdge("A", "B"); !errors.Is(err, errors.ErrCodeFrozen) {
		t.Errorf("AddDirectedEdge error = %v, want TOPOLOGY_FROZEN", err)
	}
	if err := g.AddUndirectedEdge("A", "B"); !errors.Is(err, errors.ErrCodeFrozen) {
		t.Errorf("AddUndirectedEdge error = %v, want TOPOLOGY_FROZEN", err)
	}
	expectPanic(t, "AddEdge on frozen graph", func() { g.AddEdge(0, 1) })
	expectPanic(t, "AddUndirectedEdgeByID on frozen graph", func() { g.AddUndirectedEdgeByID(0, 1) })

	if g.NodeCount() != 2 || g.EdgeCount() != 0 {
		t.Errorf("frozen graph changed: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}

func TestOutOfRangePanics(t *testing.T) {
	g := New()
	mustAdd(t, g, "A")

	expectPanic(t, "AddEdge(0, 1)", func() { g.AddEdge(0, 1) })
	expectPanic(t, "AddEdge(-1, 0)", func() { g.AddEdge(-1, 0) })
	expectPanic(t, "AddUndirectedEdgeByID(0, 5)", func() { g.AddUndirectedEdgeByID(0, 5) })
	expectPanic(t, "Node(1)", func() { g.Node(1) })
	expectPanic(t, "Outgoing(3)", func() { g.Outgoing(3) })
}

func TestNodesReturnsCopies(t *testing.T) {
	g := New()
	mustAdd(t, g, "A")
	nodes := g.Nodes()
	nodes[0].Label = "changed"
	if g.Node(0).Label != "A" {
		t.Error("Nodes() exposed internal storage")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Building, "building"},
		{Simulating, "simulating"},
		{State(7), "State(7)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.s), got, tt.want)
		}
	}
}
