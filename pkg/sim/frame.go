package sim

import (
	"github.com/matzehuels/emerge/pkg/geom"
)

// NodeFrame is one node as a renderer sees it.
type NodeFrame struct {
	ID       int       `json:"id"`
	Label    string    `json:"label"`
	Position geom.Vec2 `json:"position"`
	Radius   float64   `json:"radius"`
}

// EdgeFrame is one edge as a renderer sees it.
type EdgeFrame struct {
	From     int  `json:"from"`
	To       int  `json:"to"`
	Directed bool `json:"directed"`
}

// Frame is a self-contained snapshot of the simulation after a tick. It
// shares no memory with the simulation, so it can be read concurrently while
// ticking continues.
type Frame struct {
	Tick   int         `json:"tick"`
	Nodes  []NodeFrame `json:"nodes"`
	Edges  []EdgeFrame `json:"edges"`
	Bounds geom.Rect   `json:"bounds"`
}

// Frame returns a snapshot of the current positions together with labels,
// radii and edges.
func (s *Simulation) Frame() Frame {
	nodes := s.graph.Nodes()
	f := Frame{
		Tick:   s.ticks,
		Nodes:  make([]NodeFrame, len(nodes)),
		Edges:  make([]EdgeFrame, len(s.edges)),
		Bounds: s.state.Bounds(),
	}
	for i, n := range nodes {
		f.Nodes[i] = NodeFrame{
			ID:       n.ID,
			Label:    n.Label,
			Position: s.state.pos[i],
			Radius:   n.Radius,
		}
	}
	for i, e := range s.edges {
		f.Edges[i] = EdgeFrame{From: e.From, To: e.To, Directed: e.Directed}
	}
	return f
}

// Node returns the frame entry for id, or false if id is out of range.
func (f Frame) Node(id int) (NodeFrame, bool) {
	if id < 0 || id >= len(f.Nodes) {
		return NodeFrame{}, false
	}
	return f.Nodes[id], true
}
