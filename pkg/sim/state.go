package sim

import (
	"fmt"
	"slices"

	"github.com/matzehuels/emerge/pkg/geom"
)

// State holds per-node position, velocity and force as parallel slices
// indexed by node id. Its length is fixed when the simulation starts.
type State struct {
	pos   []geom.Vec2
	vel   []geom.Vec2
	force []geom.Vec2
}

func newState(initial []geom.Vec2) *State {
	n := len(initial)
	return &State{
		pos:   slices.Clone(initial),
		vel:   make([]geom.Vec2, n),
		force: make([]geom.Vec2, n),
	}
}

// Len returns the number of nodes.
func (s *State) Len() int { return len(s.pos) }

// Position returns the current position of node id.
func (s *State) Position(id int) geom.Vec2 {
	s.check(id)
	return s.pos[id]
}

// Velocity returns the current velocity of node id.
func (s *State) Velocity(id int) geom.Vec2 {
	s.check(id)
	return s.vel[id]
}

// Force returns the net force computed for node id in the last tick.
func (s *State) Force(id int) geom.Vec2 {
	s.check(id)
	return s.force[id]
}

// Positions returns a copy of all positions in id order.
func (s *State) Positions() []geom.Vec2 { return slices.Clone(s.pos) }

// Bounds returns the bounding box of all positions.
func (s *State) Bounds() geom.Rect { return geom.Bounds(s.pos) }

func (s *State) check(id int) {
	if id < 0 || id >= len(s.pos) {
		panic(fmt.Sprintf("sim: node id %d out of range [0, %d)", id, len(s.pos)))
	}
}
