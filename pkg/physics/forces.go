package physics

import (
	"math"

	"github.com/matzehuels/emerge/pkg/geom"
	"github.com/matzehuels/emerge/pkg/graph"
)

// MinSeparation is the distance below which two points count as coincident.
// Pairs closer than this have no usable direction and are skipped.
const MinSeparation = 1e-9

// RepulsionFloor is the smallest distance used in the electrostatic
// magnitude. Closer pairs repel as if they were this far apart.
const RepulsionFloor = 1.0

// SpringForce returns the spring force acting on b from a spring joining a
// and b: with d = b - a and L = |d|, it is -k*(L-rest) * d/L. A stretched
// spring (L > rest) pulls b back toward a; a compressed one pushes it away.
// The force on a is the negation.
//
// ok is false, and the force zero, when a and b coincide.
func SpringForce(a, b geom.Vec2, k, rest float64) (f geom.Vec2, ok bool) {
	d := b.Sub(a)
	l := d.Len()
	if l < MinSeparation {
		return geom.Vec2{}, false
	}
	magnitude := -k * (l - rest)
	return d.Scale(magnitude / l), true
}

// ElectrostaticForce returns the repulsive force acting on b from a charge at
// a: magnitude c/max(dist, RepulsionFloor)², directed from a toward b. The
// force on a is the negation.
//
// ok is false, and the force zero, when a and b coincide.
func ElectrostaticForce(a, b geom.Vec2, c float64) (f geom.Vec2, ok bool) {
	d := b.Sub(a)
	dist := d.Len()
	if dist < MinSeparation {
		return geom.Vec2{}, false
	}
	r := math.Max(dist, RepulsionFloor)
	return d.Scale(c / (r * r * dist)), true
}

// Report summarizes one solver pass.
type Report struct {
	Springs        int // edges that contributed attraction
	Repulsions     int // pairs inside the cutoff that contributed repulsion
	SkippedSprings int // edges skipped because endpoints coincide
	SkippedPairs   int // pairs inside the cutoff skipped because they coincide
}

// Solver accumulates per-node forces over parallel slices indexed by node id.
type Solver struct {
	cfg Config
}

// NewSolver returns a solver using the constants in cfg. The config is
// assumed valid; see [Config.Validate].
func NewSolver(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

// Config returns the constants the solver was built with.
func (s *Solver) Config() Config { return s.cfg }

// ZeroForces resets every accumulator.
func (s *Solver) ZeroForces(force []geom.Vec2) {
	clear(force)
}

// Attract adds spring forces for every edge. Directed and undirected edges
// contribute identically.
func (s *Solver) Attract(pos, force []geom.Vec2, edges []graph.Edge, r *Report) {
	for _, e := range edges {
		f, ok := SpringForce(pos[e.From], pos[e.To], s.cfg.SpringConstant, s.cfg.RestLength)
		if !ok {
			r.SkippedSprings++
			continue
		}
		force[e.To] = force[e.To].Add(f)
		force[e.From] = force[e.From].Sub(f)
		r.Springs++
	}
}

// Repel adds electrostatic forces for every unordered pair strictly closer
// than the cutoff. Pairs at or beyond the cutoff contribute nothing.
func (s *Solver) Repel(pos, force []geom.Vec2, r *Report) {
	cutoffSq := s.cfg.RepulsionCutoff * s.cfg.RepulsionCutoff
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			if pos[j].Sub(pos[i]).LenSq() >= cutoffSq {
				continue
			}
			f, ok := ElectrostaticForce(pos[i], pos[j], s.cfg.ElectrostaticConstant)
			if !ok {
				r.SkippedPairs++
				continue
			}
			force[j] = force[j].Add(f)
			force[i] = force[i].Sub(f)
			r.Repulsions++
		}
	}
}

// Accumulate runs a full solver pass: zero, attraction, repulsion. On return
// force[i] holds the net force on node i for this tick.
func (s *Solver) Accumulate(pos, force []geom.Vec2, edges []graph.Edge) Report {
	var r Report
	s.ZeroForces(force)
	s.Attract(pos, force, edges, &r)
	s.Repel(pos, force, &r)
	return r
}
