package sim

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/geom"
	"github.com/matzehuels/emerge/pkg/graph"
	"github.com/matzehuels/emerge/pkg/observability"
	"github.com/matzehuels/emerge/pkg/physics"
)

// DefaultLogInterval is how many ticks pass between debug log lines.
const DefaultLogInterval = 100

// Simulation advances the layout of one frozen graph.
type Simulation struct {
	graph      *graph.Graph
	cfg        physics.Config
	solver     *physics.Solver
	integrator *physics.Integrator
	edges      []graph.Edge
	state      *State

	ticks  int
	report physics.Report
	step   physics.Step

	logger      *log.Logger
	logInterval int
	hooks       observability.SimulationHooks
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for debug output. Without it the
// simulation is silent.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLogInterval logs tick statistics every n ticks. Zero disables the
// periodic line; the start line is always logged.
func WithLogInterval(n int) Option {
	return func(s *Simulation) { s.logInterval = max(n, 0) }
}

// WithHooks overrides the globally registered simulation hooks.
func WithHooks(h observability.SimulationHooks) Option {
	return func(s *Simulation) {
		if h != nil {
			s.hooks = h
		}
	}
}

// New starts a simulation over g. It validates cfg, freezes g so its
// topology can no longer change, takes a single snapshot of the edge list and
// seeds every node's position from its initial position with zero velocity.
//
// Freezing happens only after validation succeeds: a rejected config leaves g
// in the Building state.
func New(g *graph.Graph, cfg physics.Config, opts ...Option) (*Simulation, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "simulation needs a graph")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		graph:       g,
		cfg:         cfg,
		solver:      physics.NewSolver(cfg),
		integrator:  physics.NewIntegrator(cfg),
		logger:      log.New(io.Discard),
		logInterval: DefaultLogInterval,
		hooks:       observability.Simulation(),
	}
	for _, opt := range opts {
		opt(s)
	}

	g.Freeze()
	s.edges = g.Edges()

	nodes := g.Nodes()
	initial := make([]geom.Vec2, len(nodes))
	for i, n := range nodes {
		initial[i] = n.Position
	}
	s.state = newState(initial)

	s.logger.Debug("simulation started",
		"nodes", len(nodes),
		"edges", len(s.edges),
		"integration", s.integrator.Integration(),
		"dt", cfg.TimeStep)
	s.hooks.OnStart(len(nodes), len(s.edges))
	return s, nil
}

// Tick advances the simulation by one time step.
func (s *Simulation) Tick() {
	start := time.Now()

	s.report = s.solver.Accumulate(s.state.pos, s.state.force, s.edges)
	s.step = s.integrator.Integrate(s.state.pos, s.state.vel, s.state.force)
	s.ticks++

	s.hooks.OnTick(observability.TickInfo{
		Tick:            s.ticks,
		Duration:        time.Since(start),
		Springs:         s.report.Springs,
		Repulsions:      s.report.Repulsions,
		Skipped:         s.report.SkippedSprings + s.report.SkippedPairs,
		Rejected:        s.step.Rejected,
		MaxDisplacement: s.step.MaxDisplacement,
	})

	if s.step.Rejected > 0 {
		s.logger.Debug("rejected non-finite update", "tick", s.ticks, "nodes", s.step.Rejected)
	}
	if s.logInterval > 0 && s.ticks%s.logInterval == 0 {
		st := s.Stats()
		s.logger.Debug("tick",
			"n", s.ticks,
			"force", st.TotalForce,
			"max_displacement", st.MaxDisplacement)
	}
}

// Step runs n ticks. Non-positive n does nothing.
func (s *Simulation) Step(n int) {
	for range max(n, 0) {
		s.Tick()
	}
}

// StepContext runs up to n ticks, checking ctx between ticks. It returns the
// number of ticks run and ctx.Err() if it stopped early.
func (s *Simulation) StepContext(ctx context.Context, n int) (int, error) {
	for i := range max(n, 0) {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		s.Tick()
	}
	return max(n, 0), nil
}

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() int { return s.ticks }

// State returns the live spatial state. The view is read-only; it reflects
// the most recent tick.
func (s *Simulation) State() *State { return s.state }

// Edges returns a copy of the edge list captured when the simulation started.
func (s *Simulation) Edges() []graph.Edge { return slices.Clone(s.edges) }

// Graph returns the frozen graph being laid out.
func (s *Simulation) Graph() *graph.Graph { return s.graph }

// Config returns the physics constants in use.
func (s *Simulation) Config() physics.Config { return s.cfg }

// Stats describes how the layout is moving. It is informational only.
type Stats struct {
	Ticks           int       `json:"ticks"`
	TotalForce      float64   `json:"total_force"`      // sum of force magnitudes in the last tick
	MaxDisplacement float64   `json:"max_displacement"` // largest move in the last tick
	Springs         int       `json:"springs"`
	Repulsions      int       `json:"repulsions"`
	Skipped         int       `json:"skipped"`
	Rejected        int       `json:"rejected"`
	Bounds          geom.Rect `json:"bounds"`
}

// Stats returns statistics for the most recent tick.
func (s *Simulation) Stats() Stats {
	var total float64
	for _, f := range s.state.force {
		total += f.Len()
	}
	return Stats{
		Ticks:           s.ticks,
		TotalForce:      total,
		MaxDisplacement: s.step.MaxDisplacement,
		Springs:         s.report.Springs,
		Repulsions:      s.report.Repulsions,
		Skipped:         s.report.SkippedSprings + s.report.SkippedPairs,
		Rejected:        s.step.Rejected,
		Bounds:          s.state.Bounds(),
	}
}
