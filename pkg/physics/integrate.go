package physics

import (
	"github.com/matzehuels/emerge/pkg/geom"
)

// Step summarizes one integration pass.
type Step struct {
	// MaxDisplacement is the largest distance any node moved.
	MaxDisplacement float64
	// Rejected counts nodes whose update would have produced a non-finite
	// position or velocity; those nodes keep their previous state and have
	// their velocity cleared.
	Rejected int
}

// Integrator advances positions from accumulated forces.
type Integrator struct {
	dt          float64
	mass        float64
	damping     float64
	integration Integration
}

// NewIntegrator returns an integrator for cfg. The config is assumed valid;
// see [Config.Validate].
func NewIntegrator(cfg Config) *Integrator {
	mode, err := ParseIntegration(string(cfg.Integration))
	if err != nil {
		mode = Relaxation
	}
	return &Integrator{
		dt:          cfg.TimeStep,
		mass:        cfg.Mass,
		damping:     cfg.Damping,
		integration: mode,
	}
}

// Integration returns the velocity policy in effect.
func (in *Integrator) Integration() Integration { return in.integration }

// Integrate advances every node one step. The slices are parallel and
// indexed by node id.
//
// Relaxation moves each node by 0.5*force*dt² and leaves velocity at zero.
// Newtonian is semi-implicit Euler: velocity = (velocity + force/mass*dt) *
// damping first, then position += velocity*dt.
func (in *Integrator) Integrate(pos, vel, force []geom.Vec2) Step {
	var step Step
	halfDtSq := 0.5 * in.dt * in.dt

	for i := range pos {
		var delta, nextVel geom.Vec2
		if in.integration == Newtonian {
			nextVel = vel[i].Add(force[i].Scale(in.dt / in.mass)).Scale(in.damping)
			delta = nextVel.Scale(in.dt)
		} else {
			nextVel = vel[i]
			delta = vel[i].Scale(in.dt).Add(force[i].Scale(halfDtSq))
		}
		next := pos[i].Add(delta)

		if !next.IsFinite() || !nextVel.IsFinite() {
			vel[i] = geom.Vec2{}
			step.Rejected++
			continue
		}

		pos[i] = next
		vel[i] = nextVel
		if d := delta.Len(); d > step.MaxDisplacement {
			step.MaxDisplacement = d
		}
	}
	return step
}
