package physics

import (
	"math"
	"strings"

	"github.com/matzehuels/emerge/pkg/errors"
)

// Integration selects how velocity evolves between ticks.
type Integration string

const (
	// Relaxation never updates velocity from force. Velocity stays at its
	// initial zero, so each tick moves a node by 0.5*force*dt²: a damped
	// positional relaxation that cannot overshoot into sustained oscillation.
	Relaxation Integration = "relaxation"

	// Newtonian integrates velocity too, semi-implicitly: velocity =
	// (velocity + force/mass*dt) * damping, then position += velocity*dt.
	Newtonian Integration = "newtonian"
)

// Default parameter values.
const (
	DefaultTimeStep              = 0.5
	DefaultSpringConstant        = 0.5
	DefaultRestLength            = 100.0
	DefaultElectrostaticConstant = 1000.0
	DefaultRepulsionCutoff       = 100.0
	DefaultMass                  = 1.0
	DefaultDamping               = 0.9
)

// Config holds the simulation-wide constants. The zero value is not valid;
// start from [DefaultConfig].
type Config struct {
	// TimeStep is the integration step length dt.
	TimeStep float64 `toml:"time_step" yaml:"time_step" json:"time_step"`
	// SpringConstant is the attraction stiffness k.
	SpringConstant float64 `toml:"spring_constant" yaml:"spring_constant" json:"spring_constant"`
	// RestLength is the edge length at which attraction is zero.
	RestLength float64 `toml:"rest_length" yaml:"rest_length" json:"rest_length"`
	// ElectrostaticConstant is the repulsion strength C.
	ElectrostaticConstant float64 `toml:"electrostatic_constant" yaml:"electrostatic_constant" json:"electrostatic_constant"`
	// RepulsionCutoff is the distance at and beyond which pairs do not repel.
	RepulsionCutoff float64 `toml:"repulsion_cutoff" yaml:"repulsion_cutoff" json:"repulsion_cutoff"`
	// Mass is used by Newtonian integration only.
	Mass float64 `toml:"mass" yaml:"mass" json:"mass"`
	// Damping scales velocity each tick in Newtonian integration (0..1).
	Damping float64 `toml:"damping" yaml:"damping" json:"damping"`
	// Integration selects the velocity policy.
	Integration Integration `toml:"integration" yaml:"integration" json:"integration"`
}

// DefaultConfig returns the stock constants: dt 0.5, k 0.5, rest length 100,
// C 1000, cutoff 100, relaxation integration.
func DefaultConfig() Config {
	return Config{
		TimeStep:              DefaultTimeStep,
		SpringConstant:        DefaultSpringConstant,
		RestLength:            DefaultRestLength,
		ElectrostaticConstant: DefaultElectrostaticConstant,
		RepulsionCutoff:       DefaultRepulsionCutoff,
		Mass:                  DefaultMass,
		Damping:               DefaultDamping,
		Integration:           Relaxation,
	}
}

// Validate returns an INVALID_CONFIG error describing the first bad value.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"time_step", c.TimeStep},
		{"spring_constant", c.SpringConstant},
		{"rest_length", c.RestLength},
		{"electrostatic_constant", c.ElectrostaticConstant},
		{"repulsion_cutoff", c.RepulsionCutoff},
		{"mass", c.Mass},
		{"damping", c.Damping},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite, got %v", f.name, f.value)
		}
		if f.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %v", f.name, f.value)
		}
	}

	switch {
	case c.TimeStep == 0:
		return errors.New(errors.ErrCodeInvalidConfig, "time_step must be positive")
	case c.RepulsionCutoff == 0:
		return errors.New(errors.ErrCodeInvalidConfig, "repulsion_cutoff must be positive")
	case c.Mass == 0:
		return errors.New(errors.ErrCodeInvalidConfig, "mass must be positive")
	case c.Damping > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "damping must be within [0, 1], got %v", c.Damping)
	}

	mode, err := ParseIntegration(string(c.Integration))
	if err != nil {
		return err
	}
	return c.checkStable(mode)
}

// checkStable rejects constants under which the separation of two linked
// nodes cannot settle. For the spring stiffness w = 2k/mass acting on that
// separation, relaxation needs k*dt² < 2. Newtonian integration needs
// damping < 1 and damping*w*dt² < 2*(1+damping).
func (c Config) checkStable(mode Integration) error {
	kdt := c.SpringConstant * c.TimeStep * c.TimeStep
	switch mode {
	case Newtonian:
		if c.Damping >= 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "newtonian integration needs damping below 1, got %v", c.Damping)
		}
		if c.Damping*2*kdt/c.Mass >= 2*(1+c.Damping) {
			return errors.New(errors.ErrCodeInvalidConfig,
				"newtonian integration diverges: damping*2*spring_constant*time_step²/mass must be below %v", 2*(1+c.Damping))
		}
	default:
		if kdt >= 2 {
			return errors.New(errors.ErrCodeInvalidConfig, "relaxation diverges: spring_constant*time_step² must be below 2, got %v", kdt)
		}
	}
	return nil
}

// ParseIntegration parses a velocity policy name, case-insensitively.
// The empty string selects Relaxation.
func ParseIntegration(s string) (Integration, error) {
	switch Integration(strings.ToLower(strings.TrimSpace(s))) {
	case "", Relaxation:
		return Relaxation, nil
	case Newtonian:
		return Newtonian, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "unknown integration %q (want relaxation or newtonian)", s)
	}
}
