// Package placement assigns initial positions to nodes as they are added to a
// graph.
//
// The force solver needs distinct starting positions: two nodes created at
// the same point exert no force on each other (the solver skips coincident
// pairs), so they would never separate. Every policy here spreads nodes out.
//
//   - [Random]: uniform in a width x height box, seeded and reproducible
//   - [Circle]: evenly spaced on a circle, in insertion order
//   - [Noise]: a square grid jittered by OpenSimplex noise
//   - [Fixed]: caller-provided positions, falling back to another policy
//
// A [Placer] is consulted exactly once per node, with the node's id.
package placement

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/geom"
)

// Policy names accepted by [New].
const (
	PolicyRandom = "random"
	PolicyCircle = "circle"
	PolicyNoise  = "noise"
)

// Default canvas used when no size is configured. It matches a 1280x720 window.
const (
	DefaultWidth  = 1280.0
	DefaultHeight = 720.0
)

// Placer decides where a newly created node starts.
type Placer interface {
	Place(id int) geom.Vec2
}

// PlacerFunc adapts a function to the Placer interface.
type PlacerFunc func(id int) geom.Vec2

// Place calls f(id).
func (f PlacerFunc) Place(id int) geom.Vec2 { return f(id) }

// Options configures the policy built by [New].
type Options struct {
	Policy string  `toml:"policy" yaml:"policy"`
	Seed   uint64  `toml:"seed" yaml:"seed"`
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	// Expected is the expected node count, used by Circle and Noise to size
	// their layout. Zero means "grow as needed".
	Expected int `toml:"expected" yaml:"expected"`
}

// DefaultOptions returns random placement over the default canvas.
func DefaultOptions() Options {
	return Options{
		Policy: PolicyRandom,
		Seed:   1,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Validate checks that the options describe a usable policy.
func (o Options) Validate() error {
	switch strings.ToLower(o.Policy) {
	case PolicyRandom, PolicyCircle, PolicyNoise:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown placement policy %q", o.Policy)
	}
	if !(o.Width > 0) || !(o.Height > 0) || math.IsInf(o.Width, 0) || math.IsInf(o.Height, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "placement area must be positive and finite, got %gx%g", o.Width, o.Height)
	}
	if o.Expected < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "expected node count must not be negative")
	}
	return nil
}

// New builds the Placer described by opts.
func New(opts Options) (Placer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	switch strings.ToLower(opts.Policy) {
	case PolicyCircle:
		return NewCircle(opts.Width, opts.Height, opts.Expected), nil
	case PolicyNoise:
		return NewNoise(int64(opts.Seed), opts.Width, opts.Height, opts.Expected), nil
	default:
		return NewRandom(opts.Seed, opts.Width, opts.Height), nil
	}
}

// =============================================================================
// Random
// =============================================================================

// Random places nodes uniformly inside [0,Width) x [0,Height).
// The same seed always yields the same sequence of positions.
type Random struct {
	Width, Height float64
	rng           *rand.Rand
}

// NewRandom creates a seeded uniform placer.
func NewRandom(seed uint64, width, height float64) *Random {
	return &Random{
		Width:  width,
		Height: height,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Place ignores id; positions depend only on the seed and call order.
func (r *Random) Place(int) geom.Vec2 {
	return geom.V(r.rng.Float64()*r.Width, r.rng.Float64()*r.Height)
}

// =============================================================================
// Circle
// =============================================================================

// Circle spaces nodes evenly on a circle centered in the area.
// With Expected == 0 the angular step halves whenever the ring fills up, so
// ids never collide regardless of how many nodes are added.
type Circle struct {
	Center   geom.Vec2
	Radius   float64
	Expected int
}

// NewCircle creates a circle placer inscribed in the width x height area.
func NewCircle(width, height float64, expected int) *Circle {
	return &Circle{
		Center:   geom.V(width/2, height/2),
		Radius:   0.4 * math.Min(width, height),
		Expected: expected,
	}
}

// Place returns the position of the id-th slot on the ring. Once Expected
// slots are used, further nodes go on successively wider rings.
func (c *Circle) Place(id int) geom.Vec2 {
	angle := c.angle(id)
	radius := c.Radius
	if c.Expected > 0 {
		radius *= 1 + 0.1*float64(id/c.Expected)
	}
	return c.Center.Add(geom.V(math.Cos(angle), math.Sin(angle)).Scale(radius))
}

func (c *Circle) angle(id int) float64 {
	if c.Expected > 0 {
		return 2 * math.Pi * float64(id%c.Expected) / float64(c.Expected)
	}
	// Van der Corput sequence in base 2: 0, 1/2, 1/4, 3/4, 1/8, ...
	var frac, denom float64 = 0, 1
	for n := uint(id); n > 0; n >>= 1 {
		denom *= 2
		if n&1 == 1 {
			frac += 1 / denom
		}
	}
	return 2 * math.Pi * frac
}

// =============================================================================
// Noise
// =============================================================================

// Noise lays nodes on a square grid covering the area and displaces each cell
// by OpenSimplex noise, giving an organic but reproducible start. Nodes beyond
// Expected continue the grid below the area.
type Noise struct {
	Width, Height float64
	Expected      int
	Jitter        float64 // fraction of a cell a node may move, 0..0.5
	noise         opensimplex.Noise
}

// NewNoise creates a noise-jittered grid placer.
func NewNoise(seed int64, width, height float64, expected int) *Noise {
	return &Noise{
		Width:    width,
		Height:   height,
		Expected: expected,
		Jitter:   0.35,
		noise:    opensimplex.New(seed),
	}
}

// Place returns the jittered center of the id-th grid cell.
func (n *Noise) Place(id int) geom.Vec2 {
	cols := n.columns()
	rows := n.rows(cols)
	col, row := id%cols, id/cols
	cellW, cellH := n.Width/float64(cols), n.Height/float64(rows)

	jx := n.noise.Eval2(float64(col)*0.37, float64(row)*0.37)
	jy := n.noise.Eval2(float64(col)*0.37+101.3, float64(row)*0.37+57.9)

	return geom.V(
		(float64(col)+0.5+jx*n.Jitter)*cellW,
		(float64(row)+0.5+jy*n.Jitter)*cellH,
	)
}

func (n *Noise) columns() int {
	expected := n.Expected
	if expected <= 0 {
		expected = 64
	}
	aspect := n.Width / n.Height
	cols := int(math.Ceil(math.Sqrt(float64(expected) * aspect)))
	return max(cols, 1)
}

func (n *Noise) rows(cols int) int {
	expected := n.Expected
	if expected <= 0 {
		expected = 64
	}
	return max((expected+cols-1)/cols, 1)
}

// =============================================================================
// Fixed
// =============================================================================

// Fixed returns preset positions by id and defers to Fallback for the rest.
type Fixed struct {
	Positions map[int]geom.Vec2
	Fallback  Placer
}

// Place returns the preset position for id or asks the fallback.
// It panics if id has no preset and Fallback is nil.
func (f Fixed) Place(id int) geom.Vec2 {
	if p, ok := f.Positions[id]; ok {
		return p
	}
	if f.Fallback == nil {
		panic(fmt.Sprintf("placement: no position for node %d and no fallback", id))
	}
	return f.Fallback.Place(id)
}
