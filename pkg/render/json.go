package render

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/emerge/pkg/geom"
	"github.com/matzehuels/emerge/pkg/physics"
	"github.com/matzehuels/emerge/pkg/sim"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	runID   uuid.UUID
	name    string
	physics *physics.Config
	stats   *sim.Stats
}

// WithRunID sets the run identifier. Without it a random one is generated.
func WithRunID(id uuid.UUID) JSONOption { return func(r *jsonRenderer) { r.runID = id } }

// WithGraphName records the name of the builder or input the graph came from.
func WithGraphName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithPhysics records the constants the layout was computed with.
func WithPhysics(cfg physics.Config) JSONOption {
	return func(r *jsonRenderer) { r.physics = &cfg }
}

// WithStats records the statistics of the final tick.
func WithStats(st sim.Stats) JSONOption {
	return func(r *jsonRenderer) { r.stats = &st }
}

type jsonOutput struct {
	RunID   string          `json:"run_id"`
	Graph   string          `json:"graph,omitempty"`
	Tick    int             `json:"tick"`
	Bounds  geom.Rect       `json:"bounds"`
	Physics *physics.Config `json:"physics,omitempty"`
	Stats   *sim.Stats      `json:"stats,omitempty"`
	Nodes   []sim.NodeFrame `json:"nodes"`
	Edges   []sim.EdgeFrame `json:"edges"`
}

// RenderJSON exports the frame as a pretty-printed JSON document. Nodes are
// listed in id order and edges in the frame's order. It does not modify f and
// is safe to call concurrently.
func RenderJSON(f sim.Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.runID == uuid.Nil {
		r.runID = uuid.New()
	}

	out := jsonOutput{
		RunID:   r.runID.String(),
		Graph:   r.name,
		Tick:    f.Tick,
		Bounds:  f.Bounds,
		Physics: r.physics,
		Stats:   r.stats,
		Nodes:   f.Nodes,
		Edges:   f.Edges,
	}
	if out.Nodes == nil {
		out.Nodes = []sim.NodeFrame{}
	}
	if out.Edges == nil {
		out.Edges = []sim.EdgeFrame{}
	}
	return json.MarshalIndent(out, "", "  ")
}
