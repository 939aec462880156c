package builder

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/graph"
)

// Defaults for the random builder.
const (
	DefaultRandomNodes = 24
	DefaultRandomEdges = 30
)

// Random adds nodes labelled n0, n1, ... and up to edges distinct edges
// between random pairs, each directed or undirected with equal probability.
// The same seed always produces the same graph. Fewer edges are added when
// the requested count cannot be reached in a bounded number of draws.
func Random(g *graph.Graph, nodes, edges int, seed uint64) error {
	if nodes < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "random graph needs at least one node, got %d", nodes)
	}
	if edges < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "edge count must not be negative, got %d", edges)
	}

	labels := make([]string, nodes)
	for i := range labels {
		labels[i] = fmt.Sprintf("n%d", i)
		if _, err := g.AddNode(labels[i]); err != nil {
			return err
		}
	}
	if nodes < 2 {
		return nil
	}

	rng := rand.New(rand.NewPCG(seed, seed+1))
	start := g.EdgeCount()
	for attempts := edges * 10; attempts > 0 && g.EdgeCount()-start < edges; attempts-- {
		a, b := rng.IntN(nodes), rng.IntN(nodes)
		if a == b {
			continue
		}
		var err error
		if rng.IntN(2) == 0 {
			err = g.AddDirectedEdge(labels[a], labels[b])
		} else {
			err = g.AddUndirectedEdge(labels[a], labels[b])
		}
		if err != nil {
			return err
		}
	}
	return nil
}
