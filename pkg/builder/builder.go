// Package builder produces example topologies for the layout engine.
//
// Builders only talk to the graph store through its public mutation API
// (AddNode, AddDirectedEdge, AddUndirectedEdge, Lookup) and must run before
// the simulation starts. Each builder is registered by name so the CLI can
// list and select them:
//
//	b, err := builder.Get("factor")
//	g := graph.New()
//	err = b.Build(g, builder.Params{Value: 456})
package builder

import (
	"slices"
	"strings"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/graph"
)

// Params carries the inputs a builder may use. Builders ignore the fields
// they do not need and fall back to defaults for zero values.
type Params struct {
	// Value is the number decomposed by the factor builder.
	Value int
	// Nodes and Edges size the random builder.
	Nodes, Edges int
	// Seed makes the random builder reproducible.
	Seed uint64
	// Input is a CSV file for the countries builder; empty selects the
	// built-in country list.
	Input string
}

// Builder is a named topology producer.
type Builder struct {
	Name        string
	Description string
	Build       func(g *graph.Graph, p Params) error
}

var registry = []Builder{
	{
		Name:        "sample",
		Description: "four countries joined by three directed edges",
		Build:       func(g *graph.Graph, _ Params) error { return Sample(g) },
	},
	{
		Name:        "countries",
		Description: "country name chain: an edge wherever one name ends with the letter the next begins with",
		Build:       buildCountries,
	},
	{
		Name:        "factor",
		Description: "factor tree of --value (default 456)",
		Build: func(g *graph.Graph, p Params) error {
			return FactorTree(g, orDefault(p.Value, DefaultFactorValue))
		},
	},
	{
		Name:        "random",
		Description: "seeded random graph mixing directed and undirected edges",
		Build: func(g *graph.Graph, p Params) error {
			return Random(g, orDefault(p.Nodes, DefaultRandomNodes), orDefault(p.Edges, DefaultRandomEdges), p.Seed)
		},
	},
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// All returns every registered builder, sorted by name.
func All() []Builder {
	out := slices.Clone(registry)
	slices.SortFunc(out, func(a, b Builder) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Names returns the registered builder names, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, b := range all {
		names[i] = b.Name
	}
	return names
}

// Get returns the builder registered under name (case-insensitive).
func Get(name string) (Builder, error) {
	for _, b := range registry {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return Builder{}, errors.New(errors.ErrCodeUnsupported, "unknown graph %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Sample adds the four-country example graph.
func Sample(g *graph.Graph) error {
	for _, name := range []string{"Albania", "Cambodia", "Cameroon", "Nigeria"} {
		if _, err := g.AddNode(name); err != nil {
			return err
		}
	}
	for _, e := range [][2]string{
		{"Cambodia", "Albania"},
		{"Cameroon", "Nigeria"},
		{"Nigeria", "Albania"},
	} {
		if err := g.AddDirectedEdge(e[0], e[1]); err != nil {
			return err
		}
	}
	return nil
}

// ensureNode returns the id for label, adding the node if it is new.
func ensureNode(g *graph.Graph, label string) (int, error) {
	if id, ok := g.Lookup(label); ok {
		return id, nil
	}
	return g.AddNode(label)
}
