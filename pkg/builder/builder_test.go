package builder

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/graph"
)

func edgeLabels(g *graph.Graph) []string {
	var out []string
	for _, e := range g.Edges() {
		sep := " -- "
		if e.Directed {
			sep = " -> "
		}
		out = append(out, g.Node(e.From).Label+sep+g.Node(e.To).Label)
	}
	slices.Sort(out)
	return out
}

func TestSample(t *testing.T) {
	g := graph.New()
	if err := Sample(g); err != nil {
		t.Fatalf("Sample() error: %v", err)
	}
	want := []string{"Cambodia -> Albania", "Cameroon -> Nigeria", "Nigeria -> Albania"}
	if got := edgeLabels(g); !slices.Equal(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
}

func TestCountryChainMatchesSample(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "chain.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g := graph.New()
	if err := CountryChain(g, f); err != nil {
		t.Fatalf("CountryChain() error: %v", err)
	}

	sample := graph.New()
	_ = Sample(sample)
	if got, want := edgeLabels(g), edgeLabels(sample); !slices.Equal(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4 (repeated name must not add a node)", g.NodeCount())
	}
}

func TestCountryChainRule(t *testing.T) {
	g := graph.New()
	in := "name\nOman\nNepal\nLebanon\n"
	if err := CountryChain(g, strings.NewReader(in)); err != nil {
		t.Fatalf("CountryChain() error: %v", err)
	}
	want := []string{"Lebanon -> Nepal", "Nepal -> Lebanon", "Oman -> Nepal"}
	if got := edgeLabels(g); !slices.Equal(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
}

func TestCountryChainErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no name column", "Code,Capital\nAL,Tirana\n"},
		{"bad quoting", "Name\n\"Alb\"ania\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CountryChain(graph.New(), strings.NewReader(tt.in))
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("CountryChain() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestCountries(t *testing.T) {
	g := graph.New()
	if err := Countries(g); err != nil {
		t.Fatalf("Countries() error: %v", err)
	}
	if g.NodeCount() < 40 {
		t.Errorf("NodeCount() = %d, want the built-in list", g.NodeCount())
	}
	if g.EdgeCount() == 0 {
		t.Error("built-in list produced no edges")
	}
	for _, e := range g.Edges() {
		from, to := g.Node(e.From).Label, g.Node(e.To).Label
		last := strings.ToLower(from[len(from)-1:])
		first := strings.ToLower(to[:1])
		if last != first || !e.Directed {
			t.Errorf("edge %s -> %s breaks the chain rule", from, to)
		}
	}
}

func TestFactorTree(t *testing.T) {
	g := graph.New()
	if err := FactorTree(g, 456); err != nil {
		t.Fatalf("FactorTree() error: %v", err)
	}
	want := []string{
		"24 -> 4", "24 -> 6", "4 -> 2", "456 -> 19", "456 -> 24", "6 -> 2", "6 -> 3",
	}
	if got := edgeLabels(g); !slices.Equal(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
	if g.NodeCount() != 7 {
		t.Errorf("NodeCount() = %d, want 7", g.NodeCount())
	}
}

func TestFactorTreeEdgeCases(t *testing.T) {
	tests := []struct {
		n         int
		wantNodes int
		wantErr   bool
	}{
		{1, 0, false},
		{13, 1, false},
		{9, 2, false},
		{0, 0, true},
		{-4, 0, true},
	}
	for _, tt := range tests {
		g := graph.New()
		err := FactorTree(g, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("FactorTree(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			continue
		}
		if g.NodeCount() != tt.wantNodes {
			t.Errorf("FactorTree(%d) nodes = %d, want %d", tt.n, g.NodeCount(), tt.wantNodes)
		}
	}
}

func TestRandom(t *testing.T) {
	build := func(seed uint64) *graph.Graph {
		g := graph.New()
		if err := Random(g, 20, 25, seed); err != nil {
			t.Fatalf("Random() error: %v", err)
		}
		return g
	}
	a, b := build(3), build(3)
	if a.NodeCount() != 20 {
		t.Errorf("NodeCount() = %d, want 20", a.NodeCount())
	}
	if a.EdgeCount() != 25 {
		t.Errorf("EdgeCount() = %d, want 25", a.EdgeCount())
	}
	if !slices.Equal(a.Edges(), b.Edges()) {
		t.Error("same seed produced different edges")
	}

	var directed, undirected int
	for _, e := range a.Edges() {
		if e.From == e.To {
			t.Errorf("self loop %v", e)
		}
		if e.Directed {
			directed++
		} else {
			undirected++
		}
	}
	if directed == 0 || undirected == 0 {
		t.Errorf("directed=%d undirected=%d, want a mix", directed, undirected)
	}

	if err := Random(graph.New(), 0, 1, 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Random(0 nodes) error = %v, want INVALID_INPUT", err)
	}
}

func TestRegistry(t *testing.T) {
	want := []string{"countries", "factor", "random", "sample"}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	for _, name := range want {
		b, err := Get(strings.ToUpper(name))
		if err != nil {
			t.Fatalf("Get(%q) error: %v", name, err)
		}
		g := graph.New()
		if err := b.Build(g, Params{Seed: 1}); err != nil {
			t.Errorf("%s.Build() error: %v", name, err)
		}
		if g.NodeCount() == 0 {
			t.Errorf("%s built an empty graph", name)
		}
	}

	if _, err := Get("lattice"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Get(lattice) error = %v, want UNSUPPORTED", err)
	}
}

func TestBuildCountriesMissingFile(t *testing.T) {
	b, _ := Get("countries")
	err := b.Build(graph.New(), Params{Input: filepath.Join(t.TempDir(), "missing.csv")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Build() error = %v, want FILE_NOT_FOUND", err)
	}
}
