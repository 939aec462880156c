package builder

import (
	"math"
	"strconv"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/graph"
)

// DefaultFactorValue is the number the factor builder decomposes by default.
const DefaultFactorValue = 456

// FactorTree adds the factor tree of n. Each composite value gets directed
// edges to the two factors of its most balanced factor pair, and both
// factors are decomposed in turn. Primes are leaves and 1 adds nothing.
// Values reached along several paths share one node.
func FactorTree(g *graph.Graph, n int) error {
	if n < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "factor tree needs a positive value, got %d", n)
	}
	return factor(g, n)
}

func factor(g *graph.Graph, value int) error {
	if value == 1 {
		return nil
	}
	label := strconv.Itoa(value)
	if _, err := ensureNode(g, label); err != nil {
		return err
	}

	f := largestFactor(value)
	if f == 0 {
		return nil
	}
	for _, part := range []int{f, value / f} {
		if _, err := ensureNode(g, strconv.Itoa(part)); err != nil {
			return err
		}
		if err := g.AddDirectedEdge(label, strconv.Itoa(part)); err != nil {
			return err
		}
	}
	if err := factor(g, f); err != nil {
		return err
	}
	return factor(g, value/f)
}

// largestFactor returns the largest divisor of v in [2, sqrt(v)], or 0 if v
// is prime.
func largestFactor(v int) int {
	root := int(math.Sqrt(float64(v)))
	for root*root > v {
		root--
	}
	for (root+1)*(root+1) <= v {
		root++
	}
	for f := root; f >= 2; f-- {
		if v%f == 0 {
			return f
		}
	}
	return 0
}
