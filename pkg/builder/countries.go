package builder

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/graph"
)

//go:embed countries.csv
var countriesCSV []byte

// NameColumn is the CSV header that holds node labels.
const NameColumn = "Name"

// CountryChain reads a CSV with a Name column and adds one node per distinct
// name. It then adds a directed edge j -> i for every pair where the first
// letter of i equals the last letter of j, ignoring case. Repeated names map
// onto the existing node; a name that both starts and ends with the same
// letter gets no self edge.
func CountryChain(g *graph.Graph, r io.Reader) error {
	names, err := readNames(r)
	if err != nil {
		return err
	}

	type ends struct{ first, last rune }
	var (
		labels  []string
		letters []ends
	)
	for _, name := range names {
		if _, ok := g.Lookup(name); ok {
			continue
		}
		if _, err := g.AddNode(name); err != nil {
			return err
		}
		first, _ := utf8.DecodeRuneInString(name)
		last, _ := utf8.DecodeLastRuneInString(name)
		labels = append(labels, name)
		letters = append(letters, ends{unicode.ToLower(first), unicode.ToLower(last)})
	}

	for j := range labels {
		for i := range labels {
			if letters[i].first != letters[j].last {
				continue
			}
			if err := g.AddDirectedEdge(labels[j], labels[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Countries adds the chain graph over the built-in country list.
func Countries(g *graph.Graph) error {
	return CountryChain(g, bytes.NewReader(countriesCSV))
}

func buildCountries(g *graph.Graph, p Params) error {
	if p.Input == "" {
		return Countries(g)
	}
	f, err := os.Open(p.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "countries file %s", p.Input)
		}
		return err
	}
	defer f.Close()
	return CountryChain(g, f)
}

func readNames(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "csv is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv header")
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), NameColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "csv has no %q column", NameColumn)
	}

	var names []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
		}
		if col >= len(rec) {
			continue
		}
		if name := strings.TrimSpace(rec[col]); name != "" {
			names = append(names, name)
		}
	}
}
