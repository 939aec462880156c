package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/emerge/pkg/geom"
	"github.com/matzehuels/emerge/pkg/sim"
)

func testFrame() sim.Frame {
	return sim.Frame{
		Nodes: []sim.NodeFrame{
			{ID: 0, Label: "Albania", Position: geom.V(10, 20), Radius: 15},
			{ID: 1, Label: "Cambodia", Position: geom.V(130, -40), Radius: 15},
			{ID: 2, Label: `Say "hi"`, Position: geom.V(0, 0), Radius: 9},
		},
		Edges: []sim.EdgeFrame{
			{From: 1, To: 0, Directed: true},
			{From: 0, To: 2},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testFrame(), Options{})

	for _, want := range []string{
		"digraph G {",
		"layout=neato;",
		"inputscale=72;",
		`n0 [label="Albania", tooltip="Albania", pos="10.00,-20.00!", width=0.42];`,
		`n1 [label="Cambodia", tooltip="Cambodia", pos="130.00,40.00!", width=0.42];`,
		`n2 [label="Say \"hi\""`,
		"n1 -> n0;",
		"n0 -> n2 [dir=none];",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT not closed")
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(testFrame(), Options{Scale: 2, HideLabels: true})

	if !strings.Contains(dot, `n0 [label="", tooltip="Albania", pos="20.00,-40.00!", width=0.83];`) {
		t.Errorf("scaled DOT unexpected:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(testFrame(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "Cambodia") {
		t.Errorf("SVG missing content:\n%s", out)
	}
}
