package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/emerge/pkg/sim"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Scale converts world units to points. Zero means 1.
	Scale float64
	// HideLabels draws bare circles instead of labelled nodes.
	HideLabels bool
}

func (o Options) scale() float64 {
	if o.Scale > 0 {
		return o.Scale
	}
	return 1
}

// ToDOT converts a frame to Graphviz DOT with every node pinned at its
// simulated position. The result must be laid out with neato (see
// [RenderSVG]) for the pins to hold; the dot engine ignores them.
//
// Directed edges are drawn with arrow heads and undirected edges without.
// World y grows downward while Graphviz y grows upward, so y is negated.
func ToDOT(f sim.Frame, opts Options) string {
	scale := opts.scale()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, fontsize=10];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, n := range f.Nodes {
		label := n.Label
		if opts.HideLabels {
			label = ""
		}
		width := 2 * n.Radius * scale / 72
		fmt.Fprintf(&buf, "  n%d [label=%q, tooltip=%q, pos=\"%s,%s!\", width=%s];\n",
			n.ID, label, n.Label,
			fmtFloat(n.Position.X*scale), fmtFloat(-n.Position.Y*scale), fmtFloat(width))
	}

	buf.WriteString("\n")
	for _, e := range f.Edges {
		if e.Directed {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  n%d -> n%d [dir=none];\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSVG renders a DOT graph produced by [ToDOT] to SVG using the neato
// engine, which keeps pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales to its
// container: a zero-origin viewBox with matching width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
