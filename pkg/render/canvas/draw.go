package canvas

import (
	"math"

	"github.com/matzehuels/emerge/pkg/sim"
)

// Options controls what [Draw] puts on the grid.
type Options struct {
	Labels    bool // draw labels to the right of nodes
	Arrows    bool // draw arrow heads on directed edges
	NodeGlyph rune
}

// DefaultOptions draws labels and arrows with a filled circle per node.
func DefaultOptions() Options {
	return Options{Labels: true, Arrows: true, NodeGlyph: '●'}
}

// Render draws f into a new buffer sized to vp.
func Render(f sim.Frame, vp Viewport, opts Options) *Buffer {
	b := NewBuffer(vp.Width, vp.Height)
	Draw(b, f, vp, opts)
	return b
}

// Draw clears b and draws f through vp: edges first, then arrow heads, then
// nodes and labels on top.
func Draw(b *Buffer, f sim.Frame, vp Viewport, opts Options) {
	b.Clear()
	if opts.NodeGlyph == 0 {
		opts.NodeGlyph = '●'
	}

	for _, e := range f.Edges {
		from, okFrom := f.Node(e.From)
		to, okTo := f.Node(e.To)
		if !okFrom || !okTo {
			continue
		}
		style := StyleUndirected
		if e.Directed {
			style = StyleEdge
		}
		x0, y0 := vp.project(from.Position)
		x1, y1 := vp.project(to.Position)
		drawSegment(b, x0, y0, x1, y1, style, e.Directed && opts.Arrows)
	}

	for _, n := range f.Nodes {
		x, y := vp.Project(n.Position)
		b.Set(x, y, opts.NodeGlyph, StyleNode)
		if opts.Labels {
			b.SetString(x+2, y, n.Label, StyleLabel)
		}
	}
}

// drawSegment rasterizes the visible part of a segment between two node
// cells, leaving the endpoint cells for the node glyphs. With arrow set, the
// cell next to the target gets an arrow head when the target is on screen.
func drawSegment(b *Buffer, x0, y0, x1, y1 float64, style Style, arrow bool) {
	ex, ey := round(x1), round(y1)
	sx, sy := round(x0), round(y0)
	dirX, dirY := ex-sx, ey-sy

	cx0, cy0, cx1, cy1, ok := clip(x0, y0, x1, y1, float64(b.W-1), float64(b.H-1))
	if !ok {
		return
	}
	pts := Bresenham(round(cx0), round(cy0), round(cx1), round(cy1))
	for i, p := range pts {
		if (p.X == sx && p.Y == sy) || (p.X == ex && p.Y == ey) {
			continue
		}
		var dx, dy int
		if i+1 < len(pts) {
			dx, dy = pts[i+1].X-p.X, pts[i+1].Y-p.Y
		} else if i > 0 {
			dx, dy = p.X-pts[i-1].X, p.Y-pts[i-1].Y
		}
		b.Set(p.X, p.Y, LineChar(dx, dy), style)
	}

	if !arrow || len(pts) < 3 || !b.InBounds(ex, ey) {
		return
	}
	last := pts[len(pts)-1]
	if last.X != ex || last.Y != ey {
		return
	}
	head := pts[len(pts)-2]
	b.Set(head.X, head.Y, ArrowChar(dirX, dirY), StyleArrow)
}

// clip trims the segment to the rectangle [0,maxX] x [0,maxY] using the
// Liang-Barsky algorithm. ok is false when nothing remains.
func clip(x0, y0, x1, y1, maxX, maxY float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	if maxX < 0 || maxY < 0 {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func round(f float64) int { return int(math.Floor(f + 0.5)) }
