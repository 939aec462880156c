package canvas

import (
	"math"

	"github.com/matzehuels/emerge/pkg/geom"
)

// DefaultCellAspect is the height of a terminal cell relative to its width.
const DefaultCellAspect = 2.0

// Viewport maps world coordinates onto a grid of cells. Center is the world
// point shown in the middle of the grid and Scale is the number of world
// units covered by one cell column; rows cover Scale*CellAspect units.
type Viewport struct {
	Width, Height int
	Center        geom.Vec2
	Scale         float64
	CellAspect    float64
}

// NewViewport returns a w x h cell viewport centered on the origin at one
// world unit per column.
func NewViewport(w, h int) Viewport {
	return Viewport{Width: w, Height: h, Scale: 1, CellAspect: DefaultCellAspect}
}

// Resize changes the grid size and keeps the center and scale.
func (v *Viewport) Resize(w, h int) {
	v.Width, v.Height = w, h
}

// Fit centers r and picks the scale that shows all of it inside a margin of
// the given number of cells.
func (v *Viewport) Fit(r geom.Rect, margin int) {
	v.Center = r.Center()
	cols := float64(max(v.Width-2*margin, 1))
	rows := float64(max(v.Height-2*margin, 1))
	size := r.Size()
	scale := math.Max(size.X/cols, size.Y/(rows*v.aspect()))
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	v.Scale = scale
}

// Pan moves the view by dx columns and dy rows.
func (v *Viewport) Pan(dx, dy int) {
	v.Center = v.Center.Add(geom.V(float64(dx)*v.Scale, float64(dy)*v.Scale*v.aspect()))
}

// Zoom magnifies the view by factor around its center; factor > 1 zooms in.
// Non-positive factors are ignored.
func (v *Viewport) Zoom(factor float64) {
	if factor > 0 {
		v.Scale /= factor
	}
}

// Project returns the cell that shows world point p. The cell may lie
// outside the grid.
func (v Viewport) Project(p geom.Vec2) (x, y int) {
	fx, fy := v.project(p)
	return int(math.Floor(fx + 0.5)), int(math.Floor(fy + 0.5))
}

func (v Viewport) project(p geom.Vec2) (float64, float64) {
	scale := v.Scale
	if !(scale > 0) {
		scale = 1
	}
	d := p.Sub(v.Center)
	return d.X/scale + float64(v.Width)/2, d.Y/(scale*v.aspect()) + float64(v.Height)/2
}

// Unproject returns the world point at the center of cell (x, y).
func (v Viewport) Unproject(x, y int) geom.Vec2 {
	return v.Center.Add(geom.V(
		(float64(x)-float64(v.Width)/2)*v.Scale,
		(float64(y)-float64(v.Height)/2)*v.Scale*v.aspect(),
	))
}

func (v Viewport) aspect() float64 {
	if v.CellAspect > 0 {
		return v.CellAspect
	}
	return DefaultCellAspect
}
