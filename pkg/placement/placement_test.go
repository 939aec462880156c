package placement

import (
	"testing"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/geom"
)

func place(p Placer, n int) []geom.Vec2 {
	out := make([]geom.Vec2, n)
	for i := range out {
		out[i] = p.Place(i)
	}
	return out
}

func assertDistinct(t *testing.T, pts []geom.Vec2) {
	t.Helper()
	for i := range pts {
		if !pts[i].IsFinite() {
			t.Fatalf("point %d = %v, want finite", i, pts[i])
		}
		for j := i + 1; j < len(pts); j++ {
			if pts[i].Dist(pts[j]) < 1e-6 {
				t.Fatalf("points %d and %d coincide at %v", i, j, pts[i])
			}
		}
	}
}

func TestRandom(t *testing.T) {
	a := place(NewRandom(42, 200, 100), 50)
	b := place(NewRandom(42, 200, 100), 50)
	c := place(NewRandom(43, 200, 100), 50)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, a[i], b[i])
		}
		if a[i].X < 0 || a[i].X >= 200 || a[i].Y < 0 || a[i].Y >= 100 {
			t.Errorf("point %d = %v outside 200x100", i, a[i])
		}
	}
	if a[0] == c[0] && a[1] == c[1] {
		t.Error("different seeds produced the same sequence")
	}
	assertDistinct(t, a)
}

func TestCircle(t *testing.T) {
	t.Run("open ended", func(t *testing.T) {
		p := NewCircle(800, 600, 0)
		pts := place(p, 64)
		assertDistinct(t, pts)
		for i, pt := range pts {
			if d := pt.Dist(p.Center); d < p.Radius-1e-9 || d > p.Radius+1e-9 {
				t.Errorf("point %d at distance %v from center, want %v", i, d, p.Radius)
			}
		}
	})

	t.Run("expected count", func(t *testing.T) {
		p := NewCircle(800, 600, 8)
		pts := place(p, 20)
		assertDistinct(t, pts)
		if d := pts[8].Dist(p.Center); d <= p.Radius {
			t.Errorf("overflow node on radius %v, want a wider ring than %v", d, p.Radius)
		}
	})
}

func TestNoise(t *testing.T) {
	a := place(NewNoise(7, 1280, 720, 100), 150)
	b := place(NewNoise(7, 1280, 720, 100), 150)
	assertDistinct(t, a)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d", i)
		}
	}
	for i, pt := range a[:100] {
		if pt.X < 0 || pt.X > 1280 || pt.Y < 0 || pt.Y > 720 {
			t.Errorf("point %d = %v outside area", i, pt)
		}
	}
}

func TestFixed(t *testing.T) {
	f := Fixed{
		Positions: map[int]geom.Vec2{1: geom.V(9, 9)},
		Fallback:  PlacerFunc(func(id int) geom.Vec2 { return geom.V(float64(id), 0) }),
	}
	if got := f.Place(1); got != geom.V(9, 9) {
		t.Errorf("Place(1) = %v, want (9, 9)", got)
	}
	if got := f.Place(3); got != geom.V(3, 0) {
		t.Errorf("Place(3) = %v, want fallback (3, 0)", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Place without preset or fallback should panic")
		}
	}()
	Fixed{}.Place(0)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr bool
	}{
		{"default", func(*Options) {}, false},
		{"circle", func(o *Options) { o.Policy = PolicyCircle }, false},
		{"noise upper case", func(o *Options) { o.Policy = "NOISE" }, false},
		{"unknown policy", func(o *Options) { o.Policy = "spiral" }, true},
		{"zero width", func(o *Options) { o.Width = 0 }, true},
		{"negative expected", func(o *Options) { o.Expected = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			p, err := New(opts)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("New() error = %v, want INVALID_CONFIG", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			assertDistinct(t, place(p, 10))
		})
	}
}
