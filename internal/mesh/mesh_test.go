package mesh

import (
	"math"
	"reflect"
	"testing"

	"github.com/litescript/ls-orrery/internal/vmath"
)

const tol = 1e-9

func TestSphereVerticesOnSurface(t *testing.T) {
	const r = 2.5
	strips := Sphere(r, 16, 12)

	if len(strips) != 12 {
		t.Fatalf("strips = %d, want 12", len(strips))
	}
	for i, s := range strips {
		if len(s) != 2*(16+1) {
			t.Fatalf("strip %d has %d vertices, want %d", i, len(s), 2*17)
		}
		for _, v := range s {
			if d := v.Position.Norm(); math.Abs(d-r) > tol {
				t.Fatalf("vertex %v at distance %v, want %v", v.Position, d, r)
			}
			if math.Abs(v.Normal.Norm()-1) > tol {
				t.Fatalf("normal %v not unit", v.Normal)
			}
			if !v.Normal.Scale(r).ApproxEqual(v.Position, tol) {
				t.Fatalf("normal %v not outward for %v", v.Normal, v.Position)
			}
		}
	}

	// Poles are reached by the first and last bands.
	if y := strips[0][1].Position.Y; math.Abs(y+r) > tol {
		t.Errorf("south pole y = %v, want %v", y, -r)
	}
	if y := strips[11][0].Position.Y; math.Abs(y-r) > tol {
		t.Errorf("north pole y = %v, want %v", y, r)
	}
}

func TestSphereClampsTessellation(t *testing.T) {
	strips := Sphere(1, 0, 0)
	if len(strips) != MinStacks {
		t.Errorf("stacks = %d, want %d", len(strips), MinStacks)
	}
	if len(strips[0]) != 2*(MinSlices+1) {
		t.Errorf("strip len = %d, want %d", len(strips[0]), 2*(MinSlices+1))
	}
}

func TestRing(t *testing.T) {
	strip := Ring(1.5, 2.5, 24)
	if len(strip) != 2*25 {
		t.Fatalf("vertices = %d, want 50", len(strip))
	}
	for k, v := range strip {
		if v.Position.Y != 0 {
			t.Fatalf("vertex %d off plane: %v", k, v.Position)
		}
		if v.Normal != vmath.UnitY {
			t.Fatalf("vertex %d normal %v, want +Y", k, v.Normal)
		}
		want := 2.5
		if k%2 == 1 {
			want = 1.5
		}
		if r := v.Position.HorizontalNorm(); math.Abs(r-want) > tol {
			t.Fatalf("vertex %d radius %v, want %v", k, r, want)
		}
	}
	// Closed loop: last pair repeats the first.
	if !strip[0].Position.ApproxEqual(strip[len(strip)-2].Position, tol) {
		t.Error("ring is not closed")
	}
}

func TestWarpHeight(t *testing.T) {
	tests := []struct {
		name string
		x, z float64
		want float64
	}{
		{"centre reaches full depth", 0, 0, -3},
		{"half way is half depth", 5, 0, -1.5},
		{"diagonal uses euclidean distance", 3, 4, -1.5},
		{"edge of falloff is flat", 10, 0, 0},
		{"outside is flat", 20, -20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WarpHeight(tt.x, tt.z, 10, 3); math.Abs(got-tt.want) > tol {
				t.Errorf("WarpHeight(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
			}
		})
	}
}

func TestWarpedGrid(t *testing.T) {
	segs := WarpedGrid(10, 2, 6, 4)

	// 11 points per axis, 10 segments per line, 11 lines per direction.
	if want := 2 * 11 * 10; len(segs) != want {
		t.Fatalf("segments = %d, want %d", len(segs), want)
	}

	var sawCentre bool
	for _, s := range segs {
		for _, p := range []vmath.Vec3{s.A, s.B} {
			if math.Abs(p.X) > 10+tol || math.Abs(p.Z) > 10+tol {
				t.Fatalf("point %v outside extent", p)
			}
			if want := WarpHeight(p.X, p.Z, 6, 4); math.Abs(p.Y-want) > tol {
				t.Fatalf("point %v height %v, want %v", p, p.Y, want)
			}
			if p.X == 0 && p.Z == 0 {
				sawCentre = true
				if p.Y != -4 {
					t.Errorf("centre height %v, want -4", p.Y)
				}
			}
		}
		if l := s.B.Sub(s.A).HorizontalNorm(); math.Abs(l-2) > tol {
			t.Fatalf("segment horizontal length %v, want 2", l)
		}
	}
	if !sawCentre {
		t.Error("grid does not pass through the origin")
	}
}

func TestWarpedGridDegenerate(t *testing.T) {
	if g := WarpedGrid(10, 0, 5, 1); g != nil {
		t.Errorf("zero step produced %d segments", len(g))
	}
	if g := WarpedGrid(0, 1, 5, 1); g != nil {
		t.Errorf("zero extent produced %d segments", len(g))
	}
}

func TestCacheMatchesGenerators(t *testing.T) {
	c := NewCache()

	if got, want := c.Sphere(1.2, 10, 8), Sphere(1.2, 10, 8); !reflect.DeepEqual(got, want) {
		t.Error("cached sphere differs")
	}
	if got, want := c.Ring(1, 2, 30), Ring(1, 2, 30); !reflect.DeepEqual(got, want) {
		t.Error("cached ring differs")
	}
	if got, want := c.WarpedGrid(8, 1, 4, 2), WarpedGrid(8, 1, 4, 2); !reflect.DeepEqual(got, want) {
		t.Error("cached grid differs")
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}

	// A hit returns the same backing array.
	a := c.Ring(1, 2, 30)
	b := c.Ring(1, 2, 30)
	if &a[0] != &b[0] {
		t.Error("second lookup regenerated the ring")
	}
	c.Sphere(1.2, 10, 9)
	if c.Len() != 4 {
		t.Errorf("Len = %d after new key, want 4", c.Len())
	}
}
