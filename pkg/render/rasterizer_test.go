package render

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func newTestRasterizer(width, height int) (*Rasterizer, *Framebuffer, *DepthBuffer) {
	fb := NewFramebuffer(width, height)
	depth := NewDepthBuffer(width, height)
	return NewRasterizer(fb, depth), fb, depth
}

func TestEdgeFunction(t *testing.T) {
	a, b := math3d.V2(0, 0), math3d.V2(10, 0)

	tests := []struct {
		name string
		p    math3d.Vec2
		sign float64
	}{
		{"one side", math3d.V2(5, 5), 1},
		{"other side", math3d.V2(5, -5), -1},
		{"on edge", math3d.V2(5, 0), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EdgeFunction(a, b, tc.p)
			if math.Copysign(1, got)*tc.sign < 0 || (tc.sign == 0 && got != 0) {
				t.Errorf("EdgeFunction(%v) = %v, want sign %v", tc.p, got, tc.sign)
			}
		})
	}
}

func TestBarycentric(t *testing.T) {
	s0, s1, s2 := math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1)

	tests := []struct {
		name     string
		p        math3d.Vec2
		expected math3d.Vec3
	}{
		{"vertex 0", math3d.V2(0, 0), math3d.V3(1, 0, 0)},
		{"vertex 1", math3d.V2(1, 0), math3d.V3(0, 1, 0)},
		{"vertex 2", math3d.V2(0, 1), math3d.V3(0, 0, 1)},
		{"centroid", math3d.V2(1.0/3, 1.0/3), math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bc := Barycentric(s0, s1, s2, tc.p)
			if math.Abs(bc.X-tc.expected.X) > 0.001 ||
				math.Abs(bc.Y-tc.expected.Y) > 0.001 ||
				math.Abs(bc.Z-tc.expected.Z) > 0.001 {
				t.Errorf("Barycentric(%v) = %v, want %v", tc.p, bc, tc.expected)
			}
		})
	}

	t.Run("outside triangle", func(t *testing.T) {
		bc := Barycentric(s0, s1, s2, math3d.V2(-1, -1))
		if bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0 {
			t.Error("point outside triangle should have negative barycentric coordinate")
		}
	})
}

func TestBarycentricInteriorSumsToOne(t *testing.T) {
	tris := [][3]math3d.Vec2{
		{math3d.V2(10, 10), math3d.V2(90, 20), math3d.V2(40, 80)},
		// Opposite winding of the same triangle.
		{math3d.V2(10, 10), math3d.V2(40, 80), math3d.V2(90, 20)},
		{math3d.V2(-3.5, 2), math3d.V2(7.25, -1), math3d.V2(0, 12)},
	}

	for ti, tri := range tris {
		// Interior points as convex combinations with strictly positive weights.
		for _, w := range [][3]float64{{0.2, 0.3, 0.5}, {0.6, 0.2, 0.2}, {1.0 / 3, 1.0 / 3, 1.0 / 3}, {0.01, 0.01, 0.98}} {
			p := math3d.V2(
				w[0]*tri[0].X+w[1]*tri[1].X+w[2]*tri[2].X,
				w[0]*tri[0].Y+w[1]*tri[1].Y+w[2]*tri[2].Y,
			)
			bc := Barycentric(tri[0], tri[1], tri[2], p)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				t.Errorf("tri %d point %v: weights %v not all >= 0", ti, p, bc)
			}
			if sum := bc.X + bc.Y + bc.Z; math.Abs(sum-1) > 1e-9 {
				t.Errorf("tri %d point %v: weights sum to %v", ti, p, sum)
			}
		}
	}
}

func TestBoundingBox(t *testing.T) {
	inf := math.Inf(1)

	tests := []struct {
		name       string
		s0, s1, s2 math3d.Vec3
		wantEmpty  bool
		minX, minY int
		maxX, maxY int // inclusive
	}{
		{"inside", math3d.V3(10.2, 5.5, 0), math3d.V3(20.7, 5.5, 0), math3d.V3(10.2, 30.1, 0), false, 10, 5, 21, 31},
		{"clamped", math3d.V3(-50, -50, 0), math3d.V3(100, -50, 0), math3d.V3(-50, 100, 0), false, 0, 0, 63, 63},
		{"infinite", math3d.V3(0, 0, 0), math3d.V3(inf, 0, 0), math3d.V3(0, 10, 0), false, 0, 0, 63, 10},
		{"left of target", math3d.V3(-100, 0, 0), math3d.V3(-50, 0, 0), math3d.V3(-60, 30, 0), true, 0, 0, 0, 0},
		{"below target", math3d.V3(0, 70, 0), math3d.V3(10, 80, 0), math3d.V3(5, 90, 0), true, 0, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			box := BoundingBox(tc.s0, tc.s1, tc.s2, 64, 64)
			if box.Empty() != tc.wantEmpty {
				t.Fatalf("Empty() = %v, want %v (box %v)", box.Empty(), tc.wantEmpty, box)
			}
			if tc.wantEmpty {
				return
			}
			if box.Min.X != tc.minX || box.Min.Y != tc.minY || box.Max.X-1 != tc.maxX || box.Max.Y-1 != tc.maxY {
				t.Errorf("box = %v, want [%d,%d]..[%d,%d]", box, tc.minX, tc.minY, tc.maxX, tc.maxY)
			}
		})
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	r, fb, depth := newTestRasterizer(400, 200)
	fb.Clear(ColorBlack)

	s0, s1, s2 := math3d.V3(100, 100, 1), math3d.V3(200, 100, 1), math3d.V3(300, 100, 1)
	if area := EdgeFunction(s0.XY(), s1.XY(), s2.XY()); area != 0 {
		t.Fatalf("colinear area = %v, want 0", area)
	}

	status, n := r.FillTriangle(s0, s1, s2, ColorWhite)
	if status != Degenerate || n != 0 {
		t.Errorf("FillTriangle = %v, %d; want Degenerate, 0", status, n)
	}
	if w := depth.Written(); w != 0 {
		t.Errorf("depth buffer has %d written entries, want 0", w)
	}
	for i, p := range fb.Pixels {
		if p != ColorBlack {
			t.Fatalf("pixel %d painted %v", i, p)
		}
	}
}

func TestFillTriangleBelowEpsilon(t *testing.T) {
	r, _, depth := newTestRasterizer(64, 64)

	// Area 2*0.00004 = 8e-5 < 1e-4.
	status, n := r.FillTriangle(math3d.V3(10, 10, 1), math3d.V3(10.0002, 10, 1), math3d.V3(10, 10.4, 1), ColorWhite)
	if status != Degenerate || n != 0 || depth.Written() != 0 {
		t.Errorf("FillTriangle = %v, %d (depth written %d); want Degenerate", status, n, depth.Written())
	}
}

func TestFillTriangleNaN(t *testing.T) {
	r, _, depth := newTestRasterizer(64, 64)

	status, n := r.FillTriangle(math3d.V3(math.NaN(), 0, 1), math3d.V3(10, 0, 1), math3d.V3(0, 10, 1), ColorWhite)
	if status != NonFinite || n != 0 || depth.Written() != 0 {
		t.Errorf("FillTriangle = %v, %d; want NonFinite, 0", status, n)
	}
}

func TestFillTriangleOffscreen(t *testing.T) {
	r, _, depth := newTestRasterizer(64, 64)

	status, n := r.FillTriangle(math3d.V3(-30, -30, 1), math3d.V3(-10, -30, 1), math3d.V3(-30, -10, 1), ColorWhite)
	if status != Offscreen || n != 0 || depth.Written() != 0 {
		t.Errorf("FillTriangle = %v, %d; want Offscreen, 0", status, n)
	}
}

func TestFillTriangleCoverage(t *testing.T) {
	// Right triangle with legs of 4 pixels: samples on or inside the
	// hypotenuse x+y <= 4 number 5+4+3+2+1.
	for _, winding := range []string{"ccw", "cw"} {
		t.Run(winding, func(t *testing.T) {
			r, fb, depth := newTestRasterizer(16, 16)
			s0, s1, s2 := math3d.V3(0, 0, 2), math3d.V3(4, 0, 2), math3d.V3(0, 4, 2)
			if winding == "cw" {
				s1, s2 = s2, s1
			}

			status, n := r.FillTriangle(s0, s1, s2, ColorWhite)
			if status != Filled || n != 15 {
				t.Fatalf("FillTriangle = %v, %d; want Filled, 15", status, n)
			}
			for y := range 16 {
				for x := range 16 {
					inside := x+y <= 4
					painted := fb.GetPixel(x, y) == ColorWhite
					if inside != painted {
						t.Errorf("pixel (%d,%d) painted=%v, want %v", x, y, painted, inside)
					}
					if inside && depth.At(x, y) != 2 {
						t.Errorf("depth (%d,%d) = %v, want 2", x, y, depth.At(x, y))
					}
				}
			}
		})
	}
}

func TestFillTriangleInterpolatesDepth(t *testing.T) {
	r, _, depth := newTestRasterizer(32, 32)
	r.FillTriangle(math3d.V3(0, 0, 1), math3d.V3(30, 0, 4), math3d.V3(0, 30, 7), ColorWhite)

	// Linear in screen space: z = 1 + x/10 + y/5.
	tests := []struct{ x, y int }{{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 20}}
	for _, tc := range tests {
		want := 1 + float64(tc.x)/10 + float64(tc.y)/5
		if got := float64(depth.At(tc.x, tc.y)); math.Abs(got-want) > 1e-5 {
			t.Errorf("depth(%d,%d) = %v, want %v", tc.x, tc.y, got, want)
		}
	}
}

func TestFillTriangleDepthOrderIndependent(t *testing.T) {
	red, blue := RGB(255, 0, 0), RGB(0, 0, 255)
	near := [3]math3d.Vec3{math3d.V3(5, 5, 2), math3d.V3(40, 8, 2), math3d.V3(10, 40, 2)}
	far := [3]math3d.Vec3{math3d.V3(2, 20, 6), math3d.V3(45, 15, 6), math3d.V3(30, 45, 6)}

	type draw struct {
		tri [3]math3d.Vec3
		c   Color
	}
	run := func(order ...draw) (*Framebuffer, *DepthBuffer) {
		r, fb, depth := newTestRasterizer(48, 48)
		fb.Clear(ColorBlack)
		for _, d := range order {
			r.FillTriangle(d.tri[0], d.tri[1], d.tri[2], d.c)
		}
		return fb, depth
	}

	fbA, dA := run(draw{near, red}, draw{far, blue})
	fbB, dB := run(draw{far, blue}, draw{near, red})

	overlap := 0
	for i := range fbA.Pixels {
		if fbA.Pixels[i] != fbB.Pixels[i] {
			t.Fatalf("pixel %d differs: %v vs %v", i, fbA.Pixels[i], fbB.Pixels[i])
		}
		if dA.Depth[i] != dB.Depth[i] {
			t.Fatalf("depth %d differs: %v vs %v", i, dA.Depth[i], dB.Depth[i])
		}
		if dA.Depth[i] == 2 && fbA.Pixels[i] != red {
			t.Fatalf("pixel %d at near depth is %v, want red", i, fbA.Pixels[i])
		}
		if dA.Depth[i] == 2 {
			overlap++
		}
	}
	if overlap == 0 {
		t.Fatal("near triangle wrote no pixels")
	}
}

func TestFillTriangleTiesKeepFirst(t *testing.T) {
	r, fb, _ := newTestRasterizer(16, 16)
	tri := [3]math3d.Vec3{math3d.V3(0, 0, 3), math3d.V3(10, 0, 3), math3d.V3(0, 10, 3)}

	r.FillTriangle(tri[0], tri[1], tri[2], ColorWhite)
	_, n := r.FillTriangle(tri[0], tri[1], tri[2], RGB(255, 0, 0))
	if n != 0 {
		t.Errorf("equal-depth redraw wrote %d pixels, want 0", n)
	}
	if fb.GetPixel(1, 1) != ColorWhite {
		t.Errorf("pixel (1,1) = %v, want first color", fb.GetPixel(1, 1))
	}
}
