package render

import (
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func unitTriangle(faces ...[]int) *testMesh {
	return &testMesh{
		verts: []math3d.Vec3{
			math3d.V3(0, 0, 5),
			math3d.V3(1, 0, 5),
			math3d.V3(0, 1, 5),
		},
		faces: faces,
	}
}

func TestRenderUnitTriangle(t *testing.T) {
	r := NewRenderer(800, 600)
	r.Background = RGB(20, 20, 20)

	st := r.Render(unitTriangle([]int{0, 1, 2}), Params{})
	if st.Pixels == 0 {
		t.Fatal("no pixels painted")
	}

	// The triangle projects to (400,300), (480,300), (400,240). It faces away
	// from the light, so its flat color is black.
	want := Shade(r.Material, 0)
	painted := 0
	for y := range r.FB.Height {
		for x := range r.FB.Width {
			p := r.FB.GetPixel(x, y)
			if p == r.Background {
				continue
			}
			painted++
			if x < 400 || x > 480 || y < 240 || y > 300 {
				t.Fatalf("pixel (%d,%d) painted outside the projected triangle", x, y)
			}
			if p != want {
				t.Fatalf("pixel (%d,%d) = %v, want flat %v", x, y, p, want)
			}
			if z := r.Depth.At(x, y); math.Abs(float64(z)-5) > 1e-4 {
				t.Fatalf("depth (%d,%d) = %v, want 5", x, y, z)
			}
		}
	}
	if painted != st.Pixels {
		t.Errorf("Stats.Pixels = %d, counted %d", st.Pixels, painted)
	}
	if r.Depth.Written() != st.Pixels {
		t.Errorf("depth writes = %d, want %d", r.Depth.Written(), st.Pixels)
	}
}

func TestRenderLitFace(t *testing.T) {
	r := NewRenderer(200, 200)
	r.Light = math3d.V3(0, 0, -10)

	// Reversed winding gives normal (0,0,-1), pointing straight at the light.
	r.Render(unitTriangle([]int{0, 2, 1}), Params{})

	if got := r.FB.GetPixel(105, 95); got != r.Material {
		t.Errorf("lit pixel = %v, want full material %v", got, r.Material)
	}
}

func TestRenderStats(t *testing.T) {
	mesh := &testMesh{
		verts: []math3d.Vec3{
			math3d.V3(0, 0, 5),
			math3d.V3(1, 0, 5),
			math3d.V3(0, 1, 5),
			math3d.V3(100, 0, 5),
			math3d.V3(101, 0, 5),
			math3d.V3(100, 1, 5),
			math3d.V3(0, 0, 0),
		},
		faces: [][]int{
			{0, 1, 2},    // drawn
			{0, 1, 2, 0}, // drawn as leading triangle
			{0, 1},       // too short
			{0, 0, 1},    // zero area
			{3, 4, 5},    // offscreen
			{6, 1, 2},    // 0/0 at the eye
		},
	}

	r := NewRenderer(800, 600)
	st := r.Render(mesh, Params{})

	want := Stats{Faces: 6, Skipped: 2, Degenerate: 1, Offscreen: 1}
	st.Pixels = 0
	if st != want {
		t.Errorf("Stats = %+v, want %+v", st, want)
	}
}

func TestRenderClearsBetweenFrames(t *testing.T) {
	r := NewRenderer(800, 600)
	mesh := unitTriangle([]int{0, 1, 2})

	first := r.Render(mesh, Params{})
	second := r.Render(mesh, Params{})
	if first.Pixels != second.Pixels {
		t.Errorf("second frame painted %d pixels, first %d", second.Pixels, first.Pixels)
	}

	// Move it off the right edge: nothing may survive from the previous frame.
	st := r.Render(mesh, Params{DX: 100})
	if st.Offscreen != 1 {
		t.Errorf("Offscreen = %d, want 1", st.Offscreen)
	}
	if w := r.Depth.Written(); w != 0 {
		t.Errorf("%d depth entries survived into an empty frame", w)
	}
}

func TestRenderBehindEyeNotClipped(t *testing.T) {
	r := NewRenderer(800, 600)

	// At z=-5 the divide mirrors the triangle through the centre, to
	// (400,300), (320,300), (400,360).
	st := r.Render(unitTriangle([]int{0, 1, 2}), Params{DZ: -10})
	if st.Pixels == 0 {
		t.Fatal("triangle behind the eye painted nothing")
	}
	if r.Depth.Written() != st.Pixels {
		t.Errorf("depth writes = %d, want %d", r.Depth.Written(), st.Pixels)
	}

	for y := range r.Depth.Height {
		for x := range r.Depth.Width {
			z := r.Depth.At(x, y)
			if math.IsInf(float64(z), 1) {
				continue
			}
			if x < 320 || x > 400 || y < 300 || y > 360 {
				t.Fatalf("depth (%d,%d) written outside the mirrored triangle", x, y)
			}
			if math.Abs(float64(z)+5) > 1e-4 {
				t.Fatalf("depth (%d,%d) = %v, want -5", x, y, z)
			}
		}
	}
	if z := r.Depth.At(390, 310); math.IsInf(float64(z), 1) {
		t.Error("interior of mirrored triangle not written")
	}
	if z := r.Depth.At(410, 290); !math.IsInf(float64(z), 1) {
		t.Error("unmirrored position written")
	}
}

func TestRenderWireframe(t *testing.T) {
	r := NewRenderer(800, 600)
	r.Wireframe = true

	r.Render(unitTriangle([]int{0, 1, 2}), Params{})
	for _, p := range [][2]int{{400, 300}, {480, 300}, {400, 240}, {440, 300}} {
		if got := r.FB.GetPixel(p[0], p[1]); got != r.WireColor {
			t.Errorf("edge pixel %v = %v, want wire color", p, got)
		}
	}
}

func TestFlatIntensity(t *testing.T) {
	w0, w1, w2 := math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)

	tests := []struct {
		name  string
		light math3d.Vec3
		want  float64
	}{
		{"facing", math3d.V3(0, 0, 10), 1},
		{"behind", math3d.V3(0, 0, -10), 0},
		{"grazing", math3d.V3(10, 0, 0), 0},
		{"oblique", math3d.V3(0, 10, 10), math.Sqrt2 / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FlatIntensity(w0, w1, w2, tc.light); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("FlatIntensity = %v, want %v", got, tc.want)
			}
		})
	}

	if got := FlatIntensity(w0, w0, w1, math3d.V3(0, 0, 10)); got != 0 {
		t.Errorf("collapsed triangle intensity = %v, want 0", got)
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		intensity float64
		want      Color
	}{
		{0, RGB(0, 0, 0)},
		{0.5, RGB(127, 100, 25)},
		{1, RGB(255, 200, 50)},
		{2, RGB(255, 200, 50)},
		{-1, RGB(0, 0, 0)},
		{math.NaN(), RGB(0, 0, 0)},
	}

	for _, tc := range tests {
		if got := Shade(DefaultMaterial, tc.intensity); got != tc.want {
			t.Errorf("Shade(%v) = %v, want %v", tc.intensity, got, tc.want)
		}
	}
}
