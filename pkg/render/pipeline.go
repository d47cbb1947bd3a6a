package render

import (
	"image/color"

	"github.com/taigrr/facet/pkg/math3d"
)

// Stats describes one rendered frame.
type Stats struct {
	Faces      int // faces in the mesh
	Skipped    int // fewer than 3 indices, or NaN screen coordinates
	Degenerate int // projected area below epsilon
	Offscreen  int // bounding box missed the target
	Pixels     int // color writes that passed the depth test
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Faces += o.Faces
	s.Skipped += o.Skipped
	s.Degenerate += o.Degenerate
	s.Offscreen += o.Offscreen
	s.Pixels += o.Pixels
}

// Renderer owns the per-frame buffers and draws a whole mesh per call.
type Renderer struct {
	FB     *Framebuffer
	Depth  *DepthBuffer
	Stage  *Stage
	Raster *Rasterizer

	Light      math3d.Vec3
	Material   Color
	Background Color

	// Wireframe overlays the edges of every drawn triangle.
	Wireframe bool
	WireColor Color
}

// NewRenderer creates a renderer for a fixed width×height target with the
// reference light and material.
func NewRenderer(width, height int) *Renderer {
	fb := NewFramebuffer(width, height)
	depth := NewDepthBuffer(width, height)
	return &Renderer{
		FB:         fb,
		Depth:      depth,
		Stage:      NewStage(Viewport{Width: width, Height: height}),
		Raster:     NewRasterizer(fb, depth),
		Light:      DefaultLight,
		Material:   DefaultMaterial,
		Background: ColorBlack,
		WireColor:  ColorWhite,
	}
}

// Render draws one frame: clear both buffers, transform every vertex once,
// then shade and fill the leading triangle of each face in order.
func (r *Renderer) Render(mesh Mesh, p Params) Stats {
	r.Depth.Clear()
	r.FB.Clear(r.Background)
	r.Stage.Run(mesh, p)

	var st Stats
	st.Faces = mesh.FaceCount()
	world, screen := r.Stage.World, r.Stage.Screen

	for i := range st.Faces {
		f := mesh.Face(i)
		if len(f) < 3 {
			st.Skipped++
			continue
		}
		i0, i1, i2 := f[0], f[1], f[2]

		c := Shade(r.Material, FlatIntensity(world[i0], world[i1], world[i2], r.Light))
		status, n := r.Raster.FillTriangle(screen[i0], screen[i1], screen[i2], c)
		switch status {
		case NonFinite:
			st.Skipped++
		case Degenerate:
			st.Degenerate++
		case Offscreen:
			st.Offscreen++
		}
		st.Pixels += n
	}

	if r.Wireframe {
		r.drawWireframe(mesh)
	}

	return st
}

// DefaultLight and DefaultMaterial are the reference scene lighting.
var (
	DefaultLight    = math3d.V3(10, 20, -10)
	DefaultMaterial = color.RGBA{255, 200, 50, 255}
)
