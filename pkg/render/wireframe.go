package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// maxLineCoord bounds the screen coordinates handed to Bresenham. Vertices
// near z=0 project arbitrarily far away; their edges are not drawn.
const maxLineCoord = 1 << 16

// drawWireframe outlines the leading triangle of every face using the
// screen points of the last Stage run. The overlay ignores depth.
func (r *Renderer) drawWireframe(mesh Mesh) {
	screen := r.Stage.Screen
	for i := range mesh.FaceCount() {
		f := mesh.Face(i)
		if len(f) < 3 {
			continue
		}
		a, b, c := screen[f[0]], screen[f[1]], screen[f[2]]
		r.drawEdge(a, b)
		r.drawEdge(b, c)
		r.drawEdge(c, a)
	}
}

func (r *Renderer) drawEdge(a, b math3d.Vec3) {
	if !drawable(a) || !drawable(b) {
		return
	}
	r.FB.DrawLine(
		int(math.Round(a.X)), int(math.Round(a.Y)),
		int(math.Round(b.X)), int(math.Round(b.Y)),
		r.WireColor,
	)
}

func drawable(p math3d.Vec3) bool {
	return math.Abs(p.X) < maxLineCoord && math.Abs(p.Y) < maxLineCoord
}
