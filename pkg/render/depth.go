package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/facet/pkg/math3d"
)

// DepthBuffer holds one float32 depth per pixel. Smaller is closer.
// It is cleared to +Inf at the start of every frame and never reallocated.
type DepthBuffer struct {
	Width  int
	Height int
	Depth  []float32
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Depth:  make([]float32, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every entry to +Inf.
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.Depth)
	if n == 0 {
		return
	}
	d.Depth[0] = math32.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(d.Depth[i:], d.Depth[:i])
	}
}

// At returns the depth at (x, y), or +Inf out of bounds.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return math32.Inf(1)
	}
	return d.Depth[y*d.Width+x]
}

// TestAndSet stores z at (x, y) if it is strictly closer than the current
// value and reports whether it did. Ties keep the existing value.
func (d *DepthBuffer) TestAndSet(x, y int, z float32) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	i := y*d.Width + x
	if !(z < d.Depth[i]) {
		return false
	}
	d.Depth[i] = z
	return true
}

// interpolateDepth blends the vertex depths with barycentric weights in
// float32, the precision the buffer stores. ok is false when the result is
// not finite, such as a depth that overflows float32.
func interpolateDepth(w math3d.Vec3, z0, z1, z2 float32) (z float32, ok bool) {
	z = float32(w.X)*z0 + float32(w.Y)*z1 + float32(w.Z)*z2
	return z, !math32.IsNaN(z) && !math32.IsInf(z, 0)
}

// Written counts entries that are no longer +Inf.
func (d *DepthBuffer) Written() int {
	n := 0
	for _, z := range d.Depth {
		if !math32.IsInf(z, 1) {
			n++
		}
	}
	return n
}
