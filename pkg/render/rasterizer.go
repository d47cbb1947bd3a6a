package render

import (
	"image"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// DefaultEpsilon is the smallest |signed area| in square pixels a screen
// triangle may have and still be drawn.
const DefaultEpsilon = 1e-4

// Status reports what FillTriangle did with a triangle.
type Status uint8

const (
	// Filled means the triangle was scanned; it may still have written no
	// pixels if it was fully occluded or fell between pixel samples.
	Filled Status = iota
	// Offscreen means the bounding box missed the target entirely.
	Offscreen
	// Degenerate means the projected area was below epsilon.
	Degenerate
	// NonFinite means a screen coordinate was NaN.
	NonFinite
)

// EdgeFunction returns twice the signed area of triangle (a, b, c). Its sign
// tells which side of the directed edge a→b the point c lies on.
func EdgeFunction(a, b, c math3d.Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// Barycentric returns the weights of p relative to triangle (s0, s1, s2).
// Each edge value is divided by the signed total area, so the weights sum
// to 1 and are all non-negative inside the triangle for either winding.
func Barycentric(s0, s1, s2, p math3d.Vec2) math3d.Vec3 {
	area := EdgeFunction(s0, s1, s2)
	return math3d.V3(
		EdgeFunction(s1, s2, p)/area,
		EdgeFunction(s2, s0, p)/area,
		EdgeFunction(s0, s1, p)/area,
	)
}

// BoundingBox returns the pixels covering the screen triangle, clamped to a
// width×height target. The result is half-open like any image.Rectangle and
// empty when the triangle lies wholly outside the target.
func BoundingBox(s0, s1, s2 math3d.Vec3, width, height int) image.Rectangle {
	minX := math.Floor(min3(s0.X, s1.X, s2.X))
	maxX := math.Ceil(max3(s0.X, s1.X, s2.X))
	minY := math.Floor(min3(s0.Y, s1.Y, s2.Y))
	maxY := math.Ceil(max3(s0.Y, s1.Y, s2.Y))

	right, bottom := float64(width-1), float64(height-1)
	if maxX < 0 || maxY < 0 || minX > right || minY > bottom {
		return image.Rectangle{}
	}

	// Clamp in float space; ±Inf does not convert to int.
	x0 := int(math.Max(0, minX))
	x1 := int(math.Min(right, maxX))
	y0 := int(math.Max(0, minY))
	y1 := int(math.Min(bottom, maxY))

	return image.Rect(x0, y0, x1+1, y1+1)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// Rasterizer fills flat-colored triangles into a framebuffer under a depth
// test. The framebuffer and depth buffer must have the same dimensions.
type Rasterizer struct {
	fb    *Framebuffer
	depth *DepthBuffer

	// Epsilon is the degenerate-area threshold.
	Epsilon float64
}

// NewRasterizer creates a rasterizer drawing into fb and depth.
func NewRasterizer(fb *Framebuffer, depth *DepthBuffer) *Rasterizer {
	return &Rasterizer{
		fb:      fb,
		depth:   depth,
		Epsilon: DefaultEpsilon,
	}
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	return r.fb.Height
}

// FillTriangle writes c to every pixel sample inside screen triangle
// (s0, s1, s2), boundary included, whose interpolated depth is strictly
// less than the stored depth. Samples are taken at integer pixel
// coordinates. Depth is interpolated linearly in screen space, in float32;
// samples whose depth is not finite are skipped.
// It returns the outcome and the number of pixels written.
func (r *Rasterizer) FillTriangle(s0, s1, s2 math3d.Vec3, c Color) (Status, int) {
	a, b, d := s0.XY(), s1.XY(), s2.XY()
	if a.HasNaN() || b.HasNaN() || d.HasNaN() {
		return NonFinite, 0
	}

	area := EdgeFunction(a, b, d)
	if !(math.Abs(area) >= r.Epsilon) {
		return Degenerate, 0
	}

	box := BoundingBox(s0, s1, s2, r.Width(), r.Height())
	if box.Empty() {
		return Offscreen, 0
	}

	z0, z1, z2 := float32(s0.Z), float32(s1.Z), float32(s2.Z)

	written := 0
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			p := math3d.V2(float64(x), float64(y))

			w0 := EdgeFunction(b, d, p) / area
			w1 := EdgeFunction(d, a, p) / area
			w2 := EdgeFunction(a, b, p) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z, ok := interpolateDepth(math3d.V3(w0, w1, w2), z0, z1, z2)
			if !ok || !r.depth.TestAndSet(x, y, z) {
				continue
			}
			r.fb.SetPixel(x, y, c)
			written++
		}
	}

	return Filled, written
}
