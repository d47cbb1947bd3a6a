package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// FlatIntensity returns the Lambert term of world-space triangle (w0, w1, w2)
// lit by a point light: max(0, n·l) with n the normalized (w1-w0)×(w2-w0)
// and l the normalized direction from w0 to the light. The normal is not
// flipped, so triangles facing away from the light come out at 0.
func FlatIntensity(w0, w1, w2, light math3d.Vec3) float64 {
	normal := w1.Sub(w0).Cross(w2.Sub(w0)).Normalize()
	dir := light.Sub(w0).Normalize()
	i := normal.Dot(dir)
	if !(i > 0) {
		return 0
	}
	return math.Min(i, 1)
}

// Shade scales each channel of the material by intensity. The result is
// opaque.
func Shade(material Color, intensity float64) Color {
	if !(intensity > 0) {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	return RGB(
		uint8(float64(material.R)*intensity),
		uint8(float64(material.G)*intensity),
		uint8(float64(material.B)*intensity),
	)
}
