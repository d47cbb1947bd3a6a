package input

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/facet/pkg/render"
)

// axis is one spring-driven value and its velocity.
type axis struct {
	pos, vel float64
}

// Smoother eases the displayed transform toward the key-driven target with a
// critically damped spring, one step per frame. The target is never
// modified.
type Smoother struct {
	spring harmonica.Spring
	axes   [6]axis
}

// NewSmoother creates a smoother ticking at fps that starts at p.
func NewSmoother(fps int, p render.Params) *Smoother {
	s := &Smoother{
		// Frequency 6.0 settles a step in a few frames; damping 1.0 = no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
	s.Snap(p)
	return s
}

// Snap jumps straight to p and stops all motion.
func (s *Smoother) Snap(p render.Params) {
	for i, v := range fields(p) {
		s.axes[i] = axis{pos: v}
	}
}

// Step advances one frame toward target and returns the displayed params.
func (s *Smoother) Step(target render.Params) render.Params {
	t := fields(target)
	var out [6]float64
	for i := range s.axes {
		a := &s.axes[i]
		a.pos, a.vel = s.spring.Update(a.pos, a.vel, t[i])
		out[i] = a.pos
	}
	return render.Params{
		DX: out[0], DY: out[1], DZ: out[2],
		AngleX: out[3], AngleY: out[4], AngleZ: out[5],
	}
}

func fields(p render.Params) [6]float64 {
	return [6]float64{p.DX, p.DY, p.DZ, p.AngleX, p.AngleY, p.AngleZ}
}
