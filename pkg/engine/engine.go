// Package engine runs the facet frame loop: input between frames, one
// render per tick, present, then sleep out the rest of the interval.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/taigrr/facet/pkg/config"
	"github.com/taigrr/facet/pkg/input"
	"github.com/taigrr/facet/pkg/render"
)

// PresentFunc shows a finished frame. Returning an error stops Run.
type PresentFunc func(fb *render.Framebuffer, st render.Stats) error

// Engine owns the transform exclusively. Input is applied only between
// frames, so a frame always renders one consistent set of params.
type Engine struct {
	mesh     render.Mesh
	renderer *render.Renderer
	ctrl     *input.Controller
	smoother *input.Smoother

	params   render.Params // key-driven target
	shown    render.Params // what the last frame rendered
	interval time.Duration
	frames   int
	last     render.Stats
}

// New creates an engine drawing mesh with the settings in cfg.
func New(mesh render.Mesh, cfg *config.Config) *Engine {
	initial := cfg.Initial.Params()
	e := &Engine{
		mesh:     mesh,
		renderer: cfg.NewRenderer(),
		ctrl:     input.NewController(initial, cfg.MoveStep, cfg.RotateStep),
		params:   initial,
		shown:    initial,
		interval: time.Second / time.Duration(cfg.FPS),
	}
	if cfg.Smooth {
		e.smoother = input.NewSmoother(cfg.FPS, initial)
	}
	return e
}

// Handle applies one key press. It reports whether the key asked to quit.
func (e *Engine) Handle(k input.Key) bool {
	switch e.ctrl.Apply(&e.params, k) {
	case input.ActionQuit:
		return true
	case input.ActionToggleWireframe:
		e.renderer.Wireframe = !e.renderer.Wireframe
	case input.ActionReset:
		if e.smoother != nil {
			e.smoother.Snap(e.params)
		}
	}
	return false
}

// Frame renders one frame from the current params.
func (e *Engine) Frame() render.Stats {
	e.shown = e.params
	if e.smoother != nil {
		e.shown = e.smoother.Step(e.params)
	}
	e.last = e.renderer.Render(e.mesh, e.shown)
	e.frames++
	return e.last
}

// Params returns the key-driven transform.
func (e *Engine) Params() render.Params { return e.params }

// SetParams replaces the key-driven transform.
func (e *Engine) SetParams(p render.Params) { e.params = p }

// Shown returns the transform the last frame was rendered with.
func (e *Engine) Shown() render.Params { return e.shown }

// Framebuffer returns the color surface frames are drawn into.
func (e *Engine) Framebuffer() *render.Framebuffer { return e.renderer.FB }

// Renderer returns the underlying renderer.
func (e *Engine) Renderer() *render.Renderer { return e.renderer }

// Frames returns how many frames have been rendered.
func (e *Engine) Frames() int { return e.frames }

// LastStats returns the stats of the most recent frame.
func (e *Engine) LastStats() render.Stats { return e.last }

// Interval returns the target time between frames.
func (e *Engine) Interval() time.Duration { return e.interval }

// Run loops until ctx is done, a quit key arrives, or present fails.
// Pending keys are drained before each frame. Pacing is sleep based: each
// iteration sleeps whatever is left of the interval after rendering and
// presenting, so slow frames simply run late.
func (e *Engine) Run(ctx context.Context, keys <-chan input.Key, present PresentFunc) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()

	drain:
		for {
			select {
			case k, ok := <-keys:
				if !ok {
					keys = nil
					break drain
				}
				if e.Handle(k) {
					return nil
				}
			default:
				break drain
			}
		}

		st := e.Frame()
		if err := present(e.renderer.FB, st); err != nil {
			return fmt.Errorf("present: %w", err)
		}

		wait := e.interval - time.Since(start)
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}
