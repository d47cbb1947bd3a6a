// Package config holds facet's startup configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultFPS        = 60
	DefaultDZ         = 15.0
	DefaultMoveStep   = 0.2
	DefaultRotateStep = 0.05
	DefaultFitSize    = 2.0
)

// Config is read once at startup. Width and height are fixed for the run.
type Config struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	FPS        int          `yaml:"fps"`
	Background RGB          `yaml:"background"`
	Light      Vec          `yaml:"light"`
	Material   RGB          `yaml:"material"`
	Epsilon    float64      `yaml:"epsilon"`
	Initial    TransformCfg `yaml:"initial"`
	MoveStep   float64      `yaml:"move_step"`
	RotateStep float64      `yaml:"rotate_step"`
	Smooth     bool         `yaml:"smooth"`
	Wireframe  bool         `yaml:"wireframe"`
	Fit        bool         `yaml:"fit"`
	FitSize    float64      `yaml:"fit_size"`
}

// RGB is a color written as a three-element YAML list.
type RGB [3]uint8

// Color converts to an opaque render color.
func (c RGB) Color() render.Color {
	return render.RGB(c[0], c[1], c[2])
}

// Vec is a point written as a three-element YAML list.
type Vec [3]float64

// Vec3 converts to a math3d vector.
func (v Vec) Vec3() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// TransformCfg is the starting transform, angles in radians.
type TransformCfg struct {
	DX     float64 `yaml:"dx"`
	DY     float64 `yaml:"dy"`
	DZ     float64 `yaml:"dz"`
	AngleX float64 `yaml:"angle_x"`
	AngleY float64 `yaml:"angle_y"`
	AngleZ float64 `yaml:"angle_z"`
}

// Params converts to render params.
func (t TransformCfg) Params() render.Params {
	return render.Params{
		DX: t.DX, DY: t.DY, DZ: t.DZ,
		AngleX: t.AngleX, AngleY: t.AngleY, AngleZ: t.AngleZ,
	}
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() *Config {
	return &Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		FPS:        DefaultFPS,
		Background: RGB{0, 0, 0},
		Light:      Vec{10, 20, -10},
		Material:   RGB{255, 200, 50},
		Epsilon:    render.DefaultEpsilon,
		Initial:    TransformCfg{DZ: DefaultDZ},
		MoveStep:   DefaultMoveStep,
		RotateStep: DefaultRotateStep,
		FitSize:    DefaultFitSize,
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if c.Epsilon < 0 {
		errs = append(errs, fmt.Errorf("epsilon %v must not be negative", c.Epsilon))
	}
	if c.MoveStep <= 0 || c.RotateStep <= 0 {
		errs = append(errs, fmt.Errorf("steps must be positive"))
	}
	if c.Fit && c.FitSize <= 0 {
		errs = append(errs, fmt.Errorf("fit_size %v must be positive", c.FitSize))
	}
	return errors.Join(errs...)
}

// NewRenderer builds a renderer configured from c.
func (c *Config) NewRenderer() *render.Renderer {
	r := render.NewRenderer(c.Width, c.Height)
	r.Light = c.Light.Vec3()
	r.Material = c.Material.Color()
	r.Background = c.Background.Color()
	r.Raster.Epsilon = c.Epsilon
	r.Wireframe = c.Wireframe
	return r
}
