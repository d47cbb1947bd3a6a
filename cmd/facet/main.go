// facet - software-rasterized 3D mesh viewer
// Renders OBJ and GLB meshes with a flat-shaded, depth-buffered triangle
// rasterizer, in a window, in the terminal, or headless to an image.
//
// Controls:
//
//	W/S         - Move away from / toward the viewer (dz)
//	A/D         - Move left/right (dx)
//	Q/E         - Move down/up (dy)
//	Up/Down     - Rotate about X
//	Left/Right  - Rotate about Y
//	Z/X         - Rotate about Z
//	R           - Reset transform
//	F           - Toggle wireframe overlay
//	Esc         - Quit
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/config"
	"github.com/taigrr/facet/pkg/models"
)

var (
	configFile string
	width      int
	height     int
	fps        int
	fit        bool
	smooth     bool
	wireframe  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "facet",
		Short: "software-rasterized 3D mesh viewer",
		Long: "facet draws OBJ and GLB meshes with a flat-shaded z-buffered rasterizer.\n\n" +
			"Controls: W/S A/D Q/E move, arrows and Z/X rotate, R reset, F wireframe, Esc quit.",
		Args:          cobra.ExactArgs(1),
		RunE:          runView,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "YAML config file")
	pf.IntVar(&width, "width", config.DefaultWidth, "render target width in pixels")
	pf.IntVar(&height, "height", config.DefaultHeight, "render target height in pixels")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "target frames per second")
	pf.BoolVar(&fit, "fit", false, "recentre and rescale the mesh to a unit-ish size")
	pf.BoolVar(&smooth, "smooth", false, "ease transform changes with a spring")
	pf.BoolVar(&wireframe, "wireframe", false, "start with the wireframe overlay on")

	viewCmd := &cobra.Command{
		Use:   "view <mesh>",
		Short: "open a window and view a mesh (default)",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	rootCmd.AddCommand(viewCmd, newTermCmd(), newSnapshotCmd(), newBenchCmd(), newInfoCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, then applies flags the user set
// explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("fit") {
		cfg.Fit = fit
	}
	if flags.Changed("smooth") {
		cfg.Smooth = smooth
	}
	if flags.Changed("wireframe") {
		cfg.Wireframe = wireframe
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadMesh loads the mesh at path and applies the fit setting. Any failure
// here ends the run before a frame is drawn.
func loadMesh(path string, cfg *config.Config) (*models.Mesh, error) {
	mesh, err := models.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if cfg.Fit {
		mesh.Fit(cfg.FitSize)
	}
	return mesh, nil
}

// setup is the shared prologue of every command that renders.
func setup(cmd *cobra.Command, path string) (*config.Config, *models.Mesh, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	mesh, err := loadMesh(path, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, mesh, nil
}
