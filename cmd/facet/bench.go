package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/engine"
	"github.com/taigrr/facet/pkg/render"
)

var (
	benchFrames int
	benchSpin   float64
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench <mesh>",
		Short: "render frames as fast as possible and report frame times",
		Args:  cobra.ExactArgs(1),
		RunE:  runBench,
	}
	cmd.Flags().IntVar(&benchFrames, "frames", 300, "frames to render")
	cmd.Flags().Float64Var(&benchSpin, "spin", 0.02, "Y rotation per frame in radians")
	return cmd
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchFrames <= 0 {
		return fmt.Errorf("frames %d must be positive", benchFrames)
	}

	cfg, mesh, err := setup(cmd, args[0])
	if err != nil {
		return err
	}
	eng := engine.New(mesh, cfg)

	times := make([]float64, benchFrames)
	var total render.Stats
	start := time.Now()
	for i := range benchFrames {
		p := eng.Params()
		p.AngleY += benchSpin
		eng.SetParams(p)

		t0 := time.Now()
		total.Add(eng.Frame())
		times[i] = float64(time.Since(t0).Microseconds()) / 1000
	}
	elapsed := time.Since(start)

	sorted := slices.Clone(times)
	slices.Sort(sorted)
	mean := elapsed.Seconds() * 1000 / float64(benchFrames)

	graph := asciigraph.Plot(times,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("frame time (ms)"),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("facet bench: "+filepath.Base(args[0])) + "\n")
	b.WriteString(row("resolution", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)) + "\n")
	b.WriteString(row("frames", benchFrames) + "\n")
	b.WriteString(row("mean", fmt.Sprintf("%.2f ms (%.0f FPS)", mean, 1000/mean)) + "\n")
	b.WriteString(row("p50", fmt.Sprintf("%.2f ms", percentile(sorted, 0.50))) + "\n")
	b.WriteString(row("p99", fmt.Sprintf("%.2f ms", percentile(sorted, 0.99))) + "\n")
	b.WriteString(row("pixels/frame", total.Pixels/benchFrames) + "\n")
	b.WriteString(row("degenerate", total.Degenerate/benchFrames) + "\n")
	b.WriteString(row("skipped", total.Skipped/benchFrames))

	fmt.Println(panelStyle.Render(b.String()))
	fmt.Println(graph)
	return nil
}

// percentile returns the q-quantile of sorted by nearest rank.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	i := int(q*float64(len(sorted))+0.5) - 1
	return sorted[max(0, min(i, len(sorted)-1))]
}
