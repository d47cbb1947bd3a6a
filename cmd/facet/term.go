package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/engine"
	"github.com/taigrr/facet/pkg/input"
	"github.com/taigrr/facet/pkg/render"
)

var termHUD bool

func newTermCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term <mesh>",
		Short: "view a mesh in the terminal with half-block pixels",
		Args:  cobra.ExactArgs(1),
		RunE:  runTerm,
	}
	cmd.Flags().BoolVar(&termHUD, "hud", true, "show a status line")
	return cmd
}

// termFrame draws the scaled view plus an optional status line on the
// bottom row.
type termFrame struct {
	view *render.Framebuffer
	hud  string
}

func (f termFrame) Draw(scr uv.Screen, area uv.Rectangle) {
	f.view.Draw(scr, area)
	if f.hud != "" && area.Dy() > 0 {
		uv.NewStyledString(f.hud).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1))
	}
}

// fpsMeter averages frame rate over one-second windows.
type fpsMeter struct {
	fps    float64
	frames int
	since  time.Time
}

func (m *fpsMeter) tick() {
	m.frames++
	elapsed := time.Since(m.since)
	if elapsed >= time.Second {
		m.fps = float64(m.frames) / elapsed.Seconds()
		m.frames = 0
		m.since = time.Now()
	}
}

// screen is the part of the ultraviolet terminal that openScreen drives.
type screen interface {
	Start() error
	EnterAltScreen()
	ExitAltScreen()
	HideCursor()
	ShowCursor()
	Resize(width, height int) error
	Shutdown(ctx context.Context) error
}

// openScreen starts the terminal in the alternate screen at the given size.
// The returned cleanup restores the terminal; on error it has already run.
func openScreen(term screen, width, height int) (cleanup func(), err error) {
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()

	cleanup = func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	if err := term.Resize(width, height); err != nil {
		cleanup()
		return nil, fmt.Errorf("resize: %w", err)
	}
	return cleanup, nil
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, mesh, err := setup(cmd, args[0])
	if err != nil {
		return err
	}
	eng := engine.New(mesh, cfg)
	name := filepath.Base(args[0])

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	cleanup, err := openScreen(term, width, height)
	if err != nil {
		return err
	}
	defer cleanup()

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// The event goroutine only translates; the frame loop owns all state.
	keys := make(chan input.Key, 16)
	sizes := make(chan uv.Size, 1)
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				select {
				case <-sizes:
				default:
				}
				sizes <- uv.Size(ev)

			case uv.KeyPressEvent:
				if ev.MatchString("ctrl+c") {
					cancel()
					return
				}
				for _, k := range input.Keys() {
					if ev.MatchString(k.String()) {
						select {
						case keys <- k:
						case <-ctx.Done():
							return
						}
						break
					}
				}
			}
		}
	}()

	// The engine renders at the configured size; the view is that frame
	// resampled to the terminal, two pixels per cell.
	view := render.NewFramebuffer(width, height*2)
	meter := &fpsMeter{since: time.Now()}

	present := func(fb *render.Framebuffer, st render.Stats) error {
		select {
		case sz := <-sizes:
			width, height = sz.Width, sz.Height
			term.Erase()
			if err := term.Resize(width, height); err != nil {
				return fmt.Errorf("resize: %w", err)
			}
			view = render.NewFramebuffer(width, height*2)
		default:
		}

		fb.ScaleInto(view)
		meter.tick()

		frame := termFrame{view: view}
		if termHUD {
			frame.hud = hudStyle.Render(fmt.Sprintf(" %s  %.0f FPS  %d faces  %d px ", name, meter.fps, st.Faces, st.Pixels))
		}
		term.Draw(frame)
		if err := term.Display(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
		return nil
	}

	return eng.Run(ctx, keys, present)
}
