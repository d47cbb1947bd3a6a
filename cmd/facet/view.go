package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/engine"
	"github.com/taigrr/facet/pkg/input"
)

// windowKeys maps ebiten keys onto controller keys.
var windowKeys = []struct {
	key ebiten.Key
	in  input.Key
}{
	{ebiten.KeyW, input.KeyW},
	{ebiten.KeyS, input.KeyS},
	{ebiten.KeyA, input.KeyA},
	{ebiten.KeyD, input.KeyD},
	{ebiten.KeyQ, input.KeyQ},
	{ebiten.KeyE, input.KeyE},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyZ, input.KeyZ},
	{ebiten.KeyX, input.KeyX},
	{ebiten.KeyR, input.KeyR},
	{ebiten.KeyF, input.KeyF},
	{ebiten.KeyEscape, input.KeyEscape},
}

// Held keys repeat like a typematic keyboard: once on press, then every
// repeatEvery ticks after repeatDelay.
const (
	repeatDelay = 20
	repeatEvery = 3
)

func runView(cmd *cobra.Command, args []string) error {
	cfg, mesh, err := setup(cmd, args[0])
	if err != nil {
		return err
	}

	g := &windowGame{
		eng:   engine.New(mesh, cfg),
		title: filepath.Base(args[0]),
	}
	fb := g.eng.Framebuffer()
	g.img = ebiten.NewImage(fb.Width, fb.Height)
	g.pix = make([]byte, 4*fb.Width*fb.Height)

	ebiten.SetWindowTitle("facet - " + g.title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// windowGame drives the engine from ebiten's tick. ebiten paces Update at
// the configured TPS, so the engine's own sleep loop is not used here.
type windowGame struct {
	eng   *engine.Engine
	title string
	img   *ebiten.Image
	pix   []byte
}

func (g *windowGame) Update() error {
	for _, k := range windowKeys {
		if !repeating(inpututil.KeyPressDuration(k.key)) {
			continue
		}
		if g.eng.Handle(k.in) {
			return ebiten.Termination
		}
	}
	g.eng.Frame()
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	g.eng.Framebuffer().CopyRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)

	st := g.eng.LastStats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %.0f FPS  %d faces  %d px",
		g.title, ebiten.ActualFPS(), st.Faces, st.Pixels))
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.eng.Framebuffer()
	return fb.Width, fb.Height
}

// repeating reports whether a key held for d ticks fires this tick.
func repeating(d int) bool {
	if d == 1 {
		return true
	}
	return d > repeatDelay && (d-repeatDelay)%repeatEvery == 0
}
