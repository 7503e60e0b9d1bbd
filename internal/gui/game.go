// Package gui hosts the liquid in a desktop window.
package gui

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/olivier-w/fluidtype/internal/fluid"
	"github.com/olivier-w/fluidtype/internal/reveal"
)

const (
	pixelScale  = 2 // window pixels per stage pixel
	glyphWidth  = 8 // stage pixels per text column
	glyphHeight = 16
)

// Options configure the window host.
type Options struct {
	Text         string
	RestartDelay time.Duration
	Sound        fluid.Sounder
	Width        int // initial window size in window pixels
	Height       int
}

// Game drives a Simulation from the Ebiten loop.
type Game struct {
	sim  *fluid.Simulation
	mask *reveal.Mask

	w, h   int // stage size in pixels
	pixels []byte
	glyphs map[rune]*ebiten.Image

	sound  fluid.Sounder
	muted  bool
	paused bool
	status bool

	restartTicks  int
	finishedTicks int
	fills         int

	heights []float64
	drops   []fluid.DropState
}

// New builds a game for the initial window size.
func New(cfg fluid.Config, opts Options) (*Game, error) {
	if opts.Width <= 0 {
		opts.Width = 960
	}
	if opts.Height <= 0 {
		opts.Height = 540
	}
	w, h := max(1, opts.Width/pixelScale), max(1, opts.Height/pixelScale)
	sim, err := fluid.New(cfg, fluid.StageSize{Width: w, Height: h}, float64(h))
	if err != nil {
		return nil, err
	}

	g := &Game{
		sim:    sim,
		mask:   reveal.New(opts.Text, int(math.Round(cfg.TickRate))),
		glyphs: make(map[rune]*ebiten.Image),
		sound:  opts.Sound,
		status: true,
	}
	if opts.RestartDelay > 0 {
		g.restartTicks = int(math.Ceil(opts.RestartDelay.Seconds() * cfg.TickRate))
	}
	g.fit(w, h)
	g.sim.Start()
	g.fills = 1
	return g, nil
}

// Run opens the window and blocks until it closes.
func Run(cfg fluid.Config, opts Options) error {
	g, err := New(cfg, opts)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(g.w*pixelScale, g.h*pixelScale)
	ebiten.SetWindowTitle("fluidtype")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ticksPerSecond(cfg.TickRate))

	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// ticksPerSecond rounds a tick rate for ebiten, which needs at least 1.
func ticksPerSecond(rate float64) int {
	return max(1, int(math.Round(rate)))
}

// Update advances one tick and handles keys.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.restart("manual")
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.toggleMute()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.status = !g.status
	}
	if !g.paused {
		g.step()
	}
	return nil
}

// Layout reports the logical screen size and refits the stage when the
// window changes size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(1, outsideWidth/pixelScale), max(1, outsideHeight/pixelScale)
	if w != g.w || h != g.h {
		g.fit(w, h)
	}
	return g.w, g.h
}

func (g *Game) fit(w, h int) {
	if err := g.sim.Resize(fluid.StageSize{Width: w, Height: h}, float64(h)); err != nil {
		log.Printf("resize %dx%d: %v", w, h, err)
		return
	}
	g.w, g.h = w, h
	g.pixels = make([]byte, w*h*4)
	g.mask.Layout(w/glyphWidth, h/glyphHeight)
	if g.mask.Empty() {
		g.sim.SetRevealHeight(math.Inf(1))
	} else {
		g.sim.SetRevealHeight(float64((g.mask.Bottom() + 1) * glyphHeight))
	}
	g.finishedTicks = 0
}

func (g *Game) step() {
	before := g.sim.State()
	state := g.sim.Tick()
	if g.sound != nil {
		for _, imp := range g.sim.Impacts() {
			g.sound.Play(imp.Weight)
		}
	}
	g.mask.Update(g.levelAt)

	if state == fluid.StateFinished {
		if before != fluid.StateFinished {
			log.Printf("fill %d finished after %d ticks", g.fills, g.sim.Ticks())
		}
		g.finishedTicks++
		if g.restartTicks > 0 && g.finishedTicks >= g.restartTicks {
			g.restart("auto")
		}
	}
}

func (g *Game) restart(reason string) {
	g.sim.Restart()
	g.mask.Reset()
	g.finishedTicks = 0
	g.fills++
	log.Printf("fill %d started (%s restart)", g.fills, reason)
}

func (g *Game) toggleMute() {
	if g.sound != nil {
		g.muted = g.sound.ToggleMute()
	}
}

// levelAt returns the surface height under a text column in glyph rows.
func (g *Game) levelAt(col int) float64 {
	x := (float64(col) + 0.5) * glyphWidth
	return g.sim.Field().HeightAt(x) / glyphHeight
}
