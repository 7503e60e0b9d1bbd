package gui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/olivier-w/fluidtype/internal/fluid"
)

var (
	airColor     = color.RGBA{8, 10, 20, 255}
	surfaceColor = color.RGBA{120, 210, 255, 255}
	deepColor    = color.RGBA{10, 40, 120, 255}
	dropColor    = color.RGBA{200, 240, 255, 255}
)

// Draw renders the liquid, the falling drops, the revealed text and the
// status overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	field := g.sim.Field()
	g.heights = field.Heights(g.heights)
	g.drops = g.drops[:0]
	g.sim.EachDrop(func(d fluid.DropState) {
		g.drops = append(g.drops, d)
	})

	fillPixels(g.pixels, g.w, g.h, g.heights, field.VertexInterval(), g.drops)
	if len(g.pixels) == g.w*g.h*4 {
		screen.WritePixels(g.pixels)
	}
	g.drawMask(screen)

	if g.status {
		msg := fmt.Sprintf("%s %3.0f%%  TPS %.0f  drops %d/%d",
			g.stateLabel(), g.sim.Progress()*100, ebiten.ActualTPS(), g.sim.InFlight(), g.sim.Capacity())
		if g.sound != nil && g.muted {
			msg += "  muted"
		}
		ebitenutil.DebugPrintAt(screen, msg, 2, 2)
	}
}

func (g *Game) stateLabel() string {
	if g.paused {
		return "paused"
	}
	return g.sim.State().String()
}

// drawMask blends each revealed glyph at its eased opacity.
func (g *Game) drawMask(screen *ebiten.Image) {
	cols, rows := g.mask.Size()
	for col := range cols {
		for _, c := range g.mask.Column(col) {
			if c.Opacity <= 0 || c.Row >= rows {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(col*glyphWidth+1), float64(c.Row*glyphHeight))
			op.ColorScale.ScaleAlpha(float32(c.Opacity))
			screen.DrawImage(g.glyph(c.Glyph), op)
		}
	}
}

func (g *Game) glyph(r rune) *ebiten.Image {
	img, ok := g.glyphs[r]
	if !ok {
		img = ebiten.NewImage(glyphWidth, glyphHeight)
		ebitenutil.DebugPrint(img, string(r))
		g.glyphs[r] = img
	}
	return img
}

// fillPixels paints an RGBA buffer of w x h pixels: air above the surface,
// a depth gradient below it, and drops on top.
func fillPixels(buf []byte, w, h int, heights []float64, interval float64, drops []fluid.DropState) {
	if len(buf) < w*h*4 || w <= 0 || h <= 0 {
		return
	}
	for x := range w {
		surface := math.Inf(1)
		if n := len(heights); n > 0 {
			i := 0
			if interval > 0 {
				i = int(math.Round(float64(x) / interval))
			}
			surface = heights[min(max(i, 0), n-1)]
		}
		for y := range h {
			c := airColor
			if fy := float64(y); fy >= surface {
				c = lerpRGBA(surfaceColor, deepColor, (fy-surface)/float64(h))
			}
			setPixel(buf, w, x, y, c)
		}
	}

	for _, d := range drops {
		if !d.Active {
			continue
		}
		r := d.Size / 2
		x0, x1 := int(math.Floor(d.X-r)), int(math.Ceil(d.X+r))
		y0, y1 := int(math.Floor(d.Y-r)), int(math.Ceil(d.Y+r))
		for y := max(y0, 0); y <= min(y1, h-1); y++ {
			for x := max(x0, 0); x <= min(x1, w-1); x++ {
				dx, dy := float64(x)-d.X, float64(y)-d.Y
				if dx*dx+dy*dy <= r*r {
					setPixel(buf, w, x, y, dropColor)
				}
			}
		}
	}
}

func setPixel(buf []byte, w, x, y int, c color.RGBA) {
	base := (y*w + x) * 4
	buf[base] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
