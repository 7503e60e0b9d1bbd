package visualizer

import (
	"math"

	"github.com/olivier-w/fluidtype/internal/fluid"
	"github.com/olivier-w/fluidtype/internal/reveal"
)

// Each character cell covers CellWidth x CellHeight stage pixels.
const (
	CellWidth  = 2
	CellHeight = 4
)

// Frame is one snapshot of the simulation in stage pixels.
type Frame struct {
	Heights  []float64 // surface height per sample
	Interval float64   // horizontal distance between samples
	Drops    []fluid.DropState
	Mask     *reveal.Mask
	Cols     int
	Rows     int
}

// StageFor returns the stage that fills a cols x rows character grid.
func StageFor(cols, rows int) fluid.StageSize {
	return fluid.StageSize{Width: cols * CellWidth, Height: rows * CellHeight}
}

// surfaceAt returns the height of the sample nearest x.
func (f *Frame) surfaceAt(x float64) float64 {
	n := len(f.Heights)
	if n == 0 {
		return math.Inf(1)
	}
	if f.Interval <= 0 {
		return f.Heights[0]
	}
	i := int(math.Round(x / f.Interval))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return f.Heights[i]
}

// dropAt reports whether pixel x,y lies inside a falling drop.
func (f *Frame) dropAt(x, y float64) bool {
	for _, d := range f.Drops {
		if !d.Active {
			continue
		}
		r := d.Size / 2
		dx, dy := x-d.X, y-d.Y
		if dx*dx+dy*dy <= r*r {
			return true
		}
	}
	return false
}

// glyph returns the revealed mask glyph at col,row, if any.
func (f *Frame) glyph(col, row int) (reveal.Cell, bool) {
	if f.Mask == nil {
		return reveal.Cell{}, false
	}
	c, ok := f.Mask.At(col, row)
	if !ok || c.Opacity < 0.5 {
		return reveal.Cell{}, false
	}
	return c, true
}

// Visualizer renders a Frame as terminal text.
type Visualizer interface {
	Name() string
	Update(f *Frame)
	View() string
}

// Modes returns all available visualizers.
func Modes() []Visualizer {
	return []Visualizer{
		NewBraille(),
		NewDense(),
	}
}
