package visualizer

import (
	"strings"
)

var densityRamp = []byte(" .:-=+*#%@")

// Dense renders the liquid with ASCII density characters, dense at the
// bottom of the stage and sparse at the surface.
type Dense struct {
	output  string
	profile colorProfile
}

func NewDense() *Dense {
	return &Dense{profile: currentColorProfile()}
}

func (d *Dense) Name() string { return "dense" }

func (d *Dense) Update(f *Frame) {
	if f.Cols < 1 || f.Rows < 1 {
		d.output = ""
		return
	}
	stageH := float64(f.Rows * CellHeight)
	rampLen := len(densityRamp)

	var out strings.Builder
	color := newANSIStateFor(d.profile)
	for row := range f.Rows {
		if row > 0 {
			color.reset(&out)
			out.WriteByte('\n')
		}
		top := float64(row * CellHeight)
		bottom := top + CellHeight
		for col := range f.Cols {
			if g, ok := f.glyph(col, row); ok {
				color.set(&out, textColor(g.Opacity))
				out.WriteRune(g.Glyph)
				continue
			}
			x := float64(col*CellWidth) + CellWidth/2.0
			if f.dropAt(x, top+CellHeight/2.0) {
				color.set(&out, dropColor)
				out.WriteByte('o')
				continue
			}

			surface := f.surfaceAt(x)
			var ch byte
			switch {
			case surface >= bottom:
				ch = ' '
			case surface <= top:
				// Below the surface: density based on depth
				depth := (bottom - surface) / stageH
				idx := 1 + int(depth*float64(rampLen-2))
				if idx >= rampLen {
					idx = rampLen - 1
				}
				ch = densityRamp[idx]
			default:
				// At the surface edge: partial fill
				idx := int((bottom - surface) / CellHeight * float64(rampLen-1) / 3)
				if idx < 1 {
					idx = 1
				}
				ch = densityRamp[idx]
			}
			if ch == ' ' {
				out.WriteByte(ch)
				continue
			}
			color.set(&out, waterColor((top-surface)/stageH))
			out.WriteByte(ch)
		}
	}
	color.reset(&out)
	d.output = out.String()
}

func (d *Dense) View() string {
	return d.output
}
