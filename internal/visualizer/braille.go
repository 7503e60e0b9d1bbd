package visualizer

import (
	"strings"
)

// Braille renders the surface with Unicode Braille characters. Each cell is
// a 2x4 dot grid, one dot per stage pixel.
type Braille struct {
	output  string
	profile colorProfile
}

func NewBraille() *Braille {
	return &Braille{profile: currentColorProfile()}
}

func (b *Braille) Name() string { return "braille" }

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

func (b *Braille) Update(f *Frame) {
	if f.Cols < 1 || f.Rows < 1 {
		b.output = ""
		return
	}
	stageH := float64(f.Rows * CellHeight)

	var out strings.Builder
	color := newANSIStateFor(b.profile)
	for row := range f.Rows {
		if row > 0 {
			color.reset(&out)
			out.WriteByte('\n')
		}
		for col := range f.Cols {
			if g, ok := f.glyph(col, row); ok {
				color.set(&out, textColor(g.Opacity))
				out.WriteRune(g.Glyph)
				continue
			}

			var pattern uint
			var drop bool
			depth := -1.0
			for dx := range CellWidth {
				x := float64(col*CellWidth + dx)
				surface := f.surfaceAt(x)
				for dy := range CellHeight {
					y := float64(row*CellHeight + dy)
					switch {
					case f.dropAt(x, y):
						pattern |= 1 << brailleBits[dx][dy]
						drop = true
					case y >= surface:
						pattern |= 1 << brailleBits[dx][dy]
						if d := (y - surface) / stageH; depth < 0 || d < depth {
							depth = d
						}
					}
				}
			}
			switch {
			case pattern == 0:
				out.WriteByte(' ')
				continue
			case drop:
				color.set(&out, dropColor)
			default:
				color.set(&out, waterColor(depth))
			}
			out.WriteRune(rune(0x2800 + pattern))
		}
	}
	color.reset(&out)
	b.output = out.String()
}

func (b *Braille) View() string {
	return b.output
}
