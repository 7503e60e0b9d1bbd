// Package reveal lays out a text mask on a character grid and tracks which
// of its cells the rising liquid has uncovered.
package reveal

import "strings"

// Cell is one glyph of the mask.
type Cell struct {
	Row     int
	Glyph   rune
	Opacity float64
}

// Mask is a multi-line text centred on a cols x rows grid. Cells are stored
// grouped by column with rows ascending.
type Mask struct {
	lines [][]rune
	cols  int
	rows  int

	cells    []Cell
	start    []int // cells of column c are cells[start[c]:start[c+1]]
	revealed []bool
	springs  springField

	top, bottom int
	shown       int
}

// New creates a mask for text whose opacity eases at the given frame rate.
func New(text string, fps int) *Mask {
	m := &Mask{springs: newSpringField(fps, 6.0, 1.0)}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		m.lines = append(m.lines, []rune(line))
	}
	m.Layout(0, 0)
	return m
}

// Layout centres the text on a new grid and clears the reveal state.
func (m *Mask) Layout(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	m.cols, m.rows = cols, rows
	m.cells = m.cells[:0]
	m.start = m.start[:0]
	m.top, m.bottom = -1, -1

	firstRow := (rows - len(m.lines)) / 2
	for c := range cols {
		m.start = append(m.start, len(m.cells))
		for li, line := range m.lines {
			row := firstRow + li
			if row < 0 || row >= rows {
				continue
			}
			col := c - (cols-len(line))/2
			if col < 0 || col >= len(line) || line[col] == ' ' {
				continue
			}
			m.cells = append(m.cells, Cell{Row: row, Glyph: line[col]})
			if m.top < 0 || row < m.top {
				m.top = row
			}
			if row > m.bottom {
				m.bottom = row
			}
		}
	}
	m.start = append(m.start, len(m.cells))

	if cap(m.revealed) >= len(m.cells) {
		m.revealed = m.revealed[:len(m.cells)]
	} else {
		m.revealed = make([]bool, len(m.cells))
	}
	m.springs.resize(len(m.cells))
	m.Reset()
}

// Reset hides every cell again.
func (m *Mask) Reset() {
	for i := range m.cells {
		m.cells[i].Opacity = 0
		m.revealed[i] = false
	}
	m.springs.zero()
	m.shown = 0
}

// Update reveals every cell whose centre the surface has reached. level
// returns the surface height at a column in row units. Revealed cells stay
// revealed until Reset.
func (m *Mask) Update(level func(col int) float64) {
	for c := range m.cols {
		lo, hi := m.start[c], m.start[c+1]
		if lo == hi {
			continue
		}
		surface := level(c)
		for i := lo; i < hi; i++ {
			if !m.revealed[i] && surface <= float64(m.cells[i].Row)+0.5 {
				m.revealed[i] = true
				m.shown++
			}
			target := 0.0
			if m.revealed[i] {
				target = 1
			}
			m.cells[i].Opacity = clamp01(m.springs.step(i, target))
		}
	}
}

// Column returns the cells of col in ascending row order.
func (m *Mask) Column(col int) []Cell {
	if col < 0 || col >= m.cols {
		return nil
	}
	return m.cells[m.start[col]:m.start[col+1]]
}

// At returns the cell at col,row if the mask has a glyph there.
func (m *Mask) At(col, row int) (Cell, bool) {
	for _, c := range m.Column(col) {
		if c.Row == row {
			return c, true
		}
		if c.Row > row {
			break
		}
	}
	return Cell{}, false
}

// Empty reports whether no glyph fits on the grid.
func (m *Mask) Empty() bool { return len(m.cells) == 0 }

// Top and Bottom are the first and last rows holding glyphs, -1 when empty.
func (m *Mask) Top() int    { return m.top }
func (m *Mask) Bottom() int { return m.bottom }

func (m *Mask) Size() (cols, rows int) { return m.cols, m.rows }

// Revealed is the fraction of cells uncovered so far.
func (m *Mask) Revealed() float64 {
	if len(m.cells) == 0 {
		return 1
	}
	return float64(m.shown) / float64(len(m.cells))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
