package ui

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/fluidtype/internal/fluid"
	"github.com/olivier-w/fluidtype/internal/reveal"
	"github.com/olivier-w/fluidtype/internal/util"
	"github.com/olivier-w/fluidtype/internal/visualizer"
)

// Options configure the terminal host.
type Options struct {
	Text          string
	RestartDelay  time.Duration // 0 keeps the finished surface on screen
	Sound         fluid.Sounder // nil disables sound
	SoundTitle    string
	Visualization string // initial renderer name
}

// Model is the Bubbletea model for the fluidtype TUI.
type Model struct {
	sim      *fluid.Simulation
	mask     *reveal.Mask
	modes    []visualizer.Visualizer
	mode     int
	bar      progress.Model
	interval time.Duration

	sound      fluid.Sounder
	soundTitle string
	muted      bool

	width    int
	height   int
	ready    bool
	paused   bool
	quitting bool

	restartTicks  int // ticks spent finished before restarting, 0 disables
	finishedTicks int
	fills         int

	heights []float64
	drops   []fluid.DropState
	frame   visualizer.Frame
}

// New builds an idle model. The simulation starts on the first window size.
func New(cfg fluid.Config, opts Options) (Model, error) {
	sim, err := fluid.New(cfg, visualizer.StageFor(80, 22), float64(22*visualizer.CellHeight))
	if err != nil {
		return Model{}, err
	}

	m := Model{
		sim:        sim,
		mask:       reveal.New(opts.Text, int(math.Round(cfg.TickRate))),
		modes:      visualizer.Modes(),
		bar:        newFillBar(),
		interval:   tickInterval(cfg.TickRate),
		sound:      opts.Sound,
		soundTitle: opts.SoundTitle,
	}
	if opts.RestartDelay > 0 {
		m.restartTicks = int(math.Ceil(opts.RestartDelay.Seconds() * cfg.TickRate))
	}
	for i, v := range m.modes {
		if v.Name() == opts.Visualization {
			m.mode = i
		}
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), tea.SetWindowTitle("fluidtype"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		switch msg.String() {
		case " ":
			m.paused = !m.paused
		case "r":
			m.restart("manual")
			m.render()
		case "v":
			m.mode = (m.mode + 1) % len(m.modes)
			m.render()
		case "m":
			if m.sound != nil {
				m.muted = m.sound.ToggleMute()
			}
		}
		return m, nil

	case tickMsg:
		if m.ready && !m.paused {
			m.step()
		}
		return m, tickCmd(m.interval)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// resize fits the stage and the text to the terminal, leaving room for the
// status lines.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	rows := height - chromeRows
	if width < 1 || rows < 1 {
		return
	}

	stage := visualizer.StageFor(width, rows)
	if err := m.sim.Resize(stage, float64(stage.Height)); err != nil {
		log.Printf("resize %dx%d: %v", width, height, err)
		return
	}
	m.mask.Layout(width, rows)
	m.updateRevealHeight()
	m.bar.Width = fillBarWidth(width)
	m.finishedTicks = 0

	if !m.ready {
		m.ready = true
		m.sim.Start()
		m.fills = 1
		log.Printf("fill started on %dx%d stage", stage.Width, stage.Height)
	}
	m.render()
}

// updateRevealHeight holds drops back until the liquid reaches the lowest
// row of text.
func (m *Model) updateRevealHeight() {
	if m.mask.Empty() {
		m.sim.SetRevealHeight(math.Inf(1))
		return
	}
	m.sim.SetRevealHeight(float64((m.mask.Bottom() + 1) * visualizer.CellHeight))
}

func (m *Model) step() {
	before := m.sim.State()
	state := m.sim.Tick()
	if m.sound != nil {
		for _, imp := range m.sim.Impacts() {
			m.sound.Play(imp.Weight)
		}
	}
	m.mask.Update(m.levelAt)

	if state == fluid.StateFinished {
		if before != fluid.StateFinished {
			log.Printf("fill %d finished after %d ticks", m.fills, m.sim.Ticks())
		}
		m.finishedTicks++
		if m.restartTicks > 0 && m.finishedTicks >= m.restartTicks {
			m.restart("auto")
		}
	}
	m.render()
}

func (m *Model) restart(reason string) {
	m.sim.Restart()
	m.mask.Reset()
	m.finishedTicks = 0
	m.fills++
	log.Printf("fill %d started (%s restart)", m.fills, reason)
}

// levelAt returns the surface height under the centre of a column in rows.
func (m *Model) levelAt(col int) float64 {
	x := (float64(col) + 0.5) * visualizer.CellWidth
	return m.sim.Field().HeightAt(x) / visualizer.CellHeight
}

func (m *Model) render() {
	if !m.ready {
		return
	}
	field := m.sim.Field()
	m.heights = field.Heights(m.heights)
	m.drops = m.drops[:0]
	m.sim.EachDrop(func(d fluid.DropState) {
		m.drops = append(m.drops, d)
	})

	stage := m.sim.Stage()
	m.frame = visualizer.Frame{
		Heights:  m.heights,
		Interval: field.VertexInterval(),
		Drops:    m.drops,
		Mask:     m.mask,
		Cols:     stage.Width / visualizer.CellWidth,
		Rows:     stage.Height / visualizer.CellHeight,
	}
	m.modes[m.mode].Update(&m.frame)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  " + headerStyle.Render("fluidtype") + "\n"
	}

	art := m.modes[m.mode].View()
	return art + "\n" + m.statusLine() + "\n" + "  " + helpStyle.Render(helpText(m.sound != nil))
}

func (m Model) statusLine() string {
	state := m.sim.State()
	left := fmt.Sprintf("%s %s", stateIcon(state, m.paused), state)
	if m.paused {
		left = fmt.Sprintf("%s paused", stateIcon(state, m.paused))
	}

	filled := m.sim.Progress()
	fill := m.bar.ViewAs(filled) + " " + renderPercent(filled)

	remaining := ""
	if state == fluid.StateFilling {
		remaining = timeStyle.Render(util.FormatDuration(m.sim.Remaining()) + " left")
	}

	right := m.modes[m.mode].Name()
	if m.sound != nil {
		voice := "♪ " + m.soundTitle
		if m.muted {
			voice = "♪ muted"
		}
		right += "  " + voice
	}

	line := "  " + headerStyle.Render("fluidtype") + "  " + statusStyle.Render(left) + "  " + fill
	if remaining != "" {
		line += "  " + remaining
	}
	return line + "  " + statusStyle.Render(right)
}
