package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/olivier-w/fluidtype/internal/fluid"
)

// chromeRows is the number of terminal rows below the liquid.
const chromeRows = 2

func newFillBar() progress.Model {
	return progress.New(
		progress.WithScaledGradient("#4FC3F7", "#0277BD"),
		progress.WithoutPercentage(),
	)
}

func fillBarWidth(cols int) int {
	w := cols / 3
	if w < 10 {
		w = 10
	}
	if w > 40 {
		w = 40
	}
	return w
}

func stateIcon(s fluid.State, paused bool) string {
	if paused {
		return "❚❚"
	}
	switch s {
	case fluid.StateFilling:
		return "▶"
	case fluid.StateFinished:
		return "■"
	}
	return "·"
}

func renderPercent(p float64) string {
	return fmt.Sprintf("%3d%%", int(p*100+0.5))
}
