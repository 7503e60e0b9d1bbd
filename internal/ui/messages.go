package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// tickInterval converts a tick rate to the delay between frames.
func tickInterval(rate float64) time.Duration {
	if rate <= 0 {
		return time.Second / 60
	}
	return time.Duration(float64(time.Second) / rate)
}
