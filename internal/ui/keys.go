package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(hasSound bool) string {
	s := "space pause  r restart  v viz"
	if hasSound {
		s += "  m mute"
	}
	s += "  q quit"
	return s
}
