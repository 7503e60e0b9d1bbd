package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/fluidtype/internal/fluid"
	"github.com/olivier-w/fluidtype/internal/gui"
	"github.com/olivier-w/fluidtype/internal/sound"
	"github.com/olivier-w/fluidtype/internal/ui"
	"github.com/olivier-w/fluidtype/internal/visualizer"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := configFromFlags()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !*guiFlag && !knownVisualization(*vizFlag) {
		return fmt.Errorf("unknown renderer %q (available: %s)", *vizFlag, strings.Join(visualizationNames(), ", "))
	}

	switch {
	case *logFlag != "":
		f, err := tea.LogToFile(*logFlag, "fluidtype")
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
	case !*guiFlag:
		// The terminal belongs to the TUI.
		log.SetOutput(io.Discard)
	}

	var sounder fluid.Sounder
	var soundTitle string
	if *soundFlag || *sampleFlag != "" {
		p, err := sound.New(*sampleFlag)
		if err != nil {
			log.Printf("sound disabled: %v", err)
		} else {
			defer p.Close()
			sounder = p
			soundTitle = p.Title()
		}
	}

	text := strings.ReplaceAll(*textFlag, `\n`, "\n")

	if *guiFlag {
		return gui.Run(cfg, gui.Options{
			Text:         text,
			RestartDelay: *restartFlag,
			Sound:        sounder,
		})
	}

	model, err := ui.New(cfg, ui.Options{
		Text:          text,
		RestartDelay:  *restartFlag,
		Sound:         sounder,
		SoundTitle:    soundTitle,
		Visualization: *vizFlag,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func visualizationNames() []string {
	var names []string
	for _, v := range visualizer.Modes() {
		names = append(names, v.Name())
	}
	return names
}

func knownVisualization(name string) bool {
	for _, n := range visualizationNames() {
		if n == name {
			return true
		}
	}
	return false
}
