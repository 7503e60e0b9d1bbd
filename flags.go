package main

import (
	"flag"

	"github.com/olivier-w/fluidtype/internal/fluid"
)

var defaults = fluid.DefaultConfig()

var (
	textFlag     = flag.String("text", "FLUID", `text revealed by the rising liquid ("\n" separates lines)`)
	fillFlag     = flag.Duration("fill", defaults.FillDuration, "time for the liquid to fill the screen")
	fallFlag     = flag.Duration("fall", defaults.FallDuration, "time for a drop to fall the full height")
	intervalFlag = flag.Duration("interval", defaults.DropInterval, "delay between drops")
	dropsFlag    = flag.Int("drops", defaults.PoolSize, "maximum number of drops in the air")
	tpsFlag      = flag.Float64("tps", defaults.TickRate, "simulation ticks per second")
	seedFlag     = flag.Int64("seed", 0, "random seed for drops (0 picks one from the clock)")
	restartFlag  = flag.Duration("restart", 0, "restart the fill this long after it finishes (0 disables)")

	guiFlag    = flag.Bool("gui", false, "open a window instead of drawing in the terminal")
	soundFlag  = flag.Bool("sound", false, "play a sound for every impact")
	sampleFlag = flag.String("sample", "", "mp3, wav, flac or ogg file used as the impact sound")
	vizFlag    = flag.String("viz", "braille", "terminal renderer: braille or dense")
	logFlag    = flag.String("log", "", "append log output to this file")
)

// configFromFlags applies the command line to the default configuration.
func configFromFlags() fluid.Config {
	cfg := fluid.DefaultConfig()
	cfg.FillDuration = *fillFlag
	cfg.FallDuration = *fallFlag
	cfg.DropInterval = *intervalFlag
	cfg.PoolSize = *dropsFlag
	cfg.TickRate = *tpsFlag
	cfg.Seed = *seedFlag
	return cfg
}
