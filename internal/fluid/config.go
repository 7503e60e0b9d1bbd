package fluid

import (
	"math"
	"time"
)

// StageSize is the pixel extent of the simulated area.
type StageSize struct {
	Width  int
	Height int
}

func (s StageSize) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return invalidf("StageSize", "extents must be positive, got %dx%d", s.Width, s.Height)
	}
	return nil
}

// Config holds every tunable of the simulation.
type Config struct {
	TickRate     float64       // ticks per second
	FillDuration time.Duration // time for the baseline to rise from the bottom to the top
	FallDuration time.Duration // time for a dropped body to cross the stage
	DropInterval time.Duration // cadence of fall attempts
	PoolSize     int

	VertexSpacing float64 // target distance between samples
	StartOffset   float64 // resting height below the bottom position

	Friction float64
	Ease     float64

	DecayStep     float64 // propagation ratio gained per hop
	DecayHops     int     // hop distance past which the ratio stops growing
	RippleDamping float64 // per tick multiplier of every wave target

	FinishHeight float64 // the fill is complete once the baseline is above this
	SpawnHeight  float64 // bodies spawn this many radii above the stage top
	MinDropSize  float64
	Weights      WeightTable

	Seed int64 // 0 seeds from the clock
}

// DefaultConfig returns the tuning used by the fluidtype hosts.
func DefaultConfig() Config {
	return Config{
		TickRate:      60,
		FillDuration:  5 * time.Second,
		FallDuration:  1500 * time.Millisecond,
		DropInterval:  time.Second,
		PoolSize:      8,
		VertexSpacing: 5,
		StartOffset:   5,
		Friction:      0.9,
		Ease:          0.1,
		DecayStep:     0.01,
		DecayHops:     15,
		RippleDamping: 0.97,
		FinishHeight:  0,
		SpawnHeight:   3,
		MinDropSize:   2,
		Weights: WeightTable{
			Light: {MaxSize: 4, Speed: 2, Magnitude: 20},
			Mild:  {MaxSize: 6, Speed: 3, Magnitude: 35},
			Heavy: {MaxSize: 8, Speed: 4, Magnitude: 50},
		},
	}
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	switch {
	case !(c.TickRate > 0) || math.IsInf(c.TickRate, 0):
		return invalidf("TickRate", "must be positive, got %v", c.TickRate)
	case c.FillDuration <= 0:
		return invalidf("FillDuration", "must be positive, got %v", c.FillDuration)
	case c.FallDuration <= 0:
		return invalidf("FallDuration", "must be positive, got %v", c.FallDuration)
	case c.DropInterval <= 0:
		return invalidf("DropInterval", "must be positive, got %v", c.DropInterval)
	case c.PoolSize <= 0:
		return invalidf("PoolSize", "must be positive, got %d", c.PoolSize)
	case !(c.VertexSpacing > 0):
		return invalidf("VertexSpacing", "must be positive, got %v", c.VertexSpacing)
	case c.StartOffset < 0:
		return invalidf("StartOffset", "must not be negative, got %v", c.StartOffset)
	case !(c.Friction > 0 && c.Friction < 1):
		return invalidf("Friction", "must be in (0,1), got %v", c.Friction)
	case !(c.Ease > 0 && c.Ease <= 1):
		return invalidf("Ease", "must be in (0,1], got %v", c.Ease)
	case c.DecayHops < 1:
		return invalidf("DecayHops", "must be at least 1, got %d", c.DecayHops)
	case !(c.DecayStep > 0) || c.DecayStep*float64(c.DecayHops) >= 1:
		return invalidf("DecayStep", "ratio %v over %d hops must stay below 1", c.DecayStep, c.DecayHops)
	case !(c.RippleDamping > 0 && c.RippleDamping <= 1):
		return invalidf("RippleDamping", "must be in (0,1], got %v", c.RippleDamping)
	case c.SpawnHeight < 0:
		return invalidf("SpawnHeight", "must not be negative, got %v", c.SpawnHeight)
	case !(c.MinDropSize > 0):
		return invalidf("MinDropSize", "must be positive, got %v", c.MinDropSize)
	}
	return c.Weights.Validate(c.MinDropSize)
}

// ticks converts d into a whole number of ticks, at least one.
func (c Config) ticks(d time.Duration) int {
	n := int(math.Round(d.Seconds() * c.TickRate))
	if n < 1 {
		n = 1
	}
	return n
}
