package fluid

import (
	"math"
	"math/rand"
	"time"
)

// State is the lifecycle of a Simulation.
type State uint8

const (
	StateIdle State = iota
	StateFilling
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFilling:
		return "filling"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Impact records one drop striking the surface.
type Impact struct {
	X         float64
	Weight    WeightClass
	Magnitude float64
}

// Sounder voices impacts for a host.
type Sounder interface {
	Play(w WeightClass)
	ToggleMute() bool
}

// Simulation couples the wave field to the drop pool. It is driven one step
// at a time by Tick and must only be used from a single goroutine.
type Simulation struct {
	cfg    Config
	stage  StageSize
	bottom float64

	field *WaveField
	pool  *ImpactPool

	inFlight []Drop
	impacts  []Impact

	dropEvery int
	counter   int
	reveal    float64
	state     State
	ticks     uint64
}

// New validates cfg and builds an idle simulation. bottom is the height the
// liquid starts from, usually the stage height.
func New(cfg Config, stage StageSize, bottom float64) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	field, err := NewWaveField(cfg, stage, bottom)
	if err != nil {
		return nil, err
	}
	pool, err := NewImpactPool(cfg, stage, rng)
	if err != nil {
		return nil, err
	}
	return &Simulation{
		cfg:       cfg,
		stage:     stage,
		bottom:    bottom,
		field:     field,
		pool:      pool,
		inFlight:  make([]Drop, 0, cfg.PoolSize),
		impacts:   make([]Impact, 0, cfg.PoolSize),
		dropEvery: cfg.ticks(cfg.DropInterval),
		reveal:    math.Inf(1),
	}, nil
}

// Start begins filling an idle simulation.
func (s *Simulation) Start() {
	if s.state == StateIdle {
		s.state = StateFilling
	}
}

// Restart zeroes all dynamic state and begins a new fill.
func (s *Simulation) Restart() {
	s.field.Reset()
	s.pool.Reset()
	s.clear()
	s.state = StateFilling
}

// Resize rebuilds the field and pool for a new stage. A running fill starts
// over from the new bottom.
func (s *Simulation) Resize(stage StageSize, bottom float64) error {
	if err := s.field.Resize(stage, bottom); err != nil {
		return err
	}
	if err := s.pool.Resize(stage); err != nil {
		return err
	}
	s.stage = stage
	s.bottom = bottom
	s.clear()
	if s.state != StateIdle {
		s.state = StateFilling
	}
	return nil
}

func (s *Simulation) clear() {
	s.inFlight = s.inFlight[:0]
	s.impacts = s.impacts[:0]
	s.counter = 0
	s.ticks = 0
}

// SetRevealHeight sets the baseline height the liquid must reach before
// drops start falling.
func (s *Simulation) SetRevealHeight(y float64) { s.reveal = y }

// Tick performs one simulation step and returns the resulting state.
func (s *Simulation) Tick() State {
	s.impacts = s.impacts[:0]
	if s.state == StateIdle {
		return s.state
	}

	if s.state == StateFilling {
		s.purgeIdle()
		s.counter = (s.counter + 1) % s.dropEvery
		if s.counter == 0 && s.field.BaseHeight() <= s.reveal {
			if d, ok := s.pool.BeginFall(); ok {
				s.inFlight = append(s.inFlight, d)
			}
		}
		s.resolveHits()
	}

	s.field.Update()
	s.pool.Update()
	s.ticks++

	if s.state == StateFilling && s.field.BaseHeight() < s.cfg.FinishHeight {
		s.state = StateFinished
		s.field.StopFill()
		s.inFlight = s.inFlight[:0]
	}
	return s.state
}

func (s *Simulation) purgeIdle() {
	kept := s.inFlight[:0]
	for _, d := range s.inFlight {
		if d.Active() {
			kept = append(kept, d)
		}
	}
	s.inFlight = kept
}

func (s *Simulation) resolveHits() {
	kept := s.inFlight[:0]
	for _, d := range s.inFlight {
		x := d.X()
		if s.field.HeightAt(x) > d.PosY() {
			kept = append(kept, d)
			continue
		}
		w := d.Weight()
		s.field.InjectImpulse(x, w)
		s.impacts = append(s.impacts, Impact{X: x, Weight: w, Magnitude: s.cfg.Weights.Params(w).Magnitude})
		d.Reset()
	}
	s.inFlight = kept
}

func (s *Simulation) State() State                { return s.state }
func (s *Simulation) Field() *WaveField           { return s.field }
func (s *Simulation) Stage() StageSize            { return s.stage }
func (s *Simulation) Bottom() float64             { return s.bottom }
func (s *Simulation) Ticks() uint64               { return s.ticks }
func (s *Simulation) InFlight() int               { return len(s.inFlight) }
func (s *Simulation) Capacity() int               { return s.pool.Cap() }
func (s *Simulation) TickRate() float64           { return s.cfg.TickRate }
func (s *Simulation) Impacts() []Impact           { return s.impacts }
func (s *Simulation) EachDrop(fn func(DropState)) { s.pool.Each(fn) }

// Progress is the filled fraction of the stage, from 0 to 1.
func (s *Simulation) Progress() float64 {
	rest := s.field.RestHeight()
	span := rest - s.cfg.FinishHeight
	if span <= 0 {
		return 1
	}
	p := (rest - s.field.BaseHeight()) / span
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Remaining estimates the time left until the fill completes.
func (s *Simulation) Remaining() time.Duration {
	if s.state != StateFilling {
		return 0
	}
	speed := s.field.FillSpeed()
	if speed <= 0 {
		return 0
	}
	ticks := (s.field.BaseHeight() - s.cfg.FinishHeight) / speed
	if ticks < 0 {
		return 0
	}
	return time.Duration(ticks / s.cfg.TickRate * float64(time.Second))
}
