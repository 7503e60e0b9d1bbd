package fluid

import (
	"errors"
	"math"
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	return cfg
}

func newTestSimulation(t *testing.T, cfg Config, stage StageSize) *Simulation {
	t.Helper()
	s, err := New(cfg, stage, float64(stage.Height))
	if err != nil {
		t.Fatalf("expected valid simulation, got %v", err)
	}
	return s
}

func runUntil(t *testing.T, s *Simulation, want State, limit int, each func()) {
	t.Helper()
	for range limit {
		if s.Tick() == want {
			return
		}
		if each != nil {
			each()
		}
	}
	t.Fatalf("expected state %s within %d ticks, still %s", want, limit, s.State())
}

func TestIdleTickIsNoop(t *testing.T) {
	s := newTestSimulation(t, testConfig(), StageSize{Width: 200, Height: 100})
	base := s.Field().BaseHeight()
	for range 10 {
		if st := s.Tick(); st != StateIdle {
			t.Fatalf("expected idle, got %s", st)
		}
	}
	if s.Field().BaseHeight() != base || s.Ticks() != 0 {
		t.Fatal("expected idle ticks to leave the field untouched")
	}
}

func TestSimulationFillsAndFinishes(t *testing.T) {
	s := newTestSimulation(t, testConfig(), StageSize{Width: 200, Height: 100})
	s.Start()
	runUntil(t, s, StateFinished, 2000, nil)

	if s.Field().BaseHeight() >= 0 {
		t.Fatalf("expected baseline above the finish height, got %f", s.Field().BaseHeight())
	}
	if s.Field().Filling() {
		t.Fatal("expected fill to stop once finished")
	}
	if s.Progress() != 1 || s.Remaining() != 0 {
		t.Fatalf("expected full progress, got %f with %v left", s.Progress(), s.Remaining())
	}

	base := s.Field().BaseHeight()
	for range 200 {
		if st := s.Tick(); st != StateFinished {
			t.Fatalf("expected finished to be terminal, got %s", st)
		}
		if len(s.Impacts()) != 0 || s.InFlight() != 0 {
			t.Fatal("expected no impacts after finishing")
		}
	}
	if s.Field().BaseHeight() != base {
		t.Fatal("expected baseline to hold after finishing")
	}
}

func TestInFlightNeverExceedsCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.PoolSize = 2
	cfg.DropInterval = time.Second / 60
	s := newTestSimulation(t, cfg, StageSize{Width: 300, Height: 200})
	s.Start()

	runUntil(t, s, StateFinished, 5000, func() {
		if s.InFlight() > s.Capacity() {
			t.Fatalf("expected at most %d drops in flight, got %d", s.Capacity(), s.InFlight())
		}
	})
}

func TestImpactInjectsOwnWeightMagnitude(t *testing.T) {
	cfg := testConfig()
	cfg.RippleDamping = 1
	cfg.Weights[Light].Magnitude = 11
	cfg.Weights[Mild].Magnitude = 22
	cfg.Weights[Heavy].Magnitude = 33
	cfg.DropInterval = 250 * time.Millisecond
	s := newTestSimulation(t, cfg, StageSize{Width: 400, Height: 200})
	s.Start()

	impacts := 0
	runUntil(t, s, StateFinished, 5000, func() {
		got := s.Impacts()
		for _, imp := range got {
			impacts++
			if want := cfg.Weights[imp.Weight].Magnitude; imp.Magnitude != want {
				t.Fatalf("expected %s impact of %f, got %f", imp.Weight, want, imp.Magnitude)
			}
		}
		if len(got) == 1 {
			f := s.Field()
			if target := f.osc[f.DroppedIndex()].target; target != got[0].Magnitude {
				t.Fatalf("expected injected target %f, got %f", got[0].Magnitude, target)
			}
		}
	})
	if impacts == 0 {
		t.Fatal("expected drops to strike the surface")
	}
}

func TestRevealHeightDelaysDrops(t *testing.T) {
	cfg := testConfig()
	s := newTestSimulation(t, cfg, StageSize{Width: 200, Height: 100})
	s.SetRevealHeight(20)
	s.Start()

	for s.Field().BaseHeight() > 20 {
		s.Tick()
		s.EachDrop(func(d DropState) {
			if d.Active {
				t.Fatalf("expected no drop before the liquid reached the reveal height, base %f", s.Field().BaseHeight())
			}
		})
	}
}

func TestRestartReturnsToFilling(t *testing.T) {
	s := newTestSimulation(t, testConfig(), StageSize{Width: 200, Height: 100})
	s.Start()
	runUntil(t, s, StateFinished, 2000, nil)

	s.Restart()
	if s.State() != StateFilling {
		t.Fatalf("expected filling after restart, got %s", s.State())
	}
	f := s.Field()
	if f.BaseHeight() != f.RestHeight() || !f.Filling() {
		t.Fatalf("expected baseline at rest, got %f", f.BaseHeight())
	}
	if s.Ticks() != 0 || s.InFlight() != 0 || s.Progress() != 0 {
		t.Fatal("expected dynamic state to be cleared")
	}
	s.EachDrop(func(d DropState) {
		if d.Active {
			t.Fatal("expected every drop to be idle after restart")
		}
	})
}

func TestResizeRestartsFill(t *testing.T) {
	s := newTestSimulation(t, testConfig(), StageSize{Width: 200, Height: 100})
	s.Start()
	for range 100 {
		s.Tick()
	}
	if err := s.Resize(StageSize{Width: 500, Height: 300}, 300); err != nil {
		t.Fatalf("expected resize to succeed, got %v", err)
	}
	if s.State() != StateFilling {
		t.Fatalf("expected filling after resize, got %s", s.State())
	}
	if s.Field().VertexCount() != 100 || s.Field().BaseHeight() != 305 {
		t.Fatalf("expected rebuilt field, got %d vertices at %f", s.Field().VertexCount(), s.Field().BaseHeight())
	}
	if err := s.Resize(StageSize{Width: 0, Height: 0}, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestRemainingTracksFill(t *testing.T) {
	cfg := testConfig()
	s := newTestSimulation(t, cfg, StageSize{Width: 200, Height: 100})
	s.Start()
	first := s.Remaining()
	want := time.Duration(105.0 / (100.0 / 300.0) / 60 * float64(time.Second))
	if math.Abs(float64(first-want)) > float64(time.Millisecond) {
		t.Fatalf("expected %v remaining, got %v", want, first)
	}
	s.Tick()
	if s.Remaining() >= first {
		t.Fatal("expected remaining time to shrink")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := map[string]func(*Config){
		"TickRate":     func(c *Config) { c.TickRate = 0 },
		"FillDuration": func(c *Config) { c.FillDuration = -time.Second },
		"PoolSize":     func(c *Config) { c.PoolSize = 0 },
		"DecayStep":    func(c *Config) { c.DecayStep = 0.1 },
		"Friction":     func(c *Config) { c.Friction = 1 },
		"Weights":      func(c *Config) { c.Weights[Mild] = WeightParams{} },
	}
	for field, mutate := range cases {
		cfg := testConfig()
		mutate(&cfg)
		_, err := New(cfg, StageSize{Width: 100, Height: 100}, 100)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", field, err)
		}
		var cerr *ConfigError
		if !errors.As(err, &cerr) || cerr.Field != field {
			t.Fatalf("%s: expected config error on %s, got %v", field, field, err)
		}
	}
}

func TestStateStrings(t *testing.T) {
	if StateFilling.String() != "filling" || StateFinished.String() != "finished" || StateIdle.String() != "idle" {
		t.Fatal("expected readable state names")
	}
}

func TestCursorAdvancesWhenEveryBodyIsFalling(t *testing.T) {
	cfg := testConfig()
	cfg.PoolSize = 2
	cfg.DropInterval = time.Second / 60
	cfg.FallDuration = 30 * time.Second
	s := newTestSimulation(t, cfg, StageSize{Width: 200, Height: 100})
	s.Start()

	s.Tick()
	s.Tick()
	if s.InFlight() != 2 {
		t.Fatalf("expected both bodies in flight, got %d", s.InFlight())
	}
	if s.pool.cursor != 0 {
		t.Fatalf("expected cursor to wrap to 0, got %d", s.pool.cursor)
	}

	s.Tick()
	if s.InFlight() != 2 {
		t.Fatalf("expected both bodies still in flight, got %d", s.InFlight())
	}
	if s.pool.cursor != 1 {
		t.Fatalf("expected cursor to advance on a wrap with every body busy, got %d", s.pool.cursor)
	}
}
