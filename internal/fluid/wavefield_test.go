package fluid

import (
	"math"
	"testing"
	"time"
)

func newTestField(t *testing.T, cfg Config, stage StageSize, bottom float64) *WaveField {
	t.Helper()
	f, err := NewWaveField(cfg, stage, bottom)
	if err != nil {
		t.Fatalf("expected valid field, got %v", err)
	}
	return f
}

func TestOscillatorSettlesOnTarget(t *testing.T) {
	o := newOscillator(0, 100)
	o.target = 50

	o.update(0.9, 0.1)
	if o.y <= 100 || o.y >= 150 {
		t.Fatalf("expected first step between rest and target, got %f", o.y)
	}
	for range 500 {
		o.update(0.9, 0.1)
	}
	if d := math.Abs(o.y - (o.baseY + o.target)); d > 1e-6 {
		t.Fatalf("expected spring to settle, still %g away", d)
	}
}

func TestOscillatorResetRestoresRest(t *testing.T) {
	o := newOscillator(10, 80)
	o.target = 30
	o.baseY = 40
	for range 10 {
		o.update(0.9, 0.1)
	}
	o.reset()
	if o.y != 80 || o.baseY != 80 || o.velocity != 0 || o.target != 0 {
		t.Fatalf("expected rest state, got %+v", o)
	}
	if o.x != 10 {
		t.Fatalf("expected x to survive reset, got %f", o.x)
	}
}

func TestResizeDerivesGeometryFromWidth(t *testing.T) {
	f := newTestField(t, DefaultConfig(), StageSize{Width: 500, Height: 400}, 400)
	if f.VertexCount() != 100 {
		t.Fatalf("expected 100 vertices, got %d", f.VertexCount())
	}
	if f.VertexInterval() != 5 {
		t.Fatalf("expected interval 5, got %f", f.VertexInterval())
	}

	f.InjectImpulse(120, Heavy)
	for range 20 {
		f.Update()
	}

	if err := f.Resize(StageSize{Width: 250, Height: 300}, 300); err != nil {
		t.Fatalf("expected resize to succeed, got %v", err)
	}
	if f.VertexCount() != 50 || f.VertexInterval() != 5 {
		t.Fatalf("expected 50 vertices at 5, got %d at %f", f.VertexCount(), f.VertexInterval())
	}
	for i, o := range f.osc {
		if o.y != 305 || o.baseY != 305 || o.target != 0 || o.velocity != 0 {
			t.Fatalf("expected vertex %d at rest 305, got %+v", i, o)
		}
		if o.x != float64(i)*5 {
			t.Fatalf("expected vertex %d at x=%d, got %f", i, i*5, o.x)
		}
	}
	if f.DroppedIndex() != 0 {
		t.Fatalf("expected dropped index cleared, got %d", f.DroppedIndex())
	}
}

func TestResizeRejectsEmptyStage(t *testing.T) {
	f := newTestField(t, DefaultConfig(), StageSize{Width: 100, Height: 100}, 100)
	if err := f.Resize(StageSize{Width: 0, Height: 100}, 100); err == nil {
		t.Fatal("expected error for zero width")
	}
	if err := f.Resize(StageSize{Width: 100, Height: 100}, 0); err == nil {
		t.Fatal("expected error for zero bottom")
	}
	if f.VertexCount() != 20 {
		t.Fatalf("expected failed resize to keep geometry, got %d vertices", f.VertexCount())
	}
}

func TestImpulseSpreadsSymmetrically(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights[Heavy].Magnitude = 1800
	f := newTestField(t, cfg, StageSize{Width: 500, Height: 400}, 400)

	f.InjectImpulse(250, Heavy)
	if f.DroppedIndex() != 50 {
		t.Fatalf("expected impulse at index 50, got %d", f.DroppedIndex())
	}
	f.Update()

	left, right := f.osc[49].target, f.osc[51].target
	if !(left > 0 && left < 1800) {
		t.Fatalf("expected left neighbour between 0 and 1800, got %f", left)
	}
	if left != right {
		t.Fatalf("expected symmetric neighbours, got %f and %f", left, right)
	}
}

func TestDecayIsMonotonicAwayFromImpact(t *testing.T) {
	f := newTestField(t, DefaultConfig(), StageSize{Width: 500, Height: 400}, 400)
	f.InjectImpulse(150, Mild)
	d := f.DroppedIndex()

	const eps = 1e-9
	for tick := range 300 {
		f.Update()
		for i := d; i < len(f.osc)-1; i++ {
			if f.osc[i].target+eps < f.osc[i+1].target {
				t.Fatalf("tick %d: target rises away from impact at %d (%g < %g)", tick, i, f.osc[i].target, f.osc[i+1].target)
			}
		}
		for i := d; i > 0; i-- {
			if f.osc[i].target+eps < f.osc[i-1].target {
				t.Fatalf("tick %d: target rises away from impact at %d (%g < %g)", tick, i, f.osc[i].target, f.osc[i-1].target)
			}
		}
	}
}

func TestDecayRatioIsCapped(t *testing.T) {
	f := newTestField(t, DefaultConfig(), StageSize{Width: 500, Height: 400}, 400)
	if got := f.ratio(1); got != 0.01 {
		t.Fatalf("expected ratio 0.01 at one hop, got %f", got)
	}
	if f.ratio(15) != f.ratio(80) {
		t.Fatalf("expected ratio to stop growing past the cap, got %f and %f", f.ratio(15), f.ratio(80))
	}
	if !(f.ratio(5) < f.ratio(10)) {
		t.Fatal("expected ratio to grow with distance below the cap")
	}
}

func TestFillRisesByBottomOverFillDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FillDuration = 5 * time.Second
	cfg.TickRate = 60
	f := newTestField(t, cfg, StageSize{Width: 500, Height: 400}, 400)

	if want := 400.0 / (5 * 60); math.Abs(f.FillSpeed()-want) > 1e-12 {
		t.Fatalf("expected fill speed %f, got %f", want, f.FillSpeed())
	}
	for range 5 * 60 {
		f.Update()
	}
	for i, o := range f.osc {
		if math.Abs((o.restY-o.baseY)-400) > 1e-6 {
			t.Fatalf("expected vertex %d baseline to rise 400, rose %f", i, o.restY-o.baseY)
		}
	}
	if math.Abs(f.MaxHeight()-5) > 1e-6 {
		t.Fatalf("expected max height 5, got %f", f.MaxHeight())
	}
}

func TestStoppedFieldSettles(t *testing.T) {
	f := newTestField(t, DefaultConfig(), StageSize{Width: 200, Height: 100}, 100)
	f.StopFill()
	f.InjectImpulse(100, Heavy)
	for range 1000 {
		f.Update()
	}
	o := f.osc[f.DroppedIndex()]
	if d := math.Abs(o.y - (o.baseY + o.target)); d > 1e-3 {
		t.Fatalf("expected impulsed vertex to settle, still %g away", d)
	}
	if o.baseY != o.restY {
		t.Fatalf("expected stopped fill to keep baseline, got %f", o.baseY)
	}
}

func TestResetRearmsFill(t *testing.T) {
	f := newTestField(t, DefaultConfig(), StageSize{Width: 200, Height: 100}, 100)
	f.InjectImpulse(40, Light)
	for range 30 {
		f.Update()
	}
	f.StopFill()
	f.Reset()

	if !f.Filling() {
		t.Fatal("expected reset to re-arm the fill")
	}
	if f.BaseHeight() != 105 || f.MaxHeight() != 105 {
		t.Fatalf("expected baseline back at 105, got %f / %f", f.BaseHeight(), f.MaxHeight())
	}
	if f.DroppedIndex() != 0 {
		t.Fatalf("expected dropped index cleared, got %d", f.DroppedIndex())
	}
	for i, o := range f.osc {
		if o.target != 0 || o.y != o.restY {
			t.Fatalf("expected vertex %d at rest, got %+v", i, o)
		}
	}
}

func TestHeightAtClampsToSamples(t *testing.T) {
	f := newTestField(t, DefaultConfig(), StageSize{Width: 100, Height: 100}, 100)
	f.osc[0].y = 1
	f.osc[len(f.osc)-1].y = 2
	f.osc[3].y = 3

	if got := f.HeightAt(-40); got != 1 {
		t.Fatalf("expected left clamp, got %f", got)
	}
	if got := f.HeightAt(1e9); got != 2 {
		t.Fatalf("expected right clamp, got %f", got)
	}
	if got := f.HeightAt(math.NaN()); got != 1 {
		t.Fatalf("expected NaN to map to first sample, got %f", got)
	}
	if got := f.HeightAt(16); got != 3 {
		t.Fatalf("expected nearest sample 3, got %f", got)
	}
}

func TestHeightsReusesBuffer(t *testing.T) {
	f := newTestField(t, DefaultConfig(), StageSize{Width: 100, Height: 100}, 100)
	buf := make([]float64, 0, 64)
	got := f.Heights(buf)
	if len(got) != f.VertexCount() {
		t.Fatalf("expected %d heights, got %d", f.VertexCount(), len(got))
	}
	if &got[0] != &buf[:1][0] {
		t.Fatal("expected heights to reuse the provided buffer")
	}
}

func TestCurrentHeightFollowsImpact(t *testing.T) {
	f := newTestField(t, DefaultConfig(), StageSize{Width: 500, Height: 400}, 400)
	f.InjectImpulse(120, Mild)
	for range 5 {
		f.Update()
	}

	i := f.DroppedIndex()
	if i != 24 {
		t.Fatalf("expected impact at index 24, got %d", i)
	}
	if got, want := f.CurrentHeight(), f.osc[i].y; got != want {
		t.Fatalf("expected current height %f, got %f", want, got)
	}
	if f.CurrentHeight() == f.osc[0].y {
		t.Fatalf("expected the impact sample to differ from the far edge, both %f", f.CurrentHeight())
	}
}
