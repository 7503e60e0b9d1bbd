package fluid

import "math"

// WaveField is the rising liquid surface: an ordered row of oscillators
// spanning the stage width.
type WaveField struct {
	friction  float64
	ease      float64
	spacing   float64
	offset    float64
	decayStep float64
	decayHops int
	damping   float64
	weights   WeightTable
	fillTime  float64 // fill duration in ticks

	stage    StageSize
	osc      []oscillator
	interval float64

	fillSpeed float64
	filling   bool
	dropped   int
	maxHeight float64
}

// NewWaveField validates cfg and builds a field resting at bottom.
func NewWaveField(cfg Config, stage StageSize, bottom float64) (*WaveField, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &WaveField{
		friction:  cfg.Friction,
		ease:      cfg.Ease,
		spacing:   cfg.VertexSpacing,
		offset:    cfg.StartOffset,
		decayStep: cfg.DecayStep,
		decayHops: cfg.DecayHops,
		damping:   cfg.RippleDamping,
		weights:   cfg.Weights,
		fillTime:  cfg.FillDuration.Seconds() * cfg.TickRate,
	}
	if err := f.Resize(stage, bottom); err != nil {
		return nil, err
	}
	return f, nil
}

// Resize rebuilds every oscillator for the new stage. Ripple state is lost.
func (f *WaveField) Resize(stage StageSize, bottom float64) error {
	if err := stage.validate(); err != nil {
		return err
	}
	if !(bottom > 0) || math.IsInf(bottom, 0) {
		return invalidf("bottom", "must be positive, got %v", bottom)
	}

	count := int(math.Ceil(float64(stage.Width) / f.spacing))
	if count < 1 {
		count = 1
	}
	f.stage = stage
	f.interval = float64(stage.Width) / float64(count)
	f.fillSpeed = bottom / f.fillTime

	rest := bottom + f.offset
	if cap(f.osc) >= count {
		f.osc = f.osc[:count]
	} else {
		f.osc = make([]oscillator, count)
	}
	for i := range f.osc {
		f.osc[i] = newOscillator(float64(i)*f.interval, rest)
	}
	f.filling = true
	f.dropped = 0
	f.maxHeight = rest
	return nil
}

// Reset returns the surface to rest and re-arms the fill.
func (f *WaveField) Reset() {
	for i := range f.osc {
		f.osc[i].reset()
	}
	f.filling = true
	f.dropped = 0
	f.maxHeight = f.osc[0].restY
}

// StopFill freezes the baseline where it is.
func (f *WaveField) StopFill() { f.filling = false }

// Filling reports whether the baseline is still rising.
func (f *WaveField) Filling() bool { return f.filling }

// InjectImpulse strikes the sample nearest x with the magnitude of weight.
func (f *WaveField) InjectImpulse(x float64, weight WeightClass) {
	i := f.index(x)
	f.dropped = i
	f.osc[i].target = f.weights.Params(weight).Magnitude
}

// Update advances the surface by one tick.
func (f *WaveField) Update() {
	for i := range f.osc {
		o := &f.osc[i]
		if f.filling {
			o.baseY -= f.fillSpeed
		}
		o.target *= f.damping
	}
	if f.filling && f.osc[0].baseY < f.maxHeight {
		f.maxHeight = f.osc[0].baseY
	}

	f.propagate()

	for i := range f.osc {
		f.osc[i].update(f.friction, f.ease)
	}
}

// propagate spreads the target outward from the dropped sample. Each sample
// keeps ratio(d) of its own target and takes the rest from its already
// updated inward neighbour.
func (f *WaveField) propagate() {
	for i := f.dropped - 1; i >= 0; i-- {
		r := f.ratio(f.dropped - i)
		f.osc[i].target = r*f.osc[i].target + (1-r)*f.osc[i+1].target
	}
	for i := f.dropped + 1; i < len(f.osc); i++ {
		r := f.ratio(i - f.dropped)
		f.osc[i].target = r*f.osc[i].target + (1-r)*f.osc[i-1].target
	}
}

func (f *WaveField) ratio(hops int) float64 {
	if hops > f.decayHops {
		hops = f.decayHops
	}
	return f.decayStep * float64(hops)
}

func (f *WaveField) index(x float64) int {
	last := len(f.osc) - 1
	v := math.Round(x / f.interval)
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= float64(last):
		return last
	}
	return int(v)
}

// HeightAt returns the surface height of the sample nearest x.
func (f *WaveField) HeightAt(x float64) float64 { return f.osc[f.index(x)].y }

// CurrentHeight is the surface height at the most recent impact.
func (f *WaveField) CurrentHeight() float64 { return f.osc[f.dropped].y }

// BaseHeight is the resting baseline of the surface.
func (f *WaveField) BaseHeight() float64 { return f.osc[0].baseY }

// MaxHeight is the smallest baseline reached since the last reset.
func (f *WaveField) MaxHeight() float64 { return f.maxHeight }

// RestHeight is the baseline height after a reset.
func (f *WaveField) RestHeight() float64 { return f.osc[0].restY }

func (f *WaveField) VertexCount() int        { return len(f.osc) }
func (f *WaveField) VertexInterval() float64 { return f.interval }
func (f *WaveField) FillSpeed() float64      { return f.fillSpeed }
func (f *WaveField) DroppedIndex() int       { return f.dropped }
func (f *WaveField) Stage() StageSize        { return f.stage }

// Heights appends the height of every sample to dst[:0].
func (f *WaveField) Heights(dst []float64) []float64 {
	dst = dst[:0]
	for i := range f.osc {
		dst = append(dst, f.osc[i].y)
	}
	return dst
}
