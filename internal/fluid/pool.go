package fluid

import (
	"math/rand"
	"time"
)

// ImpactPool is a fixed set of reusable bodies visited in round-robin order.
type ImpactPool struct {
	params fallParams
	bodies []impactBody
	cursor int
}

// NewImpactPool creates cfg.PoolSize bodies spread over stage. A nil rng is
// replaced by a source seeded from cfg.Seed, or the clock when it is 0.
func NewImpactPool(cfg Config, stage StageSize, rng *rand.Rand) (*ImpactPool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := stage.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	p := &ImpactPool{
		params: fallParams{
			stage:     stage,
			weights:   cfg.Weights,
			minSize:   cfg.MinDropSize,
			spawn:     cfg.SpawnHeight,
			fallTicks: float64(cfg.ticks(cfg.FallDuration)),
			rng:       rng,
		},
		bodies: make([]impactBody, cfg.PoolSize),
	}
	for i := range p.bodies {
		p.bodies[i].params = &p.params
	}
	p.Reset()
	return p, nil
}

// Reset recycles every body and rewinds the cursor.
func (p *ImpactPool) Reset() {
	for i := range p.bodies {
		p.bodies[i].reset()
	}
	p.cursor = 0
}

// Resize moves every body onto the new stage.
func (p *ImpactPool) Resize(stage StageSize) error {
	if err := stage.validate(); err != nil {
		return err
	}
	p.params.stage = stage
	p.Reset()
	return nil
}

// Update advances every body by one tick.
func (p *ImpactPool) Update() {
	for i := range p.bodies {
		p.bodies[i].update()
	}
}

// BeginFall drops the next body in rotation. It reports false when that
// body is still falling; the cursor moves on either way.
func (p *ImpactPool) BeginFall() (Drop, bool) {
	i := p.cursor
	p.cursor = (p.cursor + 1) % len(p.bodies)
	b := &p.bodies[i]
	if b.active() {
		return Drop{}, false
	}
	b.drop()
	return Drop{pool: p, index: i, gen: b.gen}, true
}

// Cap returns the number of bodies in the pool.
func (p *ImpactPool) Cap() int { return len(p.bodies) }

// DropState is a read-only snapshot of one body for renderers. X, Y is the
// centre of the body.
type DropState struct {
	X, Y   float64
	Size   float64
	Weight WeightClass
	Active bool
}

// Each calls fn with the state of every body.
func (p *ImpactPool) Each(fn func(DropState)) {
	for i := range p.bodies {
		b := &p.bodies[i]
		fn(DropState{X: b.x, Y: b.y + b.size/2, Size: b.size, Weight: b.weight, Active: b.active()})
	}
}

// Drop is a handle to a body returned by BeginFall. A handle goes idle once
// its body lands, leaves the stage or is recycled; idle handles never touch
// the body again.
type Drop struct {
	pool  *ImpactPool
	index int
	gen   uint32
}

func (d Drop) body() *impactBody {
	if d.pool == nil {
		return nil
	}
	b := &d.pool.bodies[d.index]
	if b.gen != d.gen {
		return nil
	}
	return b
}

// Active reports whether the handle's fall is still in progress.
func (d Drop) Active() bool {
	b := d.body()
	return b != nil && b.active()
}

func (d Drop) X() float64 {
	if b := d.body(); b != nil {
		return b.x
	}
	return 0
}

// PosY is the height of the drop's tip, used for hit testing.
func (d Drop) PosY() float64 {
	if b := d.body(); b != nil {
		return b.tipY()
	}
	return 0
}

func (d Drop) Weight() WeightClass {
	if b := d.body(); b != nil {
		return b.weight
	}
	return Light
}

// Reset recycles the body so it can fall again.
func (d Drop) Reset() {
	if b := d.body(); b != nil {
		b.reset()
	}
}
