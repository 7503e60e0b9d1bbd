package fluid

import "math/rand"

// fallParams is shared by every body of a pool.
type fallParams struct {
	stage     StageSize
	weights   WeightTable
	minSize   float64
	spawn     float64 // spawn height in radii above the stage top
	fallTicks float64
	rng       *rand.Rand
}

// impactBody is a single falling drop. It is recycled in place, never freed.
type impactBody struct {
	params *fallParams

	x, y         float64
	velocity     float64
	speed        float64
	acceleration float64
	size         float64
	weight       WeightClass
	gen          uint32
}

// reset re-randomises the body above the stage and leaves it inactive.
func (b *impactBody) reset() {
	p := b.params
	maxSize := p.weights[Heavy].MaxSize
	b.size = p.minSize + p.rng.Float64()*(maxSize-p.minSize)
	b.weight = p.weights.Classify(b.size)

	w := float64(p.stage.Width)
	span := w - b.size
	if span < 0 {
		span = 0
	}
	b.x = b.size/2 + p.rng.Float64()*span
	if b.x > w {
		b.x = w / 2
	}
	b.y = -b.size * p.spawn
	b.velocity = 0
	b.speed = 0
	b.acceleration = fallAcceleration(float64(p.stage.Height)-b.y, p.fallTicks, p.weights.Params(b.weight).Speed)
	b.gen++
}

// fallAcceleration returns the constant acceleration that carries a body
// starting at speed v0 across distance in the given number of ticks, where
// each tick adds the acceleration to velocity, velocity to speed and speed
// to position.
func fallAcceleration(distance, ticks, v0 float64) float64 {
	if ticks < 1 {
		ticks = 1
	}
	a := 6 * (distance - ticks*v0) / (ticks * (ticks + 1) * (ticks + 2))
	if a < 0 {
		return 0
	}
	return a
}

func (b *impactBody) drop() {
	b.speed = b.params.weights.Params(b.weight).Speed
}

func (b *impactBody) active() bool { return b.speed != 0 }

func (b *impactBody) update() {
	if !b.active() {
		return
	}
	bottom := float64(b.params.stage.Height)
	if b.y < bottom {
		b.velocity += b.acceleration
		b.speed += b.velocity
	}
	b.y += b.speed
	if b.y > bottom+b.size {
		b.reset()
	}
}

// tipY is the lowest point of the drawn drop.
func (b *impactBody) tipY() float64 { return b.y + b.size }
