package fluid

// oscillator is one damped spring sample of the surface. y follows
// baseY+target through velocity integration only.
type oscillator struct {
	x        float64
	restY    float64
	baseY    float64
	y        float64
	velocity float64
	target   float64
}

func newOscillator(x, restY float64) oscillator {
	o := oscillator{x: x, restY: restY}
	o.reset()
	return o
}

func (o *oscillator) reset() {
	o.velocity = 0
	o.baseY = o.restY
	o.y = o.restY
	o.target = 0
}

func (o *oscillator) update(friction, ease float64) {
	o.velocity = (o.velocity + (o.target + o.baseY - o.y)) * friction
	o.y += o.velocity * ease
}
