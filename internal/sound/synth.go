package sound

import "math"

const plinkDuration = 0.18 // seconds

// synthPlink renders the default impact voice: a short sine whose pitch
// falls quickly, with a fast attack and exponential decay.
func synthPlink(rate int) []int16 {
	n := int(plinkDuration * float64(rate))
	out := make([]int16, n)
	var phase float64
	for i := range n {
		t := float64(i) / float64(rate)
		freq := 500 + 1400*math.Exp(-t*18)
		phase += 2 * math.Pi * freq / float64(rate)
		env := math.Exp(-t*22) * (1 - math.Exp(-t*900))
		out[i] = int16(math.Sin(phase) * env * 0.7 * 32767)
	}
	return out
}
