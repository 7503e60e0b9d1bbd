package fluid

// WeightClass is the size tier of a falling drop.
type WeightClass uint8

const (
	Light WeightClass = iota
	Mild
	Heavy

	numWeightClasses = 3
)

func (w WeightClass) String() string {
	switch w {
	case Light:
		return "light"
	case Mild:
		return "mild"
	case Heavy:
		return "heavy"
	}
	return "unknown"
}

// WeightParams describes one weight class. A drop whose size is below
// MaxSize (and at least the previous class's MaxSize) belongs to the class.
type WeightParams struct {
	MaxSize   float64
	Speed     float64 // initial fall speed, pixels per tick
	Magnitude float64 // wave target injected on impact
}

// WeightTable maps every WeightClass to its parameters. It is the only
// source for both drop sizing and impulse strength.
type WeightTable [numWeightClasses]WeightParams

// Validate checks that every class has positive parameters and that size
// thresholds increase from light to heavy, starting above minSize.
func (t WeightTable) Validate(minSize float64) error {
	prev := minSize
	for i, p := range t {
		w := WeightClass(i)
		if p == (WeightParams{}) {
			return invalidf("Weights", "missing entry for %s", w)
		}
		if !(p.Speed > 0) {
			return invalidf("Weights", "%s speed must be positive, got %v", w, p.Speed)
		}
		if !(p.Magnitude > 0) {
			return invalidf("Weights", "%s magnitude must be positive, got %v", w, p.Magnitude)
		}
		if !(p.MaxSize > prev) {
			return invalidf("Weights", "%s max size %v must exceed %v", w, p.MaxSize, prev)
		}
		prev = p.MaxSize
	}
	return nil
}

// Classify returns the weight class of a drop of the given size. Sizes past
// the heavy threshold are heavy.
func (t WeightTable) Classify(size float64) WeightClass {
	for i := range numWeightClasses - 1 {
		if size < t[i].MaxSize {
			return WeightClass(i)
		}
	}
	return Heavy
}

// Params returns the parameters of w. Out of range classes map to heavy.
func (t WeightTable) Params(w WeightClass) WeightParams {
	if int(w) >= numWeightClasses {
		return t[Heavy]
	}
	return t[w]
}
