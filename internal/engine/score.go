package engine

// Factor is one independently-seeded sub-score feeding a composite. Weights
// are fixed per service at construction time; the engine never rebalances
// them at runtime.
type Factor struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// Composite returns the weighted sum of factor scores, rounded to 2 decimals
// and clamped to [0, bound]. Services scoring on the unit interval pass
// bound=1; percentage services pass bound=100.
func Composite(factors []Factor, bound float64) float64 {
	var sum float64
	for _, f := range factors {
		sum += f.Score * f.Weight
	}
	return Clamp(Round2(sum), 0, bound)
}

// Band is one step of an ordinal classification: scores at or above Min carry
// the band's label.
type Band struct {
	Min   float64
	Label string
}

// Bands is a total step function over the score domain, ordered from highest
// Min to lowest. The boundary convention is inclusive on the band's own Min:
// a score exactly equal to a band's Min belongs to that band, never the one
// below it. The final band should carry Min 0 so every clamped score lands
// somewhere.
type Bands []Band

// Classify maps a score to its band label.
func (b Bands) Classify(v float64) string {
	for _, band := range b {
		if v >= band.Min {
			return band.Label
		}
	}
	if len(b) == 0 {
		return ""
	}
	return b[len(b)-1].Label
}

// Interval places a band around a point estimate, widening as confidence
// drops: half of width at full confidence, all of it at zero confidence.
// Both ends are clamped to the domain bound.
func Interval(point, width, confidence, lo, hi float64) (low, high float64) {
	half := width * (1 - confidence/2)
	low = Clamp(Round2(point-half), lo, hi)
	high = Clamp(Round2(point+half), lo, hi)
	return low, high
}
