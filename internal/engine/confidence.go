package engine

import "math"

// Confidence is a monotone, saturating measure of how much underlying volume
// supports a score: exactly 0 at zero volume, approaching 1 as n approaches
// the reference volume, and capped at 1 no matter how large n grows.
func Confidence(n, ref int) float64 {
	if n <= 0 {
		return 0
	}
	if ref < 1 {
		ref = 1
	}
	c := math.Log10(float64(n)+1) / math.Log10(float64(ref)+1)
	if c > 1 {
		c = 1
	}
	return Round(c, 4)
}
