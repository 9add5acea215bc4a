package engine

import (
	"math"
	"time"
)

// Range maps a draw linearly onto [min, max].
func (r Rand) Range(offset int64, min, max float64) float64 {
	return min + r.Float(offset)*(max-min)
}

// RangeN is Range rounded to a fixed number of decimals.
func (r Rand) RangeN(offset int64, min, max float64, decimals int) float64 {
	return Round(r.Range(offset, min, max), decimals)
}

// Count draws an integer in [0, max]. The draw is scaled by max+1 so every
// bucket, including max itself, has equal mass; a draw arbitrarily close to 1
// is clamped rather than overflowing.
func (r Rand) Count(offset int64, max int) int {
	if max <= 0 {
		return 0
	}
	n := int(r.Float(offset) * float64(max+1))
	if n > max {
		n = max
	}
	return n
}

// Int draws an integer in [min, max] inclusive.
func (r Rand) Int(offset int64, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Count(offset, max-min)
}

// Pick selects one entry from an enum pool, clamped to the last index.
func (r Rand) Pick(offset int64, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	i := int(r.Float(offset) * float64(len(pool)))
	if i >= len(pool) {
		i = len(pool) - 1
	}
	return pool[i]
}

// DateIn interpolates between two boundary instants. Dependent dates must be
// drawn with the earlier date as the window start so ordering holds by
// construction, never by rejection.
func (r Rand) DateIn(offset int64, from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	return from.Add(time.Duration(r.Float(offset) * float64(to.Sub(from))))
}

// CapInt enforces a dependent count: later draws never exceed earlier ones.
func CapInt(v, ceiling int) int {
	if v > ceiling {
		return ceiling
	}
	return v
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

// Round2 is the rounding used for every published score.
func Round2(v float64) float64 {
	return Round(v, 2)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
