// Package engine is the deterministic synthetic-data core shared by every
// veridical service. All "randomness" is a pure function of a seed derived
// from the request key, so identical requests always produce identical
// payloads across processes and restarts.
package engine

import "strings"

// seedSeparator joins seed parts; U+001F never appears in request keys.
const seedSeparator = "\x1f"

// offsetStride spreads channel offsets across the 64-bit space before mixing.
// The constants in this file are part of the observable response contract:
// changing any of them changes every synthesized payload.
const offsetStride = 0x9E3779B97F4A7C15

// DeriveSeed canonicalizes the ordered parts into a non-negative seed.
// A 31-rolling hash with 32-bit wraparound keeps seeds interchangeable with
// implementations of the same scheme in other languages. Zero is remapped to
// one so a degenerate all-zero stream can never reach the generator.
func DeriveSeed(parts ...string) int64 {
	joined := strings.Join(parts, seedSeparator)
	var h int32
	for i := 0; i < len(joined); i++ {
		h = h*31 + int32(joined[i])
	}
	seed := int64(h)
	if seed < 0 {
		seed = -seed
	}
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Channel hashes a semantic label into a generator offset so unrelated
// attributes of the same entity draw from separated streams. djb2.
func Channel(label string) int64 {
	var h uint32 = 5381
	for i := 0; i < len(label); i++ {
		h = h*33 + uint32(label[i])
	}
	return int64(h)
}

// Rand is the seeded generator: a value type carrying only the seed.
// Every draw names its own offset, so Rand is safe to copy and share.
type Rand struct {
	seed int64
}

// NewRand wraps a derived seed.
func NewRand(seed int64) Rand {
	return Rand{seed: seed}
}

// SeededRand derives the seed from parts and wraps it in one step.
func SeededRand(parts ...string) Rand {
	return NewRand(DeriveSeed(parts...))
}

// Float returns a value in [0,1) fully determined by (seed, offset).
// The seed+offset cursor is pushed through a 64-bit multiply/xor-shift
// finalizer; the top 53 bits form the mantissa, so the result can never
// reach 1.0 and never goes negative, for any seed including 0 and MaxInt64.
func (r Rand) Float(offset int64) float64 {
	x := uint64(r.seed) + uint64(offset)*offsetStride
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return float64(x>>11) / (1 << 53)
}
