package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	r := SeededRand("geodemand", "na-east")

	t.Run("stays inside the closed interval", func(t *testing.T) {
		for off := int64(0); off < 100; off++ {
			v := r.Range(off, 10, 90)
			assert.GreaterOrEqual(t, v, 10.0)
			assert.Less(t, v, 90.0)
		}
	})

	t.Run("degenerate interval returns min", func(t *testing.T) {
		assert.Equal(t, 5.0, r.Range(3, 5, 5))
	})

	t.Run("RangeN rounds to the requested decimals", func(t *testing.T) {
		v := r.RangeN(11, 0, 100, 2)
		assert.Equal(t, Round2(v), v)
	})
}

func TestCount(t *testing.T) {
	r := SeededRand("screening", "entity-77")

	t.Run("covers zero through max inclusive", func(t *testing.T) {
		hit := map[int]bool{}
		for off := int64(0); off < 500; off++ {
			n := r.Count(off, 3)
			assert.GreaterOrEqual(t, n, 0)
			assert.LessOrEqual(t, n, 3)
			hit[n] = true
		}
		// With 500 draws over 4 buckets every bucket should appear.
		assert.Len(t, hit, 4)
	})

	t.Run("non-positive max is zero", func(t *testing.T) {
		assert.Equal(t, 0, r.Count(1, 0))
		assert.Equal(t, 0, r.Count(1, -4))
	})
}

func TestInt(t *testing.T) {
	r := SeededRand("supplier", "sup-900")

	t.Run("inclusive on both ends of the window", func(t *testing.T) {
		for off := int64(0); off < 200; off++ {
			n := r.Int(off, 40, 4000)
			assert.GreaterOrEqual(t, n, 40)
			assert.LessOrEqual(t, n, 4000)
		}
	})

	t.Run("inverted window collapses to min", func(t *testing.T) {
		assert.Equal(t, 9, r.Int(0, 9, 3))
	})
}

func TestPick(t *testing.T) {
	r := SeededRand("regdelta", "DE")
	pool := []string{"advisory", "minor", "material", "severe"}

	t.Run("always returns a pool member", func(t *testing.T) {
		for off := int64(0); off < 100; off++ {
			assert.Contains(t, pool, r.Pick(off, pool))
		}
	})

	t.Run("empty pool yields empty string", func(t *testing.T) {
		assert.Equal(t, "", r.Pick(0, nil))
	})
}

func TestDateIn(t *testing.T) {
	r := SeededRand("reputation", "dana_w")
	from := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("interpolates inside the window", func(t *testing.T) {
		for off := int64(0); off < 50; off++ {
			d := r.DateIn(off, from, to)
			assert.False(t, d.Before(from))
			assert.True(t, d.Before(to))
		}
	})

	t.Run("dependent date drawn from earlier start never precedes it", func(t *testing.T) {
		first := r.DateIn(1, from, to)
		last := r.DateIn(2, first, to)
		assert.False(t, last.Before(first))
	})

	t.Run("empty window returns the start", func(t *testing.T) {
		assert.Equal(t, from, r.DateIn(0, from, from))
	})
}

func TestCapInt(t *testing.T) {
	assert.Equal(t, 10, CapInt(15, 10))
	assert.Equal(t, 7, CapInt(7, 10))
}

func TestRoundAndClamp(t *testing.T) {
	t.Run("rounds half away from zero", func(t *testing.T) {
		assert.Equal(t, 3.0, Round(2.5, 0))
		assert.Equal(t, -3.0, Round(-2.5, 0))
		assert.Equal(t, 12.35, Round2(12.346))
		assert.Equal(t, 12.34, Round2(12.344))
	})

	t.Run("clamps both ends", func(t *testing.T) {
		assert.Equal(t, 0.0, Clamp(-3, 0, 100))
		assert.Equal(t, 100.0, Clamp(104.5, 0, 100))
		assert.Equal(t, 55.2, Clamp(55.2, 0, 100))
	})
}
