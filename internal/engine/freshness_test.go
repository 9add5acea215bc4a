package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateFreshness(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	threshold := time.Hour

	t.Run("fresh inside the window", func(t *testing.T) {
		f := EvaluateFreshness(now.Add(-10*time.Minute), now, threshold)
		assert.Equal(t, int64(600), f.AgeSeconds)
		assert.False(t, f.Stale)
	})

	t.Run("exactly at the threshold is still fresh", func(t *testing.T) {
		f := EvaluateFreshness(now.Add(-time.Hour), now, threshold)
		assert.Equal(t, int64(3600), f.AgeSeconds)
		assert.False(t, f.Stale)
	})

	t.Run("one millisecond past the threshold is stale", func(t *testing.T) {
		f := EvaluateFreshness(now.Add(-time.Hour-time.Millisecond), now, threshold)
		assert.Equal(t, int64(3600), f.AgeSeconds)
		assert.True(t, f.Stale)
	})

	t.Run("same instant has age zero", func(t *testing.T) {
		f := EvaluateFreshness(now, now, threshold)
		assert.Equal(t, int64(0), f.AgeSeconds)
		assert.False(t, f.Stale)
	})

	t.Run("clock skew floors the age at zero", func(t *testing.T) {
		f := EvaluateFreshness(now.Add(2*time.Second), now, threshold)
		assert.Equal(t, int64(0), f.AgeSeconds)
		assert.False(t, f.Stale)
	})

	t.Run("timestamp is the fetch time in millisecond ISO-8601", func(t *testing.T) {
		fetched := time.Date(2026, 3, 14, 11, 30, 15, 250_000_000, time.UTC)
		f := EvaluateFreshness(fetched, now, threshold)
		assert.Equal(t, "2026-03-14T11:30:15.250Z", f.Timestamp)
	})
}
