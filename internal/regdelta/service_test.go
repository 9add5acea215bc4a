package regdelta

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridical/pkg/requestcontext"
)

func testService() *Service {
	return NewService(Config{
		Agencies:   []string{"FATF", "FinCEN", "FCA", "BaFin", "MAS"},
		Severities: []string{"advisory", "minor", "material", "severe"},
		Staleness:  20 * time.Minute,
	})
}

func fixedClock() context.Context {
	return requestcontext.WithTime(context.Background(),
		time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
}

func TestDelta(t *testing.T) {
	svc := testService()
	ctx := fixedClock()

	t.Run("identical codes produce identical deltas", func(t *testing.T) {
		assert.Equal(t, svc.Delta(ctx, "DE"), svc.Delta(ctx, "DE"))
	})

	t.Run("at most five changes, all drawn from the pools", func(t *testing.T) {
		for _, code := range []string{"US", "GB", "DE", "SG", "AU", "CA", "CH", "AE"} {
			res := svc.Delta(ctx, code)
			assert.LessOrEqual(t, len(res.Changes), 5)
			for _, c := range res.Changes {
				assert.Contains(t, svc.cfg.Agencies, c.Agency)
				assert.Contains(t, svc.cfg.Severities, c.Severity)
				assert.Regexp(t, `^RD-\d{5}$`, c.Reference)
			}
		}
	})

	t.Run("effective dates land inside the fixed window", func(t *testing.T) {
		for _, code := range []string{"US", "GB", "DE", "SG"} {
			for _, c := range svc.Delta(ctx, code).Changes {
				eff, err := time.Parse(time.RFC3339, c.Effective)
				require.NoError(t, err)
				assert.False(t, eff.Before(windowStart))
				assert.True(t, eff.Before(windowEnd))
			}
		}
	})

	t.Run("score is the clamped severity weight sum", func(t *testing.T) {
		for _, code := range []string{"US", "GB", "DE", "SG", "AU"} {
			res := svc.Delta(ctx, code)
			var total float64
			for _, c := range res.Changes {
				total += severityWeight[c.Severity]
			}
			if total > 100 {
				total = 100
			}
			assert.Equal(t, total, res.DeltaScore, "code %s", code)
			assert.Equal(t, deltaBands.Classify(res.DeltaScore), res.DeltaLevel)
		}
	})

	t.Run("no changes means a quiet delta", func(t *testing.T) {
		// Scan codes until one synthesizes an empty window; the generator
		// gives count zero a one-in-six mass so a small scan suffices.
		found := false
		for _, code := range []string{"AA", "AB", "AC", "AD", "AE", "AF", "AG", "AH", "AI", "AJ", "AK", "AL", "AM", "AN", "AO", "AP", "AQ", "AR", "AS", "AT"} {
			res := svc.Delta(ctx, code)
			if len(res.Changes) == 0 {
				assert.Equal(t, 0.0, res.DeltaScore)
				assert.Equal(t, "quiet", res.DeltaLevel)
				found = true
				break
			}
		}
		assert.True(t, found, "expected at least one code with an empty change window")
	})
}
