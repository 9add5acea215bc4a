package screening

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
		WatchLists:      []string{"OFAC SDN", "EU Consolidated", "UN Security Council", "UK HMT"},
		Staleness:       time.Hour,
		ReferenceVolume: 1000,
	})
}

func fixedClock() context.Context {
	return requestcontext.WithTime(context.Background(),
		time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
}

func TestScreen(t *testing.T) {
	svc := testService()
	ctx := fixedClock()

	t.Run("identical requests produce identical payloads", func(t *testing.T) {
		a := svc.Screen(ctx, "acme-global-ltd")
		b := svc.Screen(ctx, "acme-global-ltd")
		assert.Equal(t, a, b)
	})

	t.Run("score and classification stay consistent", func(t *testing.T) {
		for _, id := range []string{"acme-global-ltd", "borealis-shipping", "cypress-fund", "delta-trading"} {
			res := svc.Screen(ctx, id)
			assert.Equal(t, id, res.EntityID)
			assert.GreaterOrEqual(t, res.RiskScore, 0.0)
			assert.LessOrEqual(t, res.RiskScore, 100.0)
			assert.Equal(t, riskBands.Classify(res.RiskScore), res.RiskLevel)
		}
	})

	t.Run("at most three matches, each from the pool", func(t *testing.T) {
		for _, id := range []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7", "e8"} {
			res := svc.Screen(ctx, id)
			assert.LessOrEqual(t, len(res.Matches), 3)
			for _, m := range res.Matches {
				assert.Contains(t, svc.cfg.WatchLists, m.List)
				assert.GreaterOrEqual(t, m.Strength, 0.35)
				assert.LessOrEqual(t, m.Strength, 0.99)
			}
		}
	})

	t.Run("factor weights are the fixed screening table", func(t *testing.T) {
		res := svc.Screen(ctx, "acme-global-ltd")
		require.Len(t, res.Factors, 4)
		assert.Equal(t, "sanctions_proximity", res.Factors[0].Name)
		assert.Equal(t, 0.40, res.Factors[0].Weight)
		assert.Equal(t, "adverse_media", res.Factors[1].Name)
		assert.Equal(t, 0.25, res.Factors[1].Weight)
		assert.Equal(t, "pep_exposure", res.Factors[2].Name)
		assert.Equal(t, 0.20, res.Factors[2].Weight)
		assert.Equal(t, "geographic", res.Factors[3].Name)
		assert.Equal(t, 0.15, res.Factors[3].Weight)
	})

	t.Run("confidence and freshness are derived per request", func(t *testing.T) {
		res := svc.Screen(ctx, "acme-global-ltd")
		assert.GreaterOrEqual(t, res.Confidence, 0.0)
		assert.LessOrEqual(t, res.Confidence, 1.0)
		assert.GreaterOrEqual(t, res.Freshness.AgeSeconds, int64(0))
		assert.LessOrEqual(t, res.Freshness.AgeSeconds, int64(maxFetchedAge))
	})
}
