package jurisdiction

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
		Agencies:  []string{"FATF", "FinCEN", "FCA", "BaFin", "MAS", "AUSTRAC"},
		Staleness: 24 * time.Hour,
	})
}

func fixedClock() context.Context {
	return requestcontext.WithTime(context.Background(),
		time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
}

func TestAssess(t *testing.T) {
	svc := testService()
	ctx := fixedClock()

	t.Run("identical codes produce identical profiles", func(t *testing.T) {
		assert.Equal(t, svc.Assess(ctx, "SG"), svc.Assess(ctx, "SG"))
	})

	t.Run("different codes diverge", func(t *testing.T) {
		assert.NotEqual(t, svc.Assess(ctx, "SG").Factors, svc.Assess(ctx, "AE").Factors)
	})

	t.Run("grade matches the band table", func(t *testing.T) {
		for _, code := range []string{"US", "GB", "DE", "SG", "AU", "CA", "CH", "AE"} {
			res := svc.Assess(ctx, code)
			assert.Equal(t, gradeBands.Classify(res.RiskScore), res.RiskGrade, "code %s", code)
		}
	})

	t.Run("factor table is fixed at four weighted components", func(t *testing.T) {
		res := svc.Assess(ctx, "DE")
		require.Len(t, res.Factors, 4)
		var sum float64
		for _, f := range res.Factors {
			sum += f.Weight
			assert.GreaterOrEqual(t, f.Score, 0.0)
			assert.LessOrEqual(t, f.Score, 100.0)
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	})

	t.Run("watch agencies stay within two pool members", func(t *testing.T) {
		for _, code := range []string{"US", "GB", "DE", "SG", "AU", "CA", "CH", "AE"} {
			res := svc.Assess(ctx, code)
			assert.LessOrEqual(t, len(res.WatchAgencies), 2)
			for _, a := range res.WatchAgencies {
				assert.Contains(t, svc.cfg.Agencies, a)
			}
		}
	})
}
