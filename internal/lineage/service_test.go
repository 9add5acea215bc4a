package lineage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridical/pkg/requestcontext"
)

func testService() *Service {
	return NewService(Config{Staleness: 12 * time.Hour, ReferenceVolume: 50})
}

func fixedClock() context.Context {
	return requestcontext.WithTime(context.Background(),
		time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
}

func TestTrace(t *testing.T) {
	svc := testService()
	ctx := fixedClock()

	t.Run("identical requests produce identical lineage", func(t *testing.T) {
		assert.Equal(t, svc.Trace(ctx, "ds_orders", 3), svc.Trace(ctx, "ds_orders", 3))
	})

	t.Run("root dataset leads the node list", func(t *testing.T) {
		res := svc.Trace(ctx, "ds_orders", 3)
		require.NotEmpty(t, res.Nodes)
		assert.Equal(t, "ds_orders", res.Nodes[0].ID)
		assert.Equal(t, "dataset", res.Nodes[0].Kind)
		assert.Equal(t, 0, res.Nodes[0].Depth)
	})

	t.Run("nodes are unique with quality fields in range", func(t *testing.T) {
		for _, id := range []string{"ds_orders", "ds_billing", "ds_events", "ds_catalog"} {
			res := svc.Trace(ctx, id, 5)
			seen := map[string]bool{}
			for _, n := range res.Nodes {
				assert.False(t, seen[n.ID], "duplicate node %s in %s", n.ID, id)
				seen[n.ID] = true
				assert.GreaterOrEqual(t, n.Completeness, 0.5)
				assert.LessOrEqual(t, n.Completeness, 1.0)
				assert.GreaterOrEqual(t, n.Accuracy, 0.5)
				assert.LessOrEqual(t, n.Accuracy, 1.0)
			}
		}
	})

	t.Run("edges always point into a traced dataset", func(t *testing.T) {
		res := svc.Trace(ctx, "ds_orders", 4)
		ids := map[string]bool{}
		for _, n := range res.Nodes {
			ids[n.ID] = true
		}
		for _, e := range res.Edges {
			assert.True(t, ids[e.From])
			assert.True(t, ids[e.To])
			assert.Equal(t, "feeds", e.Type)
		}
	})

	t.Run("deeper traces never shrink the graph", func(t *testing.T) {
		shallow := svc.Trace(ctx, "ds_orders", 1)
		deep := svc.Trace(ctx, "ds_orders", 5)
		assert.GreaterOrEqual(t, len(deep.Nodes), len(shallow.Nodes))
		assert.GreaterOrEqual(t, len(deep.Edges), len(shallow.Edges))
	})

	t.Run("coverage and confidence stay on the unit interval", func(t *testing.T) {
		res := svc.Trace(ctx, "ds_orders", 5)
		assert.GreaterOrEqual(t, res.Coverage, 0.0)
		assert.LessOrEqual(t, res.Coverage, 1.0)
		assert.GreaterOrEqual(t, res.Confidence, 0.0)
		assert.LessOrEqual(t, res.Confidence, 1.0)
	})
}
