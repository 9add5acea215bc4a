//go:build integration

package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridical/pkg/testutil/containers"
)

func TestRedisDirectory(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	dir := NewRedis(rc.Client)

	require.NoError(t, dir.Seed(ctx, map[string][]string{
		"jurisdiction": {"US", "GB"},
		"entity":       {"*"},
	}))

	t.Run("seeded keys are members", func(t *testing.T) {
		ok, err := dir.Exists(ctx, "jurisdiction", "US")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unseeded keys are not", func(t *testing.T) {
		ok, err := dir.Exists(ctx, "jurisdiction", "ZZ")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("star marker opens the kind", func(t *testing.T) {
		ok, err := dir.Exists(ctx, "entity", "acme-global-ltd")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty keys short-circuit without a lookup", func(t *testing.T) {
		ok, err := dir.Exists(ctx, "entity", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
