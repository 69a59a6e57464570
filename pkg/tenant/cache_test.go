package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

func TestBurstCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewBurstCache()
		_, ok := c.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("hit for the cached identifier", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewBurstCache()
		require.NoError(t, c.Set(ctx, "acme", &tenant.Tenant{ID: "t1"}))

		got, ok := c.Get(ctx, "acme")
		require.True(t, ok)
		assert.Equal(t, "t1", got.ID)
	})

	t.Run("changed identifier displaces the entry", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewBurstCache()
		require.NoError(t, c.Set(ctx, "acme", &tenant.Tenant{ID: "t1"}))
		require.NoError(t, c.Set(ctx, "globex", &tenant.Tenant{ID: "t2"}))

		_, ok := c.Get(ctx, "acme")
		assert.False(t, ok, "previous identifier must require a fresh lookup")

		got, ok := c.Get(ctx, "globex")
		require.True(t, ok)
		assert.Equal(t, "t2", got.ID)
	})

	t.Run("delete clears only the matching key", func(t *testing.T) {
		t.Parallel()

		c := tenant.NewBurstCache()
		require.NoError(t, c.Set(ctx, "acme", &tenant.Tenant{ID: "t1"}))

		require.NoError(t, c.Delete(ctx, "other"))
		_, ok := c.Get(ctx, "acme")
		assert.True(t, ok)

		require.NoError(t, c.Delete(ctx, "acme"))
		_, ok = c.Get(ctx, "acme")
		assert.False(t, ok)
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &tenant.NoOpCache{}

	require.NoError(t, c.Set(ctx, "acme", &tenant.Tenant{ID: "t1"}))
	_, ok := c.Get(ctx, "acme")
	assert.False(t, ok)
	require.NoError(t, c.Delete(ctx, "acme"))
}
