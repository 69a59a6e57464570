package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

func TestTenantContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithTenant(context.Background(), &tenant.Tenant{ID: "t1", Name: "Acme Co"})

		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "t1", got.ID)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "t1", id)
	})

	t.Run("absent tenant", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)

		_, ok = tenant.IDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("require surfaces the sentinel", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.RequireTenant(context.Background())
		assert.ErrorIs(t, err, tenant.ErrNoTenantInContext)

		got, err := tenant.RequireTenant(tenant.WithTenant(context.Background(), &tenant.Tenant{ID: "t1"}))
		require.NoError(t, err)
		assert.Equal(t, "t1", got.ID)
	})

	t.Run("must panics with the sentinel", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithError(t, tenant.ErrNoTenantInContext.Error(), func() {
			tenant.MustFromContext(context.Background())
		})
	})

	t.Run("logger extractor", func(t *testing.T) {
		t.Parallel()

		extract := tenant.LoggerExtractor()

		ctx := tenant.WithTenant(context.Background(), &tenant.Tenant{ID: "t1"})
		attr, ok := extract(ctx)
		require.True(t, ok)
		assert.Equal(t, "tenant_id", attr.Key)
		assert.Equal(t, "t1", attr.Value.String())

		_, ok = extract(context.Background())
		assert.False(t, ok)
	})
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Acme Co", (&tenant.Tenant{ID: "t1", Name: "Acme Co"}).DisplayName())
	assert.Equal(t, "t1", (&tenant.Tenant{ID: "t1"}).DisplayName())
}
