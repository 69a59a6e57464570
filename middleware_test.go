package tenantflow_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantflow"
	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("injects tenant into request context", func(t *testing.T) {
		t.Parallel()

		o := tenantflow.New(testConfig(), acmeDirectory())

		var seen *tenant.Tenant
		handler := o.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = tenant.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, navRequest(t, "acme.platform.com", "/vendor/orders"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "t1", seen.ID)
	})

	t.Run("redirects default path to tenant marketplace", func(t *testing.T) {
		t.Parallel()

		o := tenantflow.New(testConfig(), acmeDirectory())
		handler := o.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run on redirect")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, navRequest(t, "acme.platform.com", "/"))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/acme/marketplace", rec.Header().Get("Location"))
	})

	t.Run("redirects gated route to tenant selection", func(t *testing.T) {
		t.Parallel()

		o := tenantflow.New(testConfig(), acmeDirectory())
		handler := o.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run on redirect")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, navRequest(t, "app.platform.com", "/signup"))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/select-client", rec.Header().Get("Location"))
	})

	t.Run("passes invite code through context", func(t *testing.T) {
		t.Parallel()

		o := tenantflow.New(testConfig(), acmeDirectory())

		var code string
		handler := o.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code, _ = tenantflow.InviteCodeFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, navRequest(t, "app.platform.com", "/signup?invite=welcome1"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "welcome1", code)
	})

	t.Run("failed lookup passes open routes through without tenant", func(t *testing.T) {
		t.Parallel()

		dir := &stubDirectory{fn: func(ctx context.Context, identifier string) (*tenant.Tenant, error) {
			return nil, tenant.ErrTransportFailure
		}}
		o := tenantflow.New(testConfig(), dir)

		handler := o.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := tenant.FromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, navRequest(t, "acme.platform.com", "/marketplace"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestInviteCodeContext(t *testing.T) {
	t.Parallel()

	ctx := tenantflow.WithInviteCode(context.Background(), "welcome1")
	code, ok := tenantflow.InviteCodeFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "welcome1", code)

	_, ok = tenantflow.InviteCodeFromContext(context.Background())
	assert.False(t, ok)
}
