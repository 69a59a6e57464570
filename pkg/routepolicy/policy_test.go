package routepolicy_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantflow/pkg/routepolicy"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	c := routepolicy.NewClassifier(routepolicy.Rules{})

	t.Run("gated prefixes require a tenant", func(t *testing.T) {
		t.Parallel()

		for _, path := range []string{"/signup", "/signup/step2", "/register"} {
			assert.Equal(t, routepolicy.TenantRequired, c.Classify(path, url.Values{}), "path %s", path)
		}
	})

	t.Run("everything else is open", func(t *testing.T) {
		t.Parallel()

		for _, path := range []string{"/", "/marketplace", "/acme/marketplace", "/vendor/orders", "/admin/clients", "/login", "/signupx"} {
			assert.Equal(t, routepolicy.AlwaysOpen, c.Classify(path, url.Values{}), "path %s", path)
		}
	})

	t.Run("invite parameters bypass the gate on any path", func(t *testing.T) {
		t.Parallel()

		for _, param := range []string{"ref", "invite", "code", "client"} {
			query := url.Values{param: {"xyz"}}
			assert.Equal(t, routepolicy.InviteBypass, c.Classify("/signup", query), "param %s", param)
			assert.Equal(t, routepolicy.InviteBypass, c.Classify("/marketplace", query), "param %s", param)
		}
	})

	t.Run("open prefixes shield against gating", func(t *testing.T) {
		t.Parallel()

		shielded := routepolicy.NewClassifier(routepolicy.Rules{
			OpenPrefixes:  []string{"/signup/preview"},
			GatedPrefixes: []string{"/signup"},
		})
		assert.Equal(t, routepolicy.AlwaysOpen, shielded.Classify("/signup/preview", url.Values{}))
		assert.Equal(t, routepolicy.TenantRequired, shielded.Classify("/signup", url.Values{}))
	})
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	c := routepolicy.NewClassifier(routepolicy.Rules{})

	t.Run("requires client context", func(t *testing.T) {
		t.Parallel()

		assert.True(t, c.RequiresClientContext("/signup"))
		assert.True(t, c.RequiresClientContext("/register"))
		assert.False(t, c.RequiresClientContext("/marketplace"))
		assert.False(t, c.RequiresClientContext("/login"))
	})

	t.Run("invite only routes", func(t *testing.T) {
		t.Parallel()

		assert.True(t, c.IsInviteOnlyRoute("/signup"))
		assert.False(t, c.IsInviteOnlyRoute("/marketplace"))
	})

	t.Run("client routes", func(t *testing.T) {
		t.Parallel()

		assert.True(t, routepolicy.IsClientRoute("/client/acme/dashboard"))
		assert.True(t, routepolicy.IsClientRoute("/acme/marketplace"))
		assert.True(t, routepolicy.IsClientRoute("/acme/vendor"))
		assert.True(t, routepolicy.IsClientRoute("/acme/admin"))
		assert.False(t, routepolicy.IsClientRoute("/signup"))
		assert.False(t, routepolicy.IsClientRoute("/"))
	})
}

func TestPolicyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "always_open", routepolicy.AlwaysOpen.String())
	assert.Equal(t, "tenant_required", routepolicy.TenantRequired.String())
	assert.Equal(t, "invite_bypass", routepolicy.InviteBypass.String())
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	t.Run("loads yaml tables", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"gated_prefixes:\n  - /waitlist\nbypass_params: [invite]\n",
		), 0o600))

		rules, err := routepolicy.LoadRules(path)
		require.NoError(t, err)

		c := routepolicy.NewClassifier(rules)
		assert.Equal(t, routepolicy.TenantRequired, c.Classify("/waitlist", url.Values{}))
		assert.Equal(t, routepolicy.AlwaysOpen, c.Classify("/signup", url.Values{}))
		assert.Equal(t, routepolicy.InviteBypass, c.Classify("/waitlist", url.Values{"invite": {"x"}}))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := routepolicy.LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, routepolicy.ErrInvalidRulesFile)
	})

	t.Run("unparsable file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("gated_prefixes: {bad"), 0o600))

		_, err := routepolicy.LoadRules(path)
		assert.ErrorIs(t, err, routepolicy.ErrInvalidRulesFile)
	})
}
