package branding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/tenantflow/pkg/branding"
	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

func TestStoreApply(t *testing.T) {
	t.Parallel()

	t.Run("applies full record", func(t *testing.T) {
		t.Parallel()

		s := branding.NewStore()
		s.Apply(&tenant.Tenant{
			ID:             "t1",
			Name:           "Acme Co",
			PrimaryColor:   "#336699",
			SecondaryColor: "#222222",
			FontFamily:     "Inter",
			LogoURL:        "https://cdn.example/acme.png",
		})

		got := s.Current()
		assert.Equal(t, "#336699", got.PrimaryColor)
		assert.Equal(t, "#222222", got.SecondaryColor)
		assert.Equal(t, "Inter", got.FontFamily)
		assert.Equal(t, "https://cdn.example/acme.png", got.LogoURL)
		assert.Equal(t, "Acme Co | Marketplace", got.PageTitle)
	})

	t.Run("absent fields keep prior values", func(t *testing.T) {
		t.Parallel()

		s := branding.NewStore()
		s.Apply(&tenant.Tenant{ID: "t1", Name: "Acme Co", PrimaryColor: "#336699", FontFamily: "Inter"})
		s.Apply(&tenant.Tenant{ID: "t2", Name: "Globex", PrimaryColor: "#aa0000"})

		got := s.Current()
		assert.Equal(t, "#aa0000", got.PrimaryColor)
		assert.Equal(t, "Inter", got.FontFamily, "absent font must not reset prior value")
		assert.Equal(t, "Globex | Marketplace", got.PageTitle)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		rec := &tenant.Tenant{ID: "t1", Name: "Acme Co", PrimaryColor: "#336699"}

		s := branding.NewStore()
		s.Apply(rec)
		once := s.Current()
		s.Apply(rec)
		twice := s.Current()

		assert.Equal(t, once, twice)
	})

	t.Run("nil record is a no-op", func(t *testing.T) {
		t.Parallel()

		s := branding.NewStore()
		s.Apply(nil)
		assert.Equal(t, branding.Theme{}, s.Current())
	})
}

func TestCSSVariables(t *testing.T) {
	t.Parallel()

	theme := branding.Theme{PrimaryColor: "#336699", FontFamily: "Inter"}
	assert.Equal(t, ":root{--primary-color:#336699;--font-family:Inter;}", theme.CSSVariables())

	assert.Equal(t, ":root{}", branding.Theme{}.CSSVariables())
}

func TestPageTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Acme Co | Marketplace", branding.PageTitle(&tenant.Tenant{ID: "t1", Name: "Acme Co"}))
	assert.Equal(t, "t1 | Marketplace", branding.PageTitle(&tenant.Tenant{ID: "t1"}))
	assert.Equal(t, "Marketplace", branding.PageTitle(&tenant.Tenant{}))
}
