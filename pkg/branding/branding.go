package branding

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

// Theme is the observable branding state derived from a tenant record.
type Theme struct {
	PrimaryColor   string
	SecondaryColor string
	FontFamily     string
	LogoURL        string
	PageTitle      string
}

// CSSVariables renders the theme as CSS custom properties for page
// consumers. Unset fields are omitted.
func (t Theme) CSSVariables() string {
	var b strings.Builder
	b.WriteString(":root{")
	if t.PrimaryColor != "" {
		fmt.Fprintf(&b, "--primary-color:%s;", t.PrimaryColor)
	}
	if t.SecondaryColor != "" {
		fmt.Fprintf(&b, "--secondary-color:%s;", t.SecondaryColor)
	}
	if t.FontFamily != "" {
		fmt.Fprintf(&b, "--font-family:%s;", t.FontFamily)
	}
	b.WriteString("}")
	return b.String()
}

// Applicator applies a resolved tenant's visual attributes as a side
// effect. Apply never fails and never affects resolution.
type Applicator interface {
	Apply(t *tenant.Tenant)
}

// Store holds the currently applied theme. Apply replaces the snapshot
// atomically; readers never observe a partially merged theme. The store
// is idempotent: applying the same record twice yields the same state.
type Store struct {
	current atomic.Pointer[Theme]
}

// NewStore creates a store with an empty theme.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&Theme{})
	return s
}

// Apply merges the tenant's branding over the current theme. Absent
// fields leave prior values untouched; the page title always follows the
// tenant's display name.
func (s *Store) Apply(t *tenant.Tenant) {
	if t == nil {
		return
	}

	for {
		prev := s.current.Load()
		next := *prev
		if t.PrimaryColor != "" {
			next.PrimaryColor = t.PrimaryColor
		}
		if t.SecondaryColor != "" {
			next.SecondaryColor = t.SecondaryColor
		}
		if t.FontFamily != "" {
			next.FontFamily = t.FontFamily
		}
		if t.LogoURL != "" {
			next.LogoURL = t.LogoURL
		}
		next.PageTitle = PageTitle(t)

		if s.current.CompareAndSwap(prev, &next) {
			return
		}
	}
}

// Current returns a snapshot of the applied theme.
func (s *Store) Current() Theme {
	return *s.current.Load()
}

// PageTitle derives the document title from the tenant's display name.
func PageTitle(t *tenant.Tenant) string {
	name := t.DisplayName()
	if name == "" {
		return "Marketplace"
	}
	return name + " | Marketplace"
}
