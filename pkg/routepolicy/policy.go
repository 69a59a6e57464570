package routepolicy

import (
	"net/url"
	"strings"
)

// Policy classifies how a route may be entered with respect to tenant context.
type Policy int

const (
	// AlwaysOpen routes render regardless of tenant resolution.
	AlwaysOpen Policy = iota
	// TenantRequired routes redirect to tenant selection when no tenant
	// is resolvable.
	TenantRequired
	// InviteBypass overrides TenantRequired whenever an invite, referral,
	// or explicit identifier parameter is present.
	InviteBypass
)

func (p Policy) String() string {
	switch p {
	case TenantRequired:
		return "tenant_required"
	case InviteBypass:
		return "invite_bypass"
	default:
		return "always_open"
	}
}

// Rules are the static tables the classifier derives policies from.
// Zero-value fields fall back to the compiled-in defaults.
type Rules struct {
	// OpenPrefixes are always-open paths: tenant selection, the
	// cross-tenant admin console, onboarding, and login screens.
	// Every path not matching GatedPrefixes is open as well; listing a
	// prefix here additionally shields it from ever being gated.
	OpenPrefixes []string `yaml:"open_prefixes"`

	// GatedPrefixes are the only tenant-gated paths. Broad gating was
	// tried and rejected in favor of permissive default access.
	GatedPrefixes []string `yaml:"gated_prefixes"`

	// InviteOnlyPrefixes are paths pages may want to render differently
	// when reached without an invite.
	InviteOnlyPrefixes []string `yaml:"invite_only_prefixes"`

	// BypassParams are query parameters whose presence grants
	// InviteBypass on any path.
	BypassParams []string `yaml:"bypass_params"`
}

// DefaultRules returns the compiled-in rule tables.
func DefaultRules() Rules {
	return Rules{
		OpenPrefixes:       []string{"/select-client", "/admin/clients", "/onboarding", "/login"},
		GatedPrefixes:      []string{"/signup", "/register"},
		InviteOnlyPrefixes: []string{"/signup"},
		BypassParams:       []string{"ref", "invite", "code", "client"},
	}
}

// Classifier derives a Policy for a path and query. It is stateless and
// safe for concurrent use.
type Classifier struct {
	rules Rules
}

// NewClassifier creates a classifier, filling empty rule tables with defaults.
func NewClassifier(rules Rules) *Classifier {
	defaults := DefaultRules()
	if rules.OpenPrefixes == nil {
		rules.OpenPrefixes = defaults.OpenPrefixes
	}
	if rules.GatedPrefixes == nil {
		rules.GatedPrefixes = defaults.GatedPrefixes
	}
	if rules.InviteOnlyPrefixes == nil {
		rules.InviteOnlyPrefixes = defaults.InviteOnlyPrefixes
	}
	if rules.BypassParams == nil {
		rules.BypassParams = defaults.BypassParams
	}
	return &Classifier{rules: rules}
}

// hasPrefix matches whole path segments: "/signup" covers "/signup" and
// "/signup/step2" but not "/signupx".
func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Classify returns the policy for the given path and query parameters.
// InviteBypass always wins, even on otherwise-gated paths; only
// GatedPrefixes are ever TenantRequired; everything else is AlwaysOpen.
func (c *Classifier) Classify(path string, query url.Values) Policy {
	for _, param := range c.rules.BypassParams {
		if query.Has(param) {
			return InviteBypass
		}
	}
	if matchesAny(path, c.rules.OpenPrefixes) {
		return AlwaysOpen
	}
	if matchesAny(path, c.rules.GatedPrefixes) {
		return TenantRequired
	}
	return AlwaysOpen
}

// RequiresClientContext reports whether the path is tenant-gated,
// ignoring any bypass parameters.
func (c *Classifier) RequiresClientContext(path string) bool {
	if matchesAny(path, c.rules.OpenPrefixes) {
		return false
	}
	return matchesAny(path, c.rules.GatedPrefixes)
}

// IsInviteOnlyRoute reports whether the path is normally reached through
// an invite or referral link.
func (c *Classifier) IsInviteOnlyRoute(path string) bool {
	return matchesAny(path, c.rules.InviteOnlyPrefixes)
}

// IsClientRoute reports whether the path itself carries a tenant
// identifier (/client/{id}/... or /{id}/marketplace|vendor|admin).
func IsClientRoute(path string) bool {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" {
		return false
	}
	if parts[0] == "client" {
		return true
	}
	switch parts[1] {
	case "marketplace", "vendor", "admin":
		return true
	}
	return false
}
