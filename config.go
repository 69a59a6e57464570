package tenantflow

import (
	"time"

	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

// Config carries the engine's deployment-specific knobs. Fields map to
// environment variables and are parsed once per process with
// caarlos0/env (see cmd/tenantd).
type Config struct {
	// APIBaseURL is the platform API endpoint backing the HTTP directory.
	APIBaseURL string `env:"TENANT_API_BASE_URL"`

	// PlatformDomain is the platform's own registrable domain; hosts
	// under it are never treated as custom tenant domains.
	PlatformDomain string `env:"PLATFORM_DOMAIN" envDefault:"platform.com"`

	// HostingDomains are PaaS preview domains whose subdomains must not
	// be mistaken for tenant subdomains.
	HostingDomains []string `env:"HOSTING_DOMAINS" envSeparator:"," envDefault:"vercel.app,netlify.app,herokuapp.com,onrender.com,pages.dev"`

	// ReservedSubdomains never denote a tenant; empty means the
	// compiled-in defaults.
	ReservedSubdomains []string `env:"RESERVED_SUBDOMAINS" envSeparator:","`

	// LegacyReferralFallback enables the historical referral-code
	// heuristic when set. Leave empty unless the deployment ever issued
	// "client-" referral codes.
	LegacyReferralFallback string `env:"LEGACY_REFERRAL_FALLBACK"`

	// SelectClientPath is the redirect target when a tenant-gated route
	// is entered with no resolvable tenant.
	SelectClientPath string `env:"SELECT_CLIENT_PATH" envDefault:"/select-client"`

	// PolicyRulesFile optionally overrides the route policy tables.
	PolicyRulesFile string `env:"ROUTE_POLICY_FILE"`

	// LookupTimeout bounds a single directory lookup.
	LookupTimeout time.Duration `env:"TENANT_LOOKUP_TIMEOUT" envDefault:"10s"`
}

// ChainConfig derives the identifier extraction chain configuration.
func (c Config) ChainConfig() tenant.ChainConfig {
	return tenant.ChainConfig{
		PlatformDomain:         c.PlatformDomain,
		HostingDomains:         c.HostingDomains,
		ReservedSubdomains:     c.ReservedSubdomains,
		LegacyReferralFallback: c.LegacyReferralFallback,
	}
}
