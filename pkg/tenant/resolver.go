package tenant

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

const (
	// MaxIdentifierLength keeps identifiers DNS-compatible and bounds
	// the cost of hostile query strings.
	MaxIdentifierLength = 63

	// DefaultIdentifierParam is the query parameter carrying an explicit
	// tenant identifier on invite and referral links.
	DefaultIdentifierParam = "client"
)

var (
	// labelPattern ensures DNS-safe labels: alphanumeric start, allows hyphens, no dots.
	labelPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)
	// hostPattern allows full hostnames used as custom-domain identifiers.
	hostPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9.-]*$`)
)

// Resolver extracts a tenant identifier from an HTTP request.
// Returns empty string if no identifier is found, error if extraction failed.
// A non-match is never an error.
type Resolver func(r *http.Request) (string, error)

func isValidLabel(id string) bool {
	return id != "" && len(id) <= MaxIdentifierLength && labelPattern.MatchString(id)
}

func isValidHost(id string) bool {
	return id != "" && len(id) <= 2*MaxIdentifierLength && hostPattern.MatchString(id)
}

func hostWithoutPort(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}
	return host
}

// registrableDomain returns the last two labels of a host
// (e.g. "vercel.app" for "preview.myshop.vercel.app").
func registrableDomain(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return host
	}
	return strings.Join(parts[len(parts)-2:], ".")
}

// NewQueryResolver extracts an explicit tenant identifier from the given
// query parameter. This is the strongest signal, used by invite and
// referral links.
func NewQueryResolver(param string) Resolver {
	if param == "" {
		param = DefaultIdentifierParam
	}

	return func(req *http.Request) (string, error) {
		value := strings.TrimSpace(req.URL.Query().Get(param))
		if value == "" {
			return "", nil
		}
		if !isValidLabel(value) {
			return "", fmt.Errorf("%w: query value %q", ErrInvalidIdentifier, value)
		}
		return value, nil
	}
}

// DefaultReservedSubdomains are leading host labels that never denote a
// tenant: the canonical www host and the platform's own portals.
var DefaultReservedSubdomains = []string{"www", "localhost", "app", "api", "admin"}

// NewSubdomainResolver extracts the leading host label as the tenant
// identifier. The host must have at least three dot-separated labels, the
// leading label must not be reserved, and the registrable domain must not
// belong to a hosting platform (PaaS preview domains carry the deployment
// name, not a tenant). A nil reserved list falls back to
// DefaultReservedSubdomains.
func NewSubdomainResolver(hostingDomains, reserved []string) Resolver {
	hosting := make(map[string]struct{}, len(hostingDomains))
	for _, d := range hostingDomains {
		hosting[strings.ToLower(d)] = struct{}{}
	}
	if reserved == nil {
		reserved = DefaultReservedSubdomains
	}
	reservedSet := make(map[string]struct{}, len(reserved))
	for _, s := range reserved {
		reservedSet[strings.ToLower(s)] = struct{}{}
	}

	return func(req *http.Request) (string, error) {
		host := strings.ToLower(hostWithoutPort(req.Host))

		parts := strings.Split(host, ".")
		if len(parts) < 3 {
			return "", nil
		}

		sub := parts[0]
		if sub == "" {
			return "", nil
		}
		if _, ok := reservedSet[sub]; ok {
			return "", nil
		}

		if _, ok := hosting[registrableDomain(host)]; ok {
			return "", nil
		}

		if !isValidLabel(sub) {
			return "", fmt.Errorf("%w: subdomain %q", ErrInvalidIdentifier, sub)
		}
		return sub, nil
	}
}

// pathSuffixes are the tenant-scoped sections recognized by the
// /{id}/<section> pattern.
var pathSuffixes = []string{"marketplace", "vendor", "admin"}

// NewPathResolver extracts a tenant identifier from the URL path.
// Patterns are tried in order, first match wins:
//
//	/client/{id}/...
//	/{id}/marketplace
//	/{id}/vendor
//	/{id}/admin
func NewPathResolver() Resolver {
	return func(req *http.Request) (string, error) {
		path := strings.Trim(req.URL.Path, "/")
		if path == "" {
			return "", nil
		}
		parts := strings.Split(path, "/")

		if parts[0] == "client" && len(parts) >= 2 {
			id := parts[1]
			if !isValidLabel(id) {
				return "", fmt.Errorf("%w: path segment %q", ErrInvalidIdentifier, id)
			}
			return id, nil
		}

		if len(parts) >= 2 {
			for _, section := range pathSuffixes {
				if parts[1] == section {
					id := parts[0]
					if !isValidLabel(id) {
						return "", fmt.Errorf("%w: path segment %q", ErrInvalidIdentifier, id)
					}
					return id, nil
				}
			}
		}

		return "", nil
	}
}

// NewLegacyReferralResolver maps referral codes following the historical
// "client-" convention to a fixed fallback identifier. The heuristic is
// disabled when fallback is empty; deployments that never issued such
// codes should leave it unset.
func NewLegacyReferralResolver(fallback string) Resolver {
	return func(req *http.Request) (string, error) {
		if fallback == "" {
			return "", nil
		}
		ref := req.URL.Query().Get("ref")
		if strings.Contains(ref, "client-") {
			return fallback, nil
		}
		return "", nil
	}
}

// NewCustomDomainResolver treats the entire host as the tenant identifier
// when it is neither the platform's own domain (nor a subdomain of it)
// nor a local development host.
func NewCustomDomainResolver(platformDomain string) Resolver {
	platformDomain = strings.ToLower(platformDomain)

	return func(req *http.Request) (string, error) {
		host := strings.ToLower(hostWithoutPort(req.Host))
		if host == "" {
			return "", nil
		}

		if host == "localhost" || host == "127.0.0.1" || strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".local") {
			return "", nil
		}

		if platformDomain != "" && (host == platformDomain || strings.HasSuffix(host, "."+platformDomain)) {
			return "", nil
		}

		if !isValidHost(host) {
			return "", fmt.Errorf("%w: host %q", ErrInvalidIdentifier, host)
		}
		return host, nil
	}
}

// ChainConfig configures the fixed-priority resolver chain.
type ChainConfig struct {
	// IdentifierParam is the explicit identifier query parameter.
	// Defaults to DefaultIdentifierParam.
	IdentifierParam string

	// ReferralParams are the query parameters whose presence, without an
	// explicit identifier, defers resolution to a backend-side lookup.
	// Defaults to "ref" and "vendor".
	ReferralParams []string

	// PlatformDomain is the platform's own registrable domain.
	// Hosts under it never count as custom domains.
	PlatformDomain string

	// HostingDomains are registrable domains of hosting platforms whose
	// subdomains must not be mistaken for tenant subdomains.
	HostingDomains []string

	// ReservedSubdomains are leading host labels that never denote a
	// tenant. Defaults to DefaultReservedSubdomains when nil.
	ReservedSubdomains []string

	// LegacyReferralFallback enables the historical referral-code
	// heuristic when non-empty.
	LegacyReferralFallback string
}

// NewChainResolver builds the full extraction chain, evaluated in fixed
// priority order with short-circuit semantics:
//
//  1. explicit identifier query parameter;
//  2. legacy referral-code heuristic, only when a fallback is configured;
//  3. referral parameters without an explicit identifier stop the chain
//     (resolution is deferred to the backend, deliberately no identifier);
//  4. subdomain inference;
//  5. path-pattern inference;
//  6. bare custom domain.
//
// No strategy ever errors on a mere non-match; only invalid identifier
// formats produce errors.
func NewChainResolver(cfg ChainConfig) Resolver {
	referralParams := cfg.ReferralParams
	if referralParams == nil {
		referralParams = []string{"ref", "vendor"}
	}

	explicit := NewQueryResolver(cfg.IdentifierParam)
	legacy := NewLegacyReferralResolver(cfg.LegacyReferralFallback)
	rest := []Resolver{
		NewSubdomainResolver(cfg.HostingDomains, cfg.ReservedSubdomains),
		NewPathResolver(),
		NewCustomDomainResolver(cfg.PlatformDomain),
	}

	return func(req *http.Request) (string, error) {
		if id, err := explicit(req); err != nil || id != "" {
			return id, err
		}

		// The legacy heuristic inspects the ref parameter, so it must run
		// before the referral deferral below or it could never fire. It is
		// a no-op unless a fallback identifier is configured.
		if id, err := legacy(req); err != nil || id != "" {
			return id, err
		}

		// Referral traffic without an explicit identifier is resolved by
		// the backend from the referral code itself; guessing a tenant
		// here would attribute signups to the wrong marketplace.
		query := req.URL.Query()
		for _, param := range referralParams {
			if query.Has(param) {
				return "", nil
			}
		}

		for _, resolve := range rest {
			id, err := resolve(req)
			if err != nil {
				return "", err
			}
			if id != "" {
				return id, nil
			}
		}
		return "", nil
	}
}
