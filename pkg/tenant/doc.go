// Package tenant identifies which branded marketplace an incoming request
// belongs to and loads that tenant's record.
//
// The package is built around three concepts:
//
//  1. Resolvers - extract a candidate tenant identifier from an HTTP
//     request (subdomain, path, explicit query parameter, custom domain)
//  2. Directory - translates an identifier into a full tenant record
//     (REST client against the platform API, or direct Postgres access)
//  3. Cache - de-duplicates directory lookups within a navigation burst
//
// Identifier extraction is pure and performs no I/O. The Directory is the
// only I/O boundary: exactly one network call per Lookup, no retries, and
// a strict response contract: only an error:false envelope with a present
// client payload counts as a success. An explicit error flag is
// ErrLookupRejected, a missing payload is ErrTenantNotFound, and transport
// or decode problems are ErrTransportFailure or ErrMalformedResponse.
//
// # Extraction chain
//
// NewChainResolver evaluates strategies in a fixed priority order with
// short-circuit semantics. An explicit identifier query parameter always
// wins; referral parameters without one deliberately stop extraction,
// deferring attribution to the backend. Subdomain inference skips hosting
// platform preview domains, and a bare custom domain is only used as an
// identifier when the host is neither the platform's own domain nor a
// local development host.
//
//	resolve := tenant.NewChainResolver(tenant.ChainConfig{
//		PlatformDomain: "platform.com",
//		HostingDomains: []string{"vercel.app", "netlify.app"},
//	})
//	id, err := resolve(req)
//
// A non-match returns an empty identifier and a nil error; only malformed
// identifiers produce ErrInvalidIdentifier.
//
// # Context propagation
//
// Resolved tenants travel through request contexts via WithTenant and
// FromContext, with LoggerExtractor injecting the tenant id into slog
// records automatically.
package tenant
