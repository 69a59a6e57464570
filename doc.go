// Package tenantflow is the tenant resolution and routing engine for a
// multi-tenant marketplace platform. For every navigation event it
// determines which tenant's marketplace is being requested, fetches that
// tenant's record, applies its branding, and decides whether the route
// may proceed, be redirected, or be denied.
//
// # Resolution cycle
//
// navigation event → identifier extraction → cache → directory lookup →
// branding → access policy → redirect or pass-through.
//
// The Orchestrator is the single writer of the resolution state. Exactly
// one logical resolution is in flight at a time: a new navigation
// supersedes any resolution already in progress, and a stale lookup's
// completion is discarded, never merged. State transitions replace the
// whole state atomically, so consumers never observe a half-updated
// record.
//
// # Failure model
//
// A missing identifier is not an error. TenantNotFound and transport or
// parse failures become terminal states surfaced to consumers as
// non-fatal error flags; nothing propagates as a panic. Routes stay
// navigable (fail-open) except the tenant-gated signup paths, which
// redirect to tenant selection (fail-closed). There are no automatic
// retries: the next navigation, or an explicit Redetect, re-triggers
// resolution.
//
// # Usage
//
//	var cfg tenantflow.Config
//	// parse cfg from the environment
//
//	directory := tenant.NewHTTPDirectory(cfg.APIBaseURL)
//	engine := tenantflow.New(cfg, directory)
//
//	r := chi.NewRouter()
//	r.Use(engine.Middleware())
package tenantflow
