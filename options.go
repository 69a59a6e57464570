package tenantflow

import (
	"log/slog"

	"github.com/dmitrymomot/tenantflow/pkg/branding"
	"github.com/dmitrymomot/tenantflow/pkg/routepolicy"
	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithResolver replaces the default extraction chain.
func WithResolver(r tenant.Resolver) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.resolve = r
		}
	}
}

// WithCache replaces the default single-entry burst cache, e.g. with the
// Redis-backed implementation for multi-instance deployments.
func WithCache(c tenant.Cache) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithClassifier replaces the default route policy tables.
func WithClassifier(c *routepolicy.Classifier) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.policy = c
		}
	}
}

// WithApplicator registers an additional branding applicator, invoked
// after the built-in theme store on every successful resolution.
func WithApplicator(a branding.Applicator) Option {
	return func(o *Orchestrator) {
		if a != nil {
			o.brand = append(o.brand, a)
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}
