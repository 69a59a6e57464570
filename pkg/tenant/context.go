package tenant

import (
	"context"
	"log/slog"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithTenant adds a tenant to the context.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext retrieves the tenant from the context.
// Returns nil, false if no tenant is found.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(contextKey{}).(*Tenant)
	return t, ok
}

// IDFromContext retrieves just the tenant ID from the context.
// Returns empty string and false if no tenant is found.
func IDFromContext(ctx context.Context) (string, bool) {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		return "", false
	}
	return t.ID, true
}

// RequireTenant retrieves the tenant from the context or returns
// ErrNoTenantInContext. Handlers behind the resolution middleware use it
// when they cannot render without a tenant; the middleware itself fails
// open, so the decision sits with each handler.
func RequireTenant(ctx context.Context) (*Tenant, error) {
	t, ok := FromContext(ctx)
	if !ok || t == nil {
		return nil, ErrNoTenantInContext
	}
	return t, nil
}

// MustFromContext is RequireTenant for call sites where a missing tenant
// is a programming error. Panics with ErrNoTenantInContext.
func MustFromContext(ctx context.Context) *Tenant {
	t, err := RequireTenant(ctx)
	if err != nil {
		panic(err)
	}
	return t
}

// LoggerExtractor returns a ContextExtractor for the logger that injects
// the tenant ID into every log record carrying a tenant context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", id), true
		}
		return slog.Attr{}, false
	}
}
