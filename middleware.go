package tenantflow

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

// inviteKey is a private context key for the captured invite code.
type inviteKey struct{}

// WithInviteCode adds an invite code to the context. The code is consumed
// by downstream signup flows and never mutated by the engine.
func WithInviteCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, inviteKey{}, code)
}

// InviteCodeFromContext retrieves the invite code captured during
// resolution, if any.
func InviteCodeFromContext(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(inviteKey{}).(string)
	return code, ok && code != ""
}

// Middleware runs tenant resolution for every request. Requests that must
// redirect (tenant-gated route without a tenant, or a default marketplace
// path once a tenant is known) are answered with 303 See Other; everything
// else passes through with the resolved tenant and invite code in the
// request context. Failures never block AlwaysOpen routes.
func (o *Orchestrator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			outcome := o.Navigate(r.Context(), r)

			if outcome.Redirect != "" {
				http.Redirect(w, r, outcome.Redirect, http.StatusSeeOther)
				return
			}

			ctx := r.Context()
			if t := outcome.State.Tenant; t != nil {
				ctx = tenant.WithTenant(ctx, t)
			}
			if outcome.State.InviteCode != "" {
				ctx = WithInviteCode(ctx, outcome.State.InviteCode)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
