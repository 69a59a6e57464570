package tenantflow

import (
	"context"

	"github.com/dmitrymomot/tenantflow/pkg/branding"
	"github.com/dmitrymomot/tenantflow/pkg/routepolicy"
	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

// Current returns the resolution state snapshot. The returned value is
// complete: it can never reflect a half-finished transition.
func (o *Orchestrator) Current() State {
	return *o.state.Load()
}

// Tenant returns the currently resolved tenant, or nil.
func (o *Orchestrator) Tenant() *tenant.Tenant {
	return o.state.Load().Tenant
}

// Identifier returns the identifier of the current resolution, empty when
// none was extractable.
func (o *Orchestrator) Identifier() string {
	return o.state.Load().Identifier
}

// InviteCode returns the invite code captured from the last navigation.
func (o *Orchestrator) InviteCode() string {
	return o.state.Load().InviteCode
}

// Loading reports whether a resolution is in flight.
func (o *Orchestrator) Loading() bool {
	return o.state.Load().Loading()
}

// Err returns the failure reason of the current resolution, nil unless
// the state is Failed.
func (o *Orchestrator) Err() error {
	return o.state.Load().Err
}

// Theme returns the currently applied branding snapshot.
func (o *Orchestrator) Theme() branding.Theme {
	return o.theme.Current()
}

// Policy exposes the route classifier so pages can adjust their own
// rendering with the same tables the orchestrator redirects by.
func (o *Orchestrator) Policy() *routepolicy.Classifier {
	return o.policy
}

// subscriberBuffer sizes subscription channels; slow consumers miss
// intermediate transitions rather than block resolution.
const subscriberBuffer = 8

// Subscribe returns a channel of state transitions. The subscription
// lives until ctx is cancelled; transitions are dropped, not queued, for
// subscribers that fall behind.
func (o *Orchestrator) Subscribe(ctx context.Context) <-chan State {
	ch := make(chan State, subscriberBuffer)

	o.subMu.Lock()
	o.subs[ch] = struct{}{}
	o.subMu.Unlock()

	go func() {
		<-ctx.Done()
		o.subMu.Lock()
		delete(o.subs, ch)
		o.subMu.Unlock()
		close(ch)
	}()

	return ch
}

func (o *Orchestrator) notify(state State) {
	o.subMu.Lock()
	defer o.subMu.Unlock()

	for ch := range o.subs {
		select {
		case ch <- state:
		default:
		}
	}
}
