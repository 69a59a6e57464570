package tenantflow

import (
	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

// Phase enumerates the resolution lifecycle.
type Phase int

const (
	// PhaseIdle means no navigation has been processed yet.
	PhaseIdle Phase = iota
	// PhaseResolving means a navigation is being resolved.
	PhaseResolving
	// PhaseResolved means the navigation resolved to a tenant.
	PhaseResolved
	// PhaseNotFound means no tenant backs the navigation; State.Identifier
	// carries the identifier that missed, or is empty when none was
	// extractable.
	PhaseNotFound
	// PhaseFailed means the directory lookup failed; State.Err carries the
	// reason. The tenant remains unset until the next navigation.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseResolving:
		return "resolving"
	case PhaseResolved:
		return "resolved"
	case PhaseNotFound:
		return "not_found"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the resolution state exposed to consumers. Every transition
// replaces the whole value atomically; consumers never observe a
// half-updated record.
type State struct {
	Phase      Phase
	Tenant     *tenant.Tenant
	Identifier string
	InviteCode string
	Err        error
	// Seq is the navigation sequence number that produced this state.
	// Later navigations always carry higher numbers.
	Seq uint64
}

// Loading reports whether a resolution is in flight.
func (s State) Loading() bool {
	return s.Phase == PhaseResolving
}

// Resolved reports whether a tenant is currently set.
func (s State) Resolved() bool {
	return s.Phase == PhaseResolved && s.Tenant != nil
}
