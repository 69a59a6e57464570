// Package routepolicy decides whether a route may proceed without a
// resolved tenant.
//
// Only signup and registration paths are ever tenant-gated; every other
// path is open regardless of tenant resolution. This asymmetry is
// deliberate: broad gating was tried and rejected in favor of permissive
// default access. Invite, referral, and explicit-identifier query
// parameters grant InviteBypass on any path, overriding the gate.
package routepolicy
