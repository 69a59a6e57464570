package tenantflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantflow/pkg/branding"
	"github.com/dmitrymomot/tenantflow/pkg/routepolicy"
	"github.com/dmitrymomot/tenantflow/pkg/tenant"
)

// inviteParams are checked in order when capturing an invite code,
// independently of identifier extraction.
var inviteParams = []string{"invite", "code", "ref"}

// navEvent is one navigation: the location triple driving a resolution.
type navEvent struct {
	host  string
	path  string
	query url.Values
}

func navFromRequest(r *http.Request) navEvent {
	return navEvent{
		host:  r.Host,
		path:  r.URL.Path,
		query: r.URL.Query(),
	}
}

// request rebuilds a minimal request for the pure resolver chain.
func (n navEvent) request() *http.Request {
	return &http.Request{
		Host: n.host,
		URL:  &url.URL{Path: n.path, RawQuery: n.query.Encode()},
	}
}

// Outcome is the routing decision for one navigation.
type Outcome struct {
	// State is the resolution state after the navigation. When Stale is
	// set it is the newer navigation's state, not this one's.
	State State

	// Redirect is the path the navigation must redirect to, empty for
	// pass-through.
	Redirect string

	// Stale marks a navigation superseded by a newer one; its result was
	// discarded and produced no side effects.
	Stale bool
}

// Orchestrator sequences identifier extraction, directory lookup, caching,
// branding, and access policy for every navigation event. It is the single
// writer of the resolution state; consumers read it via Current and the
// query surface, or subscribe to transitions.
type Orchestrator struct {
	cfg       Config
	resolve   tenant.Resolver
	directory tenant.Directory
	cache     tenant.Cache
	policy    *routepolicy.Classifier
	theme     *branding.Store
	brand     []branding.Applicator
	log       *slog.Logger

	seq   atomic.Uint64
	state atomic.Pointer[State]

	mu      sync.Mutex
	cancel  context.CancelFunc
	lastNav *navEvent

	subMu sync.Mutex
	subs  map[chan State]struct{}
}

// New creates an orchestrator over the given directory. The zero Config
// is usable for tests; production deployments load it from the
// environment.
func New(cfg Config, directory tenant.Directory, opts ...Option) *Orchestrator {
	if cfg.SelectClientPath == "" {
		cfg.SelectClientPath = "/select-client"
	}

	theme := branding.NewStore()
	o := &Orchestrator{
		cfg:       cfg,
		resolve:   tenant.NewChainResolver(cfg.ChainConfig()),
		directory: directory,
		cache:     tenant.NewBurstCache(),
		policy:    routepolicy.NewClassifier(routepolicy.Rules{}),
		theme:     theme,
		brand:     []branding.Applicator{theme},
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		subs:      make(map[chan State]struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}

	o.state.Store(&State{Phase: PhaseIdle})
	return o
}

// Navigate processes one navigation event: any change to the current
// location's host, path, or query string. A newer navigation supersedes
// any resolution still in flight; the stale one is discarded, never merged.
func (o *Orchestrator) Navigate(ctx context.Context, r *http.Request) Outcome {
	return o.run(ctx, navFromRequest(r), false)
}

// Redetect re-runs the last navigation, bypassing the cache. It is the
// explicit retry hook: failed lookups stay failed until the host
// application re-invokes resolution or the user re-navigates.
func (o *Orchestrator) Redetect(ctx context.Context) Outcome {
	o.mu.Lock()
	nav := o.lastNav
	o.mu.Unlock()

	if nav == nil {
		return Outcome{State: o.Current()}
	}
	return o.run(ctx, *nav, true)
}

func (o *Orchestrator) run(ctx context.Context, nav navEvent, bypassCache bool) Outcome {
	seq := o.seq.Add(1)
	navID := uuid.NewString()

	// A new navigation cancels whatever lookup the previous one still has
	// in flight. Its completion will find a newer sequence and discard.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.cancel = cancel
	o.lastNav = &nav
	o.mu.Unlock()

	log := o.log.With(
		slog.String("nav_id", navID),
		slog.Uint64("seq", seq),
		slog.String("host", nav.host),
		slog.String("path", nav.path),
	)

	invite := captureInvite(nav.query)
	if stale := o.commit(seq, State{Phase: PhaseResolving, InviteCode: invite, Seq: seq}, nil); stale {
		return Outcome{Stale: true, State: o.Current()}
	}

	identifier, err := o.resolve(nav.request())
	if err != nil {
		// A malformed identifier is treated as no identifier at all;
		// extraction never fails a navigation.
		log.WarnContext(ctx, "discarding invalid tenant identifier", slog.Any("error", err))
		identifier = ""
	}

	if identifier == "" {
		state := State{Phase: PhaseNotFound, InviteCode: invite, Seq: seq}
		if stale := o.commit(seq, state, nil); stale {
			return Outcome{Stale: true, State: o.Current()}
		}
		outcome := Outcome{State: state}
		if o.policy.Classify(nav.path, nav.query) == routepolicy.TenantRequired {
			outcome.Redirect = o.cfg.SelectClientPath
			log.InfoContext(ctx, "no tenant resolvable on gated route, redirecting",
				slog.String("redirect", outcome.Redirect))
		}
		return outcome
	}

	record, cached, err := o.lookup(ctx, identifier, bypassCache)

	// Last navigation wins: a completion for a superseded sequence must
	// not overwrite newer state or apply side effects.
	switch {
	case err == nil:
		state := State{Phase: PhaseResolved, Tenant: record, Identifier: identifier, InviteCode: invite, Seq: seq}
		if stale := o.commit(seq, state, record); stale {
			return Outcome{Stale: true, State: o.Current()}
		}
		if !cached {
			if err := o.cache.Set(ctx, identifier, record); err != nil {
				log.WarnContext(ctx, "tenant cache write failed", slog.Any("error", err))
			}
		}
		outcome := Outcome{State: state}
		if isDefaultMarketplacePath(nav.path) {
			outcome.Redirect = "/" + identifier + "/marketplace"
		}
		log.DebugContext(ctx, "tenant resolved",
			slog.String("tenant_id", record.ID), slog.Bool("cache_hit", cached))
		return outcome

	case errors.Is(err, tenant.ErrTenantNotFound):
		state := State{Phase: PhaseNotFound, Identifier: identifier, InviteCode: invite, Seq: seq}
		if stale := o.commit(seq, state, nil); stale {
			return Outcome{Stale: true, State: o.Current()}
		}
		log.InfoContext(ctx, "tenant not found", slog.String("identifier", identifier))
		return Outcome{State: state}

	default:
		state := State{Phase: PhaseFailed, Identifier: identifier, InviteCode: invite, Err: err, Seq: seq}
		if stale := o.commit(seq, state, nil); stale {
			return Outcome{Stale: true, State: o.Current()}
		}
		log.ErrorContext(ctx, "failed to detect tenant",
			slog.String("identifier", identifier), slog.Any("error", err))
		return Outcome{State: state}
	}
}

// lookup consults the cache unless bypassed, then performs the single
// directory call. The directory never retries.
func (o *Orchestrator) lookup(ctx context.Context, identifier string, bypassCache bool) (*tenant.Tenant, bool, error) {
	if !bypassCache {
		if rec, ok := o.cache.Get(ctx, identifier); ok {
			return rec, true, nil
		}
	}

	if o.cfg.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.LookupTimeout)
		defer cancel()
	}

	rec, err := o.directory.Lookup(ctx, identifier)
	if err != nil {
		return nil, false, err
	}
	return rec, false, nil
}

// commit installs the state for seq unless a newer navigation has started.
// Branding is applied inside the same critical section so a subsequent
// resolution's side effects can never interleave with this one's.
func (o *Orchestrator) commit(seq uint64, state State, resolved *tenant.Tenant) (stale bool) {
	o.mu.Lock()
	if seq != o.seq.Load() {
		o.mu.Unlock()
		return true
	}
	o.state.Store(&state)
	if resolved != nil {
		for _, a := range o.brand {
			a.Apply(resolved)
		}
	}
	o.mu.Unlock()

	o.notify(state)
	return false
}

// captureInvite extracts an invite code from the query string,
// independently of tenant identifier extraction.
func captureInvite(query url.Values) string {
	for _, param := range inviteParams {
		if v := query.Get(param); v != "" {
			return v
		}
	}
	return ""
}

// isDefaultMarketplacePath reports whether the navigation sits on a
// root or default marketplace path that should move to the tenant-scoped
// equivalent once a tenant is known.
func isDefaultMarketplacePath(path string) bool {
	return path == "/" || path == "" || path == "/marketplace"
}
