// Package dispatch implements the route registration and dispatch engine:
// canonical path registry, invocation parsing, the per-dispatch context,
// the three response controllers and the deferred callback queue. The
// dispatcher is the single containment point for failures: a broken route
// is logged and surfaced as a host notification, never a crash of the
// host's UI thread.
package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/machinefabric/plugkit-go/host"
	"github.com/machinefabric/plugkit-go/manifest"
	"github.com/machinefabric/plugkit-go/params"
	"github.com/machinefabric/plugkit-go/storage"
)

// Dispatcher parses host invocations, resolves routes and runs them.
// Exactly one dispatch is ever active at a time within one host-spawned
// process; all mutable dispatch state lives on the per-dispatch Context.
type Dispatcher struct {
	manifest  *manifest.Manifest
	host      host.Host
	registry  *Registry
	settings  *storage.Settings
	now       func() time.Time
	startTime time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRegistry uses a pre-populated route registry instead of an empty
// one.
func WithRegistry(registry *Registry) Option {
	return func(d *Dispatcher) {
		d.registry = registry
	}
}

// WithSettings attaches the plugin settings document, enabling view-mode
// lookups and handler access through Context.Settings.
func WithSettings(settings *storage.Settings) Option {
	return func(d *Dispatcher) {
		d.settings = settings
	}
}

// WithClock overrides the dispatcher's clock. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// New creates a dispatcher for the given plugin manifest and host.
func New(m *manifest.Manifest, h host.Host, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		manifest: m,
		host:     h,
		registry: NewRegistry(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.startTime = d.now()
	return d
}

// Registry returns the dispatcher's route registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch parses the host argument vector, resolves the selected route,
// runs it and flushes its result. Any failure anywhere in that path is
// contained here: one critical log entry with the full error chain, one
// short host notification, then a normal return. The host does not
// interpret exit codes, so nothing is propagated further.
func (d *Dispatcher) Dispatch(argv []string) {
	inv, err := ParseInvocation(argv)
	if err != nil {
		d.contain(newLogger(d.host.Log(), d.manifest.ID, shortID(uuid.New())), err)
		return
	}

	p, err := params.Decode(inv.Query)
	if err != nil {
		d.contain(newLogger(d.host.Log(), d.manifest.ID, shortID(uuid.New())), err)
		return
	}

	route, err := d.registry.Lookup(inv.Selector)
	if err != nil {
		d.contain(newLogger(d.host.Log(), d.manifest.ID, shortID(uuid.New())), err)
		return
	}

	ctx := newContext(d, inv, route, p)
	ctx.Log.Debugf("Dispatching to route: '%s'", inv.Selector)
	ctx.Log.Debugf("Callback parameters: '%v'", ctx.CallbackParams())

	routeStart := d.now()
	if err := runRoute(ctx, route); err != nil {
		d.contain(ctx.Log, err)
		return
	}

	ctx.Log.Debugf("Route Execution Time: %dms", d.now().Sub(routeStart).Milliseconds())
	ctx.Log.Debugf("Total Execution Time: %dms", d.now().Sub(d.startTime).Milliseconds())

	// The primary result is flushed; deferred work runs now.
	ctx.runDelayed()
}

// contain is the dispatcher's top-level failure boundary.
func (d *Dispatcher) contain(log *Logger, err error) {
	log.Criticalf("%v", err)

	if notifyErr := d.host.Notifier().Notify(errorName(err), err.Error(), d.manifest.Icon); notifyErr != nil {
		log.Errorf("failed to surface error notification: %v", notifyErr)
	}
}
