package dispatch

import (
	"github.com/machinefabric/plugkit-go/params"
)

// Route is the registered binding between a canonical path and a handler.
// Routes are created once at registration and live for the process
// lifetime; they are never updated or removed.
type Route struct {
	// Path is the canonical selector path, derived deterministically from
	// the registration scope and handler name.
	Path string

	// Kind controls which response processing the route gets.
	Kind Kind

	// ArgNames is the handler's declared parameter-name list, in order,
	// captured at registration time. Used to rebind positional arguments to
	// keywords; production dispatch always arrives with keywords already
	// resolved.
	ArgNames []string

	// Handler is the handler value exactly as registered, kept for
	// identity and direct-invocation use.
	Handler any

	script   ScriptFunc
	folder   FolderFunc
	resolver ResolverFunc
}

// RebindPositional zips the route's declared argument names with args and
// merges the resulting pairs into the given parameter set. Surplus
// positional arguments beyond the declared names are dropped.
func (r *Route) RebindPositional(args []any, into params.Params) {
	for i, value := range args {
		if i >= len(r.ArgNames) {
			break
		}
		into[r.ArgNames[i]] = value
	}
}

// TestCallOption adjusts a TestCall invocation.
type TestCallOption func(*testCallConfig)

type testCallConfig struct {
	runDelayed bool
}

// RunDelayed makes TestCall drain the deferred callback queue after the
// handler returns.
func RunDelayed() TestCallOption {
	return func(c *testCallConfig) {
		c.runDelayed = true
	}
}

// TestCall invokes the route's handler directly, outside a host dispatch.
// A fresh dispatch context is constructed for the call: the selector is
// set to this route's path, positional args are rebound by name and merged
// with kw into the parameter set. The raw handler result is returned
// without any host flushing. Because every call gets its own context,
// sequential calls cannot leak selector, parameters or accumulated sort
// methods into one another, even when the handler fails.
func (r *Route) TestCall(d *Dispatcher, args []any, kw params.Params, opts ...TestCallOption) (any, error) {
	config := testCallConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	p := make(params.Params)
	r.RebindPositional(args, p)
	p.Merge(kw)

	inv := &Invocation{Selector: r.Path, Handle: -1}
	ctx := newContext(d, inv, r, p)

	defer func() {
		if config.runDelayed {
			ctx.runDelayed()
		}
	}()

	return invokeHandler(ctx, r)
}
