package dispatch

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/machinefabric/plugkit-go/listing"
	"github.com/machinefabric/plugkit-go/params"
	"github.com/machinefabric/plugkit-go/storage"
)

// DelayedFunc is work scheduled during a dispatch to run after the primary
// result has been flushed to the host.
type DelayedFunc func(ctx *Context) error

// Context carries all per-dispatch state: the parsed invocation, the
// decoded parameter set and its views, the deferred callback queue, the
// sort-method accumulator and the dispatch logger. A fresh context is
// constructed for every dispatch and for every direct test invocation, so
// no state survives from one invocation to the next.
type Context struct {
	// ID is the dispatch correlation id stamped on log records.
	ID uuid.UUID

	// Log is the dispatch logger.
	Log *Logger

	d        *Dispatcher
	inv      *Invocation
	route    *Route
	p        params.Params
	delayed  []DelayedFunc
	autoSort listing.MethodSet
}

func newContext(d *Dispatcher, inv *Invocation, route *Route, p params.Params) *Context {
	id := uuid.New()
	return &Context{
		ID:       id,
		Log:      newLogger(d.host.Log(), d.manifest.ID, shortID(id)),
		d:        d,
		inv:      inv,
		route:    route,
		p:        p,
		autoSort: listing.NewMethodSet(),
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// Selector returns the selector path this dispatch is running.
func (c *Context) Selector() string { return c.inv.Selector }

// Handle returns the numeric host session handle.
func (c *Context) Handle() int { return c.inv.Handle }

// Route returns the route being dispatched.
func (c *Context) Route() *Route { return c.route }

// PluginID returns the plugin id from the manifest.
func (c *Context) PluginID() string { return c.d.manifest.ID }

// Params returns the full decoded parameter set of this dispatch.
func (c *Context) Params() params.Params { return c.p }

// CallbackParams returns the parameter view forwarded to the handler.
func (c *Context) CallbackParams() params.Params { return c.p.Callback() }

// ControlParams returns the framework-reserved parameter view.
func (c *Context) ControlParams() params.Params { return c.p.Control() }

// Settings returns the plugin settings document, or nil when the
// dispatcher was built without one.
func (c *Context) Settings() *storage.Settings { return c.d.settings }

// Title returns the display title of this dispatch: the _title_ control
// parameter when present, the plugin name otherwise.
func (c *Context) Title() string {
	if title := c.p.String(params.KeyTitle); title != "" {
		return title
	}
	return c.d.manifest.Name
}

// Notify surfaces a short notification through the host, using the
// manifest icon.
func (c *Context) Notify(title, message string) {
	if err := c.d.host.Notifier().Notify(title, message, c.d.manifest.Icon); err != nil {
		c.Log.Errorf("failed to send notification: %v", err)
	}
}

// RegisterDelayed appends fn to the deferred callback queue. The queue is
// drained in insertion order after the primary result has been flushed;
// it is never deduplicated or reordered.
func (c *Context) RegisterDelayed(fn DelayedFunc) {
	c.delayed = append(c.delayed, fn)
}

// runDelayed drains the deferred callback queue exactly once. Every
// callback runs in isolation: a failure (or panic) is logged and the
// remaining queue still runs. The queue is cleared unconditionally.
func (c *Context) runDelayed() {
	if len(c.delayed) == 0 {
		return
	}

	start := c.d.now()
	for _, fn := range c.delayed {
		if err := c.callDelayed(fn); err != nil {
			c.Log.Errorf("delayed callback failed: %v", err)
		}
	}
	c.Log.Debugf("Callbacks Execution Time: %dms", c.d.now().Sub(start).Milliseconds())
	c.delayed = nil
}

func (c *Context) callDelayed(fn DelayedFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(c)
}

// BuildPath builds an invocation URL the host can later re-dispatch. A nil
// route addresses the route currently being dispatched. Positional args
// are rebound to keywords through the route's declared argument names and
// merged into query.
func (c *Context) BuildPath(route *Route, args []any, query params.Params) (string, error) {
	if route == nil {
		route = c.route
	}

	if len(args) > 0 {
		if query == nil {
			query = make(params.Params)
		}
		route.RebindPositional(args, query)
	}

	return c.buildURL(route.Path, query)
}

// BuildCurrent builds an invocation URL for the current route carrying the
// current parameter set with extra merged on top.
func (c *Context) BuildCurrent(extra params.Params) (string, error) {
	query := c.p.Copy()
	query.Merge(extra)
	return c.buildURL(c.route.Path, query)
}

func (c *Context) buildURL(path string, query params.Params) (string, error) {
	encoded, err := params.Encode(query)
	if err != nil {
		return "", err
	}

	u := url.URL{
		Scheme:   "plugin",
		Host:     c.d.manifest.ID,
		Path:     "/" + path,
		RawQuery: encoded,
	}
	return u.String(), nil
}

// sealItem turns an item into its host form, routing empty callback paths
// at the current route and folding the item's sort hints into the
// dispatch accumulator.
func (c *Context) sealItem(item *listing.Item) (listing.Sealed, error) {
	c.autoSort.Union(item.SortHints())

	return item.Seal(func(path string, p params.Params) (string, error) {
		if path == "" {
			path = c.route.Path
		}
		return c.buildURL(path, p)
	})
}
