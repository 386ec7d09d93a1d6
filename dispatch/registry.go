package dispatch

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/machinefabric/plugkit-go/listing"
	"github.com/machinefabric/plugkit-go/params"
)

// Registry maps canonical selector paths to routes. Registration is
// append-only and strictly unique; it happens during an explicit startup
// phase, before the first dispatch.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]*Route
}

// NewRegistry creates an empty route registry.
func NewRegistry() *Registry {
	return &Registry{
		routes: make(map[string]*Route),
	}
}

// CanonicalPath derives the selector path for a handler. A handler whose
// bare name lower-cases to "root" is the root route; every other handler
// lives at "<scope>/<name>" lower-cased, where scope is the declaring
// dotted path with leading underscores stripped and dots replaced by
// slashes.
func CanonicalPath(scope, name string) string {
	if strings.ToLower(name) == RootSelector {
		return RootSelector
	}
	scope = strings.TrimLeft(scope, "_")
	scope = strings.ReplaceAll(scope, ".", "/")
	return strings.ToLower(scope + "/" + name)
}

// Register binds a handler under the canonical path derived from scope and
// name. The handler must be a ScriptFunc/FolderFunc/ResolverFunc matching
// kind, or a struct value implementing the matching Runner entry-point
// interface; anything else fails with MissingEntryPointError here, not at
// dispatch time. A path collision fails with DuplicateRouteError.
func (r *Registry) Register(scope, name string, kind Kind, handler any, argNames ...string) (*Route, error) {
	path := CanonicalPath(scope, name)

	route := &Route{
		Path:     path,
		Kind:     kind,
		ArgNames: argNames,
		Handler:  handler,
	}
	if err := bindHandler(route, handler); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[path]; exists {
		return nil, &DuplicateRouteError{Path: path}
	}
	r.routes[path] = route
	return route, nil
}

// MustRegister is Register for startup code where a broken registration
// should stop the plugin from loading at all.
func (r *Registry) MustRegister(scope, name string, kind Kind, handler any, argNames ...string) *Route {
	route, err := r.Register(scope, name, kind, handler, argNames...)
	if err != nil {
		panic(err)
	}
	return route
}

// Script registers a side-effect-only route.
func (r *Registry) Script(scope, name string, fn ScriptFunc, argNames ...string) (*Route, error) {
	return r.Register(scope, name, KindScript, fn, argNames...)
}

// Folder registers a directory listing route.
func (r *Registry) Folder(scope, name string, fn FolderFunc, argNames ...string) (*Route, error) {
	return r.Register(scope, name, KindFolder, fn, argNames...)
}

// Resolver registers a playable resolution route.
func (r *Registry) Resolver(scope, name string, fn ResolverFunc, argNames ...string) (*Route, error) {
	return r.Register(scope, name, KindResolver, fn, argNames...)
}

// Lookup resolves a selector path to its route.
func (r *Registry) Lookup(path string) (*Route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route, ok := r.routes[path]
	if !ok {
		return nil, &UnknownRouteError{Path: path}
	}
	return route, nil
}

// Paths returns every registered path in sorted order.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.routes))
	for path := range r.routes {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// bindHandler normalizes the registered handler value into the route's
// kind-specific callable.
func bindHandler(route *Route, handler any) error {
	switch route.Kind {
	case KindScript:
		switch h := handler.(type) {
		case ScriptFunc:
			route.script = h
		case func(*Script, params.Params) error:
			route.script = h
		case ScriptRunner:
			route.script = h.Run
		default:
			return entryPointError(route, handler)
		}

	case KindFolder:
		switch h := handler.(type) {
		case FolderFunc:
			route.folder = h
		case func(*Folder, params.Params) ([]*listing.Item, error):
			route.folder = h
		case FolderRunner:
			route.folder = h.Run
		default:
			return entryPointError(route, handler)
		}

	case KindResolver:
		switch h := handler.(type) {
		case ResolverFunc:
			route.resolver = h
		case func(*Resolver, params.Params) (any, error):
			route.resolver = h
		case ResolverRunner:
			route.resolver = h.Run
		default:
			return entryPointError(route, handler)
		}

	default:
		return entryPointError(route, handler)
	}
	return nil
}

func entryPointError(route *Route, handler any) *MissingEntryPointError {
	return &MissingEntryPointError{
		Path:   route.Path,
		Kind:   route.Kind,
		Reason: fmt.Sprintf("handler type %T matches neither the %s func signature nor its Runner interface", handler, route.Kind),
	}
}
