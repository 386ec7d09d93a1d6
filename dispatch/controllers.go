package dispatch

import (
	"fmt"
	"strings"

	"github.com/machinefabric/plugkit-go/listing"
	"github.com/machinefabric/plugkit-go/params"
)

// loopbackPrefix marks a dispatch title as belonging to a loop-back
// playback queue, so re-entrant invocations keep extending the queue
// instead of restarting it.
const loopbackPrefix = "_loopback_"

// Script is the controller for side-effect-only routes. It carries the
// dispatch context and nothing else; a script's result is only its error.
type Script struct {
	*Context
}

// Folder is the controller for directory listing routes.
type Folder struct {
	*Context

	// UpdateListing makes the host replace the current listing instead of
	// descending into a new one. Seeded from the update-listing control
	// parameter.
	UpdateListing bool

	// Category is the listing category shown by skins. Seeded from the
	// title control parameter.
	Category string

	manualSort listing.MethodSet
	autosort   bool
}

func newFolder(ctx *Context) *Folder {
	return &Folder{
		Context:       ctx,
		UpdateListing: ctx.p.Bool(params.KeyUpdateListing),
		Category:      ctx.p.String(params.KeyTitle),
		manualSort:    listing.NewMethodSet(),
		autosort:      true,
	}
}

// AddSortMethods adds explicit sort methods for the listing, merged with
// the auto-detected methods. Normally not needed: sort methods are
// detected from the info labels the listing's items set.
func (f *Folder) AddSortMethods(methods ...listing.SortMethod) {
	f.manualSort.Add(methods...)
}

// OverrideSortMethods adds explicit sort methods and disables auto
// detection for this listing.
func (f *Folder) OverrideSortMethods(methods ...listing.SortMethod) {
	f.autosort = false
	f.manualSort.Add(methods...)
}

// finalize seals the handler's items and flushes the listing to the host
// in one batch.
func (f *Folder) finalize(raw []*listing.Item) error {
	sealed := make([]listing.Sealed, 0, len(raw))
	folders := 0
	for _, item := range raw {
		if item == nil {
			continue
		}
		entry, err := f.sealItem(item)
		if err != nil {
			return err
		}
		if entry.IsFolder {
			folders++
		}
		sealed = append(sealed, entry)
	}

	if len(sealed) == 0 {
		return &EmptyResultError{Path: f.route.Path}
	}

	directory := f.d.host.Directory()
	if err := directory.AddEntries(f.Handle(), sealed); err != nil {
		return err
	}

	// A listing is folder-browsing when strictly more than half its
	// entries are folders; otherwise it is a media listing.
	isFolderListing := folders > len(sealed)/2
	if err := f.setContent(isFolderListing); err != nil {
		return err
	}

	if err := directory.SetSortMethods(f.Handle(), f.sortMethods()); err != nil {
		return err
	}
	return directory.EndListing(f.Handle(), true, f.UpdateListing)
}

func (f *Folder) setContent(isFolderListing bool) error {
	directory := f.d.host.Directory()

	kind := "media"
	content := "videos"
	if isFolderListing {
		kind = "folder"
		content = "files"
	}
	if err := directory.SetContent(f.Handle(), content); err != nil {
		return err
	}

	if f.Category != "" {
		if err := directory.SetCategory(f.Handle(), f.Category); err != nil {
			return err
		}
	}

	// Switch the skin view mode when one is configured for this listing
	// kind.
	if settings := f.Settings(); settings != nil {
		if mode := settings.Get("skin." + kind + ".view"); mode != "" {
			return directory.SetViewMode(mode)
		}
	}
	return nil
}

// sortMethods merges the explicit methods with the auto-detected ones,
// unless detection was overridden. A listing that ends up with no methods
// at all gets exactly the unsorted method, so the host does not reapply a
// stale sort order from a previous listing.
func (f *Folder) sortMethods() []listing.SortMethod {
	merged := listing.NewMethodSet()
	merged.Union(f.manualSort)
	if f.autosort {
		merged.Union(f.autoSort)
	}

	if len(merged) == 0 {
		return []listing.SortMethod{listing.SortUnsorted}
	}
	return merged.Sorted()
}

// Resolver is the controller for playable resolution routes.
type Resolver struct {
	*Context
}

// finalize turns the handler's result into exactly one playable reference
// and hands it to the host.
func (r *Resolver) finalize(resolved any) error {
	item, err := r.toPlayable(resolved)
	if err != nil {
		return err
	}

	sealed, err := r.sealItem(item)
	if err != nil {
		return err
	}
	return r.d.host.Player().Resolve(r.Handle(), true, sealed)
}

// toPlayable dispatches on the shape of the resolver result.
func (r *Resolver) toPlayable(resolved any) (*listing.Item, error) {
	switch v := resolved.(type) {
	case nil:
		return nil, NewNoSourceError()

	case string:
		if v == "" {
			return nil, NewNoSourceError()
		}
		return listing.NewItem(r.Title()).SetPath(v), nil

	case []string:
		if len(v) == 0 {
			return nil, NewNoSourceError()
		}
		entries := make([]listing.PlaylistEntry, 0, len(v))
		for _, mediaURL := range v {
			entries = append(entries, listing.PlaylistEntry{URL: mediaURL})
		}
		return r.buildPlaylist(entries)

	case []listing.PlaylistEntry:
		if len(v) == 0 {
			return nil, NewNoSourceError()
		}
		return r.buildPlaylist(v)

	case *listing.Item:
		if v == nil {
			return nil, NewNoSourceError()
		}
		return v, nil

	default:
		return nil, NewInvalidSourceError(fmt.Sprintf("%T", resolved))
	}
}

// buildPlaylist queues every entry in input order and returns the first
// queued item as the one the host activates.
func (r *Resolver) buildPlaylist(entries []listing.PlaylistEntry) (*listing.Item, error) {
	player := r.d.host.Player()
	if err := player.ClearQueue(); err != nil {
		return nil, err
	}

	var first *listing.Item
	for i, entry := range entries {
		title := entry.Title
		if title == "" {
			title = r.Title()
		}

		item := listing.NewItem(fmt.Sprintf("%s Part %d", title, i+1))
		item.SetPath(entry.URL)
		if i == 0 {
			first = item
			continue
		}

		sealed, err := r.sealItem(item)
		if err != nil {
			return nil, err
		}
		if err := player.Enqueue(entry.URL, sealed); err != nil {
			return nil, err
		}
	}
	return first, nil
}

// CreateLoopback builds a two-entry playback queue: the playable url
// first, then a self-referential invocation URL carrying next so the host
// re-invokes this plugin to resolve the following item when playback of
// the first ends. The re-entrancy is deliberate; it is what makes
// continuous playback work.
func (r *Resolver) CreateLoopback(mediaURL string, next params.Params) (*listing.Item, error) {
	if next == nil {
		next = make(params.Params)
	}
	player := r.d.host.Player()

	title := r.Title()
	main := listing.NewItem(title).SetPath(mediaURL)

	if strings.HasPrefix(title, loopbackPrefix) {
		// Already inside a loop-back queue: keep the marker title and
		// display the bare title on the playing item.
		if _, bare, found := strings.Cut(title, " - "); found {
			main.Label = bare
		}
		next[params.KeyTitle] = title
	} else {
		// First entry of a fresh queue.
		next[params.KeyTitle] = loopbackPrefix + " - " + title
		if err := player.ClearQueue(); err != nil {
			return nil, err
		}
		mainSealed, err := r.sealItem(main)
		if err != nil {
			return nil, err
		}
		if err := player.Enqueue(mediaURL, mainSealed); err != nil {
			return nil, err
		}
		// The queued copy is sealed; the host activates a fresh item.
		main = listing.NewItem(title).SetPath(mediaURL)
	}

	loopURL, err := r.BuildCurrent(next)
	if err != nil {
		return nil, err
	}

	loop := listing.NewItem(next.String(params.KeyTitle)).SetPath(loopURL)
	loopSealed, err := r.sealItem(loop)
	if err != nil {
		return nil, err
	}
	if err := player.Enqueue(loopURL, loopSealed); err != nil {
		return nil, err
	}

	return main, nil
}

// invokeHandler runs the route's handler with the context's callback
// parameters and returns the raw result, without any host flushing. Used
// by production dispatch (which finalizes afterwards) and by TestCall
// (which does not).
func invokeHandler(ctx *Context, route *Route) (any, error) {
	callback := ctx.CallbackParams()

	switch route.Kind {
	case KindScript:
		return nil, route.script(&Script{Context: ctx}, callback)
	case KindFolder:
		return route.folder(newFolder(ctx), callback)
	case KindResolver:
		return route.resolver(&Resolver{Context: ctx}, callback)
	default:
		return nil, &UnknownRouteError{Path: route.Path}
	}
}

// runRoute runs the handler and the kind-specific finalize step that
// flushes the result to the host.
func runRoute(ctx *Context, route *Route) error {
	callback := ctx.CallbackParams()

	switch route.Kind {
	case KindScript:
		return route.script(&Script{Context: ctx}, callback)

	case KindFolder:
		folder := newFolder(ctx)
		items, err := route.folder(folder, callback)
		if err != nil {
			return err
		}
		return folder.finalize(items)

	case KindResolver:
		resolver := &Resolver{Context: ctx}
		resolved, err := route.resolver(resolver, callback)
		if err != nil {
			return err
		}
		return resolver.finalize(resolved)

	default:
		return &UnknownRouteError{Path: route.Path}
	}
}
