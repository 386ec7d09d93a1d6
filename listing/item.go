// Package listing provides the directory entry type produced by folder
// routes. An Item accumulates display and playback metadata while a handler
// runs, then is sealed exactly once into the immutable form consumed by the
// host's directory API.
package listing

import (
	"fmt"
	"strings"

	"github.com/machinefabric/plugkit-go/params"
)

// SealedError is returned when an item is mutated or sealed after it has
// already been sealed.
type SealedError struct {
	Label string
}

func (e *SealedError) Error() string {
	return fmt.Sprintf("listitem '%s' is already sealed", e.Label)
}

// BuildFunc builds an invocation URL for a route path and parameter set.
// An empty path addresses the route currently being dispatched.
type BuildFunc func(path string, p params.Params) (string, error)

// Sealed is the immutable host-consumable form of an item: the activation
// target, an opaque metadata blob, and the folder flag.
type Sealed struct {
	URL      string
	Metadata map[string]any
	IsFolder bool
}

// ContextMenuEntry is one entry of an item's context menu. Target and
// Params address the route invoked when the entry is selected.
type ContextMenuEntry struct {
	Label  string
	Target string
	Params params.Params
}

// Item is one entry of a folder listing prior to sealing.
type Item struct {
	Label      string
	Info       map[string]any
	Art        map[string]string
	Stream     map[string]any
	Properties map[string]string

	contextMenu []ContextMenuEntry
	targetPath  string
	targetP     params.Params
	literalURL  string
	isFolder    bool
	nextPage    bool
	sealed      bool
	sortHints   MethodSet
}

// NewItem creates a playable (non-folder) item with the given label.
func NewItem(label string) *Item {
	return &Item{
		Label:      label,
		Info:       make(map[string]any),
		Art:        make(map[string]string),
		Stream:     make(map[string]any),
		Properties: make(map[string]string),
		sortHints:  NewMethodSet(),
	}
}

// NewFolderItem creates a folder item with the given label.
func NewFolderItem(label string) *Item {
	item := NewItem(label)
	item.isFolder = true
	return item
}

// NewNextPage creates the "next page" marker item. It targets the route
// currently being dispatched, carrying p plus the update-listing control
// flag so the host replaces the current listing instead of descending.
func NewNextPage(p params.Params) *Item {
	item := NewFolderItem("[B]Next Page[/B]")
	item.nextPage = true

	target := p.Copy()
	target[params.KeyUpdateListing] = "true"
	item.SetCallback("", target)
	return item
}

// IsFolder reports whether the item is a folder entry.
func (i *Item) IsFolder() bool { return i.isFolder }

// IsNextPage reports whether the item is a next-page marker.
func (i *Item) IsNextPage() bool { return i.nextPage }

// SetInfo sets an info label. Recognized labels additionally record a sort
// hint for auto sort detection.
func (i *Item) SetInfo(label string, value any) *Item {
	label = strings.ToLower(label)
	i.Info[label] = value
	if method, ok := infoLabelSortHints[label]; ok {
		i.sortHints.Add(method)
	}
	return i
}

// SetArt sets an art slot, e.g. "thumb" or "fanart".
func (i *Item) SetArt(slot, uri string) *Item {
	i.Art[slot] = uri
	return i
}

// SetStream sets a playback stream detail, e.g. "video_codec" or "height".
func (i *Item) SetStream(key string, value any) *Item {
	i.Stream[key] = value
	return i
}

// SetProperty sets an opaque host property on the item.
func (i *Item) SetProperty(key, value string) *Item {
	i.Properties[key] = value
	return i
}

// SetCallback binds the item to a route path and parameter set. An empty
// path addresses the route currently being dispatched. Overrides any
// previously set literal path.
func (i *Item) SetCallback(path string, p params.Params) *Item {
	i.targetPath = path
	i.targetP = p
	i.literalURL = ""
	return i
}

// SetPath binds the item to a literal URL, bypassing the URL builder.
// Used for direct media references.
func (i *Item) SetPath(url string) *Item {
	i.literalURL = url
	i.targetP = nil
	return i
}

// AddContextMenu appends a context menu entry invoking the given route.
func (i *Item) AddContextMenu(label, target string, p params.Params) *Item {
	i.contextMenu = append(i.contextMenu, ContextMenuEntry{
		Label:  label,
		Target: target,
		Params: p,
	})
	return i
}

// SortHints returns the sort methods detected from the item's info labels.
func (i *Item) SortHints() MethodSet { return i.sortHints }

// Seal finalizes the item into its host-consumable form. Sealing happens
// exactly once; a second call fails with SealedError.
func (i *Item) Seal(build BuildFunc) (Sealed, error) {
	if i.sealed {
		return Sealed{}, &SealedError{Label: i.Label}
	}
	i.sealed = true

	target := i.literalURL
	if target == "" {
		built, err := build(i.targetPath, i.targetP)
		if err != nil {
			return Sealed{}, err
		}
		target = built
	}

	menu := make([][2]string, 0, len(i.contextMenu))
	for _, entry := range i.contextMenu {
		url, err := build(entry.Target, entry.Params)
		if err != nil {
			return Sealed{}, err
		}
		menu = append(menu, [2]string{entry.Label, url})
	}

	metadata := map[string]any{
		"label":      i.Label,
		"info":       i.Info,
		"art":        i.Art,
		"stream":     i.Stream,
		"properties": i.Properties,
	}
	if len(menu) > 0 {
		metadata["context_menu"] = menu
	}

	return Sealed{
		URL:      target,
		Metadata: metadata,
		IsFolder: i.isFolder,
	}, nil
}
