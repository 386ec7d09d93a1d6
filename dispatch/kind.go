package dispatch

import (
	"github.com/machinefabric/plugkit-go/listing"
	"github.com/machinefabric/plugkit-go/params"
)

// Kind selects how a route's result is processed and flushed to the host.
// The set is closed: every route is exactly one of script, folder or
// resolver.
type Kind uint8

const (
	// KindScript runs the handler for its side effects only. There is no
	// result channel back to the host.
	KindScript Kind = iota

	// KindFolder produces a directory listing of sealed items submitted to
	// the host's directory API in one batch.
	KindFolder

	// KindResolver produces exactly one playable reference, possibly at the
	// head of an ordered playback queue.
	KindResolver
)

func (k Kind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindFolder:
		return "folder"
	case KindResolver:
		return "resolver"
	default:
		return "unknown"
	}
}

// ScriptFunc is a side-effect-only route handler.
type ScriptFunc func(s *Script, p params.Params) error

// FolderFunc is a directory listing route handler. The returned sequence
// may contain nil placeholders; they are filtered out before sealing.
type FolderFunc func(f *Folder, p params.Params) ([]*listing.Item, error)

// ResolverFunc is a playable resolution route handler. The result must be
// a media URL string, an ordered []string or []listing.PlaylistEntry
// queue, or an already constructed *listing.Item.
type ResolverFunc func(r *Resolver, p params.Params) (any, error)

// ScriptRunner is the entry-point contract for struct-based script
// handlers.
type ScriptRunner interface {
	Run(s *Script, p params.Params) error
}

// FolderRunner is the entry-point contract for struct-based folder
// handlers.
type FolderRunner interface {
	Run(f *Folder, p params.Params) ([]*listing.Item, error)
}

// ResolverRunner is the entry-point contract for struct-based resolver
// handlers.
type ResolverRunner interface {
	Run(r *Resolver, p params.Params) (any, error)
}
