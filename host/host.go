// Package host declares the interfaces of the media-center application the
// framework is hosted in. The framework only ever talks to the host through
// these interfaces; it never implements them itself, apart from the
// recording Fake used by tests.
package host

import "github.com/machinefabric/plugkit-go/listing"

// Level is a host log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	default:
		return "info"
	}
}

// Directory is the host's directory-listing sink. The handle identifies
// the host session the listing belongs to.
type Directory interface {
	// AddEntries submits all sealed entries of a listing in one batch.
	AddEntries(handle int, entries []listing.Sealed) error

	// SetContent declares the listing's content type, e.g. "videos".
	SetContent(handle int, content string) error

	// SetCategory sets the listing's category for skins to display.
	SetCategory(handle int, category string) error

	// SetSortMethods declares the ordered sort methods for the listing.
	SetSortMethods(handle int, methods []listing.SortMethod) error

	// SetViewMode switches the skin view mode for the listing.
	SetViewMode(mode string) error

	// EndListing marks the end of the listing. updateListing makes the
	// host replace the current listing instead of descending into it.
	EndListing(handle int, success, updateListing bool) error
}

// Player is the host's playback sink.
type Player interface {
	// Resolve hands the playable item for the session back to the host.
	Resolve(handle int, success bool, item listing.Sealed) error

	// ClearQueue empties the active playback queue.
	ClearQueue() error

	// Enqueue appends an item to the active playback queue.
	Enqueue(url string, item listing.Sealed) error

	// QueueLen reports the current playback queue length.
	QueueLen() int
}

// Notifier is the host's notification capability.
type Notifier interface {
	Notify(title, message, icon string) error
}

// LogSink is the host's leveled logging sink.
type LogSink interface {
	Log(message string, level Level)
}

// Host aggregates every collaborator interface the framework consumes.
type Host interface {
	Directory() Directory
	Player() Player
	Notifier() Notifier
	Log() LogSink
}
