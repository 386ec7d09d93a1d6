package dispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machinefabric/plugkit-go/listing"
	"github.com/machinefabric/plugkit-go/params"
)

func TestCallReturnsRawResult(t *testing.T) {
	d, fake := newTestDispatcher(t)

	route, err := d.Registry().Folder("lib.main", "listing", func(f *Folder, p params.Params) ([]*listing.Item, error) {
		return []*listing.Item{listing.NewFolderItem("entry")}, nil
	})
	require.NoError(t, err)

	result, err := route.TestCall(d, nil, nil)
	require.NoError(t, err)

	items, ok := result.([]*listing.Item)
	require.True(t, ok)
	assert.Len(t, items, 1)

	// Direct invocation returns raw results without flushing to the host.
	assert.Empty(t, fake.Entries)
	assert.False(t, fake.ListingEnded)
}

func TestCallRebindsPositionalArgs(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var seen params.Params
	route, err := d.Registry().Resolver("lib.main", "play", func(r *Resolver, p params.Params) (any, error) {
		seen = p
		return "http://example.com/v.mp4", nil
	}, "video_id", "quality")
	require.NoError(t, err)

	_, err = route.TestCall(d, []any{"abc123"}, params.Params{"quality": "720p"})
	require.NoError(t, err)

	assert.Equal(t, "abc123", seen.String("video_id"))
	assert.Equal(t, "720p", seen.String("quality"))
}

func TestCallIsolationBetweenSequentialCalls(t *testing.T) {
	d, _ := newTestDispatcher(t)

	first, err := d.Registry().Folder("lib.main", "first", func(f *Folder, p params.Params) ([]*listing.Item, error) {
		// Leave plenty of state behind: params, sort methods, deferred work.
		f.AddSortMethods(listing.SortDate)
		f.RegisterDelayed(func(ctx *Context) error { return nil })
		item := listing.NewItem("e").SetPath("http://example.com/v.mp4")
		item.SetInfo("duration", 10)
		if _, sealErr := f.sealItem(item); sealErr != nil {
			return nil, sealErr
		}
		return []*listing.Item{listing.NewFolderItem("x")}, nil
	})
	require.NoError(t, err)

	var second *Folder
	secondRoute, err := d.Registry().Folder("lib.main", "second", func(f *Folder, p params.Params) ([]*listing.Item, error) {
		second = f
		return []*listing.Item{listing.NewFolderItem("y")}, nil
	})
	require.NoError(t, err)

	_, err = first.TestCall(d, nil, params.Params{"video_id": "abc"})
	require.NoError(t, err)

	_, err = secondRoute.TestCall(d, nil, nil)
	require.NoError(t, err)

	// The second call sees a fresh context: its own selector, no leftover
	// parameters, no accumulated sort methods, no pending deferred work.
	assert.Equal(t, "lib/main/second", second.Selector())
	assert.Empty(t, second.Params())
	assert.Empty(t, second.autoSort)
	assert.Empty(t, second.delayed)
}

func TestCallIsolationSurvivesHandlerFailure(t *testing.T) {
	d, _ := newTestDispatcher(t)

	failing, err := d.Registry().Script("lib.main", "broken", func(s *Script, p params.Params) error {
		s.RegisterDelayed(func(ctx *Context) error { return nil })
		return assert.AnError
	})
	require.NoError(t, err)

	var clean *Script
	cleanRoute, err := d.Registry().Script("lib.main", "clean", func(s *Script, p params.Params) error {
		clean = s
		return nil
	})
	require.NoError(t, err)

	_, err = failing.TestCall(d, nil, params.Params{"k": "v"})
	require.Error(t, err)

	_, err = cleanRoute.TestCall(d, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "lib/main/clean", clean.Selector())
	assert.Empty(t, clean.Params())
	assert.Empty(t, clean.delayed)
}

func TestCallRunDelayedOption(t *testing.T) {
	d, _ := newTestDispatcher(t)

	ran := false
	route, err := d.Registry().Script("lib.main", "maintenance", func(s *Script, p params.Params) error {
		s.RegisterDelayed(func(ctx *Context) error { ran = true; return nil })
		return nil
	})
	require.NoError(t, err)

	_, err = route.TestCall(d, nil, nil)
	require.NoError(t, err)
	assert.False(t, ran, "deferred work must not run without the option")

	_, err = route.TestCall(d, nil, nil, RunDelayed())
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestBuildPathRoundTrip(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var built string
	target, err := d.Registry().Resolver("lib.main", "play", func(r *Resolver, p params.Params) (any, error) {
		return "http://example.com/v.mp4", nil
	}, "video_id")
	require.NoError(t, err)

	source, err := d.Registry().Script("lib.main", "pick", func(s *Script, p params.Params) error {
		url, buildErr := s.BuildPath(target, []any{"abc123"}, params.Params{"quality": "720p"})
		if buildErr != nil {
			return buildErr
		}
		built = url
		return nil
	})
	require.NoError(t, err)

	_, err = source.TestCall(d, nil, nil)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(built, "plugin://plugin.video.example/lib/main/play?"))

	decoded, err := params.Decode(strings.SplitN(built, "?", 2)[1])
	require.NoError(t, err)
	assert.Equal(t, "abc123", decoded.String("video_id"))
	assert.Equal(t, "720p", decoded.String("quality"))
}

func TestBuildPathDefaultsToCurrentRoute(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var built string
	route, err := d.Registry().Script("lib.main", "pick", func(s *Script, p params.Params) error {
		url, buildErr := s.BuildPath(nil, nil, nil)
		if buildErr != nil {
			return buildErr
		}
		built = url
		return nil
	})
	require.NoError(t, err)

	_, err = route.TestCall(d, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "plugin://plugin.video.example/lib/main/pick", built)
}
