package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetGetDelete(t *testing.T) {
	store, err := Open(t.TempDir(), "cache")
	require.NoError(t, err)

	store.Set("watched", []any{"a", "b"})
	value, ok := store.Get("watched")
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, value)

	store.Delete("watched")
	_, ok = store.Get("watched")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStoreFlushAndReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir, "cache")
	require.NoError(t, err)
	store.Set("video_id", "abc123")
	store.Set("count", int64(7))
	require.NoError(t, store.Flush())

	reopened, err := Open(dir, "cache")
	require.NoError(t, err)

	value, ok := reopened.Get("video_id")
	require.True(t, ok)
	assert.Equal(t, "abc123", value)

	count, ok := reopened.Get("count")
	require.True(t, ok)
	assert.EqualValues(t, 7, count)
}

func TestStoreCloseFlushesWhenDirty(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir, "cache")
	require.NoError(t, err)
	store.Set("k", "v")
	require.NoError(t, store.Close())

	reopened, err := Open(dir, "cache")
	require.NoError(t, err)
	_, ok := reopened.Get("k")
	assert.True(t, ok)
}

func TestStoreNamesAreIsolated(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir, "cache")
	require.NoError(t, err)
	first.Set("k", "first")
	require.NoError(t, first.Flush())

	second, err := Open(dir, "history")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Len())
}

func TestStorePurge(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir, "cache")
	require.NoError(t, err)
	store.Set("k", "v")
	require.NoError(t, store.Flush())
	require.NoError(t, store.Purge())

	reopened, err := Open(dir, "cache")
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestSettingsReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"skin": {"folder": {"view": "502"}},
		"autoplay": true
	}`), 0644))

	settings, err := OpenSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "502", settings.Get("skin.folder.view"))
	assert.True(t, settings.GetBool("autoplay"))
	assert.False(t, settings.Exists("skin.media.view"))

	require.NoError(t, settings.Set("skin.media.view", "51"))
	assert.Equal(t, "51", settings.Get("skin.media.view"))

	require.NoError(t, settings.Flush())

	reopened, err := OpenSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "51", reopened.Get("skin.media.view"))
	assert.Equal(t, "502", reopened.Get("skin.folder.view"))
}

func TestSettingsMissingFile(t *testing.T) {
	settings, err := OpenSettings(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, "", settings.Get("anything"))
}

func TestSettingsRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := OpenSettings(path)
	assert.Error(t, err)
}
