package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	data := []byte(`{
		"id": "plugin.video.example",
		"name": "Example Plugin",
		"version": "1.2.0",
		"icon": "resources/icon.png"
	}`)

	m, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "plugin.video.example", m.ID)
	assert.Equal(t, "Example Plugin", m.Name)
	assert.Equal(t, "1.2.0", m.Version)
	assert.Equal(t, "resources/icon.png", m.Icon)
}

func TestParseMissingRequired(t *testing.T) {
	_, err := Parse([]byte(`{"id": "plugin.video.example"}`))
	require.Error(t, err)

	manifestErr, ok := err.(*ManifestError)
	require.True(t, ok)
	assert.NotEmpty(t, manifestErr.Details)
}

func TestParseRejectsBadID(t *testing.T) {
	_, err := Parse([]byte(`{
		"id": "Bad Plugin ID",
		"name": "Example",
		"version": "1.0.0"
	}`))
	assert.Error(t, err)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`{
		"id": "plugin.video.example",
		"name": "Example",
		"version": "1.0.0",
		"unexpected": true
	}`))
	assert.Error(t, err)
}

func TestParseNotJSON(t *testing.T) {
	_, err := Parse([]byte("not json at all"))
	assert.Error(t, err)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"id": "plugin.video.example",
		"name": "Example",
		"version": "0.1.0"
	}`), 0644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "plugin.video.example", m.ID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	manifestErr, ok := err.(*ManifestError)
	require.True(t, ok)
	assert.NotEmpty(t, manifestErr.Path)
}

func TestBuilderHelpers(t *testing.T) {
	m := New("plugin.video.example", "Example", "1.0.0").
		WithIcon("icon.png").
		WithAuthor("dev")

	assert.Equal(t, "icon.png", m.Icon)
	require.NotNil(t, m.Author)
	assert.Equal(t, "dev", *m.Author)
}
